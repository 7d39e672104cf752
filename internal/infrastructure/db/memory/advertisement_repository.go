package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/adsboard/marketplace-api/internal/core/domain"
	"github.com/adsboard/marketplace-api/internal/core/ports"
)

// AdvertisementRepository implements ports.AdvertisementRepository in memory.
type AdvertisementRepository struct {
	mu   sync.RWMutex
	seq  ports.Sequence
	byID map[int64]*domain.Advertisement
}

// NewAdvertisementRepository returns an empty repository allocating ids from seq.
func NewAdvertisementRepository(seq ports.Sequence) *AdvertisementRepository {
	return &AdvertisementRepository{
		seq:  seq,
		byID: make(map[int64]*domain.Advertisement),
	}
}

func cloneAd(a *domain.Advertisement) *domain.Advertisement {
	clone := *a
	return &clone
}

func (r *AdvertisementRepository) Create(ctx context.Context, ad *domain.Advertisement) (*domain.Advertisement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.seq.Next(ctx)
	if err != nil {
		return nil, fmt.Errorf("allocate advertisement id: %w", err)
	}

	stored := cloneAd(ad)
	stored.ID = id
	r.byID[id] = stored
	return cloneAd(stored), nil
}

func (r *AdvertisementRepository) FindByID(_ context.Context, id int64) (*domain.Advertisement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAdvertisementNotFound
	}
	return cloneAd(a), nil
}

// Search applies the same filters as the MongoDB implementation.
func (r *AdvertisementRepository) Search(_ context.Context, f ports.AdvertisementFilter) ([]*domain.Advertisement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	title := strings.ToLower(f.Title)
	description := strings.ToLower(f.Description)

	out := make([]*domain.Advertisement, 0)
	for _, a := range r.byID {
		if title != "" && !strings.Contains(strings.ToLower(a.Title), title) {
			continue
		}
		if description != "" && !strings.Contains(strings.ToLower(a.Description), description) {
			continue
		}
		if f.MinPrice != nil && a.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && a.Price > *f.MaxPrice {
			continue
		}
		if f.OwnerUserID != nil && a.OwnerUserID != *f.OwnerUserID {
			continue
		}
		out = append(out, cloneAd(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *AdvertisementRepository) Update(_ context.Context, id int64, mutate func(*domain.Advertisement) error) (*domain.Advertisement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAdvertisementNotFound
	}

	next := cloneAd(current)
	if err := mutate(next); err != nil {
		return nil, err
	}
	next.ID = current.ID
	next.OwnerUserID = current.OwnerUserID
	next.CreatedAt = current.CreatedAt

	r.byID[id] = next
	return cloneAd(next), nil
}

func (r *AdvertisementRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrAdvertisementNotFound
	}
	delete(r.byID, id)
	return nil
}
