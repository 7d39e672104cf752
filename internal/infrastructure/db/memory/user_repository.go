package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/adsboard/marketplace-api/internal/core/domain"
	"github.com/adsboard/marketplace-api/internal/core/ports"
)

// UserRepository implements ports.UserRepository in memory.
type UserRepository struct {
	mu         sync.RWMutex
	seq        ports.Sequence
	byID       map[int64]*domain.User
	byUsername map[string]int64
}

// NewUserRepository returns an empty repository allocating ids from seq.
func NewUserRepository(seq ports.Sequence) *UserRepository {
	return &UserRepository{
		seq:        seq,
		byID:       make(map[int64]*domain.User),
		byUsername: make(map[string]int64),
	}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byUsername[user.Username]; taken {
		return nil, domain.ErrUserExists
	}

	id, err := r.seq.Next(ctx)
	if err != nil {
		return nil, fmt.Errorf("allocate user id: %w", err)
	}

	stored := cloneUser(user)
	stored.ID = id
	r.byID[id] = stored
	r.byUsername[stored.Username] = id
	return cloneUser(stored), nil
}

func (r *UserRepository) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(r.byID[id]), nil
}

func (r *UserRepository) List(context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *UserRepository) Update(_ context.Context, id int64, mutate func(*domain.User) error) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	next := cloneUser(current)
	if err := mutate(next); err != nil {
		return nil, err
	}
	next.ID = current.ID

	if next.Username != current.Username {
		if _, taken := r.byUsername[next.Username]; taken {
			return nil, domain.ErrUserExists
		}
		delete(r.byUsername, current.Username)
		r.byUsername[next.Username] = id
	}

	r.byID[id] = next
	return cloneUser(next), nil
}

func (r *UserRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byUsername, u.Username)
	delete(r.byID, id)
	return nil
}
