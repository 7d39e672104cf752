package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/adsboard/marketplace-api/internal/core/domain"
	"github.com/adsboard/marketplace-api/internal/core/ports"
)

type AdvertisementService struct {
	repo   ports.AdvertisementRepository
	now    func() time.Time
	logger zerolog.Logger
}

// NewAdvertisementService wires the service. A nil now uses time.Now.
func NewAdvertisementService(repo ports.AdvertisementRepository, now func() time.Time, logger zerolog.Logger) *AdvertisementService {
	if now == nil {
		now = time.Now
	}
	return &AdvertisementService{repo: repo, now: now, logger: logger}
}

// Create stores a new ad owned by caller.
func (s *AdvertisementService) Create(ctx context.Context, caller domain.Principal, in ports.CreateAdvertisementInput) (*domain.Advertisement, error) {
	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}
	if err := validatePrice(in.Price); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	ad, err := s.repo.Create(ctx, &domain.Advertisement{
		OwnerUserID: caller.ID,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("owner_id", caller.ID).Msg("failed to create advertisement")
		return nil, err
	}

	s.logger.Info().Int64("advertisement_id", ad.ID).Int64("owner_id", ad.OwnerUserID).Msg("advertisement created")
	return ad, nil
}

func (s *AdvertisementService) Get(ctx context.Context, id int64) (*domain.Advertisement, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial update after the ownership check. The owner is
// never reassigned.
func (s *AdvertisementService) Update(ctx context.Context, caller domain.Principal, id int64, in ports.UpdateAdvertisementInput) (*domain.Advertisement, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanActOnResource(caller, current.OwnerUserID) {
		return nil, fmt.Errorf("update advertisement %d: %w", id, domain.ErrForbidden)
	}

	title, titleSet := in.Title.Get()
	if titleSet {
		if err := validateTitle(title); err != nil {
			return nil, err
		}
	}
	description, descriptionSet := in.Description.Get()
	if descriptionSet {
		if err := validateDescription(description); err != nil {
			return nil, err
		}
	}
	price, priceSet := in.Price.Get()
	if priceSet {
		if err := validatePrice(price); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	updated, err := s.repo.Update(ctx, id, func(ad *domain.Advertisement) error {
		if titleSet {
			ad.Title = title
		}
		if descriptionSet {
			ad.Description = description
		}
		if priceSet {
			ad.Price = price
		}
		ad.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("advertisement_id", id).Int64("actor_id", caller.ID).Msg("advertisement updated")
	return updated, nil
}

// Delete removes an ad. Allowed for its owner and admins.
func (s *AdvertisementService) Delete(ctx context.Context, caller domain.Principal, id int64) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanActOnResource(caller, current.OwnerUserID) {
		return fmt.Errorf("delete advertisement %d: %w", id, domain.ErrForbidden)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("advertisement_id", id).Int64("actor_id", caller.ID).Msg("advertisement deleted")
	return nil
}

func (s *AdvertisementService) Search(ctx context.Context, filter ports.AdvertisementFilter) ([]*domain.Advertisement, error) {
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return nil, domain.InvalidInputf("min_price must not exceed max_price")
	}
	return s.repo.Search(ctx, filter)
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return domain.InvalidInputf("title is required")
	}
	return nil
}

func validateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return domain.InvalidInputf("description is required")
	}
	return nil
}

func validatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return domain.InvalidInputf("price must be a non-negative number")
	}
	return nil
}
