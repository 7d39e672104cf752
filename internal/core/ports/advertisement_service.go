package ports

import (
	"context"

	"github.com/adsboard/marketplace-api/internal/core/domain"
)

// CreateAdvertisementInput carries the fields of a new ad. The owner is
// always the calling principal.
type CreateAdvertisementInput struct {
	Title       string
	Description string
	Price       float64
}

// UpdateAdvertisementInput lists the ad fields a PATCH may change.
type UpdateAdvertisementInput struct {
	Title       domain.Optional[string]
	Description domain.Optional[string]
	Price       domain.Optional[float64]
}

// AdvertisementService defines use-case operations for ads.
type AdvertisementService interface {
	Create(ctx context.Context, caller domain.Principal, input CreateAdvertisementInput) (*domain.Advertisement, error)
	Get(ctx context.Context, id int64) (*domain.Advertisement, error)
	Update(ctx context.Context, caller domain.Principal, id int64, input UpdateAdvertisementInput) (*domain.Advertisement, error)
	Delete(ctx context.Context, caller domain.Principal, id int64) error
	Search(ctx context.Context, filter AdvertisementFilter) ([]*domain.Advertisement, error)
}
