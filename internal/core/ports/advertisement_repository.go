package ports

import (
	"context"

	"github.com/adsboard/marketplace-api/internal/core/domain"
)

// AdvertisementFilter carries the optional search criteria for ads.
// Nil pointers and empty strings mean "no filter".
type AdvertisementFilter struct {
	Title       string   // case-insensitive substring of title
	Description string   // case-insensitive substring of description
	MinPrice    *float64 // price >= MinPrice
	MaxPrice    *float64 // price <= MaxPrice
	OwnerUserID *int64
}

// AdvertisementRepository defines persistence operations for advertisements.
type AdvertisementRepository interface {
	// Create assigns the next advertisement id and stores ad.
	Create(ctx context.Context, ad *domain.Advertisement) (*domain.Advertisement, error)
	FindByID(ctx context.Context, id int64) (*domain.Advertisement, error)
	// Search returns matching ads ordered by id ascending.
	Search(ctx context.Context, filter AdvertisementFilter) ([]*domain.Advertisement, error)
	Update(ctx context.Context, id int64, mutate func(*domain.Advertisement) error) (*domain.Advertisement, error)
	Delete(ctx context.Context, id int64) error
}
