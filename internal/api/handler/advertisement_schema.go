package handler

import (
	"github.com/adsboard/marketplace-api/internal/core/domain"
	"github.com/adsboard/marketplace-api/internal/core/ports"
)

type createAdvertisementRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
}

type updateAdvertisementRequest struct {
	Title       domain.Optional[string]  `json:"title" swaggertype:"string"`
	Description domain.Optional[string]  `json:"description" swaggertype:"string"`
	Price       domain.Optional[float64] `json:"price" swaggertype:"number"`
}

// searchAdvertisementsRequest is bound from the query string. Pointer fields
// stay nil when their parameter is absent.
type searchAdvertisementsRequest struct {
	Title       string   `query:"title"`
	Description string   `query:"description"`
	MinPrice    *float64 `query:"min_price"`
	MaxPrice    *float64 `query:"max_price"`
	AuthorID    *int64   `query:"author_id"`
}

func (r searchAdvertisementsRequest) filter() ports.AdvertisementFilter {
	return ports.AdvertisementFilter{
		Title:       r.Title,
		Description: r.Description,
		MinPrice:    r.MinPrice,
		MaxPrice:    r.MaxPrice,
		OwnerUserID: r.AuthorID,
	}
}
