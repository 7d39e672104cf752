package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/adsboard/marketplace-api/internal/core/domain"
	"github.com/adsboard/marketplace-api/internal/core/ports"
	"github.com/adsboard/marketplace-api/internal/infrastructure/db/memory"
)

func newAdvertisementService() *AdvertisementService {
	repo := memory.NewAdvertisementRepository(memory.NewSequence())
	return NewAdvertisementService(repo, func() time.Time { return fixedNow }, zerolog.Nop())
}

var (
	owner    = domain.Principal{ID: 1, Role: domain.RoleUser}
	stranger = domain.Principal{ID: 2, Role: domain.RoleUser}
	admin    = domain.Principal{ID: 3, Role: domain.RoleAdmin}
)

func createAd(t *testing.T, svc *AdvertisementService, caller domain.Principal, title string, price float64) *domain.Advertisement {
	t.Helper()
	ad, err := svc.Create(context.Background(), caller, ports.CreateAdvertisementInput{Title: title, Description: title + " for sale", Price: price})
	if err != nil {
		t.Fatalf("create %q: %v", title, err)
	}
	return ad
}

func TestAdvertisementService_Create(t *testing.T) {
	svc := newAdvertisementService()

	ad := createAd(t, svc, owner, "Bike", 120)
	if ad.ID != 1 || ad.OwnerUserID != owner.ID {
		t.Fatalf("unexpected ad: %+v", ad)
	}
	if !ad.CreatedAt.Equal(fixedNow) {
		t.Fatalf("unexpected created_at: %v", ad.CreatedAt)
	}
}

func TestAdvertisementService_Create_Validation(t *testing.T) {
	svc := newAdvertisementService()
	ctx := context.Background()

	cases := map[string]ports.CreateAdvertisementInput{
		"blank title":       {Title: "  ", Description: "d", Price: 1},
		"blank description": {Title: "t", Description: "", Price: 1},
		"negative price":    {Title: "t", Description: "d", Price: -0.5},
		"nan price":         {Title: "t", Description: "d", Price: math.NaN()},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Create(ctx, owner, in); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestAdvertisementService_Update_Ownership(t *testing.T) {
	svc := newAdvertisementService()
	ad := createAd(t, svc, owner, "Bike", 120)
	ctx := context.Background()

	if _, err := svc.Update(ctx, stranger, ad.ID, ports.UpdateAdvertisementInput{Price: domain.Some(1.0)}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Update(ctx, owner, 42, ports.UpdateAdvertisementInput{}); !errors.Is(err, domain.ErrAdvertisementNotFound) {
		t.Fatalf("expected ErrAdvertisementNotFound, got %v", err)
	}

	updated, err := svc.Update(ctx, owner, ad.ID, ports.UpdateAdvertisementInput{Price: domain.Some(99.5)})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Price != 99.5 || updated.Title != "Bike" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	updated, err = svc.Update(ctx, admin, ad.ID, ports.UpdateAdvertisementInput{Title: domain.Some("Road bike")})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Title != "Road bike" || updated.OwnerUserID != owner.ID {
		t.Fatalf("admin update must keep the owner: %+v", updated)
	}
}

func TestAdvertisementService_Update_Validation(t *testing.T) {
	svc := newAdvertisementService()
	ad := createAd(t, svc, owner, "Bike", 120)

	_, err := svc.Update(context.Background(), owner, ad.ID, ports.UpdateAdvertisementInput{Price: domain.Some(-1.0)})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	got, _ := svc.Get(context.Background(), ad.ID)
	if got.Price != 120 {
		t.Fatalf("rejected update changed price to %v", got.Price)
	}
}

func TestAdvertisementService_Delete(t *testing.T) {
	svc := newAdvertisementService()
	first := createAd(t, svc, owner, "Bike", 120)
	second := createAd(t, svc, owner, "Lamp", 15)
	ctx := context.Background()

	if err := svc.Delete(ctx, stranger, first.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(ctx, owner, first.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := svc.Delete(ctx, admin, second.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, err := svc.Get(ctx, first.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAdvertisementService_Search(t *testing.T) {
	svc := newAdvertisementService()
	createAd(t, svc, owner, "Bike", 120)
	createAd(t, svc, stranger, "Bike helmet", 30)
	createAd(t, svc, owner, "Lamp", 15)
	ctx := context.Background()

	lo, hi := 20.0, 200.0
	ads, err := svc.Search(ctx, ports.AdvertisementFilter{Title: "bike", MinPrice: &lo, MaxPrice: &hi})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(ads) != 2 || ads[0].ID != 1 || ads[1].ID != 2 {
		t.Fatalf("unexpected search result: %+v", ads)
	}

	if _, err := svc.Search(ctx, ports.AdvertisementFilter{MinPrice: &hi, MaxPrice: &lo}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for inverted range, got %v", err)
	}
}
