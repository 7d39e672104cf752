package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/adsboard/marketplace-api/internal/api/middleware"
	"github.com/adsboard/marketplace-api/internal/core/domain"
	"github.com/adsboard/marketplace-api/internal/core/ports"
)

type fixedResolver struct {
	principal domain.Principal
}

func (r fixedResolver) Resolve(context.Context, string) (domain.Principal, error) {
	return r.principal, nil
}

// asPrincipal runs h behind the Auth middleware so the context carries p.
func asPrincipal(h echo.HandlerFunc, p domain.Principal) echo.HandlerFunc {
	return middleware.Auth(fixedResolver{principal: p})(h)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newRequest builds a context for method and target. A non-nil body is sent as JSON.
func newRequest(e *echo.Echo, method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req.Header.Set(echo.HeaderAuthorization, "Bearer test")
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return v
}

func assertErrorIs(t *testing.T, err, want error) {
	t.Helper()
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

type stubUserService struct {
	registerFn func(ctx context.Context, caller *domain.Principal, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (*ports.LoginResult, error)
	getFn      func(ctx context.Context, id int64) (*domain.User, error)
	listFn     func(ctx context.Context, caller domain.Principal) ([]*domain.User, error)
	updateFn   func(ctx context.Context, caller domain.Principal, id int64, in ports.UpdateUserInput) (*domain.User, error)
	deleteFn   func(ctx context.Context, caller domain.Principal, id int64) error
}

func (s *stubUserService) Register(ctx context.Context, caller *domain.Principal, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, caller, in)
}

func (s *stubUserService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubUserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) List(ctx context.Context, caller domain.Principal) ([]*domain.User, error) {
	return s.listFn(ctx, caller)
}

func (s *stubUserService) Update(ctx context.Context, caller domain.Principal, id int64, in ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, caller, id, in)
}

func (s *stubUserService) Delete(ctx context.Context, caller domain.Principal, id int64) error {
	return s.deleteFn(ctx, caller, id)
}

type stubAdvertisementService struct {
	createFn func(ctx context.Context, caller domain.Principal, in ports.CreateAdvertisementInput) (*domain.Advertisement, error)
	getFn    func(ctx context.Context, id int64) (*domain.Advertisement, error)
	updateFn func(ctx context.Context, caller domain.Principal, id int64, in ports.UpdateAdvertisementInput) (*domain.Advertisement, error)
	deleteFn func(ctx context.Context, caller domain.Principal, id int64) error
	searchFn func(ctx context.Context, filter ports.AdvertisementFilter) ([]*domain.Advertisement, error)
}

func (s *stubAdvertisementService) Create(ctx context.Context, caller domain.Principal, in ports.CreateAdvertisementInput) (*domain.Advertisement, error) {
	return s.createFn(ctx, caller, in)
}

func (s *stubAdvertisementService) Get(ctx context.Context, id int64) (*domain.Advertisement, error) {
	return s.getFn(ctx, id)
}

func (s *stubAdvertisementService) Update(ctx context.Context, caller domain.Principal, id int64, in ports.UpdateAdvertisementInput) (*domain.Advertisement, error) {
	return s.updateFn(ctx, caller, id, in)
}

func (s *stubAdvertisementService) Delete(ctx context.Context, caller domain.Principal, id int64) error {
	return s.deleteFn(ctx, caller, id)
}

func (s *stubAdvertisementService) Search(ctx context.Context, filter ports.AdvertisementFilter) ([]*domain.Advertisement, error) {
	return s.searchFn(ctx, filter)
}
