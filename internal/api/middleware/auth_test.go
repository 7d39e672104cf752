package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/adsboard/marketplace-api/internal/core/domain"
)

type stubResolver struct {
	principal domain.Principal
	err       error
	header    string
	calls     int
}

func (s *stubResolver) Resolve(_ context.Context, header string) (domain.Principal, error) {
	s.calls++
	s.header = header
	return s.principal, s.err
}

func newContext(authorization string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestAuthMiddleware_ValidSession(t *testing.T) {
	resolver := &stubResolver{principal: domain.Principal{ID: 4, Role: domain.RoleAdmin}}
	c := newContext("Bearer abc")

	called := false
	handler := Auth(resolver)(func(c echo.Context) error {
		called = true
		p, ok := PrincipalFrom(c)
		if !ok || p.ID != 4 || p.Role != domain.RoleAdmin {
			t.Fatalf("principal not set: %+v", p)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if resolver.header != "Bearer abc" {
		t.Fatalf("resolver got header %q", resolver.header)
	}
}

func TestAuthMiddleware_ResolverErrors(t *testing.T) {
	for _, want := range []error{
		domain.ErrMissingCredentials,
		domain.ErrMalformedToken,
		domain.ErrExpiredToken,
		domain.ErrUnknownSubject,
	} {
		resolver := &stubResolver{err: want}
		handler := Auth(resolver)(func(c echo.Context) error {
			t.Fatalf("next must not be called on %v", want)
			return nil
		})

		if err := handler(newContext("Bearer abc")); !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	}
}

func TestOptionalAuth_Anonymous(t *testing.T) {
	resolver := &stubResolver{err: domain.ErrMalformedToken}
	c := newContext("")

	handler := OptionalAuth(resolver)(func(c echo.Context) error {
		if _, ok := PrincipalFrom(c); ok {
			t.Fatalf("anonymous request should carry no principal")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if resolver.calls != 0 {
		t.Fatalf("resolver should not run without a header")
	}
}

func TestOptionalAuth_UnusableCredentialsStayAnonymous(t *testing.T) {
	for _, cause := range []error{
		domain.ErrMissingCredentials,
		domain.ErrMalformedToken,
		domain.ErrExpiredToken,
		domain.ErrUnknownSubject,
	} {
		resolver := &stubResolver{err: cause}
		called := false
		handler := OptionalAuth(resolver)(func(c echo.Context) error {
			called = true
			if _, ok := PrincipalFrom(c); ok {
				t.Fatalf("%v: request should carry no principal", cause)
			}
			return c.NoContent(http.StatusOK)
		})

		if err := handler(newContext("Bearer stale")); err != nil {
			t.Fatalf("%v: handler error: %v", cause, err)
		}
		if !called || resolver.calls != 1 {
			t.Fatalf("%v: expected one resolve and a call to next", cause)
		}
	}
}

func TestOptionalAuth_ValidSession(t *testing.T) {
	resolver := &stubResolver{principal: domain.Principal{ID: 9, Role: domain.RoleAdmin}}
	handler := OptionalAuth(resolver)(func(c echo.Context) error {
		p, ok := PrincipalFrom(c)
		if !ok || p.ID != 9 {
			t.Fatalf("principal not set: %+v", p)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(newContext("Bearer abc")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestOptionalAuth_StorageFailurePropagates(t *testing.T) {
	boom := errors.New("connection refused")
	resolver := &stubResolver{err: boom}
	handler := OptionalAuth(resolver)(func(c echo.Context) error {
		t.Fatalf("next must not be called")
		return nil
	})

	if err := handler(newContext("Bearer abc")); !errors.Is(err, boom) {
		t.Fatalf("expected storage error, got %v", err)
	}
}
