package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/adsboard/marketplace-api/internal/core/domain"
	"github.com/adsboard/marketplace-api/internal/core/ports"
)

const principalKey = "principal"

// Auth resolves the Authorization header into a principal and stores it in
// the context. Any resolution failure ends the request with that error.
func Auth(sessions ports.SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := sessions.Resolve(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return err
			}
			c.Set(principalKey, p)
			return next(c)
		}
	}
}

// OptionalAuth attaches a principal when the Authorization header resolves
// to one. Missing, malformed, expired or orphaned credentials leave the
// request anonymous; only storage failures end it.
func OptionalAuth(sessions ports.SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}
			p, err := sessions.Resolve(c.Request().Context(), header)
			if err != nil {
				if domain.KindOf(err) == domain.KindInternal {
					return err
				}
				return next(c)
			}
			c.Set(principalKey, p)
			return next(c)
		}
	}
}

// PrincipalFrom returns the principal stored by Auth, if any.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}
