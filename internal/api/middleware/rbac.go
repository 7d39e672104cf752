package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/adsboard/marketplace-api/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after Auth; a request
// without a principal is rejected as unauthenticated.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if !ok {
				return domain.ErrMissingCredentials
			}
			if _, ok := allowed[p.Role]; !ok {
				return fmt.Errorf("role %s: %w", p.Role, domain.ErrForbidden)
			}
			return next(c)
		}
	}
}
