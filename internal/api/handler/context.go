package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/adsboard/marketplace-api/internal/api/middleware"
	"github.com/adsboard/marketplace-api/internal/core/domain"
)

// ctxPrincipal returns the principal injected by the Auth middleware. Its
// absence means the route was registered without Auth.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return domain.Principal{}, domain.ErrMissingCredentials
	}
	return p, nil
}

// parseID reads a positive integer path parameter.
func parseID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.InvalidInputf("%s must be a positive integer", name)
	}
	return id, nil
}

// bindAndValidate decodes the body into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.InvalidInputf("invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}
