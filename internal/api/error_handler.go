package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/adsboard/marketplace-api/internal/api/handler"
	"github.com/adsboard/marketplace-api/internal/api/metrics"
	"github.com/adsboard/marketplace-api/internal/core/domain"
)

var kindStatus = map[domain.ErrorKind]int{
	domain.KindMissingCredentials: http.StatusUnauthorized,
	domain.KindMalformedToken:     http.StatusUnauthorized,
	domain.KindExpiredToken:       http.StatusUnauthorized,
	domain.KindUnknownSubject:     http.StatusUnauthorized,
	domain.KindInvalidCredentials: http.StatusUnauthorized,
	domain.KindForbidden:          http.StatusForbidden,
	domain.KindNotFound:           http.StatusNotFound,
	domain.KindInvalidInput:       http.StatusBadRequest,
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain error kinds to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", "kind": "<kind>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		metrics.RequestErrorsTotal.WithLabelValues(resp.Kind).Inc()

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, handler.ErrorResponse) {
	// Echo's own errors (router 404/405, body limit, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, handler.ErrorResponse{Error: fmt.Sprintf("%v", he.Message), Kind: string(kindForStatus(he.Code))}
	}

	kind := domain.KindOf(err)
	if code, ok := kindStatus[kind]; ok {
		return code, handler.ErrorResponse{Error: err.Error(), Kind: string(kind)}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, handler.ErrorResponse{Error: "internal server error", Kind: string(domain.KindInternal)}
}

func kindForStatus(code int) domain.ErrorKind {
	switch code {
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType:
		return domain.KindInvalidInput
	case http.StatusUnauthorized:
		return domain.KindMissingCredentials
	case http.StatusForbidden:
		return domain.KindForbidden
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return domain.KindNotFound
	default:
		return domain.KindInternal
	}
}
