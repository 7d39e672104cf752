package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/adsboard/marketplace-api/internal/api/handler"
	"github.com/adsboard/marketplace-api/internal/api/metrics"
	"github.com/adsboard/marketplace-api/internal/api/middleware"
	"github.com/adsboard/marketplace-api/internal/core/domain"
	"github.com/adsboard/marketplace-api/internal/core/ports"

	_ "github.com/adsboard/marketplace-api/docs"
)

const metricsSubsystem = "http"

// Dependencies groups everything the router needs to build handlers.
type Dependencies struct {
	Users          ports.UserService
	Advertisements ports.AdvertisementService
	Sessions       ports.SessionResolver
	Health         []handler.DependencyCheck
	// Registry receives the HTTP and domain metrics. It is served on /metrics.
	Registry *prometheus.Registry
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	if err := metrics.Register(deps.Registry); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "marketplace",
		Subsystem:  metricsSubsystem,
		Registerer: deps.Registry,
	}))

	authMiddleware := middleware.Auth(deps.Sessions)
	optionalAuth := middleware.OptionalAuth(deps.Sessions)

	authHandler := handler.NewAuthHandler(deps.Users)
	userHandler := handler.NewUserHandler(deps.Users)
	adHandler := handler.NewAdvertisementHandler(deps.Advertisements)
	healthHandler := handler.NewHealthHandler(deps.Health...)

	// --- Auth routes ---
	e.POST("/login", authHandler.Login)

	// --- User routes ---
	e.POST("/user", userHandler.Register, optionalAuth)
	e.GET("/user", userHandler.List, authMiddleware, middleware.RBAC(domain.RoleAdmin))
	e.GET("/user/:id", userHandler.Get)
	e.PATCH("/user/:id", userHandler.Update, authMiddleware)
	e.DELETE("/user/:id", userHandler.Delete, authMiddleware)

	// --- Advertisement routes ---
	e.GET("/advertisement", adHandler.Search)
	e.POST("/advertisement", adHandler.Create, authMiddleware)
	e.GET("/advertisement/:id", adHandler.Get)
	e.PATCH("/advertisement/:id", adHandler.Update, authMiddleware)
	e.DELETE("/advertisement/:id", adHandler.Delete, authMiddleware)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)         // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Registry}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
