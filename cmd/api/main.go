// @title                       Marketplace API
// @version                     1.0
// @description                 Classified advertisements marketplace with JWT authentication and ownership-based authorization.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/adsboard/marketplace-api/internal/api"
	"github.com/adsboard/marketplace-api/internal/api/handler"
	"github.com/adsboard/marketplace-api/internal/api/metrics"
	"github.com/adsboard/marketplace-api/internal/core/auth"
	"github.com/adsboard/marketplace-api/internal/core/ports"
	"github.com/adsboard/marketplace-api/internal/core/service"
	"github.com/adsboard/marketplace-api/internal/infrastructure/db/memory"
	mongostore "github.com/adsboard/marketplace-api/internal/infrastructure/db/mongo"
	redisstore "github.com/adsboard/marketplace-api/internal/infrastructure/db/redis"
	"github.com/adsboard/marketplace-api/internal/pkg/config"
	"github.com/adsboard/marketplace-api/pkg/logger"
)

const (
	shutdownTimeout = 10 * time.Second
	serviceName     = "marketplace-api"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "marketplace-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
	})

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.close()

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAlgorithm, logger.With("tokens"))
	if err != nil {
		return err
	}

	users := service.NewUserService(
		store.users,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		tokens,
		service.UserServiceOptions{RestrictAdminSignup: cfg.Auth.RestrictAdminSignup},
		logger.With("users"),
	)
	ads := service.NewAdvertisementService(store.ads, nil, logger.With("advertisements"))

	if cfg.Auth.AdminUsername != "" {
		created, err := users.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword)
		if err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
		if created {
			metrics.UsersRegisteredTotal.WithLabelValues("admin").Inc()
			log.Info().Str("username", cfg.Auth.AdminUsername).Msg("bootstrap admin created")
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	e, err := api.NewRouter(api.Dependencies{
		Users:          users,
		Advertisements: ads,
		Sessions:       auth.NewSessionResolver(tokens, store.users, nil),
		Health:         store.checks,
		Registry:       registry,
		Logger:         logger.With("http"),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("storage", cfg.Storage.Driver).Str("sequence", cfg.Storage.SequenceDriver).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// storage holds the repositories selected by configuration together with
// their readiness checks and teardown.
type storage struct {
	users   ports.UserRepository
	ads     ports.AdvertisementRepository
	checks  []handler.DependencyCheck
	closers []func()
}

func (s *storage) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	s := &storage{}

	var db *mongo.Database
	if cfg.UsesMongo() {
		client, mdb, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		db = mdb
		s.closers = append(s.closers, func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect")
			}
		})
		s.checks = append(s.checks, handler.DependencyCheck{
			Name: "mongodb",
			Ping: func(ctx context.Context) error { return mongostore.Ping(ctx, db) },
		})
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			s.close()
			return nil, err
		}
	}

	var rdb *goredis.Client
	if cfg.UsesRedis() {
		client, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			s.close()
			return nil, err
		}
		rdb = client
		s.closers = append(s.closers, func() {
			if err := client.Close(); err != nil {
				log.Warn().Err(err).Msg("redis close")
			}
		})
		s.checks = append(s.checks, handler.DependencyCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
		})
	}

	sequence := func(name string) ports.Sequence {
		switch cfg.Storage.SequenceDriver {
		case config.DriverMongo:
			return mongostore.NewSequence(db, name)
		case config.DriverRedis:
			return redisstore.NewSequence(rdb, name)
		default:
			return memory.NewSequence()
		}
	}

	switch cfg.Storage.Driver {
	case config.DriverMongo:
		s.users = mongostore.NewUserRepository(db, sequence("users"))
		s.ads = mongostore.NewAdvertisementRepository(db, sequence("advertisements"))
	default:
		s.users = memory.NewUserRepository(sequence("users"))
		s.ads = memory.NewAdvertisementRepository(sequence("advertisements"))
	}
	return s, nil
}
