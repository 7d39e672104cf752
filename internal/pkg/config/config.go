package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

const (
	DriverMemory = "memory"
	DriverMongo  = "mongo"
	DriverRedis  = "redis"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth    AuthConfig
	Storage StorageConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type AuthConfig struct {
	JWTSecret           string `env:"JWT_SECRET, required"`
	JWTAlgorithm        string `env:"JWT_ALGORITHM, default=HS256"`
	BcryptCost          int    `env:"BCRYPT_COST, default=10"`
	RestrictAdminSignup bool   `env:"AUTH_RESTRICT_ADMIN_SIGNUP, default=false"`

	// AdminUsername and AdminPassword seed an admin account at startup.
	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// StorageConfig selects the repository and id sequence backends.
type StorageConfig struct {
	Driver         string `env:"STORAGE_DRIVER,  default=memory"`
	SequenceDriver string `env:"SEQUENCE_DRIVER, default=memory"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=marketplace"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Validate rejects inconsistent driver and credential combinations.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverMongo:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	switch c.Storage.SequenceDriver {
	case DriverMemory, DriverRedis:
	case DriverMongo:
		if c.Storage.Driver != DriverMongo {
			return errors.New("SEQUENCE_DRIVER=mongo requires STORAGE_DRIVER=mongo")
		}
	default:
		return fmt.Errorf("unknown SEQUENCE_DRIVER %q", c.Storage.SequenceDriver)
	}

	// Ids from a process-local counter would collide across restarts against a
	// persistent store.
	if c.Storage.Driver == DriverMongo && c.Storage.SequenceDriver == DriverMemory {
		return errors.New("STORAGE_DRIVER=mongo needs a persistent SEQUENCE_DRIVER (mongo or redis)")
	}

	if (c.Auth.AdminUsername == "") != (c.Auth.AdminPassword == "") {
		return errors.New("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}
	return nil
}

// UsesMongo reports whether any backend needs a MongoDB connection.
func (c *Config) UsesMongo() bool {
	return c.Storage.Driver == DriverMongo || c.Storage.SequenceDriver == DriverMongo
}

// UsesRedis reports whether any backend needs a Redis connection.
func (c *Config) UsesRedis() bool {
	return c.Storage.SequenceDriver == DriverRedis
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
