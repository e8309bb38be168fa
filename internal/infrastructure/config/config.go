package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	PublicURL string `env:"PUBLIC_URL, default=http://localhost:8080"`

	Auth     AuthConfig
	Postgres PostgresConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Storage  StorageConfig

	TabTTL         time.Duration `env:"TAB_TTL,         default=12h"`
	RealtimeShards int           `env:"REALTIME_SHARDS, default=8"`
}

type AuthConfig struct {
	JWTSecret       string        `env:"JWT_SECRET"`
	TokenTTL        time.Duration `env:"TOKEN_TTL,         default=24h"`
	BcryptCost      int           `env:"BCRYPT_COST,       default=10"`
	SessionTTL      time.Duration `env:"SESSION_TTL,       default=24h"`
	LoginRetryDelay time.Duration `env:"LOGIN_RETRY_DELAY, default=250ms"`
	BootstrapAdmins []string      `env:"BOOTSTRAP_ADMIN_EMAILS"`
	StealthKey      string        `env:"SUPERADMIN_STEALTH_KEY"`
}

type PostgresConfig struct {
	URL      string `env:"DATABASE_URL, default=postgres://localhost:5432/portal?sslmode=disable"`
	MaxConns int32  `env:"DB_MAX_CONNS, default=8"`
}

type MongoConfig struct {
	URI         string `env:"MONGO_URI,      default=mongodb://localhost:27017"`
	Database    string `env:"MONGO_DB,       default=project_portal"`
	MaxPoolSize uint64 `env:"MONGO_MAX_POOL, default=20"`
}

type RedisConfig struct {
	Addr       string        `env:"REDIS_ADDR,     default=localhost:6379"`
	DB         int           `env:"REDIS_DB,       default=0"`
	Password   string        `env:"REDIS_PASSWORD"`
	PoolSize   int           `env:"REDIS_POOL_SIZE, default=10"`
	DurableTTL time.Duration `env:"DURABLE_TTL,    default=720h"`
}

type StorageConfig struct {
	Root          string   `env:"STORAGE_ROOT, default=./data/storage"`
	SigningSecret string   `env:"STORAGE_SIGNING_SECRET"`
	PublicBuckets []string `env:"STORAGE_PUBLIC_BUCKETS"`
}

// IsProduction reports whether ENV selects production.
func (c *Config) IsProduction() bool { return c.Env == "production" }

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// validate requires real secrets in production. Elsewhere missing secrets
// fall back to development values.
func (c *Config) validate() error {
	if c.IsProduction() {
		if c.Auth.JWTSecret == "" {
			return errors.New("JWT_SECRET is required in production")
		}
		if c.Storage.SigningSecret == "" {
			return errors.New("STORAGE_SIGNING_SECRET is required in production")
		}
		return nil
	}
	if c.Auth.JWTSecret == "" {
		c.Auth.JWTSecret = "dev-jwt-secret"
	}
	if c.Storage.SigningSecret == "" {
		c.Storage.SigningSecret = c.Auth.JWTSecret
	}
	return nil
}
