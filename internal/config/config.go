package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultJWTSecret is used when JWT_SECRET is not set. It is public and must
// never be relied on outside local development.
const DefaultJWTSecret = "change-me-in-production"

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort      string        `env:"SERVER_PORT" envDefault:"8080"`
	MySQLDSN        string        `env:"MYSQL_DSN" envDefault:"user:password@tcp(localhost:3306)/app?charset=utf8mb4&parseTime=True&loc=Local"`
	RedisAddr       string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`
	RedisPass       string        `env:"REDIS_PASSWORD"`
	JWTSecret       string        `env:"JWT_SECRET" envDefault:"change-me-in-production"`
	TokenTTL        time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
	UserCacheTTL    time.Duration `env:"USER_CACHE_TTL" envDefault:"5m"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ResetDB         bool          `env:"RESET_DB" envDefault:"false"`
	SwaggerHost     string        `env:"SWAGGER_HOST"`
}

// Load builds Config from environment with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	return cfg, nil
}

// UsesDefaultSecret reports whether tokens are signed with the built-in secret.
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}
