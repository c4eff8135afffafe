package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

const EnvironmentDevelopment = "development"

// UpstreamCfg describes connection to the upstream customer/consent service
type UpstreamCfg struct {
	BaseURL string        `env:"UPSTREAM_BASE_URL" envDefault:"https://owafrdb867.execute-api.eu-west-1.amazonaws.com/sbx"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`
}

// RedisCfg describes optional customer cache, cache is disabled when Addr is empty
type RedisCfg struct {
	Addr     string `env:"REDIS_ADDR" envDefault:""`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// Config is full application configuration
type Config struct {
	Port            int           `env:"PORT" envDefault:"3001"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"production"`
	FallbackEnabled bool          `env:"FALLBACK_ENABLED" envDefault:"true"`
	MockDBFile      string        `env:"MOCK_DB_FILE" envDefault:"mock-api/db.json"`
	StaticDir       string        `env:"STATIC_DIR" envDefault:"build"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	UpstreamCfg     UpstreamCfg
	RedisCfg        RedisCfg
}

// IsDevelopment reports whether diagnostic details may be exposed in responses
func (c Config) IsDevelopment() bool {
	return c.Environment == EnvironmentDevelopment
}

// Build parses configuration from environment variables
func Build() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse environment variables - %w", err)
	}
	return cfg, nil
}
