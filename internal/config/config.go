package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const devBaseURL = "http://localhost:8000"

type Config struct {
	// Env selects the default API base URL. NODE_ENV is honoured as a
	// fallback for parity with the web bundle's environment contract.
	Env     string `env:"ENV"`
	NodeEnv string `env:"NODE_ENV"`

	// APIURL overrides the base URL regardless of environment.
	APIURL string `env:"API_URL"`
	// ProdAPIURL is the base URL used when the environment is production
	// and no explicit override is set.
	ProdAPIURL string `env:"PROD_API_URL, default=https://docue.herokuapp.com"`

	LogLevel string `env:"LOG_LEVEL, default=info"`

	// TokenFile is the path of the persisted-token file. Empty selects the
	// per-user default location.
	TokenFile string `env:"TOKEN_FILE"`

	Stub StubConfig
}

// StubConfig configures the bundled stub server (cmd/docue-stub).
type StubConfig struct {
	Port          string        `env:"PORT,           default=8000"`
	JWTSecret     string        `env:"JWT_SECRET,     default=docue-dev-secret"`
	TokenTTL      time.Duration `env:"TOKEN_TTL,      default=24h"`
	AdminEmail    string        `env:"ADMIN_EMAIL,    default=admin@docue.local"`
	AdminPassword string        `env:"ADMIN_PASSWORD, default=admin123"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Environment returns the effective environment name: ENV wins over
// NODE_ENV; both empty means development.
func (c *Config) Environment() string {
	if c.Env != "" {
		return c.Env
	}
	if c.NodeEnv != "" {
		return c.NodeEnv
	}
	return "development"
}

// Resolve returns the API base URL. Precedence is explicit: a non-empty
// API_URL always wins; otherwise production uses ProdAPIURL and every other
// environment uses the local development server.
func (c *Config) Resolve() string {
	if c.APIURL != "" {
		return c.APIURL
	}
	if c.Environment() == "production" {
		return c.ProdAPIURL
	}
	return devBaseURL
}
