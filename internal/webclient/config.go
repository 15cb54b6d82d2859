// Package webclient serves the minimal query front end: one form, one
// backend call per submission, and the answer with its citations.
package webclient

import (
	"fmt"

	"github.com/caarlos0/env/v9"
)

// Config is the serve command's environment configuration.
type Config struct {
	// ListenAddr is the host:port the web server binds.
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8090"`

	// APIEndpoint is the base URL of the query API, without a trailing
	// slash. Required.
	APIEndpoint string `env:"API_ENDPOINT"`

	// DefaultK is the number of passages requested per query.
	DefaultK int `env:"DEFAULT_K" envDefault:"6"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing web config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects configurations the server cannot run with.
func (c Config) Validate() error {
	if c.APIEndpoint == "" {
		return fmt.Errorf("API_ENDPOINT is required")
	}
	if c.DefaultK <= 0 {
		return fmt.Errorf("DEFAULT_K must be positive, got %d", c.DefaultK)
	}
	return nil
}
