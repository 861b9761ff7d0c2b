// Package config handles configuration for the development backend,
// including defaults, environment, a JSON or YAML overlay, and
// command-line flags.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/signlink/internal/flagx"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every environment variable, e.g. SIGNLINK_SERVER_ADDR.
const EnvPrefix = "SIGNLINK_SERVER"

// Config holds runtime settings for the development backend.
//
// SecretKey signs the HS256 session tokens. The default is for local use only.
type Config struct {
	Addr            string        `envconfig:"ADDR"`
	SecretKey       string        `envconfig:"SECRET_KEY"`
	AccessTokenTTL  time.Duration `envconfig:"ACCESS_TOKEN_TTL"`
	RefreshTokenTTL time.Duration `envconfig:"REFRESH_TOKEN_TTL"`
	LoginRateLimit  int           `envconfig:"LOGIN_RATE_LIMIT"`
	LogLevel        string        `envconfig:"LOG_LEVEL"`
	LogFormat       string        `envconfig:"LOG_FORMAT"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.Addr = ":8000"
	c.SecretKey = "secretKey"
	c.AccessTokenTTL = 5 * time.Minute
	c.RefreshTokenTTL = 24 * time.Hour
	c.LoginRateLimit = 10
	c.LogLevel = "info"
	c.LogFormat = "json"
}

// LoadConfig reads the process arguments and environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load applies defaults, then the environment, then the config file named by
// -c/-config, then flags.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseFile(cfg, flagx.ConfigFileFlag(args)); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("secret key must not be empty")
	}
	return cfg, nil
}
