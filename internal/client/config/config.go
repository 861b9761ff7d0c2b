package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/signlink/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/signlink/internal/flagx"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every environment variable, e.g. SIGNLINK_BASE_URL.
const EnvPrefix = "SIGNLINK"

// Config holds runtime settings for the signlink terminal client.
type Config struct {
	BaseURL        string        `envconfig:"BASE_URL"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT"`
	StoreBackend   string        `envconfig:"STORE_BACKEND"`
	StorePath      string        `envconfig:"STORE_PATH"`
	RedisAddr      string        `envconfig:"REDIS_ADDR"`
	RedisPrefix    string        `envconfig:"REDIS_PREFIX"`
	LogLevel       string        `envconfig:"LOG_LEVEL"`
	LogFormat      string        `envconfig:"LOG_FORMAT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8000/api"
	c.RequestTimeout = 15 * time.Second
	c.StoreBackend = credentials.BackendSQLite
	c.StorePath = "session.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPrefix = "signlink:"
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// StoreOptions translates the store settings for credentials.Open.
func (c *Config) StoreOptions() credentials.Options {
	return credentials.Options{
		Backend:     c.StoreBackend,
		SQLitePath:  c.StorePath,
		RedisAddr:   c.RedisAddr,
		RedisPrefix: c.RedisPrefix,
	}
}

// LoadConfig reads the process arguments and environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load applies defaults, then the environment, then the config file named by
// -c/-config, then flags. Later sources take precedence.
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
	return cfg, nil
}
