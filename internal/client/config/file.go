package config

import (
	"github.com/dmitrijs2005/signlink/internal/configx"
	"github.com/dmitrijs2005/signlink/internal/timex"
)

// fileConfig is the on-disk shape. Durations go through timex.Duration so
// they can be written as "15s" or as integer nanoseconds.
type fileConfig struct {
	BaseURL        string         `json:"base_url" yaml:"base_url"`
	RequestTimeout timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	StoreBackend   string         `json:"store_backend" yaml:"store_backend"`
	StorePath      string         `json:"store_path" yaml:"store_path"`
	RedisAddr      string         `json:"redis_addr" yaml:"redis_addr"`
	RedisPrefix    string         `json:"redis_prefix" yaml:"redis_prefix"`
	LogLevel       string         `json:"log_level" yaml:"log_level"`
	LogFormat      string         `json:"log_format" yaml:"log_format"`
}

// parseFile overlays cfg with the fields present in path. An empty path is a
// no-op.
func parseFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	var fc fileConfig
	if err := configx.DecodeFile(path, &fc); err != nil {
		return err
	}

	setString(&cfg.BaseURL, fc.BaseURL)
	setString(&cfg.StoreBackend, fc.StoreBackend)
	setString(&cfg.StorePath, fc.StorePath)
	setString(&cfg.RedisAddr, fc.RedisAddr)
	setString(&cfg.RedisPrefix, fc.RedisPrefix)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
