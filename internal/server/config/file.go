package config

import (
	"github.com/dmitrijs2005/signlink/internal/configx"
	"github.com/dmitrijs2005/signlink/internal/timex"
)

type fileConfig struct {
	Addr            string         `json:"addr" yaml:"addr"`
	SecretKey       string         `json:"secret_key" yaml:"secret_key"`
	AccessTokenTTL  timex.Duration `json:"access_token_ttl" yaml:"access_token_ttl"`
	RefreshTokenTTL timex.Duration `json:"refresh_token_ttl" yaml:"refresh_token_ttl"`
	LoginRateLimit  int            `json:"login_rate_limit" yaml:"login_rate_limit"`
	LogLevel        string         `json:"log_level" yaml:"log_level"`
	LogFormat       string         `json:"log_format" yaml:"log_format"`
}

// parseFile overlays cfg with the non-zero fields found in path.
func parseFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	var fc fileConfig
	if err := configx.DecodeFile(path, &fc); err != nil {
		return err
	}

	if fc.Addr != "" {
		cfg.Addr = fc.Addr
	}
	if fc.SecretKey != "" {
		cfg.SecretKey = fc.SecretKey
	}
	if fc.AccessTokenTTL.Duration > 0 {
		cfg.AccessTokenTTL = fc.AccessTokenTTL.Duration
	}
	if fc.RefreshTokenTTL.Duration > 0 {
		cfg.RefreshTokenTTL = fc.RefreshTokenTTL.Duration
	}
	if fc.LoginRateLimit > 0 {
		cfg.LoginRateLimit = fc.LoginRateLimit
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		cfg.LogFormat = fc.LogFormat
	}
	return nil
}
