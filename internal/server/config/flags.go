package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/signlink/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   listen address
//	-s string   token signing secret
//	-t int      access token lifetime in minutes
//	-r int      refresh token lifetime in minutes
//	-l int      login attempts per minute per client address
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-t", "-r", "-l"})

	fs := flag.NewFlagSet("signlink-devserver", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "listen address")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "token signing secret")
	access := fs.Int("t", int(cfg.AccessTokenTTL.Minutes()), "access token lifetime (in minutes)")
	refresh := fs.Int("r", int(cfg.RefreshTokenTTL.Minutes()), "refresh token lifetime (in minutes)")
	fs.IntVar(&cfg.LoginRateLimit, "l", cfg.LoginRateLimit, "login attempts per minute")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("flags: %w", err)
	}
	if *access <= 0 || *refresh <= 0 {
		return fmt.Errorf("flags: token lifetimes must be positive")
	}
	if cfg.LoginRateLimit <= 0 {
		return fmt.Errorf("flags: login rate limit must be positive, got %d", cfg.LoginRateLimit)
	}

	cfg.AccessTokenTTL = time.Duration(*access) * time.Minute
	cfg.RefreshTokenTTL = time.Duration(*refresh) * time.Minute
	return nil
}
