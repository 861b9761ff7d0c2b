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
//	-a string   backend base url, e.g. http://127.0.0.1:8000/api
//	-t int      request timeout in seconds
//	-s string   credential store backend: sqlite, redis or memory
//	-p string   sqlite store path
//
// Flags owned by other loaders (-c/-config) are filtered out first.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-s", "-p"})

	fs := flag.NewFlagSet("signlink", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "backend base url")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StoreBackend, "s", cfg.StoreBackend, "credential store backend")
	fs.StringVar(&cfg.StorePath, "p", cfg.StorePath, "sqlite store path")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("flags: %w", err)
	}
	if *timeout <= 0 {
		return fmt.Errorf("flags: request timeout must be positive, got %d", *timeout)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return nil
}
