package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/signlink/internal/client/cli"
	"github.com/dmitrijs2005/signlink/internal/client/config"
	"github.com/dmitrijs2005/signlink/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "client stopped", "error", err)
	}
}
