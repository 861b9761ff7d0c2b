package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/signlink/internal/logging"
	"github.com/dmitrijs2005/signlink/internal/server"
	"github.com/dmitrijs2005/signlink/internal/server/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	app := server.NewApp(cfg, logger)
	if err := app.Run(context.Background()); err != nil {
		logger.Error(context.Background(), "server stopped", "error", err)
		os.Exit(1)
	}
}
