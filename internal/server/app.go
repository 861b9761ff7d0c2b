// Package server wires the development backend: in-memory users, JWT
// sessions and the REST API, served until the process is signalled.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/signlink/internal/logging"
	"github.com/dmitrijs2005/signlink/internal/server/config"
	"github.com/dmitrijs2005/signlink/internal/server/httpapi"
	"github.com/dmitrijs2005/signlink/internal/server/users"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	userService *users.Service
	handler     http.Handler
}

func NewApp(c *config.Config, logger logging.Logger, opts ...users.Option) *App {
	us := users.NewService(users.NewMemoryRepository(), c, opts...)
	h := httpapi.NewRouter(us, httpapi.Options{LoginRateLimit: c.LoginRateLimit}, logger)

	return &App{config: c, logger: logger, userService: us, handler: h}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run listens on the configured address until ctx is cancelled or the
// process receives SIGINT, SIGTERM or SIGQUIT.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	ln, err := net.Listen("tcp", app.config.Addr)
	if err != nil {
		return err
	}
	return app.Serve(ctx, ln)
}

// Serve handles requests on ln and shuts down gracefully once ctx is done.
func (app *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           app.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Starting app...", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
