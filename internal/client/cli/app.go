package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/signlink/internal/client/authstate"
	"github.com/dmitrijs2005/signlink/internal/client/client"
	"github.com/dmitrijs2005/signlink/internal/client/config"
	"github.com/dmitrijs2005/signlink/internal/client/models"
	"github.com/dmitrijs2005/signlink/internal/client/navigation"
	"github.com/dmitrijs2005/signlink/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/signlink/internal/client/services"
	"github.com/dmitrijs2005/signlink/internal/logging"
)

type App struct {
	ctrl      *authstate.Controller
	auth      services.AuthService
	resources services.ResourceService
	reader    *bufio.Reader
	out       io.Writer
	log       logging.Logger
	closer    io.Closer

	language string
}

// NewApp wires the credential store, backend client, services and auth
// controller described by c. Close releases the store.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	store, closer, err := credentials.Open(ctx, c.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}

	app, err := newApp(store, c.BaseURL, client.Options{Timeout: c.RequestTimeout, Logger: log}, os.Stdin, os.Stdout, log)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	app.closer = closer
	return app, nil
}

// newApp builds the object graph. The transport needs the session service as
// its token source and the controller as its 401 handler, while both of those
// need the transport, so the two hooks are closures bound after construction.
func newApp(store credentials.Repository, baseURL string, opts client.Options, in io.Reader, out io.Writer, log logging.Logger) (*App, error) {
	var (
		auth services.AuthService
		ctrl *authstate.Controller
	)

	opts.Tokens = client.TokenSourceFunc(func(ctx context.Context) (models.Token, error) {
		return auth.Token(ctx)
	})
	opts.OnUnauthorized = func(ctx context.Context, rejected models.Token) {
		ctrl.HandleUnauthorized(ctx, rejected)
	}

	hc, err := client.New(baseURL, opts)
	if err != nil {
		return nil, err
	}

	auth = services.NewAuthService(hc, store, log)
	ctrl = authstate.New(auth, log)

	return &App{
		ctrl:      ctrl,
		auth:      auth,
		resources: services.NewResourceService(hc),
		reader:    bufio.NewReader(in),
		out:       out,
		log:       log,
		language:  services.DefaultLanguage,
	}, nil
}

// Run resolves the stored session, then serves the REPL until the user
// exits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	if err := a.ctrl.Subscribe(a.onStatus); err != nil {
		return fmt.Errorf("subscribe to auth status: %w", err)
	}

	fmt.Fprintln(a.out, "Welcome to signlink (type 'help' for commands)")

	if err := a.ctrl.Start(ctx); err != nil {
		fmt.Fprintln(a.out, client.UserMessage(err))
	}
	if err := a.ctrl.Wait(ctx); err != nil {
		return err
	}

	runREPL(ctx, a, a.reader, a.out)
	return nil
}

func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// Subtree reports the screen set for the current auth status.
func (a *App) Subtree() navigation.Subtree {
	return navigation.Select(a.ctrl.Status())
}

// onStatus runs inside the controller's transition and only prints.
func (a *App) onStatus(s authstate.Status) {
	switch s {
	case authstate.StatusAuthenticated:
		fmt.Fprintln(a.out, "Signed in.")
	case authstate.StatusUnauthenticated:
		fmt.Fprintln(a.out, "Signed out. Use 'login' or 'signup' to continue.")
	}
}
