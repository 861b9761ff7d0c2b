// Package authstate holds the single source of truth for whether the user is
// signed in. Every transition goes through Controller, which serializes them
// and publishes the new Status on an event bus once the credential store
// reflects it.
package authstate

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/asaskevich/EventBus"
	"github.com/dmitrijs2005/signlink/internal/client/client"
	"github.com/dmitrijs2005/signlink/internal/client/models"
	"github.com/dmitrijs2005/signlink/internal/logging"
	"golang.org/x/sync/singleflight"
)

// TopicStatus is the bus topic carrying Status values.
const TopicStatus = "auth:status"

// Status is the signed-in state of the client.
type Status int32

const (
	StatusUnresolved Status = iota
	StatusUnauthenticated
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unresolved"
	}
}

// Sessions is the part of the session service the controller drives.
type Sessions interface {
	Login(ctx context.Context, email, password string) (models.Token, error)
	Signup(ctx context.Context, form models.SignupForm) (models.Token, error)
	Logout(ctx context.Context) error
	Token(ctx context.Context) (models.Token, error)
	HasSession(ctx context.Context) (bool, error)
}

// Controller owns the auth status and performs every session transition.
type Controller struct {
	sessions Sessions
	bus      EventBus.Bus
	log      logging.Logger

	mu     sync.Mutex
	status atomic.Int32

	resolved    chan struct{}
	resolveOnce sync.Once

	invalidations singleflight.Group
}

// New returns a controller in the unresolved state. Call Start to resolve it.
func New(sessions Sessions, log logging.Logger) *Controller {
	if log == nil {
		log = logging.Nop()
	}
	return &Controller{
		sessions: sessions,
		bus:      EventBus.New(),
		log:      log,
		resolved: make(chan struct{}),
	}
}

// Status returns the current status without waiting for a transition in
// progress.
func (c *Controller) Status() Status {
	return Status(c.status.Load())
}

// Subscribe registers fn for every status change. Handlers run synchronously
// in transition order and must not call back into the controller.
func (c *Controller) Subscribe(fn func(Status)) error {
	return c.bus.Subscribe(TopicStatus, fn)
}

// Wait blocks until the startup check resolved the initial status.
func (c *Controller) Wait(ctx context.Context) error {
	select {
	case <-c.resolved:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Start resolves the initial status from the credential store. Only the first
// call has an effect. A store failure resolves to unauthenticated.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Status() != StatusUnresolved {
		return nil
	}

	has, err := c.sessions.HasSession(ctx)
	if err != nil {
		c.log.Warn(ctx, "session check failed, starting signed out", "error", err)
		c.setLocked(ctx, StatusUnauthenticated)
		return asStorageError("start", err)
	}

	if has {
		c.setLocked(ctx, StatusAuthenticated)
	} else {
		c.setLocked(ctx, StatusUnauthenticated)
	}
	return nil
}

// Login signs in and moves to authenticated on success.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.sessions.Login(ctx, email, password)
	return c.afterSignIn(ctx, err)
}

// Signup creates an account and signs in with the returned session.
func (c *Controller) Signup(ctx context.Context, form models.SignupForm) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.sessions.Signup(ctx, form)
	return c.afterSignIn(ctx, err)
}

func (c *Controller) afterSignIn(ctx context.Context, err error) error {
	if err == nil {
		c.setLocked(ctx, StatusAuthenticated)
		return nil
	}
	if client.KindOf(err) == client.KindStorage {
		c.setLocked(ctx, StatusUnauthenticated)
	}
	return err
}

// Logout always ends unauthenticated, even when the store delete failed.
func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.sessions.Logout(ctx)
	if err != nil {
		c.log.Warn(ctx, "logout could not clear the store", "error", err)
	}
	c.setLocked(ctx, StatusUnauthenticated)
	return err
}

// HandleUnauthorized invalidates the session after the backend rejected the
// token it was sent. Concurrent reports for the same token run once; a report
// for a token that is no longer stored is ignored.
func (c *Controller) HandleUnauthorized(ctx context.Context, rejected models.Token) {
	_, _, _ = c.invalidations.Do(string(rejected), func() (any, error) {
		c.mu.Lock()
		defer c.mu.Unlock()

		current, err := c.sessions.Token(ctx)
		switch {
		case err != nil:
			c.log.Warn(ctx, "token lookup failed during invalidation", "error", err)
		case current != rejected:
			c.log.Debug(ctx, "ignoring 401 for a superseded session")
			return nil, nil
		}

		if err := c.sessions.Logout(ctx); err != nil {
			c.log.Warn(ctx, "clearing rejected session failed", "error", err)
		}
		c.setLocked(ctx, StatusUnauthenticated)
		return nil, nil
	})
}

// setLocked must be called with mu held.
func (c *Controller) setLocked(ctx context.Context, s Status) {
	prev := Status(c.status.Swap(int32(s)))
	if s != StatusUnresolved {
		c.resolveOnce.Do(func() { close(c.resolved) })
	}
	if prev == s {
		return
	}

	c.log.Info(ctx, "auth status changed", "from", prev.String(), "to", s.String())
	c.bus.Publish(TopicStatus, s)
}

func asStorageError(op string, err error) error {
	var cerr *client.Error
	if errors.As(err, &cerr) && cerr.Kind == client.KindStorage {
		return err
	}
	return &client.Error{Op: op, Kind: client.KindStorage, Err: err}
}
