package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/signlink/internal/client/models"
)

// Client is the backend contract used by the session and resource services.
type Client interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, form models.SignupForm) (*models.AuthResponse, error)
	Do(ctx context.Context, method, path string, payload, out any) error
	DoBody(ctx context.Context, method, path, contentType string, body io.Reader, out any) error
}

// TokenSource yields the current session token. An empty token means no
// session.
type TokenSource interface {
	Token(ctx context.Context) (models.Token, error)
}

// UnauthorizedHandler is notified when the backend rejects the token that was
// attached to a request.
type UnauthorizedHandler func(ctx context.Context, rejected models.Token)
