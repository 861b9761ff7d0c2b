package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/signlink/internal/client/models"
	"github.com/dmitrijs2005/signlink/internal/common"
	"github.com/dmitrijs2005/signlink/internal/logging"
	"github.com/google/uuid"
)

// TokenSourceFunc adapts a function to TokenSource.
type TokenSourceFunc func(ctx context.Context) (models.Token, error)

func (f TokenSourceFunc) Token(ctx context.Context) (models.Token, error) {
	return f(ctx)
}

// sent records what the transport put on the wire for one call.
type sent struct {
	requestID string
	token     models.Token
}

type sentKey struct{}

func withSent(ctx context.Context) (context.Context, *sent) {
	s := &sent{}
	return context.WithValue(ctx, sentKey{}, s), s
}

// tokenTransport decorates every outgoing request with a request id and, when
// a TokenSource is configured, the current session token. The token is looked
// up per request so a logout or re-login is picked up immediately.
type tokenTransport struct {
	base   http.RoundTripper
	tokens TokenSource
	log    logging.Logger
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	r := req.Clone(ctx)
	requestID := uuid.NewString()
	r.Header.Set(common.RequestIDHeaderName, requestID)

	var token models.Token
	if t.tokens != nil {
		tok, err := t.tokens.Token(ctx)
		if err != nil {
			t.log.Warn(ctx, "token lookup failed, sending request unauthenticated",
				"request_id", requestID, "error", err)
		} else {
			token = tok
		}
		if token != "" {
			r.Header.Set(common.AuthorizationHeaderName, common.AuthorizationScheme+" "+string(token))
		}
	}

	if s, ok := ctx.Value(sentKey{}).(*sent); ok {
		s.requestID, s.token = requestID, token
	}

	return t.base.RoundTrip(r)
}
