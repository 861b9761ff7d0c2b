package authstate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/signlink/internal/client/client"
	"github.com/dmitrijs2005/signlink/internal/client/models"
	"github.com/dmitrijs2005/signlink/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/signlink/internal/client/services"
	"github.com/dmitrijs2005/signlink/internal/common"
	"github.com/dmitrijs2005/signlink/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wire assembles the client stack the way cmd/client does.
func wire(t *testing.T, backend http.Handler) (*Controller, services.ResourceService, credentials.Repository) {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	store := credentials.NewMemoryRepository()
	var (
		auth services.AuthService
		ctrl *Controller
	)
	hc, err := client.New(srv.URL+"/api", client.Options{
		Tokens: client.TokenSourceFunc(func(ctx context.Context) (models.Token, error) { return auth.Token(ctx) }),
		OnUnauthorized: func(ctx context.Context, rejected models.Token) {
			ctrl.HandleUnauthorized(ctx, rejected)
		},
		Logger: logging.Nop(),
	})
	require.NoError(t, err)

	auth = services.NewAuthService(hc, store, logging.Nop())
	ctrl = New(auth, logging.Nop())
	return ctrl, services.NewResourceService(hc), store
}

func TestSessionFlow_RejectedTokenSignsOut(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/login/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user":{"id":1,"username":"ann","email":"a@x.io"},"access":"tok","refresh":"r"}`))
	})
	mux.HandleFunc("/api/chats/recent/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Token tok", r.Header.Get(common.AuthorizationHeaderName))
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Token expired."}`))
	})

	ctrl, res, store := wire(t, mux)
	ctx := context.Background()

	require.NoError(t, ctrl.Start(ctx))
	require.Equal(t, StatusUnauthenticated, ctrl.Status())

	require.NoError(t, ctrl.Login(ctx, "a@x.io", "Secret123"))
	require.Equal(t, StatusAuthenticated, ctrl.Status())

	_, err := res.RecentChats(ctx)
	require.ErrorIs(t, err, client.ErrUnauthorized)

	assert.Equal(t, StatusUnauthenticated, ctrl.Status())
	v, err := store.Get(ctx, credentials.KeyAuthToken)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSessionFlow_RestoresSessionOnStart(t *testing.T) {
	ctrl, _, store := wire(t, http.NotFoundHandler())
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, credentials.KeyAuthToken, []byte("persisted")))

	require.NoError(t, ctrl.Start(ctx))
	assert.Equal(t, StatusAuthenticated, ctrl.Status())
}
