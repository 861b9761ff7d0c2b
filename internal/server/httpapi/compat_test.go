package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/dmitrijs2005/signlink/internal/client/client"
	"github.com/dmitrijs2005/signlink/internal/client/models"
	"github.com/dmitrijs2005/signlink/internal/client/services"
	"github.com/dmitrijs2005/signlink/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The terminal client must be able to talk to this backend without adapters.
func TestClientCompatibility(t *testing.T) {
	srv := newTestServer(t, 10)
	ctx := context.Background()

	var token models.Token
	var rejected []models.Token
	c, err := client.New(srv.URL+"/api", client.Options{
		Tokens:         client.TokenSourceFunc(func(context.Context) (models.Token, error) { return token, nil }),
		OnUnauthorized: func(_ context.Context, t models.Token) { rejected = append(rejected, t) },
		Logger:         logging.Nop(),
	})
	require.NoError(t, err)

	resp, err := c.Register(ctx, models.SignupForm{Username: "ann", Email: "ann@example.com", Password: "GoodPass1"})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, "ann", resp.User.Username)

	_, err = c.Register(ctx, models.SignupForm{Username: "ann", Email: "ann2@example.com", Password: "GoodPass1"})
	require.ErrorIs(t, err, client.ErrRemoteValidation)
	assert.Contains(t, client.UserMessage(err), "A user with that username already exists.")

	_, err = c.Login(ctx, "ann@example.com", "wrong")
	require.ErrorIs(t, err, client.ErrRemoteValidation)
	assert.Empty(t, rejected)

	resp, err = c.Login(ctx, "ann@example.com", "GoodPass1")
	require.NoError(t, err)
	token = resp.Access

	var items []models.ChatItem
	require.NoError(t, c.Do(ctx, http.MethodGet, "/chats/recent/", nil, &items))
	assert.NotEmpty(t, items)

	var tr models.TranslationResponse
	require.NoError(t, c.Do(ctx, http.MethodPost, "/translate/", models.TranslationRequest{Text: "hi", Language: "English"}, &tr))
	assert.Equal(t, "HI", tr.Translation)

	require.NoError(t, c.Do(ctx, http.MethodPut, "/profile/", models.ProfileUpdate{Name: "Ann", Username: "ann"}, nil))

	video, err := services.NewResourceService(c).ProcessVideo(ctx, "hello.mp4", strings.NewReader("frames"))
	require.NoError(t, err)
	assert.Equal(t, &models.VideoResult{Filename: "hello.mp4", Size: 6, Status: "processed"}, video)

	token = "forged"
	err = c.Do(ctx, http.MethodGet, "/chats/pinned/", nil, &items)
	require.True(t, errors.Is(err, client.ErrUnauthorized))
	assert.Equal(t, []models.Token{"forged"}, rejected)
}
