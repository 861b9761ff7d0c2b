package server

import (
	"context"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/signlink/internal/logging"
	"github.com/dmitrijs2005/signlink/internal/server/config"
	"github.com/dmitrijs2005/signlink/internal/server/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestApp_ServeAndShutdown(t *testing.T) {
	var cfg config.Config
	cfg.LoadDefaults()

	app := NewApp(&cfg, logging.Nop(), users.WithHashCost(bcrypt.MinCost))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/api/users/register/"
	body := `{"username":"ann","email":"ann@example.com","password":"GoodPass1","password2":"GoodPass1"}`
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	_, err = http.Post(url, "application/json", strings.NewReader(body))
	assert.Error(t, err)
}

func TestApp_RunBadAddress(t *testing.T) {
	var cfg config.Config
	cfg.LoadDefaults()
	cfg.Addr = "not-an-address"

	err := NewApp(&cfg, logging.Nop()).Run(context.Background())
	require.Error(t, err)
}
