package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/signlink/internal/client/client"
	"github.com/dmitrijs2005/signlink/internal/client/models"
	"github.com/dmitrijs2005/signlink/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/signlink/internal/common"
	"github.com/dmitrijs2005/signlink/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get(common.AuthorizationHeaderName) != "Token tok" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next(w, r)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/login/", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "Secret123" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"No active account found with the given credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"user":{"id":3,"username":"ann","email":"ann@example.com"},"access":"tok","refresh":"r"}`))
	})
	mux.HandleFunc("/api/translate/", authed(func(w http.ResponseWriter, r *http.Request) {
		var req models.TranslationRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(models.TranslationResponse{Translation: strings.ToUpper(req.Text)})
	}))
	mux.HandleFunc("/api/process-video/", authed(func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		_ = json.NewEncoder(w).Encode(models.VideoResult{Filename: hdr.Filename, Size: int64(len(data)), Status: "processed"})
	}))
	mux.HandleFunc("/api/chats/pinned/", func(w http.ResponseWriter, r *http.Request) {
		// the session expires server-side before the chats load
		w.WriteHeader(http.StatusUnauthorized)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func runApp(t *testing.T, store credentials.Repository, input string) string {
	t.Helper()
	stubTerminal(t, false, "", nil)
	srv := fakeBackend(t)

	var out bytes.Buffer
	app, err := newApp(store, srv.URL+"/api", client.Options{Logger: logging.Nop()}, strings.NewReader(input), &out, logging.Nop())
	require.NoError(t, err)

	require.NoError(t, app.Run(context.Background()))
	require.NoError(t, app.Close())
	return out.String()
}

func TestApp_SessionLifecycle(t *testing.T) {
	store := credentials.NewMemoryRepository()

	out := runApp(t, store, strings.Join([]string{
		"login", "ann@example.com", "wrong",
		"login", "ann@example.com", "Secret123",
		"whoami",
		"translate hello",
		"chats",
		"whoami",
		"exit",
	}, "\n")+"\n")

	assert.Contains(t, out, "No active account found")
	assert.Contains(t, out, "Signed in.")
	assert.Contains(t, out, "ann <ann@example.com> (id 3)")
	assert.Contains(t, out, "Translated (English): HELLO")
	assert.Contains(t, out, "Your session has expired. Please log in again.")
	assert.Contains(t, out, `"whoami" is not available right now`)
	assert.NotContains(t, out, "tok", "the token must never be printed")

	v, err := store.Get(context.Background(), credentials.KeyAuthToken)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestApp_RestoresStoredSession(t *testing.T) {
	store := credentials.NewMemoryRepository()
	require.NoError(t, store.Put(context.Background(), credentials.KeyAuthToken, []byte("tok")))

	out := runApp(t, store, "translate hi\nlogout\nlogin\n\n\nexit\n")

	assert.Contains(t, out, "signlink (app)> ")
	assert.Contains(t, out, "Translated (English): HI")
	assert.Contains(t, out, "Signed out.")
	assert.Contains(t, out, "email is required")
}

func TestApp_SignupPasswordPolicy(t *testing.T) {
	out := runApp(t, credentials.NewMemoryRepository(),
		"signup\nann\nann@example.com\n\n\nalllowercase1\nexit\n")

	assert.Contains(t, out, "Password must contain at least one uppercase letter")
	assert.Contains(t, out, "signlink (auth)> ")
}

func TestApp_UploadVideo(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "greeting.mp4")
	require.NoError(t, os.WriteFile(video, []byte("not really a video"), 0o600))

	out := runApp(t, credentials.NewMemoryRepository(), strings.Join([]string{
		"upload " + video,
		"login", "ann@example.com", "Secret123",
		"upload",
		"upload " + filepath.Join(dir, "missing.mp4"),
		"upload " + dir,
		"upload " + video,
		"exit",
	}, "\n")+"\n")

	assert.Contains(t, out, `"upload" is not available right now`)
	assert.Contains(t, out, "Usage: upload <path>")
	assert.Contains(t, out, "cannot open "+filepath.Join(dir, "missing.mp4"))
	assert.Contains(t, out, dir+" is a directory")
	assert.Contains(t, out, "Uploading greeting.mp4 (0.00 MB)...")
	assert.Contains(t, out, "Video processed: greeting.mp4 (processed)")
}
