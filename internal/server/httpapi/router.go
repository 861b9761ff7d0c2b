package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/signlink/internal/common"
	"github.com/dmitrijs2005/signlink/internal/logging"
	"github.com/dmitrijs2005/signlink/internal/server/users"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// UserService is the part of users.Service the handlers need.
type UserService interface {
	Authenticator
	Register(ctx context.Context, in users.RegisterInput) (*users.User, *users.TokenPair, error)
	Login(ctx context.Context, email, password string) (*users.User, *users.TokenPair, error)
	UpdateProfile(ctx context.Context, userID int64, username string, p users.Profile) (*users.User, error)
	Search(ctx context.Context, query string, limit int) ([]*users.User, error)
}

type Options struct {
	// LoginRateLimit is the number of login attempts allowed per client
	// address per minute.
	LoginRateLimit int
}

type handler struct {
	users    UserService
	validate *validator.Validate
	log      logging.Logger
}

// NewRouter mounts every endpoint under /api.
func NewRouter(svc UserService, opts Options, log logging.Logger) http.Handler {
	h := &handler{users: svc, validate: newValidator(), log: log}

	limit := opts.LoginRateLimit
	if limit <= 0 {
		limit = 10
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(echoRequestID)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		Detail(w, http.StatusNotFound, "Not found.")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		Detail(w, http.StatusMethodNotAllowed, "Method \""+r.Method+"\" not allowed.")
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/users/register/", h.register)
		r.With(loginLimiter(limit)).Post("/users/login/", h.login)

		r.Group(func(r chi.Router) {
			r.Use(RequireToken(svc, log))
			r.Get("/profile/", h.getProfile)
			r.Put("/profile/", h.updateProfile)
			r.Post("/translate/", h.translate)
			r.Post("/process-video/", h.processVideo)
			r.Get("/chats/pinned/", h.pinnedChats)
			r.Get("/chats/recent/", h.recentChats)
			r.Get("/search/", h.search)
		})
	})

	return r
}

func echoRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			w.Header().Set(common.RequestIDHeaderName, id)
		}
		next.ServeHTTP(w, r)
	})
}
