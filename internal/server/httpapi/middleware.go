package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/signlink/internal/common"
	"github.com/dmitrijs2005/signlink/internal/logging"
	"github.com/dmitrijs2005/signlink/internal/server/users"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

type ctxKey int

const userKey ctxKey = iota

// Authenticator resolves an access token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*users.User, error)
}

// UserFromContext returns the user attached by RequireToken.
func UserFromContext(ctx context.Context) (*users.User, bool) {
	u, ok := ctx.Value(userKey).(*users.User)
	return u, ok
}

// requestLogger logs one line per request with status, size and duration.
func requestLogger(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.Info(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// RequireToken rejects requests without a valid "Authorization: Token <jwt>"
// header.
func RequireToken(auth Authenticator, log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(common.AuthorizationHeaderName)
			if header == "" {
				Detail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || scheme != common.AuthorizationScheme || strings.TrimSpace(token) == "" {
				Detail(w, http.StatusUnauthorized, "Invalid token header.")
				return
			}

			user, err := auth.Authenticate(r.Context(), strings.TrimSpace(token))
			if err != nil {
				switch {
				case errors.Is(err, common.ErrTokenExpired):
					Detail(w, http.StatusUnauthorized, "Token expired.")
				case errors.Is(err, common.ErrInvalidToken):
					Detail(w, http.StatusUnauthorized, "Invalid token.")
				default:
					log.Error(r.Context(), "authenticate", "error", err, "request_id", middleware.GetReqID(r.Context()))
					Detail(w, http.StatusInternalServerError, "Internal server error.")
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
		})
	}
}

func loginLimiter(perMinute int) func(http.Handler) http.Handler {
	return httprate.Limit(perMinute, time.Minute,
		httprate.WithKeyFuncs(rateLimitKey),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			Detail(w, http.StatusTooManyRequests, "Request was throttled.")
		}),
	)
}

func rateLimitKey(r *http.Request) (string, error) {
	key, err := httprate.KeyByIP(r)
	if err != nil {
		return "", err
	}
	return "login:" + key, nil
}
