package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/signlink/internal/common"
	"github.com/dmitrijs2005/signlink/internal/server/users"
	"github.com/go-chi/chi/v5/middleware"
)

type registerRequest struct {
	Username  string `json:"username" validate:"required,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Password2 string `json:"password2" validate:"required,eqfield=Password"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type authResponse struct {
	User    userResponse `json:"user"`
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
}

func newAuthResponse(u *users.User, t *users.TokenPair) authResponse {
	return authResponse{
		User:    userResponse{ID: u.ID, Username: u.Username, Email: u.Email},
		Access:  t.AccessToken,
		Refresh: t.RefreshToken,
	}
}

var conflictMessages = map[string]string{
	"username": "A user with that username already exists.",
	"email":    "A user with that email already exists.",
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := DecodeJSON(r, &req); err != nil {
		badJSON(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		FieldErrors(w, fieldErrors(err))
		return
	}

	user, tokens, err := h.users.Register(r.Context(), users.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if h.writeConflict(w, err) {
			return
		}
		h.internalError(w, r, "register", err)
		return
	}

	h.log.Info(r.Context(), "user registered", "user_id", user.ID)
	JSON(w, http.StatusCreated, newAuthResponse(user, tokens))
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := DecodeJSON(r, &req); err != nil {
		badJSON(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		FieldErrors(w, fieldErrors(err))
		return
	}

	user, tokens, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			Detail(w, http.StatusUnauthorized, "No active account found with the given credentials")
			return
		}
		h.internalError(w, r, "login", err)
		return
	}

	h.log.Info(r.Context(), "user logged in", "user_id", user.ID)
	JSON(w, http.StatusOK, newAuthResponse(user, tokens))
}

// writeConflict answers unique-field collisions with a field error.
func (h *handler) writeConflict(w http.ResponseWriter, err error) bool {
	var ce *users.ConflictError
	if !errors.Is(err, common.ErrAlreadyExists) || !errors.As(err, &ce) {
		return false
	}
	msg, ok := conflictMessages[ce.Field]
	if !ok {
		msg = ce.Error()
	}
	FieldErrors(w, map[string][]string{ce.Field: {msg}})
	return true
}

func (h *handler) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.log.Error(r.Context(), op+" failed", "error", err, "request_id", middleware.GetReqID(r.Context()))
	Detail(w, http.StatusInternalServerError, "Internal server error.")
}
