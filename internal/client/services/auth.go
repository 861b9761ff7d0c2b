// Package services contains the client application services: the session
// service that owns login, sign-up and logout, and the resource service for
// authenticated backend calls.
package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/signlink/internal/client/client"
	"github.com/dmitrijs2005/signlink/internal/client/models"
	"github.com/dmitrijs2005/signlink/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/signlink/internal/logging"
	"github.com/go-playground/validator/v10"
)

// AuthService owns the session lifecycle.
//
// Contract:
//   - Login/Signup: validate input locally, call the backend, persist the
//     token and then the profile.
//   - Logout: remove token and profile from the store; no network call.
//   - Token/HasSession/Profile: read the store on every call.
//
// Every error returned is a *client.Error.
type AuthService interface {
	Login(ctx context.Context, email, password string) (models.Token, error)
	Signup(ctx context.Context, form models.SignupForm) (models.Token, error)
	Logout(ctx context.Context) error
	Token(ctx context.Context) (models.Token, error)
	HasSession(ctx context.Context) (bool, error)
	Profile(ctx context.Context) (*models.Profile, error)
}

type authService struct {
	client   client.Client
	store    credentials.Repository
	validate *validator.Validate
	log      logging.Logger
}

func NewAuthService(c client.Client, store credentials.Repository, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{client: c, store: store, validate: newValidator(), log: log}
}

type loginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (a *authService) Login(ctx context.Context, email, password string) (models.Token, error) {
	const op = "login"

	if err := checkInput(a.validate, op, loginInput{Email: email, Password: password}); err != nil {
		return "", err
	}

	resp, err := a.client.Login(ctx, email, password)
	if err != nil {
		a.log.Info(ctx, "login rejected", "kind", client.KindOf(err).String())
		return "", classify(op, err)
	}
	return a.persist(ctx, op, resp)
}

func (a *authService) Signup(ctx context.Context, form models.SignupForm) (models.Token, error) {
	const op = "signup"

	if err := checkInput(a.validate, op, form); err != nil {
		return "", err
	}
	if rule, ok := CheckPassword(form.Password); !ok {
		return "", &client.Error{
			Op:    op,
			Kind:  client.KindValidation,
			Field: "password",
			Rule:  string(rule),
			Err:   errors.New(rule.Message()),
		}
	}

	resp, err := a.client.Register(ctx, form)
	if err != nil {
		a.log.Info(ctx, "signup rejected", "kind", client.KindOf(err).String())
		return "", classify(op, err)
	}
	return a.persist(ctx, op, resp)
}

// persist writes the token first. A failed token write rolls back both keys so
// no half session survives; a failed profile write only costs the cached
// profile.
func (a *authService) persist(ctx context.Context, op string, resp *models.AuthResponse) (models.Token, error) {
	if resp == nil || resp.Access == "" {
		return "", &client.Error{Op: op, Kind: client.KindUnknown, Err: errors.New("response carried no access token")}
	}

	if err := a.store.Put(ctx, credentials.KeyAuthToken, []byte(resp.Access)); err != nil {
		if cerr := a.store.Clear(ctx, credentials.KeyAuthToken, credentials.KeyUserData); cerr != nil {
			a.log.Warn(ctx, "rollback of partial session failed", "error", cerr)
		}
		return "", &client.Error{Op: op, Kind: client.KindStorage, Err: err}
	}

	if resp.User == nil {
		if err := a.store.Delete(ctx, credentials.KeyUserData); err != nil {
			a.log.Warn(ctx, "stale profile not removed", "error", err)
		}
		return resp.Access, nil
	}

	data, err := json.Marshal(resp.User)
	if err == nil {
		err = a.store.Put(ctx, credentials.KeyUserData, data)
	}
	if err != nil {
		a.log.Warn(ctx, "profile not cached", "error", err)
	}

	a.log.Info(ctx, "session started", "op", op, "user_id", resp.User.ID)
	return resp.Access, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.store.Clear(ctx, credentials.KeyAuthToken, credentials.KeyUserData); err != nil {
		return &client.Error{Op: "logout", Kind: client.KindStorage, Err: err}
	}
	a.log.Info(ctx, "session cleared")
	return nil
}

// Token implements client.TokenSource.
func (a *authService) Token(ctx context.Context) (models.Token, error) {
	v, err := a.store.Get(ctx, credentials.KeyAuthToken)
	if err != nil {
		return "", &client.Error{Op: "token", Kind: client.KindStorage, Err: err}
	}
	return models.Token(v), nil
}

func (a *authService) HasSession(ctx context.Context) (bool, error) {
	tok, err := a.Token(ctx)
	if err != nil {
		return false, err
	}
	return tok != "", nil
}

// Profile returns the cached profile, or nil when none is stored or it cannot
// be decoded.
func (a *authService) Profile(ctx context.Context) (*models.Profile, error) {
	v, err := a.store.Get(ctx, credentials.KeyUserData)
	if err != nil {
		return nil, &client.Error{Op: "profile", Kind: client.KindStorage, Err: err}
	}
	if v == nil {
		return nil, nil
	}

	var p models.Profile
	if err := json.Unmarshal(v, &p); err != nil {
		a.log.Warn(ctx, "cached profile is unreadable", "error", err)
		return nil, nil
	}
	return &p, nil
}
