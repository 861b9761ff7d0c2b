package services

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/dmitrijs2005/signlink/internal/client/models"
	"github.com/dmitrijs2005/signlink/internal/client/repositories/credentials"
)

// fakeClient implements client.Client and records every call.
type fakeClient struct {
	mu sync.Mutex

	LoginResp *models.AuthResponse
	LoginErr  error

	RegisterResp *models.AuthResponse
	RegisterErr  error

	DoErr  error
	DoFill func(out any)

	Calls        int
	LastEmail    string
	LastPassword string
	LastForm     models.SignupForm
	LastMethod   string
	LastPath     string
	LastPayload  any

	LastContentType string
	LastBody        []byte
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	f.LastEmail, f.LastPassword = email, password
	return f.LoginResp, f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, form models.SignupForm) (*models.AuthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	f.LastForm = form
	return f.RegisterResp, f.RegisterErr
}

func (f *fakeClient) Do(ctx context.Context, method, path string, payload, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	f.LastMethod, f.LastPath, f.LastPayload = method, path, payload
	if f.DoErr != nil {
		return f.DoErr
	}
	if f.DoFill != nil && out != nil {
		f.DoFill(out)
	}
	return nil
}

func (f *fakeClient) DoBody(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	f.LastMethod, f.LastPath, f.LastContentType = method, path, contentType
	if body != nil {
		b, err := io.ReadAll(body)
		if err != nil {
			return err
		}
		f.LastBody = b
	}
	if f.DoErr != nil {
		return f.DoErr
	}
	if f.DoFill != nil && out != nil {
		f.DoFill(out)
	}
	return nil
}

// failingStore wraps a repository and fails selected operations.
type failingStore struct {
	credentials.Repository
	putErr   map[string]error
	getErr   error
	clearErr error
}

func (s *failingStore) Put(ctx context.Context, key string, value []byte) error {
	if err := s.putErr[key]; err != nil {
		return err
	}
	return s.Repository.Put(ctx, key, value)
}

func (s *failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.Repository.Get(ctx, key)
}

func (s *failingStore) Clear(ctx context.Context, keys ...string) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	return s.Repository.Clear(ctx, keys...)
}

var errDisk = errors.New("disk full")

func okResponse(token string) *models.AuthResponse {
	return &models.AuthResponse{
		User:    &models.Profile{ID: 42, Username: "ann", Email: "ann@example.com"},
		Access:  models.Token(token),
		Refresh: "refresh-ignored",
	}
}
