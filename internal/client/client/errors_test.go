package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesKindSentinel(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &Error{Op: "login", Kind: KindStorage, Err: errors.New("disk full")})

	assert.ErrorIs(t, err, ErrStorage)
	assert.NotErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, KindStorage, KindOf(err))
	assert.Contains(t, err.Error(), "login: storage: disk full")
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNetwork, KindOf(fmt.Errorf("x: %w", ErrUnavailable)))
	assert.Equal(t, KindUnauthorized, KindOf(ErrUnauthorized))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}

func TestUserMessage(t *testing.T) {
	details := json.RawMessage(`{"email":["user with this email already exists."]}`)

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "network", err: &Error{Kind: KindNetwork}, want: "Network error. Please check your connection and try again."},
		{name: "unauthorized", err: &Error{Kind: KindUnauthorized}, want: "Your session has expired. Please log in again."},
		{name: "remote validation shows payload", err: &Error{Kind: KindRemoteValidation, Details: details}, want: string(details)},
		{name: "local validation", err: &Error{Kind: KindValidation, Err: errors.New("email is required")}, want: "email is required"},
		{name: "storage", err: &Error{Kind: KindStorage, Err: errors.New("secret path")}, want: "Could not save the session on this device. Please log in again."},
		{name: "unknown hides cause", err: &Error{Kind: KindUnknown, Status: 500, Err: errors.New("stack trace")}, want: "Something went wrong. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}
