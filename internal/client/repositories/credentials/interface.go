package credentials

import (
	"context"
)

// Keys the session core depends on.
const (
	KeyAuthToken = "authToken"
	KeyUserData  = "userData"
)

type Repository interface {
	Put(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, keys ...string) error
}
