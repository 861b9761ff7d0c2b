package credentials

import (
	"context"
	"fmt"
	"io"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and configures a credential backend.
type Options struct {
	Backend     string
	SQLitePath  string
	RedisAddr   string
	RedisPrefix string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the backend named in opts. The returned Closer releases the
// backend's connection and must be called on shutdown.
func Open(ctx context.Context, opts Options) (Repository, io.Closer, error) {
	switch opts.Backend {
	case BackendSQLite, "":
		repo, db, err := OpenSQLite(ctx, opts.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return repo, db, nil
	case BackendRedis:
		client, err := NewRedisClient(ctx, opts.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisRepository(client, opts.RedisPrefix), client, nil
	case BackendMemory:
		return NewMemoryRepository(), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown credential backend %q", opts.Backend)
	}
}
