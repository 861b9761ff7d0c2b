package credentials

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisRepository(client *redis.Client, prefix string) *RedisRepository {
	return &RedisRepository{client: client, prefix: prefix}
}

// NewRedisClient connects to addr and pings it before returning.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("credential redis ping: %w", err)
	}
	return client, nil
}

func (r *RedisRepository) key(k string) string {
	return r.prefix + k
}

func (r *RedisRepository) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credential[%s]: %w", key, err)
	}
	return value, nil
}

func (r *RedisRepository) Put(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to put credential[%s]: %w", key, err)
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to delete credential[%s]: %w", key, err)
	}
	return nil
}

// Clear removes keys with a single DEL; with no keys it removes the whole
// prefix namespace.
func (r *RedisRepository) Clear(ctx context.Context, keys ...string) error {
	var targets []string
	if len(keys) == 0 {
		var err error
		targets, err = r.namespaceKeys(ctx)
		if err != nil {
			return fmt.Errorf("failed to clear credentials: %w", err)
		}
		if len(targets) == 0 {
			return nil
		}
	} else {
		targets = make([]string, 0, len(keys))
		for _, k := range keys {
			targets = append(targets, r.key(k))
		}
	}

	if err := r.client.Del(ctx, targets...).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

func (r *RedisRepository) namespaceKeys(ctx context.Context) ([]string, error) {
	var (
		cursor uint64
		keys   []string
	)
	for {
		batch, next, err := r.client.Scan(ctx, cursor, r.prefix+"*", 100).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		if next == 0 {
			return keys, nil
		}
		cursor = next
	}
}
