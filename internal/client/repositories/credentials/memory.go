package credentials

import (
	"context"
	"sync"
)

// MemoryRepository keeps credentials in process memory. Nothing survives a
// restart, which makes it suitable for ephemeral sessions and tests.
type MemoryRepository struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: make(map[string][]byte)}
}

func (r *MemoryRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (r *MemoryRepository) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[key] = append([]byte{}, value...)
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data, key)
	return nil
}

func (r *MemoryRepository) Clear(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(keys) == 0 {
		clear(r.data)
		return nil
	}
	for _, k := range keys {
		delete(r.data, k)
	}
	return nil
}
