package users

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/signlink/internal/common"
)

// MemoryRepository keeps users in process memory. Emails and usernames are
// unique case-insensitively.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1, byID: make(map[int64]*User)}
}

func conflict(field string) error {
	return fmt.Errorf("%w: %w", common.ErrAlreadyExists, &ConflictError{Field: field})
}

// checkUnique must be called with mu held.
func (r *MemoryRepository) checkUnique(u *User) error {
	for id, other := range r.byID {
		if id == u.ID {
			continue
		}
		if strings.EqualFold(other.Username, u.Username) {
			return conflict("username")
		}
		if strings.EqualFold(other.Email, u.Email) {
			return conflict("email")
		}
	}
	return nil
}

func (r *MemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := *user
	u.ID = 0
	if err := r.checkUnique(&u); err != nil {
		return nil, err
	}

	u.ID = r.nextID
	r.nextID++
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	r.byID[u.ID] = &u

	out := u
	return &out, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if strings.EqualFold(u.Email, email) {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *MemoryRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (r *MemoryRepository) Update(ctx context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[user.ID]; !ok {
		return common.ErrNotFound
	}
	if err := r.checkUnique(user); err != nil {
		return err
	}

	u := *user
	r.byID[u.ID] = &u
	return nil
}

// Search matches query against username and full name, case-insensitively,
// ordered by id.
func (r *MemoryRepository) Search(ctx context.Context, query string, limit int) ([]*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	var out []*User
	for _, u := range r.byID {
		if strings.Contains(strings.ToLower(u.Username), q) || strings.Contains(strings.ToLower(u.FullName()), q) {
			c := *u
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
