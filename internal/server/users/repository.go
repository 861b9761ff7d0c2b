package users

import (
	"context"
)

// Repository stores users. Lookups return common.ErrNotFound for unknown
// users; Create and Update return common.ErrAlreadyExists together with a
// *ConflictError naming the taken field.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Update(ctx context.Context, user *User) error
	Search(ctx context.Context, query string, limit int) ([]*User, error)
}

// ConflictError reports which unique field a write collided on.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return e.Field + " already exists"
}
