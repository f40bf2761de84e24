package identity

import (
	"context"
)

type UserRepository interface {
	// Create returns store.ErrConflict when the username is taken.
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}
