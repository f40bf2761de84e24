package identity

import (
	"context"
	"fmt"

	"github.com/medscience/medscience/internal/platform/store"
)

type userRepoMem struct {
	items *store.Collection[User]
}

func NewUserRepoMem() UserRepository {
	return &userRepoMem{items: store.NewCollection[User]()}
}

func (r *userRepoMem) Create(_ context.Context, u *User) error {
	rec, err := r.items.InsertIf(func(existing []User) error {
		for _, e := range existing {
			if e.Username == u.Username {
				return fmt.Errorf("%w: username %q", store.ErrConflict, u.Username)
			}
		}
		return nil
	}, func(id int64) User {
		rec := *u
		rec.ID = id
		return rec
	})
	if err != nil {
		return err
	}
	*u = rec
	return nil
}

func (r *userRepoMem) GetByID(_ context.Context, id int64) (*User, error) {
	u, ok := r.items.Get(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (r *userRepoMem) GetByUsername(_ context.Context, username string) (*User, error) {
	matches := r.items.Filter(func(u User) bool { return u.Username == username })
	if len(matches) == 0 {
		return nil, store.ErrNotFound
	}
	return &matches[0], nil
}
