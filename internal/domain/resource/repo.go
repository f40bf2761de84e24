package resource

import (
	"context"
)

type ResourceRepository interface {
	Create(ctx context.Context, r *Resource) error
	GetByID(ctx context.Context, id int64) (*Resource, error)
	// ListByType filters on exact type unless typ is TypeAll, and on exact
	// category when category is non-empty.
	ListByType(ctx context.Context, typ, category string) ([]*Resource, error)
}
