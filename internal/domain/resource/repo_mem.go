package resource

import (
	"context"

	"github.com/medscience/medscience/internal/platform/store"
)

type resourceRepoMem struct {
	items *store.Collection[Resource]
}

func NewResourceRepoMem() ResourceRepository {
	return &resourceRepoMem{items: store.NewCollection[Resource]()}
}

func (r *resourceRepoMem) Create(_ context.Context, res *Resource) error {
	*res = r.items.Insert(func(id int64) Resource {
		rec := *res
		rec.ID = id
		return rec
	})
	return nil
}

func (r *resourceRepoMem) GetByID(_ context.Context, id int64) (*Resource, error) {
	res, ok := r.items.Get(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	return &res, nil
}

func (r *resourceRepoMem) ListByType(_ context.Context, typ, category string) ([]*Resource, error) {
	return store.Ptrs(r.items.Filter(func(res Resource) bool {
		if typ != TypeAll && res.Type != typ {
			return false
		}
		if category != "" && (res.Category == nil || *res.Category != category) {
			return false
		}
		return true
	})), nil
}
