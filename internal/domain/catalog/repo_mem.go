package catalog

import (
	"context"
	"strings"

	"github.com/medscience/medscience/internal/platform/store"
)

type bodySystemRepoMem struct {
	items *store.Collection[BodySystem]
}

func NewBodySystemRepoMem() BodySystemRepository {
	return &bodySystemRepoMem{items: store.NewCollection[BodySystem]()}
}

func (r *bodySystemRepoMem) Create(_ context.Context, b *BodySystem) error {
	*b = r.items.Insert(func(id int64) BodySystem {
		rec := *b
		rec.ID = id
		return rec
	})
	return nil
}

func (r *bodySystemRepoMem) GetByID(_ context.Context, id int64) (*BodySystem, error) {
	b, ok := r.items.Get(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	return &b, nil
}

func (r *bodySystemRepoMem) List(_ context.Context) ([]*BodySystem, error) {
	return store.Ptrs(r.items.All()), nil
}

func (r *bodySystemRepoMem) Count(_ context.Context) (int, error) {
	return r.items.Len(), nil
}

type diseaseRepoMem struct {
	items *store.Collection[Disease]
}

func NewDiseaseRepoMem() DiseaseRepository {
	return &diseaseRepoMem{items: store.NewCollection[Disease]()}
}

func (r *diseaseRepoMem) Create(_ context.Context, d *Disease) error {
	*d = r.items.Insert(func(id int64) Disease {
		rec := *d
		rec.ID = id
		return rec
	})
	return nil
}

func (r *diseaseRepoMem) GetByID(_ context.Context, id int64) (*Disease, error) {
	d, ok := r.items.Get(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	return &d, nil
}

func (r *diseaseRepoMem) ListByBodySystem(_ context.Context, bodySystemID int64) ([]*Disease, error) {
	return store.Ptrs(r.items.Filter(func(d Disease) bool {
		return d.BodySystemID == bodySystemID
	})), nil
}

func (r *diseaseRepoMem) Search(_ context.Context, query string) ([]*Disease, error) {
	q := strings.ToLower(query)
	return store.Ptrs(r.items.Filter(func(d Disease) bool {
		return containsFold(d.Name, q) ||
			containsFold(d.Description, q) ||
			(d.Symptoms != nil && containsFold(*d.Symptoms, q))
	})), nil
}

// containsFold reports whether lowerQuery, already lower-cased, occurs in s
// ignoring case.
func containsFold(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}

type symptomRepoMem struct {
	items *store.Collection[Symptom]
}

func NewSymptomRepoMem() SymptomRepository {
	return &symptomRepoMem{items: store.NewCollection[Symptom]()}
}

func (r *symptomRepoMem) Create(_ context.Context, s *Symptom) error {
	*s = r.items.Insert(func(id int64) Symptom {
		rec := *s
		rec.ID = id
		return rec
	})
	return nil
}

func (r *symptomRepoMem) GetByID(_ context.Context, id int64) (*Symptom, error) {
	s, ok := r.items.Get(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	return &s, nil
}

func (r *symptomRepoMem) List(_ context.Context) ([]*Symptom, error) {
	return store.Ptrs(r.items.All()), nil
}
