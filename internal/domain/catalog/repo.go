package catalog

import (
	"context"
)

type BodySystemRepository interface {
	Create(ctx context.Context, b *BodySystem) error
	GetByID(ctx context.Context, id int64) (*BodySystem, error)
	List(ctx context.Context) ([]*BodySystem, error)
	Count(ctx context.Context) (int, error)
}

type DiseaseRepository interface {
	Create(ctx context.Context, d *Disease) error
	GetByID(ctx context.Context, id int64) (*Disease, error)
	ListByBodySystem(ctx context.Context, bodySystemID int64) ([]*Disease, error)
	// Search matches query case-insensitively as a substring of name,
	// description or symptoms.
	Search(ctx context.Context, query string) ([]*Disease, error)
}

type SymptomRepository interface {
	Create(ctx context.Context, s *Symptom) error
	GetByID(ctx context.Context, id int64) (*Symptom, error)
	List(ctx context.Context) ([]*Symptom, error)
}
