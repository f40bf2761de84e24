package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyQuery is returned by SearchDiseases for a blank query.
var ErrEmptyQuery = errors.New("search query is required")

type Service struct {
	bodySystems BodySystemRepository
	diseases    DiseaseRepository
	symptoms    SymptomRepository
}

func NewService(bodySystems BodySystemRepository, diseases DiseaseRepository, symptoms SymptomRepository) *Service {
	return &Service{bodySystems: bodySystems, diseases: diseases, symptoms: symptoms}
}

func (s *Service) CreateBodySystem(ctx context.Context, b *BodySystem) error {
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("body system name is required")
	}
	if strings.TrimSpace(b.Description) == "" {
		return fmt.Errorf("body system description is required")
	}
	return s.bodySystems.Create(ctx, b)
}

func (s *Service) GetBodySystem(ctx context.Context, id int64) (*BodySystem, error) {
	return s.bodySystems.GetByID(ctx, id)
}

func (s *Service) ListBodySystems(ctx context.Context) ([]*BodySystem, error) {
	return s.bodySystems.List(ctx)
}

func (s *Service) CountBodySystems(ctx context.Context) (int, error) {
	return s.bodySystems.Count(ctx)
}

// CreateDisease stores d without checking that its body system exists.
func (s *Service) CreateDisease(ctx context.Context, d *Disease) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("disease name is required")
	}
	if strings.TrimSpace(d.Description) == "" {
		return fmt.Errorf("disease description is required")
	}
	return s.diseases.Create(ctx, d)
}

func (s *Service) GetDisease(ctx context.Context, id int64) (*Disease, error) {
	return s.diseases.GetByID(ctx, id)
}

func (s *Service) ListDiseasesByBodySystem(ctx context.Context, bodySystemID int64) ([]*Disease, error) {
	return s.diseases.ListByBodySystem(ctx, bodySystemID)
}

func (s *Service) SearchDiseases(ctx context.Context, query string) ([]*Disease, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, ErrEmptyQuery
	}
	return s.diseases.Search(ctx, q)
}

func (s *Service) CreateSymptom(ctx context.Context, sym *Symptom) error {
	if strings.TrimSpace(sym.Name) == "" {
		return fmt.Errorf("symptom name is required")
	}
	return s.symptoms.Create(ctx, sym)
}

func (s *Service) GetSymptom(ctx context.Context, id int64) (*Symptom, error) {
	return s.symptoms.GetByID(ctx, id)
}

func (s *Service) ListSymptoms(ctx context.Context) ([]*Symptom, error) {
	return s.symptoms.List(ctx)
}
