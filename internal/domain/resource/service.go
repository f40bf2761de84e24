package resource

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	repo ResourceRepository
}

func NewService(repo ResourceRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateResource(ctx context.Context, r *Resource) error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("resource title is required")
	}
	if strings.TrimSpace(r.Description) == "" {
		return fmt.Errorf("resource description is required")
	}
	if strings.TrimSpace(r.Type) == "" {
		return fmt.Errorf("resource type is required")
	}
	if r.Type == TypeAll {
		return fmt.Errorf("resource type %q is reserved", TypeAll)
	}
	return s.repo.Create(ctx, r)
}

func (s *Service) GetResource(ctx context.Context, id int64) (*Resource, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByType(ctx context.Context, typ, category string) ([]*Resource, error) {
	return s.repo.ListByType(ctx, typ, category)
}
