package news

import (
	"context"
	"fmt"
	"strings"

	"github.com/medscience/medscience/pkg/pagination"
)

type Service struct {
	repo ArticleRepository
}

func NewService(repo ArticleRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateArticle(ctx context.Context, a *Article) error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("article title is required")
	}
	if strings.TrimSpace(a.Content) == "" {
		return fmt.Errorf("article content is required")
	}
	return s.repo.Create(ctx, a)
}

func (s *Service) GetArticle(ctx context.Context, id int64) (*Article, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) LatestArticles(ctx context.Context, p pagination.Params) ([]*Article, error) {
	p = normalize(p)
	return s.repo.ListLatest(ctx, p.Page, p.Limit)
}

func (s *Service) ArticlesByCategory(ctx context.Context, category string, p pagination.Params) ([]*Article, error) {
	p = normalize(p)
	return s.repo.ListByCategory(ctx, category, p.Page, p.Limit)
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

func normalize(p pagination.Params) pagination.Params {
	if p.Page < 1 {
		p.Page = pagination.DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = pagination.DefaultLimit
	}
	if p.Limit > pagination.MaxLimit {
		p.Limit = pagination.MaxLimit
	}
	return p
}
