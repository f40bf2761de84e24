package news

import (
	"context"
)

// ArticleRepository lists articles newest first. Pages are 1-based; a page
// past the end is an empty slice, not an error.
type ArticleRepository interface {
	// Create stamps PublishedAt with the current time when it is zero.
	Create(ctx context.Context, a *Article) error
	GetByID(ctx context.Context, id int64) (*Article, error)
	ListLatest(ctx context.Context, page, limit int) ([]*Article, error)
	ListByCategory(ctx context.Context, category string, page, limit int) ([]*Article, error)
	// Categories returns the distinct non-empty categories in ascending order.
	Categories(ctx context.Context) ([]string, error)
}
