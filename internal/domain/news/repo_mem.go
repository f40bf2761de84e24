package news

import (
	"context"
	"sort"
	"time"

	"github.com/medscience/medscience/internal/platform/store"
)

type articleRepoMem struct {
	items *store.Collection[Article]
	now   func() time.Time
}

func NewArticleRepoMem() ArticleRepository {
	return &articleRepoMem{items: store.NewCollection[Article](), now: time.Now}
}

func (r *articleRepoMem) Create(_ context.Context, a *Article) error {
	*a = r.items.Insert(func(id int64) Article {
		rec := *a
		rec.ID = id
		if rec.PublishedAt.IsZero() {
			rec.PublishedAt = r.now().UTC()
		}
		return rec
	})
	return nil
}

func (r *articleRepoMem) GetByID(_ context.Context, id int64) (*Article, error) {
	a, ok := r.items.Get(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	return &a, nil
}

func (r *articleRepoMem) ListLatest(_ context.Context, page, limit int) ([]*Article, error) {
	return store.Ptrs(store.Page(newestFirst(r.items.All()), page, limit)), nil
}

func (r *articleRepoMem) ListByCategory(_ context.Context, category string, page, limit int) ([]*Article, error) {
	matched := r.items.Filter(func(a Article) bool {
		return a.Category != nil && *a.Category == category
	})
	return store.Ptrs(store.Page(newestFirst(matched), page, limit)), nil
}

func (r *articleRepoMem) Categories(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, a := range r.items.All() {
		if a.Category == nil || *a.Category == "" || seen[*a.Category] {
			continue
		}
		seen[*a.Category] = true
		out = append(out, *a.Category)
	}
	sort.Strings(out)
	return out, nil
}

// newestFirst sorts by PublishedAt descending; ties keep insertion order.
func newestFirst(items []Article) []Article {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
	return items
}
