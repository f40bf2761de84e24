package news

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medscience/medscience/internal/platform/db"
	"github.com/medscience/medscience/internal/platform/store"
)

type articleRepoPG struct{ pool *pgxpool.Pool }

func NewArticleRepoPG(pool *pgxpool.Pool) ArticleRepository {
	return &articleRepoPG{pool: pool}
}

func (r *articleRepoPG) conn(ctx context.Context) db.Queryable {
	return db.Conn(ctx, r.pool)
}

const articleCols = `id, title, content, summary, image_url, category, source, published_at`

func scanArticle(row pgx.Row) (*Article, error) {
	var a Article
	err := row.Scan(&a.ID, &a.Title, &a.Content, &a.Summary, &a.ImageURL,
		&a.Category, &a.Source, &a.PublishedAt)
	if err != nil {
		return nil, db.MapError(err)
	}
	return &a, nil
}

func (r *articleRepoPG) Create(ctx context.Context, a *Article) error {
	var published interface{}
	if !a.PublishedAt.IsZero() {
		published = a.PublishedAt
	}
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO articles (title, content, summary, image_url, category, source, published_at)
		VALUES ($1,$2,$3,$4,$5,$6,COALESCE($7::timestamptz, NOW()))
		RETURNING id, published_at`,
		a.Title, a.Content, a.Summary, a.ImageURL, a.Category, a.Source, published).
		Scan(&a.ID, &a.PublishedAt)
	return db.MapError(err)
}

func (r *articleRepoPG) GetByID(ctx context.Context, id int64) (*Article, error) {
	return scanArticle(r.conn(ctx).QueryRow(ctx, `SELECT `+articleCols+` FROM articles WHERE id = $1`, id))
}

func (r *articleRepoPG) ListLatest(ctx context.Context, page, limit int) ([]*Article, error) {
	return r.query(ctx, `SELECT `+articleCols+` FROM articles
		ORDER BY published_at DESC, id
		LIMIT $1 OFFSET $2`, limit, store.Offset(page, limit))
}

func (r *articleRepoPG) ListByCategory(ctx context.Context, category string, page, limit int) ([]*Article, error) {
	return r.query(ctx, `SELECT `+articleCols+` FROM articles
		WHERE category = $1
		ORDER BY published_at DESC, id
		LIMIT $2 OFFSET $3`, category, limit, store.Offset(page, limit))
}

func (r *articleRepoPG) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT DISTINCT category FROM articles
		WHERE category IS NOT NULL AND category <> ''
		ORDER BY category`)
	if err != nil {
		return nil, db.MapError(err)
	}
	defer rows.Close()
	out := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, db.MapError(err)
		}
		out = append(out, c)
	}
	return out, db.MapError(rows.Err())
}

func (r *articleRepoPG) query(ctx context.Context, sql string, args ...interface{}) ([]*Article, error) {
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, db.MapError(err)
	}
	defer rows.Close()
	items := make([]*Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, db.MapError(rows.Err())
}
