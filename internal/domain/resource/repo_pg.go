package resource

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medscience/medscience/internal/platform/db"
)

type resourceRepoPG struct{ pool *pgxpool.Pool }

func NewResourceRepoPG(pool *pgxpool.Pool) ResourceRepository {
	return &resourceRepoPG{pool: pool}
}

func (r *resourceRepoPG) conn(ctx context.Context) db.Queryable {
	return db.Conn(ctx, r.pool)
}

const resourceCols = `id, title, description, url, type, category, location`

func scanResource(row pgx.Row) (*Resource, error) {
	var res Resource
	err := row.Scan(&res.ID, &res.Title, &res.Description, &res.URL, &res.Type, &res.Category, &res.Location)
	if err != nil {
		return nil, db.MapError(err)
	}
	return &res, nil
}

func (r *resourceRepoPG) Create(ctx context.Context, res *Resource) error {
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO resources (title, description, url, type, category, location)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id`,
		res.Title, res.Description, res.URL, res.Type, res.Category, res.Location).Scan(&res.ID)
	return db.MapError(err)
}

func (r *resourceRepoPG) GetByID(ctx context.Context, id int64) (*Resource, error) {
	return scanResource(r.conn(ctx).QueryRow(ctx, `SELECT `+resourceCols+` FROM resources WHERE id = $1`, id))
}

func (r *resourceRepoPG) ListByType(ctx context.Context, typ, category string) ([]*Resource, error) {
	query := `SELECT ` + resourceCols + ` FROM resources WHERE 1=1`
	var args []interface{}
	idx := 1

	if typ != TypeAll {
		query += fmt.Sprintf(` AND type = $%d`, idx)
		args = append(args, typ)
		idx++
	}
	if category != "" {
		query += fmt.Sprintf(` AND category = $%d`, idx)
		args = append(args, category)
	}
	query += ` ORDER BY id`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, db.MapError(err)
	}
	defer rows.Close()
	items := make([]*Resource, 0)
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, res)
	}
	return items, db.MapError(rows.Err())
}
