package catalog

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medscience/medscience/internal/platform/db"
)

type bodySystemRepoPG struct{ pool *pgxpool.Pool }

func NewBodySystemRepoPG(pool *pgxpool.Pool) BodySystemRepository {
	return &bodySystemRepoPG{pool: pool}
}

func (r *bodySystemRepoPG) conn(ctx context.Context) db.Queryable {
	return db.Conn(ctx, r.pool)
}

const bodySystemCols = `id, name, description, image_url`

func scanBodySystem(row pgx.Row) (*BodySystem, error) {
	var b BodySystem
	if err := row.Scan(&b.ID, &b.Name, &b.Description, &b.ImageURL); err != nil {
		return nil, db.MapError(err)
	}
	return &b, nil
}

func (r *bodySystemRepoPG) Create(ctx context.Context, b *BodySystem) error {
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO body_systems (name, description, image_url)
		VALUES ($1, $2, $3)
		RETURNING id`,
		b.Name, b.Description, b.ImageURL).Scan(&b.ID)
	return db.MapError(err)
}

func (r *bodySystemRepoPG) GetByID(ctx context.Context, id int64) (*BodySystem, error) {
	return scanBodySystem(r.conn(ctx).QueryRow(ctx, `SELECT `+bodySystemCols+` FROM body_systems WHERE id = $1`, id))
}

func (r *bodySystemRepoPG) List(ctx context.Context) ([]*BodySystem, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+bodySystemCols+` FROM body_systems ORDER BY id`)
	if err != nil {
		return nil, db.MapError(err)
	}
	defer rows.Close()
	items := make([]*BodySystem, 0)
	for rows.Next() {
		b, err := scanBodySystem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, db.MapError(rows.Err())
}

func (r *bodySystemRepoPG) Count(ctx context.Context) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM body_systems`).Scan(&n)
	return n, db.MapError(err)
}

type diseaseRepoPG struct{ pool *pgxpool.Pool }

func NewDiseaseRepoPG(pool *pgxpool.Pool) DiseaseRepository {
	return &diseaseRepoPG{pool: pool}
}

func (r *diseaseRepoPG) conn(ctx context.Context) db.Queryable {
	return db.Conn(ctx, r.pool)
}

const diseaseCols = `id, name, body_system_id, description, causes, symptoms,
	treatments, prevention, image_url`

func scanDisease(row pgx.Row) (*Disease, error) {
	var d Disease
	err := row.Scan(&d.ID, &d.Name, &d.BodySystemID, &d.Description, &d.Causes, &d.Symptoms,
		&d.Treatments, &d.Prevention, &d.ImageURL)
	if err != nil {
		return nil, db.MapError(err)
	}
	return &d, nil
}

func (r *diseaseRepoPG) Create(ctx context.Context, d *Disease) error {
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO diseases (name, body_system_id, description, causes, symptoms,
			treatments, prevention, image_url)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id`,
		d.Name, d.BodySystemID, d.Description, d.Causes, d.Symptoms,
		d.Treatments, d.Prevention, d.ImageURL).Scan(&d.ID)
	return db.MapError(err)
}

func (r *diseaseRepoPG) GetByID(ctx context.Context, id int64) (*Disease, error) {
	return scanDisease(r.conn(ctx).QueryRow(ctx, `SELECT `+diseaseCols+` FROM diseases WHERE id = $1`, id))
}

func (r *diseaseRepoPG) ListByBodySystem(ctx context.Context, bodySystemID int64) ([]*Disease, error) {
	return r.query(ctx, `SELECT `+diseaseCols+` FROM diseases WHERE body_system_id = $1 ORDER BY id`, bodySystemID)
}

// strpos keeps % and _ in the query literal, unlike ILIKE.
func (r *diseaseRepoPG) Search(ctx context.Context, query string) ([]*Disease, error) {
	return r.query(ctx, `SELECT `+diseaseCols+` FROM diseases
		WHERE strpos(lower(name), lower($1)) > 0
			OR strpos(lower(description), lower($1)) > 0
			OR strpos(lower(COALESCE(symptoms, '')), lower($1)) > 0
		ORDER BY id`, query)
}

func (r *diseaseRepoPG) query(ctx context.Context, sql string, args ...interface{}) ([]*Disease, error) {
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, db.MapError(err)
	}
	defer rows.Close()
	items := make([]*Disease, 0)
	for rows.Next() {
		d, err := scanDisease(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, db.MapError(rows.Err())
}

type symptomRepoPG struct{ pool *pgxpool.Pool }

func NewSymptomRepoPG(pool *pgxpool.Pool) SymptomRepository {
	return &symptomRepoPG{pool: pool}
}

func (r *symptomRepoPG) conn(ctx context.Context) db.Queryable {
	return db.Conn(ctx, r.pool)
}

const symptomCols = `id, name, body_system_id, description`

func scanSymptom(row pgx.Row) (*Symptom, error) {
	var s Symptom
	if err := row.Scan(&s.ID, &s.Name, &s.BodySystemID, &s.Description); err != nil {
		return nil, db.MapError(err)
	}
	return &s, nil
}

func (r *symptomRepoPG) Create(ctx context.Context, s *Symptom) error {
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO symptoms (name, body_system_id, description)
		VALUES ($1, $2, $3)
		RETURNING id`,
		s.Name, s.BodySystemID, s.Description).Scan(&s.ID)
	return db.MapError(err)
}

func (r *symptomRepoPG) GetByID(ctx context.Context, id int64) (*Symptom, error) {
	return scanSymptom(r.conn(ctx).QueryRow(ctx, `SELECT `+symptomCols+` FROM symptoms WHERE id = $1`, id))
}

func (r *symptomRepoPG) List(ctx context.Context) ([]*Symptom, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+symptomCols+` FROM symptoms ORDER BY id`)
	if err != nil {
		return nil, db.MapError(err)
	}
	defer rows.Close()
	items := make([]*Symptom, 0)
	for rows.Next() {
		s, err := scanSymptom(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, db.MapError(rows.Err())
}
