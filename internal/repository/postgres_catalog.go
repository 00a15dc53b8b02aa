package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/guttosm/catalog-service/internal/domain/model"
)

const pgUniqueViolation = "23505"

// PostgresCatalog stores one entity type as JSONB rows. The id column is
// authoritative; the id inside the document is overwritten on read.
type PostgresCatalog[E model.Entity[E]] struct {
	pg    *Postgres
	table string
}

// NewPostgresCatalog creates a repository over table, which must be one of the
// tables created by ensureSchema.
func NewPostgresCatalog[E model.Entity[E]](pg *Postgres, table string) *PostgresCatalog[E] {
	return &PostgresCatalog[E]{pg: pg, table: table}
}

func NewPostgresProductRepository(pg *Postgres) *PostgresCatalog[model.Product] {
	return NewPostgresCatalog[model.Product](pg, CollectionProducts)
}

func NewPostgresCategoryRepository(pg *Postgres) *PostgresCatalog[model.Category] {
	return NewPostgresCatalog[model.Category](pg, CollectionCategories)
}

func NewPostgresBrandRepository(pg *Postgres) *PostgresCatalog[model.Brand] {
	return NewPostgresCatalog[model.Brand](pg, CollectionBrands)
}

func NewPostgresUserRepository(pg *Postgres) *PostgresCatalog[model.User] {
	return NewPostgresCatalog[model.User](pg, CollectionUsers)
}

func (r *PostgresCatalog[E]) FindAll(ctx context.Context) ([]E, error) {
	rows, err := r.pg.Pool.Query(ctx, `SELECT id, data FROM `+r.table+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]E, 0)
	for rows.Next() {
		e, err := scanEntity[E](rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *PostgresCatalog[E]) FindByID(ctx context.Context, id int64) (*E, error) {
	row := r.pg.Pool.QueryRow(ctx, `SELECT id, data FROM `+r.table+` WHERE id = $1`, id)
	e, err := scanEntity[E](row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PostgresCatalog[E]) Save(ctx context.Context, e E) (E, error) {
	var zero E
	e = e.Touch(time.Now().UTC())
	data, err := json.Marshal(e)
	if err != nil {
		return zero, fmt.Errorf("encode %s: %w", r.table, err)
	}

	var id int64
	err = r.pg.Pool.QueryRow(ctx,
		`INSERT INTO `+r.table+` (natural_key, data) VALUES ($1, $2) RETURNING id`,
		e.NaturalKey(), data,
	).Scan(&id)
	if err != nil {
		return zero, r.mapError(err, e.NaturalKey())
	}
	return e.WithID(id), nil
}

func (r *PostgresCatalog[E]) Update(ctx context.Context, e E) (E, error) {
	var zero E
	e = e.Touch(time.Now().UTC())
	data, err := json.Marshal(e)
	if err != nil {
		return zero, fmt.Errorf("encode %s: %w", r.table, err)
	}

	tag, err := r.pg.Pool.Exec(ctx,
		`UPDATE `+r.table+` SET natural_key = $2, data = $3 WHERE id = $1`,
		e.EntityID(), e.NaturalKey(), data,
	)
	if err != nil {
		return zero, r.mapError(err, e.NaturalKey())
	}
	if tag.RowsAffected() == 0 {
		return zero, fmt.Errorf("%w: id %d", ErrNotFound, e.EntityID())
	}
	return e, nil
}

func (r *PostgresCatalog[E]) DeleteByID(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pg.Pool.Exec(ctx, `DELETE FROM `+r.table+` WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresCatalog[E]) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pg.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM `+r.table+` WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *PostgresCatalog[E]) ExistsByNaturalKey(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := r.pg.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM `+r.table+` WHERE natural_key = $1)`, key).Scan(&exists)
	return exists, err
}

func (r *PostgresCatalog[E]) mapError(err error, key string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	return err
}

func scanEntity[E model.Entity[E]](row pgx.Row) (E, error) {
	var (
		zero E
		id   int64
		data []byte
	)
	if err := row.Scan(&id, &data); err != nil {
		return zero, err
	}
	var e E
	if err := json.Unmarshal(data, &e); err != nil {
		return zero, fmt.Errorf("decode row %d: %w", id, err)
	}
	return e.WithID(id), nil
}
