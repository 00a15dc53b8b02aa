package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres owns the connection pool and the catalog schema.
// Each entity type is one table holding the JSONB document plus the columns
// needed for identity and uniqueness.
type Postgres struct {
	Pool *pgxpool.Pool
}

// NewPostgres connects, pings and creates the schema when missing.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}

	p := &Postgres{Pool: pool}
	if err := p.HealthCheck(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := p.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return p, nil
}

func (p *Postgres) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id BIGSERIAL PRIMARY KEY,
			natural_key TEXT NOT NULL UNIQUE,
			data JSONB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS brands (
			id BIGSERIAL PRIMARY KEY,
			natural_key TEXT NOT NULL UNIQUE,
			data JSONB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			natural_key TEXT NOT NULL,
			data JSONB NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_natural_key ON products(natural_key)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products (((data->>'category_id')::BIGINT))`,
		`CREATE INDEX IF NOT EXISTS idx_products_brand ON products (((data->>'brand_id')::BIGINT))`,
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			natural_key TEXT NOT NULL UNIQUE,
			data JSONB NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := p.Pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// HealthCheck verifies the pool can reach the server.
func (p *Postgres) HealthCheck(ctx context.Context) error {
	if p.Pool == nil {
		return fmt.Errorf("postgres not initialized")
	}
	return p.Pool.Ping(ctx)
}

// Close releases every pooled connection.
func (p *Postgres) Close() {
	if p.Pool != nil {
		p.Pool.Close()
	}
}
