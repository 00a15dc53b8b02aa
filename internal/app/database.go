// Package app provides database initialization and setup.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/catalog-service/config"
	"github.com/guttosm/catalog-service/internal/circuitbreaker"
	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/guttosm/catalog-service/internal/repository"
)

const seedTimeout = 10 * time.Second

// DefaultCategories and DefaultBrands are created on an empty store when seeding is on.
var (
	DefaultCategories = []model.Category{
		{Name: "Shoes", Description: "Footwear for every terrain"},
		{Name: "Apparel", Description: "Clothing and accessories"},
		{Name: "Equipment", Description: "Gear and hardware"},
	}
	DefaultBrands = []model.Brand{
		{Name: "Acme"},
		{Name: "Northwind"},
	}
)

// DatabaseComponents holds the repositories of the selected backend together with
// the circuit breakers guarding them.
type DatabaseComponents struct {
	Backend    string
	Products   repository.ProductRepository
	Categories repository.CategoryRepository
	Brands     repository.BrandRepository
	Users      repository.UserRepository

	// CircuitBreakers is keyed by collection name. Empty for the memory backend.
	CircuitBreakers map[string]*circuitbreaker.CircuitBreaker

	// healthCheck pings the backend; nil for the memory backend.
	healthCheck func(ctx context.Context) error
	close       func(ctx context.Context) error
}

// HealthCheck pings the database. The memory backend is always healthy.
func (d *DatabaseComponents) HealthCheck(ctx context.Context) error {
	if d.healthCheck == nil {
		return nil
	}
	return d.healthCheck(ctx)
}

// Close releases the database connection.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d.close == nil {
		return nil
	}
	return d.close(ctx)
}

// InitializeDatabase connects to the configured backend and creates the repositories.
// Remote backends are wrapped with circuit breakers. A connection failure is returned,
// the service does not start without its catalog store.
func InitializeDatabase(ctx context.Context, cfg config.DatabaseConfig) (*DatabaseComponents, error) {
	var d *DatabaseComponents

	switch cfg.Backend {
	case config.BackendMemory, "":
		d = &DatabaseComponents{
			Backend:         config.BackendMemory,
			Products:        repository.NewMemoryProductRepository(),
			Categories:      repository.NewMemoryCategoryRepository(),
			Brands:          repository.NewMemoryBrandRepository(),
			Users:           repository.NewMemoryUserRepository(),
			CircuitBreakers: map[string]*circuitbreaker.CircuitBreaker{},
		}

	case config.BackendMongoDB:
		db, err := repository.NewMongoDB(cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("connect to mongodb: %w", err)
		}
		log.Info().Str("database", cfg.MongoDatabase).Msg("Connected to MongoDB")

		d = guarded(cfg,
			repository.NewMongoProductRepository(db),
			repository.NewMongoCategoryRepository(db),
			repository.NewMongoBrandRepository(db),
			repository.NewMongoUserRepository(db),
		)
		d.Backend = config.BackendMongoDB
		d.healthCheck = db.HealthCheck
		d.close = db.Close

	case config.BackendPostgres:
		pg, err := repository.NewPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		log.Info().Msg("Connected to PostgreSQL")

		d = guarded(cfg,
			repository.NewPostgresProductRepository(pg),
			repository.NewPostgresCategoryRepository(pg),
			repository.NewPostgresBrandRepository(pg),
			repository.NewPostgresUserRepository(pg),
		)
		d.Backend = config.BackendPostgres
		d.healthCheck = pg.HealthCheck
		d.close = func(context.Context) error {
			pg.Close()
			return nil
		}

	default:
		return nil, fmt.Errorf("unknown database backend %q", cfg.Backend)
	}

	if cfg.Seed {
		if err := seedDefaults(ctx, d.Categories, d.Brands); err != nil {
			log.Warn().Err(err).Msg("Failed to seed default categories and brands")
		}
	}
	return d, nil
}

// guarded wraps each repository with its own circuit breaker.
func guarded(
	cfg config.DatabaseConfig,
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	brands repository.BrandRepository,
	users repository.UserRepository,
) *DatabaseComponents {
	breaker := func(name string) *circuitbreaker.CircuitBreaker {
		return circuitbreaker.New(circuitbreaker.Config{
			FailureThreshold: cfg.CircuitBreakerFailureThreshold,
			SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
			Timeout:          cfg.CircuitBreakerTimeout,
			Name:             cfg.Backend + "-" + name,
		})
	}

	p := repository.NewCircuitBreakerCatalog(products, breaker(repository.CollectionProducts))
	c := repository.NewCircuitBreakerCatalog(categories, breaker(repository.CollectionCategories))
	b := repository.NewCircuitBreakerCatalog(brands, breaker(repository.CollectionBrands))
	u := repository.NewCircuitBreakerCatalog(users, breaker(repository.CollectionUsers))

	return &DatabaseComponents{
		Products:   p,
		Categories: c,
		Brands:     b,
		Users:      u,
		CircuitBreakers: map[string]*circuitbreaker.CircuitBreaker{
			repository.CollectionProducts:   p.GetCircuitBreaker(),
			repository.CollectionCategories: c.GetCircuitBreaker(),
			repository.CollectionBrands:     b.GetCircuitBreaker(),
			repository.CollectionUsers:      u.GetCircuitBreaker(),
		},
	}
}

// seedDefaults creates the default categories and brands when their store is empty.
func seedDefaults(ctx context.Context, categories repository.CategoryRepository, brands repository.BrandRepository) error {
	ctx, cancel := context.WithTimeout(ctx, seedTimeout)
	defer cancel()

	n, err := seed(ctx, categories, DefaultCategories)
	if err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	if n > 0 {
		log.Info().Int("count", n).Msg("Created default categories")
	}

	n, err = seed(ctx, brands, DefaultBrands)
	if err != nil {
		return fmt.Errorf("seed brands: %w", err)
	}
	if n > 0 {
		log.Info().Int("count", n).Msg("Created default brands")
	}
	return nil
}

func seed[E model.Entity[E]](ctx context.Context, repo repository.CatalogRepository[E], defaults []E) (int, error) {
	existing, err := repo.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for _, e := range defaults {
		if _, err := repo.Save(ctx, e.Touch(time.Now())); err != nil {
			return 0, err
		}
	}
	return len(defaults), nil
}
