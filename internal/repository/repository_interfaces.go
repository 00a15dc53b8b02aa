// Package repository provides the persistence backends for catalog entities.
package repository

import (
	"context"
	"errors"

	"github.com/guttosm/catalog-service/internal/domain/model"
)

var (
	// ErrNotFound is returned by Update when the entity no longer exists.
	ErrNotFound = errors.New("entity not found")
	// ErrDuplicateKey is returned when a unique natural key is already taken.
	ErrDuplicateKey = errors.New("duplicate key")
)

// CatalogRepository is the CRUD contract every backend implements for one entity type.
type CatalogRepository[E model.Entity[E]] interface {
	FindAll(ctx context.Context) ([]E, error)
	// FindByID returns nil, nil when the entity does not exist.
	FindByID(ctx context.Context, id int64) (*E, error)
	// Save inserts e and returns it with its assigned identifier.
	Save(ctx context.Context, e E) (E, error)
	// Update replaces the stored entity carrying e's identifier.
	Update(ctx context.Context, e E) (E, error)
	// DeleteByID reports whether an entity was removed.
	DeleteByID(ctx context.Context, id int64) (bool, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByNaturalKey(ctx context.Context, key string) (bool, error)
}

type (
	ProductRepository  = CatalogRepository[model.Product]
	CategoryRepository = CatalogRepository[model.Category]
	BrandRepository    = CatalogRepository[model.Brand]
	UserRepository     = CatalogRepository[model.User]
)

// Collection names, shared by the MongoDB collections and PostgreSQL tables.
const (
	CollectionProducts   = "products"
	CollectionCategories = "categories"
	CollectionBrands     = "brands"
	CollectionUsers      = "users"
)
