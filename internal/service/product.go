package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/guttosm/catalog-service/internal/cache"
	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/guttosm/catalog-service/internal/repository"
)

// ProductService provides cached product operations.
type ProductService interface {
	// GetAll returns every product, narrowed by filter when it has a constraint.
	// Filtered results are computed from the cached collection and never cached themselves.
	GetAll(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	GetByID(ctx context.Context, id int64) (model.Product, error)
	Save(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, id int64, patch model.ProductPatch) (model.Product, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
}

// ProductServiceImpl implements ProductService.
type ProductServiceImpl struct {
	*catalog[model.Product]
	categories repository.CategoryRepository
	brands     repository.BrandRepository
}

// NewProductService creates a product service. The category and brand
// repositories are only used to validate references.
func NewProductService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	brands repository.BrandRepository,
	provider *cache.Provider,
) *ProductServiceImpl {
	return &ProductServiceImpl{
		catalog:    newCatalog(cache.EntityProduct, products, provider),
		categories: categories,
		brands:     brands,
	}
}

func (s *ProductServiceImpl) GetAll(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	products, err := s.getAll(ctx)
	if err != nil {
		return nil, err
	}
	return ApplyFilter(products, filter), nil
}

func (s *ProductServiceImpl) GetByID(ctx context.Context, id int64) (model.Product, error) {
	return s.getByID(ctx, id)
}

func (s *ProductServiceImpl) Save(ctx context.Context, p model.Product) (model.Product, error) {
	return s.save(ctx, p, s.validate)
}

func (s *ProductServiceImpl) Update(ctx context.Context, id int64, patch model.ProductPatch) (model.Product, error) {
	return s.update(ctx, id, patch.Apply, func(ctx context.Context, _, next model.Product) error {
		return s.validate(ctx, next)
	})
}

func (s *ProductServiceImpl) DeleteByID(ctx context.Context, id int64) (bool, error) {
	return s.deleteByID(ctx, id)
}

func (s *ProductServiceImpl) validate(ctx context.Context, p model.Product) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: product name is required", ErrInvalidInput)
	case math.IsNaN(p.Price) || math.IsInf(p.Price, 0):
		return fmt.Errorf("%w: price must be a finite number", ErrInvalidInput)
	case p.Price < 0:
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	case p.Stock < 0:
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
	}

	ok, err := s.categories.ExistsByID(ctx, p.CategoryID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: category %d does not exist", ErrInvalidReference, p.CategoryID)
	}

	ok, err = s.brands.ExistsByID(ctx, p.BrandID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: brand %d does not exist", ErrInvalidReference, p.BrandID)
	}
	return nil
}
