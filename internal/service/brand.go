package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/guttosm/catalog-service/internal/cache"
	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/guttosm/catalog-service/internal/repository"
)

// BrandService provides cached brand operations.
type BrandService interface {
	GetAll(ctx context.Context) ([]model.Brand, error)
	GetByID(ctx context.Context, id int64) (model.Brand, error)
	Save(ctx context.Context, b model.Brand) (model.Brand, error)
	Update(ctx context.Context, id int64, patch model.BrandPatch) (model.Brand, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
}

// BrandServiceImpl implements BrandService.
type BrandServiceImpl struct {
	*catalog[model.Brand]
	unique       func(context.Context, model.Brand) error
	uniqueRename func(context.Context, model.Brand, model.Brand) error
}

// NewBrandService creates a brand service.
func NewBrandService(repo repository.BrandRepository, provider *cache.Provider) *BrandServiceImpl {
	return &BrandServiceImpl{
		catalog:      newCatalog(cache.EntityBrand, repo, provider),
		unique:       uniqueName(repo),
		uniqueRename: uniqueRename(repo),
	}
}

func (s *BrandServiceImpl) GetAll(ctx context.Context) ([]model.Brand, error) {
	return s.getAll(ctx)
}

func (s *BrandServiceImpl) GetByID(ctx context.Context, id int64) (model.Brand, error) {
	return s.getByID(ctx, id)
}

func (s *BrandServiceImpl) Save(ctx context.Context, b model.Brand) (model.Brand, error) {
	return s.save(ctx, b, func(ctx context.Context, b model.Brand) error {
		if strings.TrimSpace(b.Name) == "" {
			return fmt.Errorf("%w: brand name is required", ErrInvalidInput)
		}
		return s.unique(ctx, b)
	})
}

func (s *BrandServiceImpl) Update(ctx context.Context, id int64, patch model.BrandPatch) (model.Brand, error) {
	return s.update(ctx, id, patch.Apply, func(ctx context.Context, current, next model.Brand) error {
		if strings.TrimSpace(next.Name) == "" {
			return fmt.Errorf("%w: brand name is required", ErrInvalidInput)
		}
		return s.uniqueRename(ctx, current, next)
	})
}

func (s *BrandServiceImpl) DeleteByID(ctx context.Context, id int64) (bool, error) {
	return s.deleteByID(ctx, id)
}
