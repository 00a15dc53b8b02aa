package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/guttosm/catalog-service/internal/cache"
	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/guttosm/catalog-service/internal/repository"
)

// CategoryService provides cached category operations.
type CategoryService interface {
	GetAll(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id int64) (model.Category, error)
	Save(ctx context.Context, c model.Category) (model.Category, error)
	Update(ctx context.Context, id int64, patch model.CategoryPatch) (model.Category, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
}

// CategoryServiceImpl implements CategoryService.
type CategoryServiceImpl struct {
	*catalog[model.Category]
	unique       func(context.Context, model.Category) error
	uniqueRename func(context.Context, model.Category, model.Category) error
}

// NewCategoryService creates a category service.
func NewCategoryService(repo repository.CategoryRepository, provider *cache.Provider) *CategoryServiceImpl {
	return &CategoryServiceImpl{
		catalog:      newCatalog(cache.EntityCategory, repo, provider),
		unique:       uniqueName(repo),
		uniqueRename: uniqueRename(repo),
	}
}

func (s *CategoryServiceImpl) GetAll(ctx context.Context) ([]model.Category, error) {
	return s.getAll(ctx)
}

func (s *CategoryServiceImpl) GetByID(ctx context.Context, id int64) (model.Category, error) {
	return s.getByID(ctx, id)
}

func (s *CategoryServiceImpl) Save(ctx context.Context, c model.Category) (model.Category, error) {
	return s.save(ctx, c, func(ctx context.Context, c model.Category) error {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: category name is required", ErrInvalidInput)
		}
		return s.unique(ctx, c)
	})
}

func (s *CategoryServiceImpl) Update(ctx context.Context, id int64, patch model.CategoryPatch) (model.Category, error) {
	return s.update(ctx, id, patch.Apply, func(ctx context.Context, current, next model.Category) error {
		if strings.TrimSpace(next.Name) == "" {
			return fmt.Errorf("%w: category name is required", ErrInvalidInput)
		}
		return s.uniqueRename(ctx, current, next)
	})
}

func (s *CategoryServiceImpl) DeleteByID(ctx context.Context, id int64) (bool, error) {
	return s.deleteByID(ctx, id)
}
