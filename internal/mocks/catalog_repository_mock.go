// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/catalog-service/internal/domain/model"
)

// MockCatalogRepository is a testify mock of repository.CatalogRepository.
type MockCatalogRepository[E model.Entity[E]] struct {
	mock.Mock
}

func NewMockProductRepository() *MockCatalogRepository[model.Product] {
	return &MockCatalogRepository[model.Product]{}
}

func NewMockCategoryRepository() *MockCatalogRepository[model.Category] {
	return &MockCatalogRepository[model.Category]{}
}

func NewMockBrandRepository() *MockCatalogRepository[model.Brand] {
	return &MockCatalogRepository[model.Brand]{}
}

func NewMockUserRepository() *MockCatalogRepository[model.User] {
	return &MockCatalogRepository[model.User]{}
}

func (m *MockCatalogRepository[E]) FindAll(ctx context.Context) ([]E, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]E), args.Error(1)
}

func (m *MockCatalogRepository[E]) FindByID(ctx context.Context, id int64) (*E, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*E), args.Error(1)
}

func (m *MockCatalogRepository[E]) Save(ctx context.Context, e E) (E, error) {
	args := m.Called(ctx, e)
	var zero E
	if args.Get(0) == nil {
		return zero, args.Error(1)
	}
	return args.Get(0).(E), args.Error(1)
}

func (m *MockCatalogRepository[E]) Update(ctx context.Context, e E) (E, error) {
	args := m.Called(ctx, e)
	var zero E
	if args.Get(0) == nil {
		return zero, args.Error(1)
	}
	return args.Get(0).(E), args.Error(1)
}

func (m *MockCatalogRepository[E]) DeleteByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository[E]) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository[E]) ExistsByNaturalKey(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
