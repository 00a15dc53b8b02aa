//go:build !integration

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/catalog-service/internal/circuitbreaker"
	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/guttosm/catalog-service/internal/mocks"
)

func newTestBreaker(name string) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: 2,
		SuccessThreshold: 1,
		Timeout:          time.Hour,
		Name:             name,
	})
}

func TestCircuitBreakerCatalog_PassesThrough(t *testing.T) {
	ctx := context.Background()
	inner := mocks.NewMockBrandRepository()
	wrapped := NewCircuitBreakerCatalog[model.Brand](inner, newTestBreaker("passthrough"))

	brand := model.Brand{ID: 3, Name: "Acme"}
	inner.On("FindAll", ctx).Return([]model.Brand{brand}, nil)
	inner.On("FindByID", ctx, int64(3)).Return(&brand, nil)
	inner.On("FindByID", ctx, int64(4)).Return(nil, nil)
	inner.On("Save", ctx, model.Brand{Name: "New"}).Return(model.Brand{ID: 9, Name: "New"}, nil)
	inner.On("Update", ctx, brand).Return(brand, nil)
	inner.On("DeleteByID", ctx, int64(3)).Return(true, nil)
	inner.On("ExistsByID", ctx, int64(3)).Return(true, nil)
	inner.On("ExistsByNaturalKey", ctx, "Acme").Return(true, nil)

	all, err := wrapped.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Brand{brand}, all)

	got, err := wrapped.FindByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, &brand, got)

	missing, err := wrapped.FindByID(ctx, 4)
	require.NoError(t, err)
	assert.Nil(t, missing)

	saved, err := wrapped.Save(ctx, model.Brand{Name: "New"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), saved.ID)

	_, err = wrapped.Update(ctx, brand)
	require.NoError(t, err)

	deleted, err := wrapped.DeleteByID(ctx, 3)
	require.NoError(t, err)
	assert.True(t, deleted)

	exists, err := wrapped.ExistsByID(ctx, 3)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = wrapped.ExistsByNaturalKey(ctx, "Acme")
	require.NoError(t, err)
	assert.True(t, exists)

	inner.AssertExpectations(t)
}

func TestCircuitBreakerCatalog_OpenCircuitIsAnError(t *testing.T) {
	ctx := context.Background()
	inner := mocks.NewMockProductRepository()
	cb := newTestBreaker("open-circuit")
	wrapped := NewCircuitBreakerCatalog[model.Product](inner, cb)

	backendErr := errors.New("connection refused")
	inner.On("FindAll", ctx).Return(nil, backendErr).Times(2)

	_, err := wrapped.FindAll(ctx)
	assert.ErrorIs(t, err, backendErr)
	_, err = wrapped.FindAll(ctx)
	assert.ErrorIs(t, err, backendErr)
	require.Equal(t, circuitbreaker.StateOpen, cb.State())

	all, err := wrapped.FindAll(ctx)
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	assert.Nil(t, all)

	_, err = wrapped.FindByID(ctx, 1)
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)

	inner.AssertNumberOfCalls(t, "FindAll", 2)
	inner.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	assert.Same(t, cb, wrapped.GetCircuitBreaker())
}
