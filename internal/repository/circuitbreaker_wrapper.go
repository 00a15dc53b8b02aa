package repository

import (
	"context"

	"github.com/guttosm/catalog-service/internal/circuitbreaker"
	"github.com/guttosm/catalog-service/internal/domain/model"
)

// CircuitBreakerCatalog wraps a repository with circuit breaker protection.
// An open circuit surfaces as circuitbreaker.ErrCircuitOpen; it is never
// turned into an empty result.
type CircuitBreakerCatalog[E model.Entity[E]] struct {
	repo           CatalogRepository[E]
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewCircuitBreakerCatalog creates a new repository wrapper with circuit breaker.
func NewCircuitBreakerCatalog[E model.Entity[E]](repo CatalogRepository[E], cb *circuitbreaker.CircuitBreaker) *CircuitBreakerCatalog[E] {
	return &CircuitBreakerCatalog[E]{
		repo:           repo,
		circuitBreaker: cb,
	}
}

func (r *CircuitBreakerCatalog[E]) FindAll(ctx context.Context) ([]E, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() ([]E, error) {
		return r.repo.FindAll(ctx)
	})
}

func (r *CircuitBreakerCatalog[E]) FindByID(ctx context.Context, id int64) (*E, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() (*E, error) {
		return r.repo.FindByID(ctx, id)
	})
}

func (r *CircuitBreakerCatalog[E]) Save(ctx context.Context, e E) (E, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() (E, error) {
		return r.repo.Save(ctx, e)
	})
}

func (r *CircuitBreakerCatalog[E]) Update(ctx context.Context, e E) (E, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() (E, error) {
		return r.repo.Update(ctx, e)
	})
}

func (r *CircuitBreakerCatalog[E]) DeleteByID(ctx context.Context, id int64) (bool, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() (bool, error) {
		return r.repo.DeleteByID(ctx, id)
	})
}

func (r *CircuitBreakerCatalog[E]) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() (bool, error) {
		return r.repo.ExistsByID(ctx, id)
	})
}

func (r *CircuitBreakerCatalog[E]) ExistsByNaturalKey(ctx context.Context, key string) (bool, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() (bool, error) {
		return r.repo.ExistsByNaturalKey(ctx, key)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *CircuitBreakerCatalog[E]) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
