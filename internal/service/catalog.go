// Package service contains the catalog business logic: cache-aside reads and
// write-then-invalidate mutations over the persistence backends.
package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/guttosm/catalog-service/internal/cache"
	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/guttosm/catalog-service/internal/logger"
	"github.com/guttosm/catalog-service/internal/metrics"
	"github.com/guttosm/catalog-service/internal/repository"
)

// catalog is the cache-aside engine shared by the product, category and brand services.
// The single-entity and collection stores are separate typed views of the same backend;
// keys never collide because the key scheme namespaces them.
type catalog[E model.Entity[E]] struct {
	entity cache.EntityType
	repo   repository.CatalogRepository[E]
	one    cache.Store[E]
	all    cache.Store[[]E]
	log    zerolog.Logger
}

func newCatalog[E model.Entity[E]](entity cache.EntityType, repo repository.CatalogRepository[E], provider *cache.Provider) *catalog[E] {
	return &catalog[E]{
		entity: entity,
		repo:   repo,
		one:    cache.NewStore[E](provider),
		all:    cache.NewStore[[]E](provider, cache.WithClone[[]E](slices.Clone[[]E])),
		log:    logger.Component("service").With().Str("entity", string(entity)).Logger(),
	}
}

// record publishes the outcome of an operation; use with defer and a named error.
func (c *catalog[E]) record(op string, start time.Time, err *error) {
	status := "success"
	if *err != nil {
		status = "error"
	}
	metrics.RecordCatalogOperation(string(c.entity), op, status, time.Since(start))
}

// getAll serves the unfiltered collection from cache, loading it on a miss.
func (c *catalog[E]) getAll(ctx context.Context) (items []E, err error) {
	defer c.record("get_all", time.Now(), &err)

	key := cache.AllKey(c.entity)
	items, ok, err := c.all.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if ok {
		c.log.Debug().Str("key", key).Msg("cache hit")
		return items, nil
	}

	c.log.Debug().Str("key", key).Msg("cache miss")
	gen, err := c.all.Generation(ctx, key)
	if err != nil {
		return nil, err
	}
	items, err = c.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []E{}
	}
	if err := fill(ctx, c, c.all.PutIfGeneration, key, items, gen); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *catalog[E]) getByID(ctx context.Context, id int64) (e E, err error) {
	defer c.record("get_by_id", time.Now(), &err)
	return c.load(ctx, id)
}

// load is the cache-or-backend read shared by getByID and update.
func (c *catalog[E]) load(ctx context.Context, id int64) (E, error) {
	var zero E
	key := cache.Key(c.entity, id)

	e, ok, err := c.one.Get(ctx, key)
	if err != nil {
		return zero, err
	}
	if ok {
		c.log.Debug().Str("key", key).Msg("cache hit")
		return e, nil
	}

	c.log.Debug().Str("key", key).Msg("cache miss")
	gen, err := c.one.Generation(ctx, key)
	if err != nil {
		return zero, err
	}
	found, err := c.repo.FindByID(ctx, id)
	if err != nil {
		return zero, err
	}
	if found == nil {
		return zero, fmt.Errorf("%w: %s %d", ErrNotFound, c.entity, id)
	}
	if err := fill(ctx, c, c.one.PutIfGeneration, key, *found, gen); err != nil {
		return zero, err
	}
	return *found, nil
}

// fill caches a value read from the backend unless the key was invalidated
// after gen was taken. The loaded value is still returned to the caller.
func fill[E model.Entity[E], T any](
	ctx context.Context,
	c *catalog[E],
	put func(context.Context, string, T, uint64) (bool, error),
	key string,
	value T,
	gen uint64,
) error {
	stored, err := put(ctx, key, value, gen)
	if err != nil {
		return err
	}
	if !stored {
		c.log.Debug().Str("key", key).Msg("skipped caching value invalidated during load")
	}
	return nil
}

// save persists e and drops the collection entry. The single-entity key is left
// to be populated by the next read.
func (c *catalog[E]) save(ctx context.Context, e E, check func(context.Context, E) error) (saved E, err error) {
	defer c.record("save", time.Now(), &err)

	var zero E
	if check != nil {
		if err := check(ctx, e); err != nil {
			return zero, err
		}
	}

	saved, err = c.repo.Save(ctx, e)
	if err != nil {
		return zero, err
	}
	if err := c.all.Invalidate(ctx, cache.AllKey(c.entity)); err != nil {
		return zero, err
	}
	c.log.Debug().Int64("id", saved.EntityID()).Msg("saved")
	return saved, nil
}

// update merges a partial change into the current entity, persists it and drops
// the single-entity key before the collection key.
func (c *catalog[E]) update(
	ctx context.Context,
	id int64,
	apply func(E) E,
	check func(ctx context.Context, current, next E) error,
) (updated E, err error) {
	defer c.record("update", time.Now(), &err)

	var zero E
	current, err := c.load(ctx, id)
	if err != nil {
		return zero, err
	}

	next := apply(current).WithID(id)
	if check != nil {
		if err := check(ctx, current, next); err != nil {
			return zero, err
		}
	}

	updated, err = c.repo.Update(ctx, next)
	if err != nil {
		return zero, err
	}
	if err := c.invalidate(ctx, id); err != nil {
		return zero, err
	}
	return updated, nil
}

// deleteByID removes the entity. Cache entries are only dropped when something was deleted.
func (c *catalog[E]) deleteByID(ctx context.Context, id int64) (deleted bool, err error) {
	defer c.record("delete", time.Now(), &err)

	deleted, err = c.repo.DeleteByID(ctx, id)
	if err != nil || !deleted {
		return false, err
	}
	if err := c.invalidate(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

func (c *catalog[E]) invalidate(ctx context.Context, id int64) error {
	if err := c.one.Invalidate(ctx, cache.Key(c.entity, id)); err != nil {
		return err
	}
	return c.all.Invalidate(ctx, cache.AllKey(c.entity))
}

// uniqueName returns a check rejecting a natural key already in use.
func uniqueName[E model.Entity[E]](repo repository.CatalogRepository[E]) func(context.Context, E) error {
	return func(ctx context.Context, e E) error {
		taken, err := repo.ExistsByNaturalKey(ctx, e.NaturalKey())
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: %q", ErrConflict, e.NaturalKey())
		}
		return nil
	}
}

// uniqueRename applies uniqueName only when the natural key changes.
func uniqueRename[E model.Entity[E]](repo repository.CatalogRepository[E]) func(context.Context, E, E) error {
	check := uniqueName(repo)
	return func(ctx context.Context, current, next E) error {
		if current.NaturalKey() == next.NaturalKey() {
			return nil
		}
		return check(ctx, next)
	}
}
