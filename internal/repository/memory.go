package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/guttosm/catalog-service/internal/domain/model"
)

// MemoryCatalog keeps entities in a map. It backs DATABASE_BACKEND=memory and
// the service tests.
type MemoryCatalog[E model.Entity[E]] struct {
	mu        sync.RWMutex
	items     map[int64]E
	seq       int64
	uniqueKey bool
}

// NewMemoryCatalog creates an empty store. When uniqueKey is set, Save and
// Update reject a natural key already used by another entity.
func NewMemoryCatalog[E model.Entity[E]](uniqueKey bool) *MemoryCatalog[E] {
	return &MemoryCatalog[E]{
		items:     make(map[int64]E),
		uniqueKey: uniqueKey,
	}
}

func NewMemoryProductRepository() *MemoryCatalog[model.Product] {
	return NewMemoryCatalog[model.Product](false)
}

func NewMemoryCategoryRepository() *MemoryCatalog[model.Category] {
	return NewMemoryCatalog[model.Category](true)
}

func NewMemoryBrandRepository() *MemoryCatalog[model.Brand] {
	return NewMemoryCatalog[model.Brand](true)
}

func NewMemoryUserRepository() *MemoryCatalog[model.User] {
	return NewMemoryCatalog[model.User](true)
}

// FindAll returns every entity ordered by identifier.
func (r *MemoryCatalog[E]) FindAll(_ context.Context) ([]E, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]E, 0, len(r.items))
	for _, e := range r.items {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntityID() < out[j].EntityID() })
	return out, nil
}

func (r *MemoryCatalog[E]) FindByID(_ context.Context, id int64) (*E, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *MemoryCatalog[E]) Save(_ context.Context, e E) (E, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.uniqueKey && r.keyTaken(e.NaturalKey(), 0) {
		var zero E
		return zero, fmt.Errorf("%w: %q", ErrDuplicateKey, e.NaturalKey())
	}
	r.seq++
	e = e.WithID(r.seq).Touch(time.Now())
	r.items[r.seq] = e
	return e, nil
}

func (r *MemoryCatalog[E]) Update(_ context.Context, e E) (E, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero E
	id := e.EntityID()
	if _, ok := r.items[id]; !ok {
		return zero, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if r.uniqueKey && r.keyTaken(e.NaturalKey(), id) {
		return zero, fmt.Errorf("%w: %q", ErrDuplicateKey, e.NaturalKey())
	}
	e = e.Touch(time.Now())
	r.items[id] = e
	return e, nil
}

func (r *MemoryCatalog[E]) DeleteByID(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func (r *MemoryCatalog[E]) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[id]
	return ok, nil
}

func (r *MemoryCatalog[E]) ExistsByNaturalKey(_ context.Context, key string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.keyTaken(key, 0), nil
}

// keyTaken must be called with mu held. exceptID skips the entity being updated.
func (r *MemoryCatalog[E]) keyTaken(key string, exceptID int64) bool {
	for id, e := range r.items {
		if id != exceptID && e.NaturalKey() == key {
			return true
		}
	}
	return false
}
