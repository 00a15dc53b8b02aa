// Package cache provides the TTL cache stores used by the catalog services.
//
// A Store is typed; the backing storage is either a process-local sharded map
// (Memory) or a Redis server. Both expire entries by age and report a miss as
// (zero, false, nil). Only encode/decode failures of the remote backend surface
// as *TransportError.
package cache

import (
	"context"
	"errors"
	"fmt"
)

// Store is a typed cache with per-entry time-to-live.
// Implementations are safe for concurrent use.
type Store[T any] interface {
	// Put stores value under key, replacing any existing entry.
	Put(ctx context.Context, key string, value T) error
	// Get returns the value when present and not expired. Expired entries are
	// removed as a side effect and reported as a miss.
	Get(ctx context.Context, key string) (T, bool, error)
	// Invalidate removes the entry and advances its generation. Removing an
	// absent key is not an error.
	Invalidate(ctx context.Context, key string) error
	// Generation returns the number of times key has been invalidated.
	Generation(ctx context.Context, key string) (uint64, error)
	// PutIfGeneration stores value only while key is still at generation gen,
	// so a value loaded before an invalidation is never cached after it.
	// It reports whether the value was stored.
	PutIfGeneration(ctx context.Context, key string, value T, gen uint64) (bool, error)
}

// ErrTransport matches every *TransportError.
var ErrTransport = errors.New("cache transport failure")

// TransportError reports a value that could not be encoded for, or decoded from,
// the cache backend. It is never a miss.
type TransportError struct {
	Op  string
	Key string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("cache %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrTransport) true for any TransportError.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// StoreOption configures a typed store.
type StoreOption[T any] func(*storeOptions[T])

type storeOptions[T any] struct {
	clone func(T) T
}

// WithClone sets a copy function applied when values enter and leave the local
// store, so callers never share a cached slice's backing array. Remote stores
// copy through encoding and ignore it.
func WithClone[T any](clone func(T) T) StoreOption[T] {
	return func(o *storeOptions[T]) {
		o.clone = clone
	}
}

func buildOptions[T any](opts []StoreOption[T]) storeOptions[T] {
	var o storeOptions[T]
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
