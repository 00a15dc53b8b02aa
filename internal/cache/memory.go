package cache

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/guttosm/catalog-service/internal/metrics"
)

const defaultShards = 16

// entry is immutable once stored; Put swaps the pointer.
type entry struct {
	value      any
	insertedAt time.Time
}

type shard struct {
	mu    sync.RWMutex
	items map[string]*entry
	// gens counts invalidations per key. It survives expiry.
	gens map[string]uint64
}

// Memory is a process-local sharded map with lazy TTL expiry.
// Keys are spread over shards by FNV-1a hash to reduce lock contention.
// A single Memory backs every typed MemoryStore of the process.
type Memory struct {
	shards []*shard
	mask   uint32
	ttl    time.Duration
	now    func() time.Time
}

// MemoryOption configures a Memory.
type MemoryOption func(*Memory)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		m.now = now
	}
}

// WithShards sets the shard count, rounded up to a power of two.
func WithShards(n int) MemoryOption {
	return func(m *Memory) {
		m.shards = newShards(n)
	}
}

// NewMemory creates a local store. A ttl <= 0 disables expiry.
func NewMemory(ttl time.Duration, opts ...MemoryOption) *Memory {
	m := &Memory{
		ttl: ttl,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.shards == nil {
		m.shards = newShards(defaultShards)
	}
	m.mask = uint32(len(m.shards) - 1)
	return m
}

func newShards(n int) []*shard {
	size := 1
	for size < n {
		size *= 2
	}
	shards := make([]*shard, size)
	for i := range shards {
		shards[i] = &shard{items: make(map[string]*entry), gens: make(map[string]uint64)}
	}
	return shards
}

func (m *Memory) shardFor(key string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return m.shards[h.Sum32()&m.mask]
}

func (m *Memory) expired(e *entry, now time.Time) bool {
	return m.ttl > 0 && now.Sub(e.insertedAt) > m.ttl
}

func (m *Memory) put(key string, value any) {
	s := m.shardFor(key)
	e := &entry{value: value, insertedAt: m.now()}

	s.mu.Lock()
	s.items[key] = e
	s.mu.Unlock()

	metrics.RecordCacheOperation("put", "success")
}

func (m *Memory) putIfGeneration(key string, value any, gen uint64) bool {
	s := m.shardFor(key)
	e := &entry{value: value, insertedAt: m.now()}

	s.mu.Lock()
	stored := s.gens[key] == gen
	if stored {
		s.items[key] = e
	}
	s.mu.Unlock()

	if !stored {
		metrics.RecordCacheOperation("put", "stale")
		return false
	}
	metrics.RecordCacheOperation("put", "success")
	return true
}

func (m *Memory) generation(key string) uint64 {
	s := m.shardFor(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gens[key]
}

func (m *Memory) get(key string) (any, bool) {
	s := m.shardFor(key)

	s.mu.RLock()
	e, ok := s.items[key]
	s.mu.RUnlock()

	if !ok {
		metrics.RecordCacheOperation("get", "miss")
		return nil, false
	}

	if m.expired(e, m.now()) {
		s.mu.Lock()
		// A concurrent Put may have replaced the entry; only drop the one we saw.
		if current, stillExists := s.items[key]; stillExists && current == e {
			delete(s.items, key)
		}
		s.mu.Unlock()
		metrics.RecordCacheOperation("get", "expired")
		return nil, false
	}

	metrics.RecordCacheOperation("get", "hit")
	return e.value, true
}

func (m *Memory) invalidate(key string) {
	s := m.shardFor(key)

	s.mu.Lock()
	delete(s.items, key)
	s.gens[key]++
	s.mu.Unlock()

	metrics.RecordCacheOperation("invalidate", "success")
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	n := 0
	for _, s := range m.shards {
		s.mu.RLock()
		n += len(s.items)
		s.mu.RUnlock()
	}
	return n
}

// Sweep removes every expired entry and returns how many were dropped.
// Reads never depend on it; expired entries are already hidden from Get.
func (m *Memory) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}
	now := m.now()
	removed := 0
	for _, s := range m.shards {
		s.mu.Lock()
		for key, e := range s.items {
			if m.expired(e, now) {
				delete(s.items, key)
				removed++
			}
		}
		s.mu.Unlock()
	}
	if removed > 0 {
		metrics.RecordCacheOperation("sweep", "evicted")
	}
	metrics.UpdateCacheEntries(m.Len())
	return removed
}

// RunJanitor sweeps every interval until ctx is done.
func (m *Memory) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// MemoryStore is a typed view over a shared Memory.
type MemoryStore[T any] struct {
	mem   *Memory
	clone func(T) T
}

// NewMemoryStore returns a typed store backed by mem.
func NewMemoryStore[T any](mem *Memory, opts ...StoreOption[T]) *MemoryStore[T] {
	o := buildOptions(opts)
	return &MemoryStore[T]{mem: mem, clone: o.clone}
}

// Put implements Store.
func (s *MemoryStore[T]) Put(_ context.Context, key string, value T) error {
	if s.clone != nil {
		value = s.clone(value)
	}
	s.mem.put(key, value)
	return nil
}

// Get implements Store.
func (s *MemoryStore[T]) Get(_ context.Context, key string) (T, bool, error) {
	var zero T
	raw, ok := s.mem.get(key)
	if !ok {
		return zero, false, nil
	}
	value, ok := raw.(T)
	if !ok {
		return zero, false, &TransportError{
			Op:  "get",
			Key: key,
			Err: fmt.Errorf("stored value is %T, want %T", raw, zero),
		}
	}
	if s.clone != nil {
		value = s.clone(value)
	}
	return value, true, nil
}

// Invalidate implements Store.
func (s *MemoryStore[T]) Invalidate(_ context.Context, key string) error {
	s.mem.invalidate(key)
	return nil
}

// Generation implements Store.
func (s *MemoryStore[T]) Generation(_ context.Context, key string) (uint64, error) {
	return s.mem.generation(key), nil
}

// PutIfGeneration implements Store.
func (s *MemoryStore[T]) PutIfGeneration(_ context.Context, key string, value T, gen uint64) (bool, error) {
	if s.clone != nil {
		value = s.clone(value)
	}
	return s.mem.putIfGeneration(key, value, gen), nil
}
