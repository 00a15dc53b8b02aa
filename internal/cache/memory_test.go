//go:build !integration

package cache

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/catalog-service/internal/domain/model"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemoryStore_PutGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore[model.Product](NewMemory(time.Minute))
	p1 := model.Product{ID: 1, Name: "P1"}

	require.NoError(t, store.Put(ctx, "product:1", p1))

	got, ok, err := store.Get(ctx, "product:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, p1, got)

	_, ok, err = store.Get(ctx, "product:2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	ttl := 10 * time.Minute
	const epsilon = time.Millisecond

	tests := []struct {
		name    string
		elapsed time.Duration
		want    bool
	}{
		{"just inside ttl", ttl - epsilon, true},
		{"exactly ttl", ttl, true},
		{"just past ttl", ttl + epsilon, false},
		{"long past ttl", 3 * ttl, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock()
			mem := NewMemory(ttl, WithClock(clock.Now))
			store := NewMemoryStore[model.Product](mem)

			require.NoError(t, store.Put(ctx, "product:1", model.Product{ID: 1}))
			clock.Advance(tt.elapsed)

			_, ok, err := store.Get(ctx, "product:1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			if !tt.want {
				assert.Equal(t, 0, mem.Len(), "expired entry should be removed on read")
			}
		})
	}
}

func TestMemoryStore_PutReplacesEntryAndResetsAge(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := NewMemoryStore[string](NewMemory(time.Minute, WithClock(clock.Now)))

	require.NoError(t, store.Put(ctx, "k", "old"))
	clock.Advance(50 * time.Second)
	require.NoError(t, store.Put(ctx, "k", "new"))
	clock.Advance(50 * time.Second)

	got, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "new", got)
}

func TestMemoryStore_NoExpiryWhenTTLDisabled(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := NewMemoryStore[int](NewMemory(0, WithClock(clock.Now)))

	require.NoError(t, store.Put(ctx, "k", 7))
	clock.Advance(24 * time.Hour)

	got, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7, got)
}

func TestMemoryStore_InvalidateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory(time.Minute)
	store := NewMemoryStore[string](mem)

	require.NoError(t, store.Put(ctx, "brands:all", "x"))
	require.NoError(t, store.Put(ctx, "brand:1", "y"))

	require.NoError(t, store.Invalidate(ctx, "brands:all"))
	lenAfterFirst := mem.Len()
	require.NoError(t, store.Invalidate(ctx, "brands:all"))

	assert.Equal(t, lenAfterFirst, mem.Len())
	_, ok, _ := store.Get(ctx, "brands:all")
	assert.False(t, ok)
	_, ok, _ = store.Get(ctx, "brand:1")
	assert.True(t, ok)

	assert.NoError(t, store.Invalidate(ctx, "never-stored"))
}

func TestMemoryStore_TypeMismatchIsTransportError(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory(time.Minute)
	require.NoError(t, NewMemoryStore[string](mem).Put(ctx, "k", "text"))

	_, ok, err := NewMemoryStore[int](mem).Get(ctx, "k")

	assert.False(t, ok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "get", te.Op)
	assert.Equal(t, "k", te.Key)
}

func TestMemoryStore_CloneIsolatesCallers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore[[]model.Brand](NewMemory(time.Minute), WithClone(slices.Clone[[]model.Brand]))

	brands := []model.Brand{{ID: 1, Name: "Acme"}}
	require.NoError(t, store.Put(ctx, "brands:all", brands))
	brands[0].Name = "mutated after put"

	got, ok, err := store.Get(ctx, "brands:all")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Acme", got[0].Name)

	got[0].Name = "mutated after get"
	again, _, _ := store.Get(ctx, "brands:all")
	assert.Equal(t, "Acme", again[0].Name)
}

func TestMemory_Sweep(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	mem := NewMemory(time.Minute, WithClock(clock.Now))
	store := NewMemoryStore[int](mem)

	require.NoError(t, store.Put(ctx, "old", 1))
	clock.Advance(2 * time.Minute)
	require.NoError(t, store.Put(ctx, "fresh", 2))

	assert.Equal(t, 1, mem.Sweep())
	assert.Equal(t, 1, mem.Len())
	assert.Equal(t, 0, mem.Sweep())
}

func TestMemory_RunJanitorStopsOnCancel(t *testing.T) {
	mem := NewMemory(time.Nanosecond)
	store := NewMemoryStore[int](mem)
	require.NoError(t, store.Put(context.Background(), "k", 1))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		mem.RunJanitor(ctx, time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return mem.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestMemory_ShardsSpreadKeys(t *testing.T) {
	mem := NewMemory(time.Minute, WithShards(3))
	store := NewMemoryStore[int](mem)
	for i := 0; i < 20; i++ {
		require.NoError(t, store.Put(context.Background(), fmt.Sprintf("k%d", i), i))
	}
	assert.Len(t, mem.shards, 4)
	assert.Equal(t, 20, mem.Len())

	used := 0
	for _, s := range mem.shards {
		if len(s.items) > 0 {
			used++
		}
	}
	assert.Greater(t, used, 1)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore[model.Product](NewMemory(time.Minute))
	const workers = 32

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("product:%d", i%8)
				switch (w + i) % 3 {
				case 0:
					_ = store.Put(ctx, key, model.Product{ID: int64(i % 8), Name: key})
				case 1:
					if p, ok, err := store.Get(ctx, key); err == nil && ok {
						// Racing writers only ever store complete values for this key.
						assert.Equal(t, key, p.Name)
					}
				default:
					_ = store.Invalidate(ctx, key)
				}
			}
		}(w)
	}
	wg.Wait()
}

func TestMemoryStore_PutIfGeneration(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore[string](NewMemory(time.Minute))

	gen, err := store.Generation(ctx, "brand:1")
	require.NoError(t, err)
	assert.Zero(t, gen)

	stored, err := store.PutIfGeneration(ctx, "brand:1", "loaded", gen)
	require.NoError(t, err)
	assert.True(t, stored)

	stale, err := store.Generation(ctx, "brand:1")
	require.NoError(t, err)
	require.NoError(t, store.Invalidate(ctx, "brand:1"))

	stored, err = store.PutIfGeneration(ctx, "brand:1", "old", stale)
	require.NoError(t, err)
	assert.False(t, stored)
	_, ok, err := store.Get(ctx, "brand:1")
	require.NoError(t, err)
	assert.False(t, ok, "value loaded before the invalidation must not be cached")

	fresh, err := store.Generation(ctx, "brand:1")
	require.NoError(t, err)
	assert.Equal(t, stale+1, fresh)
	stored, err = store.PutIfGeneration(ctx, "brand:1", "new", fresh)
	require.NoError(t, err)
	assert.True(t, stored)

	got, ok, err := store.Get(ctx, "brand:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "new", got)
}
