//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/guttosm/catalog-service/internal/domain/model"
)

func setupRedis(t *testing.T) redis.UniversalClient {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = testcontainers.TerminateContainer(container)
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(uri)
	require.NoError(t, err)

	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestRedisStore_Integration(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		store := NewRedisStore[model.Product](client, "catalog:", time.Minute)
		p := model.Product{ID: 1, Name: "P1", Price: 50, CategoryID: 10}

		require.NoError(t, store.Put(ctx, Key(EntityProduct, 1), p))
		got, ok, err := store.Get(ctx, Key(EntityProduct, 1))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, p, got)

		raw, err := client.Get(ctx, "catalog:product:1").Result()
		require.NoError(t, err)
		assert.Contains(t, raw, `"name":"P1"`)
	})

	t.Run("miss", func(t *testing.T) {
		store := NewRedisStore[model.Product](client, "catalog:", time.Minute)
		_, ok, err := store.Get(ctx, "product:404")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("ttl applied natively", func(t *testing.T) {
		store := NewRedisStore[[]model.Brand](client, "catalog:", time.Minute)
		require.NoError(t, store.Put(ctx, AllKey(EntityBrand), []model.Brand{{ID: 1}}))

		ttl, err := client.TTL(ctx, "catalog:brands:all").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, 50*time.Second)
		assert.LessOrEqual(t, ttl, time.Minute)
	})

	t.Run("expired entry is a miss", func(t *testing.T) {
		store := NewRedisStore[string](client, "catalog:", time.Second)
		require.NoError(t, store.Put(ctx, "short", "lived"))

		assert.Eventually(t, func() bool {
			_, ok, err := store.Get(ctx, "short")
			return err == nil && !ok
		}, 5*time.Second, 100*time.Millisecond)
	})

	t.Run("put if generation rejects values loaded before invalidate", func(t *testing.T) {
		store := NewRedisStore[string](client, "catalog:", time.Minute)

		gen, err := store.Generation(ctx, "brand:9")
		require.NoError(t, err)
		require.NoError(t, store.Invalidate(ctx, "brand:9"))

		stored, err := store.PutIfGeneration(ctx, "brand:9", "old", gen)
		require.NoError(t, err)
		assert.False(t, stored)
		_, ok, err := store.Get(ctx, "brand:9")
		require.NoError(t, err)
		assert.False(t, ok)

		gen, err = store.Generation(ctx, "brand:9")
		require.NoError(t, err)
		stored, err = store.PutIfGeneration(ctx, "brand:9", "new", gen)
		require.NoError(t, err)
		assert.True(t, stored)

		ttl, err := client.TTL(ctx, "catalog:brand:9").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, 50*time.Second)
	})

	t.Run("invalidate is idempotent", func(t *testing.T) {
		store := NewRedisStore[string](client, "catalog:", time.Minute)
		require.NoError(t, store.Put(ctx, "k", "v"))

		require.NoError(t, store.Invalidate(ctx, "k"))
		require.NoError(t, store.Invalidate(ctx, "k"))

		_, ok, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("corrupt value is a transport error", func(t *testing.T) {
		store := NewRedisStore[model.Product](client, "catalog:", time.Minute)
		require.NoError(t, client.Set(ctx, "catalog:product:99", "{not json", time.Minute).Err())

		_, ok, err := store.Get(ctx, "product:99")
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrTransport)
	})

	t.Run("unencodable value is a transport error", func(t *testing.T) {
		store := NewRedisStore[chan int](client, "catalog:", time.Minute)
		err := store.Put(ctx, "chan", make(chan int))
		assert.ErrorIs(t, err, ErrTransport)
	})

	t.Run("provider wraps client", func(t *testing.T) {
		p := NewRedisProvider(client, "catalog:", time.Minute)
		assert.Equal(t, BackendRedis, p.Backend())
		assert.NoError(t, p.Ping(ctx))

		store := NewStore[int](p)
		_, isRedis := store.(*RedisStore[int])
		assert.True(t, isRedis)
		assert.NoError(t, p.Close())
		assert.NoError(t, client.Ping(ctx).Err(), "provider must not close a client it does not own")
	})
}
