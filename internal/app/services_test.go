//go:build !integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/catalog-service/config"
	"github.com/guttosm/catalog-service/internal/cache"
	"github.com/guttosm/catalog-service/internal/domain/model"
)

func TestInitializeCache(t *testing.T) {
	ctx := context.Background()

	t.Run("local backend", func(t *testing.T) {
		provider, err := InitializeCache(ctx, config.CacheConfig{Backend: config.CacheLocal, TTL: time.Minute, SweepInterval: time.Minute})
		require.NoError(t, err)
		t.Cleanup(func() { _ = provider.Close() })

		assert.Equal(t, cache.BackendLocal, provider.Backend())
		assert.NoError(t, provider.Ping(ctx))
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := InitializeCache(ctx, config.CacheConfig{Backend: "memcached"})
		assert.Error(t, err)
	})

	t.Run("unreachable redis", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()

		_, err := InitializeCache(ctx, config.CacheConfig{Backend: config.CacheRedis, RedisAddr: "127.0.0.1:1"})
		assert.Error(t, err)
	})
}

func TestInitializeServices(t *testing.T) {
	ctx := context.Background()

	db, err := InitializeDatabase(ctx, config.DatabaseConfig{Backend: config.BackendMemory})
	require.NoError(t, err)
	provider := cache.NewMemoryProvider(cache.NewMemory(time.Minute))

	services := InitializeServices(db, provider, config.UsersConfig{PasswordCost: 4})

	require.NotNil(t, services)
	assert.NotNil(t, services.Products)
	assert.NotNil(t, services.Categories)
	assert.NotNil(t, services.Brands)
	assert.NotNil(t, services.Users)

	t.Run("services share the repositories", func(t *testing.T) {
		c, err := services.Categories.Save(ctx, model.Category{Name: "Shoes"})
		require.NoError(t, err)
		b, err := services.Brands.Save(ctx, model.Brand{Name: "Acme"})
		require.NoError(t, err)

		p, err := services.Products.Save(ctx, model.Product{Name: "Runner", CategoryID: c.ID, BrandID: b.ID})
		require.NoError(t, err)
		assert.NotZero(t, p.ID)
	})

	t.Run("users hash with the configured cost", func(t *testing.T) {
		u, err := services.Users.Create(ctx, model.User{Email: "ops@example.com", Username: "ops"}, "s3cret-pass")
		require.NoError(t, err)

		cost, err := bcrypt.Cost([]byte(u.Password))
		require.NoError(t, err)
		assert.Equal(t, 4, cost)
	})
}
