//go:build integration

package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMongoDB_Integration(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	t.Run("health check", func(t *testing.T) {
		assert.NoError(t, db.HealthCheck(ctx))
	})

	t.Run("unique indexes created", func(t *testing.T) {
		cursor, err := db.Categories.Indexes().List(ctx)
		require.NoError(t, err)
		var indexes []bson.M
		require.NoError(t, cursor.All(ctx, &indexes))

		found := false
		for _, idx := range indexes {
			if idx["name"] == "name_1" {
				found = idx["unique"] == true
			}
		}
		assert.True(t, found, "categories.name should carry a unique index")
	})

	t.Run("next id is sequential and concurrent safe", func(t *testing.T) {
		var (
			wg  sync.WaitGroup
			mu  sync.Mutex
			ids = map[int64]bool{}
		)
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				id, err := db.NextID(ctx, "sequence_test")
				assert.NoError(t, err)
				mu.Lock()
				ids[id] = true
				mu.Unlock()
			}()
		}
		wg.Wait()

		assert.Len(t, ids, 20)
		for id := int64(1); id <= 20; id++ {
			assert.True(t, ids[id], "missing id %d", id)
		}
	})

	t.Run("invalid uri fails", func(t *testing.T) {
		cfg := DefaultMongoConfig()
		cfg.ConnectTimeout = 1
		_, err := NewMongoDBWithConfig("mongodb://127.0.0.1:1", "x", cfg)
		assert.Error(t, err)
	})
}

func TestMongoCatalog_CategoryContract(t *testing.T) {
	runCategoryContract(t, NewMongoCategoryRepository(setupTestDB(t)))
}

func TestMongoCatalog_ProductContract(t *testing.T) {
	runProductContract(t, NewMongoProductRepository(setupTestDB(t)))
}

func TestMongoCatalog_UserEmailUnique(t *testing.T) {
	repo := NewMongoUserRepository(setupTestDB(t))
	runUserUniqueness(t, repo)
}
