package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/catalog-service/internal/domain/model"
)

// runCategoryContract checks the CatalogRepository contract against any backend.
// Categories are used because they exercise natural key uniqueness.
func runCategoryContract(t *testing.T, repo CatalogRepository[model.Category]) {
	ctx := context.Background()

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	shoes, err := repo.Save(ctx, model.Category{Name: "Shoes", Description: "Footwear"})
	require.NoError(t, err)
	assert.NotZero(t, shoes.ID)
	assert.False(t, shoes.CreatedAt.IsZero())

	bags, err := repo.Save(ctx, model.Category{Name: "Bags"})
	require.NoError(t, err)
	assert.Greater(t, bags.ID, shoes.ID)

	t.Run("find all ordered by id", func(t *testing.T) {
		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, shoes.ID, all[0].ID)
		assert.Equal(t, "Bags", all[1].Name)
	})

	t.Run("find by id", func(t *testing.T) {
		got, err := repo.FindByID(ctx, shoes.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Footwear", got.Description)

		missing, err := repo.FindByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("exists", func(t *testing.T) {
		ok, err := repo.ExistsByID(ctx, bags.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.ExistsByNaturalKey(ctx, "Shoes")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.ExistsByNaturalKey(ctx, "Hats")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("duplicate natural key", func(t *testing.T) {
		_, err := repo.Save(ctx, model.Category{Name: "Shoes"})
		assert.ErrorIs(t, err, ErrDuplicateKey)

		renamed := bags
		renamed.Name = "Shoes"
		_, err = repo.Update(ctx, renamed)
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("update", func(t *testing.T) {
		changed := shoes
		changed.Description = "All footwear"
		updated, err := repo.Update(ctx, changed)
		require.NoError(t, err)
		assert.Equal(t, "All footwear", updated.Description)
		assert.False(t, updated.UpdatedAt.Before(shoes.UpdatedAt))

		got, err := repo.FindByID(ctx, shoes.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "All footwear", got.Description)

		_, err = repo.Update(ctx, model.Category{ID: 999999, Name: "Ghost"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		deleted, err := repo.DeleteByID(ctx, bags.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.DeleteByID(ctx, bags.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		ok, err := repo.ExistsByID(ctx, bags.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

// runProductContract checks products keep their numeric fields and allow duplicate names.
func runProductContract(t *testing.T, repo CatalogRepository[model.Product]) {
	ctx := context.Background()

	p1, err := repo.Save(ctx, model.Product{Name: "Runner", Price: 50, Stock: 3, CategoryID: 10, BrandID: 1})
	require.NoError(t, err)
	p2, err := repo.Save(ctx, model.Product{Name: "Runner", Price: 150, Stock: 0, CategoryID: 20, BrandID: 2})
	require.NoError(t, err)
	assert.NotEqual(t, p1.ID, p2.ID)

	got, err := repo.FindByID(ctx, p2.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 150.0, got.Price)
	assert.Equal(t, int64(20), got.CategoryID)
	assert.Equal(t, p2.ID, got.ID)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
