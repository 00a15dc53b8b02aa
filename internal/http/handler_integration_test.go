//go:build integration

package http

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/catalog-service/internal/cache"
	"github.com/guttosm/catalog-service/internal/circuitbreaker"
	"github.com/guttosm/catalog-service/internal/domain/dto"
	"github.com/guttosm/catalog-service/internal/domain/model"
	"github.com/guttosm/catalog-service/internal/repository"
	"github.com/guttosm/catalog-service/internal/service"
	"github.com/guttosm/catalog-service/internal/testutil"
)

// setupIntegrationEnv wires the router over MongoDB repositories guarded by
// circuit breakers and a Redis cache, the way the server runs in production.
func setupIntegrationEnv(t *testing.T) (*testEnv, *repository.MongoDB, redis.UniversalClient) {
	t.Helper()
	ctx := context.Background()

	db, err := repository.NewMongoDB(testutil.SharedURI(testutil.MongoDB), testutil.SanitizeDBName(t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Database.Drop(ctx)
		_ = db.Close(ctx)
	})

	opts, err := redis.ParseURL(testutil.SharedURI(testutil.Redis))
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })
	prefix := testutil.SanitizeDBName(t.Name()) + ":"
	provider := cache.NewRedisProvider(client, prefix, time.Minute)

	breaker := func(name string) *circuitbreaker.CircuitBreaker {
		cfg := circuitbreaker.DefaultConfig()
		cfg.Name = name
		return circuitbreaker.New(cfg)
	}
	productsCB, categoriesCB, brandsCB := breaker("products"), breaker("categories"), breaker("brands")

	products := repository.NewCircuitBreakerCatalog[model.Product](repository.NewMongoProductRepository(db), productsCB)
	categories := repository.NewCircuitBreakerCatalog[model.Category](repository.NewMongoCategoryRepository(db), categoriesCB)
	brands := repository.NewCircuitBreakerCatalog[model.Brand](repository.NewMongoBrandRepository(db), brandsCB)
	users := repository.NewMongoUserRepository(db)

	health := NewHealthHandler()
	health.RegisterChecker("mongodb", CheckFunc(db.HealthCheck))
	health.RegisterChecker("cache", CheckFunc(provider.Ping))
	health.RegisterCircuitBreaker("products", productsCB)
	health.RegisterCircuitBreaker("categories", categoriesCB)
	health.RegisterCircuitBreaker("brands", brandsCB)

	cfg := DefaultRouterConfig()
	cfg.RateLimit = 0

	brandHandler := NewBrandHandler(service.NewBrandService(brands, provider))
	router := NewRouter(health, cfg,
		NewProductHandler(service.NewProductService(products, categories, brands, provider)),
		NewCategoryHandler(service.NewCategoryService(categories, provider)),
		brandHandler,
		NewUserHandler(service.NewUserService(users).WithHashCost(bcrypt.MinCost)),
	)
	return &testEnv{router: router, brands: brandHandler}, db, client
}

func TestIntegration_Readiness(t *testing.T) {
	env, _, _ := setupIntegrationEnv(t)

	w := env.do(http.MethodGet, "/readyz", "")
	requireStatus(t, http.StatusOK, w)
	assert.Contains(t, w.Body.String(), `"mongodb":"ok"`)
	assert.Contains(t, w.Body.String(), `"products_circuit":"closed"`)
}

func TestIntegration_ProductLifecycle(t *testing.T) {
	env, _, client := setupIntegrationEnv(t)
	ctx := context.Background()
	prefix := testutil.SanitizeDBName(t.Name()) + ":"
	categoryID, brandID := env.seed(t)

	for i, price := range []float64{25, 75, 125} {
		body := fmt.Sprintf(`{"name":"Item %d","price":%v,"stock":%d,"category_id":%d,"brand_id":%d}`, i, price, i, categoryID, brandID)
		requireStatus(t, http.StatusCreated, env.do(http.MethodPost, "/api/products", body))
	}

	w := env.do(http.MethodGet, "/api/products", "")
	requireStatus(t, http.StatusOK, w)
	assert.Equal(t, 3, data[dto.ListResponse[model.Product]](t, w).Count)

	n, err := client.Exists(ctx, prefix+"products:all").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "unfiltered read populates the collection key")

	w = env.do(http.MethodGet, "/api/products?minPrice=50&maxPrice=100", "")
	requireStatus(t, http.StatusOK, w)
	list := data[dto.ListResponse[model.Product]](t, w)
	require.Equal(t, 1, list.Count)
	id := list.Items[0].ID

	requireStatus(t, http.StatusOK, env.do(http.MethodGet, fmt.Sprintf("/api/products/%d", id), ""))
	n, err = client.Exists(ctx, prefix+fmt.Sprintf("product:%d", id)).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	w = env.do(http.MethodPatch, fmt.Sprintf("/api/products/%d", id), `{"stock":40}`)
	requireStatus(t, http.StatusOK, w)

	n, err = client.Exists(ctx, prefix+"products:all", prefix+fmt.Sprintf("product:%d", id)).Result()
	require.NoError(t, err)
	assert.Zero(t, n, "a write invalidates both the entity and collection keys")

	w = env.do(http.MethodGet, fmt.Sprintf("/api/products/%d", id), "")
	requireStatus(t, http.StatusOK, w)
	assert.Equal(t, 40, data[model.Product](t, w).Stock)

	requireStatus(t, http.StatusOK, env.do(http.MethodDelete, fmt.Sprintf("/api/products/%d", id), ""))
	requireStatus(t, http.StatusNotFound, env.do(http.MethodGet, fmt.Sprintf("/api/products/%d", id), ""))
}

func TestIntegration_UniqueNames(t *testing.T) {
	env, _, _ := setupIntegrationEnv(t)

	requireStatus(t, http.StatusCreated, env.do(http.MethodPost, "/api/categories", `{"name":"Outdoor"}`))
	w := env.do(http.MethodPost, "/api/categories", `{"name":"Outdoor"}`)
	requireStatus(t, http.StatusConflict, w)
	assert.Equal(t, dto.ErrCodeConflict, errorOf(t, w).Error)

	requireStatus(t, http.StatusCreated, env.do(http.MethodPost, "/api/users", `{"email":"a@example.com","username":"alpha","password":"password123"}`))
	requireStatus(t, http.StatusConflict, env.do(http.MethodPost, "/api/users", `{"email":"a@example.com","username":"beta","password":"password123"}`))
}

func TestIntegration_BackendDown(t *testing.T) {
	env, db, _ := setupIntegrationEnv(t)
	require.NoError(t, db.Close(context.Background()))

	var last int
	for i := 0; i < circuitbreaker.DefaultConfig().FailureThreshold+1; i++ {
		last = env.do(http.MethodGet, "/api/brands", "").Code
	}
	assert.Equal(t, http.StatusServiceUnavailable, last, "an open breaker surfaces as 503")

	w := env.do(http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
