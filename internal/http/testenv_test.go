package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/catalog-service/internal/cache"
	"github.com/guttosm/catalog-service/internal/repository"
	"github.com/guttosm/catalog-service/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testEnv is a full router over in-memory repositories and a local cache.
type testEnv struct {
	router *gin.Engine
	mem    *cache.Memory
	brands *BrandHandler
}

func (e *testEnv) brandHandler() *BrandHandler { return e.brands }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mem := cache.NewMemory(time.Minute)
	provider := cache.NewMemoryProvider(mem)

	categories := repository.NewMemoryCategoryRepository()
	brands := repository.NewMemoryBrandRepository()
	products := repository.NewMemoryProductRepository()
	users := repository.NewMemoryUserRepository()

	health := NewHealthHandler()
	health.RegisterChecker("cache", CheckFunc(provider.Ping))

	cfg := DefaultRouterConfig()
	cfg.RateLimit = 0

	brandHandler := NewBrandHandler(service.NewBrandService(brands, provider))
	router := NewRouter(health, cfg,
		NewProductHandler(service.NewProductService(products, categories, brands, provider)),
		NewCategoryHandler(service.NewCategoryService(categories, provider)),
		brandHandler,
		NewUserHandler(service.NewUserService(users).WithHashCost(bcrypt.MinCost)),
	)
	return &testEnv{router: router, mem: mem, brands: brandHandler}
}

func (e *testEnv) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// data decodes the data field of a success envelope.
func data[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var env struct {
		Data      T      `json:"data"`
		RequestID string `json:"request_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	require.NotEmpty(t, env.RequestID)
	return env.Data
}

type errorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func requireStatus(t *testing.T, want int, w *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, want, w.Code, w.Body.String())
}

// seed creates one category and one brand and returns their ids.
func (e *testEnv) seed(t *testing.T) (categoryID, brandID int64) {
	t.Helper()
	w := e.do(http.MethodPost, "/api/categories", `{"name":"Running"}`)
	requireStatus(t, http.StatusCreated, w)
	categoryID = data[struct{ ID int64 }](t, w).ID

	w = e.do(http.MethodPost, "/api/brands", `{"name":"Acme"}`)
	requireStatus(t, http.StatusCreated, w)
	brandID = data[struct{ ID int64 }](t, w).ID
	return categoryID, brandID
}
