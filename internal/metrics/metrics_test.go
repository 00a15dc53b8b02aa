package metrics

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMiddleware_LabelsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(PrometheusMiddleware())
	router.GET("/api/products/:id", func(c *gin.Context) {
		if c.Param("id") == "0" {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusOK)
	})

	tests := []struct {
		target string
		status int
	}{
		{"/api/products/7", http.StatusOK},
		{"/api/products/8", http.StatusOK},
		{"/api/products/0", http.StatusNotFound},
	}

	counter := func(status int) float64 {
		return testutil.ToFloat64(HTTPRequestTotal.WithLabelValues(http.MethodGet, "/api/products/:id", strconv.Itoa(status)))
	}
	okBefore, notFoundBefore := counter(http.StatusOK), counter(http.StatusNotFound)

	for _, tt := range tests {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.target, nil))
		assert.Equal(t, tt.status, w.Code, tt.target)
	}

	assert.Equal(t, okBefore+2, counter(http.StatusOK))
	assert.Equal(t, notFoundBefore+1, counter(http.StatusNotFound))
}

func TestPrometheusMiddleware_UnmatchedRouteUsesRawPath(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(PrometheusMiddleware())

	c := HTTPRequestTotal.WithLabelValues(http.MethodGet, "/nowhere", "404")
	before := testutil.ToFloat64(c)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

func TestRecordCatalogOperation(t *testing.T) {
	counter := CatalogOperationsTotal.WithLabelValues("brand", "get_by_id", "success")
	before := testutil.ToFloat64(counter)

	RecordCatalogOperation("brand", "get_by_id", "success", 2*time.Millisecond)
	RecordCatalogOperation("brand", "get_by_id", "success", time.Millisecond)

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestRecordCacheOperation(t *testing.T) {
	hit := CacheOperationsTotal.WithLabelValues("get", "hit")
	before := testutil.ToFloat64(hit)

	RecordCacheOperation("get", "hit")
	RecordCacheOperation("get", "miss")
	RecordCacheOperation("put", "success")

	assert.Equal(t, before+1, testutil.ToFloat64(hit))
}

func TestGauges(t *testing.T) {
	UpdateCacheEntries(42)
	assert.Equal(t, float64(42), testutil.ToFloat64(CacheEntries))

	SetCircuitBreakerState("products", 2)
	assert.Equal(t, float64(2), testutil.ToFloat64(CircuitBreakerState.WithLabelValues("products")))
}
