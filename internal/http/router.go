package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/catalog-service/internal/metrics"
	"github.com/guttosm/catalog-service/internal/middleware"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	// RateLimit is the number of requests per client IP per RateWindow. Zero disables limiting.
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	CORSOrigins    []string
	// SwaggerUser and SwaggerPass put /swagger behind basic auth when both are set.
	SwaggerUser string
	SwaggerPass string
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:      100,
		RateWindow:     time.Minute,
		RequestTimeout: middleware.DefaultTimeout,
	}
}

// NewRouter builds the gin engine. Health, metrics and docs live at the root;
// every route group is mounted under /api with a per-request timeout.
func NewRouter(healthHandler *HealthHandler, cfg RouterConfig, groups ...RouteGroup) *gin.Engine {
	router := gin.New()
	router.Use(chain(cfg)...)

	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	mountSwagger(router, cfg.SwaggerUser, cfg.SwaggerPass)

	api := router.Group("/api", middleware.Timeout(cfg.RequestTimeout))
	for _, g := range groups {
		g.RegisterRoutes(api)
	}
	return router
}

// chain lists the global middleware in execution order.
func chain(cfg RouterConfig) []gin.HandlerFunc {
	handlers := []gin.HandlerFunc{
		middleware.CORS(cfg.CORSOrigins),
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(),
		middleware.ErrorHandler(),
	}
	if cfg.RateLimit > 0 {
		handlers = append(handlers, middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow).RateLimit())
	}
	return handlers
}

func mountSwagger(router *gin.Engine, user, pass string) {
	docs := router.Group("/swagger")
	if user != "" && pass != "" {
		docs.Use(gin.BasicAuth(gin.Accounts{user: pass}))
	}
	docs.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
