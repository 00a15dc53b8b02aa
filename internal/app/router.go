// Package app provides router configuration.
package app

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/catalog-service/config"
	"github.com/guttosm/catalog-service/internal/cache"
	"github.com/guttosm/catalog-service/internal/http"
)

// InitializeRouter builds the health handler and mounts every route group.
func InitializeRouter(
	cfg config.Config,
	db *DatabaseComponents,
	provider *cache.Provider,
	services *ServiceComponents,
) *gin.Engine {
	healthHandler := http.NewHealthHandler()
	healthHandler.RegisterChecker("cache", http.CheckFunc(provider.Ping))
	healthHandler.RegisterChecker("database", http.CheckFunc(db.HealthCheck))

	// Register circuit breakers for health monitoring
	for name, cb := range db.CircuitBreakers {
		healthHandler.RegisterCircuitBreaker(db.Backend+"_"+name, cb)
	}

	routerCfg := http.RouterConfig{
		RateLimit:      cfg.Server.RateLimit,
		RateWindow:     cfg.Server.RateWindow,
		RequestTimeout: cfg.Server.RequestTimeout,
		CORSOrigins:    cfg.Server.CORSOrigins,
		SwaggerUser:    cfg.Server.SwaggerUser,
		SwaggerPass:    cfg.Server.SwaggerPass,
	}

	return http.NewRouter(healthHandler, routerCfg,
		http.NewProductHandler(services.Products),
		http.NewCategoryHandler(services.Categories),
		http.NewBrandHandler(services.Brands),
		http.NewUserHandler(services.Users),
	)
}
