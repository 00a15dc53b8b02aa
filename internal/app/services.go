// Package app provides service initialization.
package app

import (
	"context"
	"fmt"

	"github.com/guttosm/catalog-service/config"
	"github.com/guttosm/catalog-service/internal/cache"
	"github.com/guttosm/catalog-service/internal/service"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Products   service.ProductService
	Categories service.CategoryService
	Brands     service.BrandService
	Users      service.UserService
}

// InitializeCache creates the cache provider shared by every catalog service.
func InitializeCache(ctx context.Context, cfg config.CacheConfig) (*cache.Provider, error) {
	provider, err := cache.NewProvider(ctx, cache.Config{
		Backend:       cache.Backend(cfg.Backend),
		TTL:           cfg.TTL,
		SweepInterval: cfg.SweepInterval,
		Shards:        cfg.Shards,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
		RedisPrefix:   cfg.RedisPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize cache: %w", err)
	}
	return provider, nil
}

// InitializeServices wires the catalog orchestrators and the user service.
func InitializeServices(db *DatabaseComponents, provider *cache.Provider, users config.UsersConfig) *ServiceComponents {
	return &ServiceComponents{
		Products:   service.NewProductService(db.Products, db.Categories, db.Brands, provider),
		Categories: service.NewCategoryService(db.Categories, provider),
		Brands:     service.NewBrandService(db.Brands, provider),
		Users:      service.NewUserService(db.Users).WithHashCost(users.PasswordCost),
	}
}
