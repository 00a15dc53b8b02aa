// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/catalog-service/config"
	"github.com/guttosm/catalog-service/internal/cache"
)

// Application holds every long-lived component of a running catalog service.
type Application struct {
	Config   config.Config
	Database *DatabaseComponents
	Cache    *cache.Provider
	Services *ServiceComponents
	Router   *gin.Engine
}

// InitializeApp creates and wires all application dependencies:
// logger, repositories, cache provider, services and router, in that order.
// Components created before a failure are released before returning.
func InitializeApp(ctx context.Context, cfg config.Config) (*Application, error) {
	InitializeLogger(cfg.Log)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := InitializeDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	provider, err := InitializeCache(ctx, cfg.Cache)
	if err != nil {
		_ = db.Close(ctx)
		return nil, err
	}

	services := InitializeServices(db, provider, cfg.Users)

	log.Info().
		Str("database_backend", db.Backend).
		Str("cache_backend", string(provider.Backend())).
		Msg("Application initialized")

	return &Application{
		Config:   cfg,
		Database: db,
		Cache:    provider,
		Services: services,
		Router:   InitializeRouter(cfg, db, provider, services),
	}, nil
}

// Close releases the cache and database connections.
func (a *Application) Close(ctx context.Context) error {
	var errs []error
	if a.Cache != nil {
		errs = append(errs, a.Cache.Close())
	}
	if a.Database != nil {
		errs = append(errs, a.Database.Close(ctx))
	}
	if err := errors.Join(errs...); err != nil {
		log.Error().Err(err).Msg("Failed to release application resources")
		return err
	}
	return nil
}
