// Package main is the entry point for the catalog-service application.
//
// @title           Catalog Service API
// @version         1.0.0
// @description     Product catalog with categories, brands and operators, served through a cache-aside layer.
//
//	Reads are answered from the cache when possible; every write invalidates the affected keys.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/catalog-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @tag.name        Products
// @tag.description Product catalog operations
//
// @tag.name        Categories
// @tag.description Category operations
//
// @tag.name        Brands
// @tag.description Brand operations
//
// @tag.name        Users
// @tag.description Catalog operator accounts
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	_ "github.com/guttosm/catalog-service/docs" // swagger docs

	"github.com/guttosm/catalog-service/config"
	"github.com/guttosm/catalog-service/internal/app"
)

func main() {
	cfg := config.Load()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		var err error
		if cfg, err = config.LoadFile(path); err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("Failed to load configuration")
		}
	}

	ctx := context.Background()
	application, err := app.InitializeApp(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}

	server := app.NewServer(application.Router, cfg.Server.Port, cfg.Server.RequestTimeout)
	server.OnShutdown(application.Close)

	if err := server.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
