//go:build integration

// Package testutil provides testcontainers setup for integration tests.
package testutil

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redis"
)

// Container wraps a started testcontainer and the URI clients connect with.
type Container struct {
	Container testcontainers.Container
	URI       string
}

// SetupMongoDB starts a MongoDB container.
// For better performance use GetShared with TestMain for container reuse.
func SetupMongoDB(ctx context.Context) (*Container, error) {
	c, err := mongodb.Run(ctx, "mongo:7.0")
	if err != nil {
		return nil, fmt.Errorf("failed to start MongoDB container: %w", err)
	}
	uri, err := c.ConnectionString(ctx)
	return finish(ctx, c, uri, err)
}

// SetupPostgres starts a PostgreSQL container with a "catalog" database.
func SetupPostgres(ctx context.Context) (*Container, error) {
	c, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("catalog"),
		postgres.WithUsername("catalog"),
		postgres.WithPassword("catalog"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start PostgreSQL container: %w", err)
	}
	uri, err := c.ConnectionString(ctx, "sslmode=disable")
	return finish(ctx, c, uri, err)
}

// SetupRedis starts a Redis container. URI is a redis:// URL.
func SetupRedis(ctx context.Context) (*Container, error) {
	c, err := redis.Run(ctx, "redis:7-alpine")
	if err != nil {
		return nil, fmt.Errorf("failed to start Redis container: %w", err)
	}
	uri, err := c.ConnectionString(ctx)
	return finish(ctx, c, uri, err)
}

func finish(ctx context.Context, c testcontainers.Container, uri string, err error) (*Container, error) {
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}
	return &Container{Container: c, URI: uri}, nil
}

// Cleanup terminates the container.
func (c *Container) Cleanup(ctx context.Context) error {
	if c.Container != nil {
		if err := c.Container.Terminate(ctx); err != nil {
			return fmt.Errorf("failed to terminate container: %w", err)
		}
	}
	return nil
}
