package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/guttosm/catalog-service/internal/logger"
)

// Backend selects where cached values live.
type Backend string

const (
	BackendLocal Backend = "local"
	BackendRedis Backend = "redis"
)

// Config holds cache provider settings.
type Config struct {
	Backend       Backend
	TTL           time.Duration
	SweepInterval time.Duration
	// Shards sets the local store's shard count; zero keeps the default.
	Shards        int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// Provider owns the cache backend for the lifetime of the process and hands out
// typed stores. It is created once at startup and injected into the services.
type Provider struct {
	backend Backend
	ttl     time.Duration
	memory  *Memory
	redis   redis.UniversalClient
	prefix  string
	ownsRDB bool
	cancel  context.CancelFunc
	log     zerolog.Logger
}

// NewProvider builds the backend selected by cfg. For Redis the server is
// pinged so misconfiguration fails at startup.
func NewProvider(ctx context.Context, cfg Config, opts ...MemoryOption) (*Provider, error) {
	var p *Provider

	switch cfg.Backend {
	case BackendLocal, "":
		if cfg.Shards > 0 {
			opts = append([]MemoryOption{WithShards(cfg.Shards)}, opts...)
		}
		p = NewMemoryProvider(NewMemory(cfg.TTL, opts...))
		if cfg.SweepInterval > 0 {
			janitorCtx, cancel := context.WithCancel(context.Background())
			p.cancel = cancel
			go p.memory.RunJanitor(janitorCtx, cfg.SweepInterval)
		}
	case BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("ping redis at %s: %w", cfg.RedisAddr, err)
		}
		p = NewRedisProvider(client, cfg.RedisPrefix, cfg.TTL)
		p.ownsRDB = true
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}

	p.log.Info().
		Str("backend", string(p.backend)).
		Dur("ttl", cfg.TTL).
		Dur("sweep_interval", cfg.SweepInterval).
		Msg("Cache provider initialized")
	return p, nil
}

// NewMemoryProvider wraps an existing local store.
func NewMemoryProvider(mem *Memory) *Provider {
	return &Provider{
		backend: BackendLocal,
		ttl:     mem.ttl,
		memory:  mem,
		log:     logger.Component("cache"),
	}
}

// NewRedisProvider wraps an existing client. The caller keeps ownership of it.
func NewRedisProvider(client redis.UniversalClient, prefix string, ttl time.Duration) *Provider {
	return &Provider{
		backend: BackendRedis,
		ttl:     ttl,
		redis:   client,
		prefix:  prefix,
		log:     logger.Component("cache"),
	}
}

// NewStore returns a typed store on the provider's backend.
func NewStore[T any](p *Provider, opts ...StoreOption[T]) Store[T] {
	if p.backend == BackendRedis {
		return NewRedisStore[T](p.redis, p.prefix, p.ttl)
	}
	return NewMemoryStore[T](p.memory, opts...)
}

// Backend reports the active backend.
func (p *Provider) Backend() Backend {
	return p.backend
}

// Ping checks the backend is reachable. The local backend is always healthy.
func (p *Provider) Ping(ctx context.Context) error {
	if p.redis == nil {
		return nil
	}
	return p.redis.Ping(ctx).Err()
}

// Close stops the janitor and releases the Redis connection when owned.
func (p *Provider) Close() error {
	if p.cancel != nil {
		p.cancel()
	}
	if p.redis != nil && p.ownsRDB {
		return p.redis.Close()
	}
	return nil
}
