package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values", func(t *testing.T) {
		os.Clearenv()

		cfg := Load()

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, CacheLocal, cfg.Cache.Backend)
		assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
		assert.Zero(t, cfg.Cache.SweepInterval)
		assert.Equal(t, 16, cfg.Cache.Shards)
		assert.Equal(t, 10, cfg.Users.PasswordCost)
		assert.Equal(t, BackendMemory, cfg.Database.Backend)
		assert.True(t, cfg.Database.Seed)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("loads values from environment", func(t *testing.T) {
		os.Clearenv()
		t.Setenv("PORT", "9090")
		t.Setenv("RATE_LIMIT", "50")
		t.Setenv("RATE_WINDOW", "30s")
		t.Setenv("CACHE_BACKEND", "REDIS")
		t.Setenv("REDIS_ADDR", "cache:6379")
		t.Setenv("REDIS_DB", "2")
		t.Setenv("CACHE_SHARDS", "64")
		t.Setenv("PASSWORD_COST", "12")
		t.Setenv("DB_BACKEND", "postgres")
		t.Setenv("POSTGRES_DSN", "postgres://u:p@db/catalog")
		t.Setenv("DB_SEED", "false")
		t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_PRETTY", "true")

		cfg := Load()

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, 50, cfg.Server.RateLimit)
		assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
		assert.Equal(t, CacheRedis, cfg.Cache.Backend)
		assert.Equal(t, "cache:6379", cfg.Cache.RedisAddr)
		assert.Equal(t, 2, cfg.Cache.RedisDB)
		assert.Equal(t, 64, cfg.Cache.Shards)
		assert.Equal(t, 12, cfg.Users.PasswordCost)
		assert.Equal(t, BackendPostgres, cfg.Database.Backend)
		assert.Equal(t, "postgres://u:p@db/catalog", cfg.Database.PostgresDSN)
		assert.False(t, cfg.Database.Seed)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.True(t, cfg.Log.Pretty)
	})

	t.Run("handles invalid values gracefully", func(t *testing.T) {
		os.Clearenv()
		t.Setenv("RATE_LIMIT", "invalid")
		t.Setenv("DB_SEED", "invalid")
		t.Setenv("RATE_WINDOW", "invalid")
		t.Setenv("CACHE_TTL_MINUTES", "ten")

		cfg := Load()

		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.True(t, cfg.Database.Seed)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, DefaultCacheTTL, cfg.Cache.TTL)
	})
}

func TestLoad_CacheTTL(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		expected time.Duration
	}{
		{"default", nil, 10 * time.Minute},
		{"minutes", map[string]string{"CACHE_TTL_MINUTES": "3"}, 3 * time.Minute},
		{"zero minutes disables expiry", map[string]string{"CACHE_TTL_MINUTES": "0"}, 0},
		{"duration", map[string]string{"CACHE_TTL": "90s"}, 90 * time.Second},
		{"duration wins over minutes", map[string]string{"CACHE_TTL": "45s", "CACHE_TTL_MINUTES": "7"}, 45 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, tt.expected, Load().Cache.TTL)
		})
	}
}

func TestLoadFile(t *testing.T) {
	os.Clearenv()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "7070"
  request_timeout: 5s
cache:
  backend: redis
  ttl: 2m
  sweep_interval: 1m
database:
  backend: mongodb
  mongo_database: shop
`), 0o600))

	t.Run("file values over defaults", func(t *testing.T) {
		cfg, err := LoadFile(path)
		require.NoError(t, err)

		assert.Equal(t, "7070", cfg.Server.Port)
		assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
		assert.Equal(t, 100, cfg.Server.RateLimit, "missing keys keep defaults")
		assert.Equal(t, CacheRedis, cfg.Cache.Backend)
		assert.Equal(t, 2*time.Minute, cfg.Cache.TTL)
		assert.Equal(t, time.Minute, cfg.Cache.SweepInterval)
		assert.Equal(t, BackendMongoDB, cfg.Database.Backend)
		assert.Equal(t, "shop", cfg.Database.MongoDatabase)
	})

	t.Run("environment over file", func(t *testing.T) {
		t.Setenv("PORT", "6060")
		t.Setenv("CACHE_TTL_MINUTES", "1")

		cfg, err := LoadFile(path)
		require.NoError(t, err)

		assert.Equal(t, "6060", cfg.Server.Port)
		assert.Equal(t, time.Minute, cfg.Cache.TTL)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed file", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("server: [unclosed"), 0o600))
		_, err := LoadFile(bad)
		assert.Error(t, err)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"unknown database", func(c *Config) { c.Database.Backend = "sqlite" }, "database backend"},
		{"unknown cache", func(c *Config) { c.Cache.Backend = "memcached" }, "cache backend"},
		{"negative ttl", func(c *Config) { c.Cache.TTL = -time.Second }, "ttl"},
		{"empty port", func(c *Config) { c.Server.Port = "" }, "port"},
		{"no shards", func(c *Config) { c.Cache.Shards = 0 }, "shards"},
		{"password cost too low", func(c *Config) { c.Users.PasswordCost = 3 }, "password cost"},
		{"password cost too high", func(c *Config) { c.Users.PasswordCost = 32 }, "password cost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
