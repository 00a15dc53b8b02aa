//go:build !integration

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/catalog-service/config"
	"github.com/guttosm/catalog-service/internal/cache"
)

func TestInitializeApp(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		mutate    func(*config.Config)
		wantError bool
	}{
		{
			name:   "memory database with local cache",
			mutate: func(*config.Config) {},
		},
		{
			name:   "rate limiting disabled",
			mutate: func(c *config.Config) { c.Server.RateLimit = 0 },
		},
		{
			name:      "invalid database backend",
			mutate:    func(c *config.Config) { c.Database.Backend = "sqlite" },
			wantError: true,
		},
		{
			name:      "invalid cache backend",
			mutate:    func(c *config.Config) { c.Cache.Backend = "memcached" },
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)

			application, err := InitializeApp(ctx, cfg)
			if tt.wantError {
				assert.Error(t, err)
				assert.Nil(t, application)
				return
			}
			require.NoError(t, err)
			t.Cleanup(func() { assert.NoError(t, application.Close(ctx)) })

			assert.Equal(t, cache.BackendLocal, application.Cache.Backend())
			assert.NotNil(t, application.Services)

			w := httptest.NewRecorder()
			application.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/brands", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}
