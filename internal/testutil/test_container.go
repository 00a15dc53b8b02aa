//go:build integration

package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

// Kind names a backing service started for a test package.
type Kind string

const (
	MongoDB  Kind = "mongodb"
	Postgres Kind = "postgres"
	Redis    Kind = "redis"
)

var (
	sharedMu   sync.Mutex
	shared     = map[Kind]*Container{}
	setupFuncs = map[Kind]func(context.Context) (*Container, error){
		MongoDB:  SetupMongoDB,
		Postgres: SetupPostgres,
		Redis:    SetupRedis,
	}
)

// GetShared returns the package-wide container of the given kind, starting it on first use.
func GetShared(ctx context.Context, kind Kind) (*Container, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if c, ok := shared[kind]; ok {
		return c, nil
	}
	setup, ok := setupFuncs[kind]
	if !ok {
		return nil, fmt.Errorf("unknown container kind %q", kind)
	}
	c, err := setup(ctx)
	if err != nil {
		return nil, err
	}
	shared[kind] = c
	return c, nil
}

// CleanupShared terminates every shared container.
func CleanupShared(ctx context.Context) error {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	var firstErr error
	for kind, c := range shared {
		if err := c.Cleanup(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(shared, kind)
	}
	return firstErr
}

// SetupTestMain starts the requested containers, runs the tests and tears them down.
// Usage:
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMain(context.Background(), m, testutil.MongoDB, testutil.Postgres))
//	}
func SetupTestMain(ctx context.Context, m *testing.M, kinds ...Kind) int {
	for _, kind := range kinds {
		if _, err := GetShared(ctx, kind); err != nil {
			panic(err)
		}
	}

	code := m.Run()

	if err := CleanupShared(ctx); err != nil {
		// Docker reaps leftovers; don't fail the run for it.
		_, _ = os.Stderr.WriteString("Warning: failed to cleanup shared containers: " + err.Error() + "\n")
	}
	return code
}

// SharedURI returns the URI of a shared container started by SetupTestMain.
func SharedURI(kind Kind) string {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	c, ok := shared[kind]
	if !ok {
		panic(fmt.Sprintf("shared %s container not initialized - call SetupTestMain first", kind))
	}
	return c.URI
}

// SanitizeDBName turns a test name into a unique MongoDB database name.
func SanitizeDBName(testName string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '.', ' ', '"', '$':
			return '_'
		}
		return r
	}, testName)

	if len(sanitized) > 50 {
		sanitized = sanitized[:50]
	}
	return fmt.Sprintf("%s_%d", sanitized, time.Now().UnixNano()%1000000)
}
