package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/catalog-service/internal/circuitbreaker"
)

const readinessTimeout = 2 * time.Second

// HealthChecker is a dependency that can report whether it is reachable.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// CheckFunc adapts a function such as (*cache.Provider).Ping to HealthChecker.
type CheckFunc func(ctx context.Context) error

// Check implements HealthChecker.
func (f CheckFunc) Check(ctx context.Context) error { return f(ctx) }

// HealthHandler serves the liveness and readiness endpoints. Readiness pings every
// registered dependency and reports the state of every registered breaker.
type HealthHandler struct {
	mu       sync.RWMutex
	checkers map[string]HealthChecker
	breakers map[string]*circuitbreaker.CircuitBreaker
}

// NewHealthHandler creates a HealthHandler with nothing registered.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers: map[string]HealthChecker{},
		breakers: map[string]*circuitbreaker.CircuitBreaker{},
	}
}

// RegisterChecker adds a dependency to the readiness report under name.
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	h.mu.Lock()
	h.checkers[name] = checker
	h.mu.Unlock()
}

// RegisterCircuitBreaker reports cb as "<name>_circuit". An open breaker makes
// the service not ready.
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	h.mu.Lock()
	h.breakers[name] = cb
	h.mu.Unlock()
}

// Register mounts /healthz and /readyz.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness handles the liveness endpoint.
// @Summary     Liveness check
// @Description Returns OK while the process is running.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]string "Service is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles the readiness endpoint.
// @Summary     Readiness check
// @Description Pings the cache and the database and reports circuit breaker states.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]interface{} "Service is ready"
// @Failure     503 {object} map[string]interface{} "Service is not ready"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	checks, ready := h.runChecks(ctx)
	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": checks})
}

// runChecks pings the checkers concurrently so one slow dependency does not
// consume the whole budget of the others.
func (h *HealthHandler) runChecks(ctx context.Context) (map[string]string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		ready  = true
		checks = make(map[string]string, len(h.checkers)+len(h.breakers)+1)
	)

	for name, checker := range h.checkers {
		wg.Add(1)
		go func(name string, checker HealthChecker) {
			defer wg.Done()
			result := "ok"
			if err := checker.Check(ctx); err != nil {
				result = err.Error()
			}
			mu.Lock()
			checks[name] = result
			if result != "ok" {
				ready = false
			}
			mu.Unlock()
		}(name, checker)
	}
	wg.Wait()

	for name, cb := range h.breakers {
		stats := cb.GetStats()
		checks[name+"_circuit"] = stats.State
		ready = ready && stats.IsHealthy
	}

	if len(checks) == 0 {
		checks["service"] = "ok"
	}
	return checks, ready
}
