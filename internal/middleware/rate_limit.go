package middleware

import (
	"hash/fnv"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/catalog-service/internal/domain/dto"
	"github.com/guttosm/catalog-service/internal/i18n"
)

const defaultNumShards = 16

// window tracks the fixed-window budget of a single client.
type window struct {
	tokens    int
	lastReset time.Time
}

type rateLimiterShard struct {
	mu      sync.Mutex
	clients map[string]*window
}

// RateLimiter is a fixed-window limiter keyed by client IP. Clients are spread
// across shards so concurrent requests from different IPs rarely share a lock.
type RateLimiter struct {
	shards []*rateLimiterShard
	rate   int
	window time.Duration
	now    func() time.Time
	stopCh chan struct{}
	once   sync.Once
}

// NewRateLimiter creates a limiter allowing rate requests per window and per IP,
// and starts its cleanup loop. Call Stop to end it.
func NewRateLimiter(rate int, per time.Duration) *RateLimiter {
	return NewShardedRateLimiter(rate, per, defaultNumShards)
}

// NewShardedRateLimiter is NewRateLimiter with a custom shard count.
func NewShardedRateLimiter(rate int, per time.Duration, numShards int) *RateLimiter {
	if numShards <= 0 {
		numShards = defaultNumShards
	}
	shards := make([]*rateLimiterShard, numShards)
	for i := range shards {
		shards[i] = &rateLimiterShard{clients: make(map[string]*window)}
	}

	rl := &RateLimiter{
		shards: shards,
		rate:   rate,
		window: per,
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) shardFor(client string) *rateLimiterShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(client))
	return rl.shards[h.Sum32()%uint32(len(rl.shards))]
}

// allow consumes one token for client and reports the remaining budget.
func (rl *RateLimiter) allow(client string) (bool, int) {
	shard := rl.shardFor(client)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	now := rl.now()
	w, ok := shard.clients[client]
	if !ok || now.Sub(w.lastReset) > rl.window {
		shard.clients[client] = &window{tokens: rl.rate - 1, lastReset: now}
		return rl.rate > 0, max(rl.rate-1, 0)
	}
	if w.tokens <= 0 {
		return false, 0
	}
	w.tokens--
	return true, w.tokens
}

// RateLimit returns the gin middleware enforcing the limit.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining := rl.allow(c.ClientIP())

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.rate))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			message := i18n.GetTranslator().Translate(i18n.ErrKeyRateLimitExceeded, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewError(dto.ErrCodeRateLimit, message).WithRequestID(GetRequestID(c)))
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupExpired()
		case <-rl.stopCh:
			return
		}
	}
}

// cleanupExpired forgets clients idle for more than two windows.
func (rl *RateLimiter) cleanupExpired() {
	now := rl.now()
	threshold := rl.window * 2

	for _, shard := range rl.shards {
		shard.mu.Lock()
		for client, w := range shard.clients {
			if now.Sub(w.lastReset) > threshold {
				delete(shard.clients, client)
			}
		}
		shard.mu.Unlock()
	}
}

// Stop ends the cleanup loop. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stopCh) })
}

// Clients returns the number of tracked clients.
func (rl *RateLimiter) Clients() int {
	total := 0
	for _, shard := range rl.shards {
		shard.mu.Lock()
		total += len(shard.clients)
		shard.mu.Unlock()
	}
	return total
}
