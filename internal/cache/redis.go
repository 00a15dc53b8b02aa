package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/guttosm/catalog-service/internal/metrics"
)

// RedisStore keeps JSON-encoded values in Redis. Expiry is delegated to Redis
// through SET ... EX, so an expired key reads as redis.Nil.
type RedisStore[T any] struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisStore returns a typed store over client. A ttl <= 0 stores without expiry.
func NewRedisStore[T any](client redis.UniversalClient, prefix string, ttl time.Duration) *RedisStore[T] {
	return &RedisStore[T]{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore[T]) key(key string) string {
	return s.prefix + key
}

func (s *RedisStore[T]) genKey(key string) string {
	return s.prefix + "gen:" + key
}

// putIfGenerationScript sets KEYS[1] only while the counter in KEYS[2] still
// equals ARGV[2]. ARGV[3] is the TTL in milliseconds, 0 for none.
var putIfGenerationScript = redis.NewScript(`
local gen = redis.call("GET", KEYS[2]) or "0"
if gen ~= ARGV[2] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[3])
else
	redis.call("SET", KEYS[1], ARGV[1])
end
return 1
`)

// Put implements Store.
func (s *RedisStore[T]) Put(ctx context.Context, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		metrics.RecordCacheOperation("put", "encode_error")
		return &TransportError{Op: "put", Key: key, Err: err}
	}

	ttl := s.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, s.key(key), data, ttl).Err(); err != nil {
		metrics.RecordCacheOperation("put", "error")
		return err
	}
	metrics.RecordCacheOperation("put", "success")
	return nil
}

// Get implements Store. Network failures are returned as is; only a value
// that cannot be decoded yields a *TransportError.
func (s *RedisStore[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var zero T
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RecordCacheOperation("get", "miss")
		return zero, false, nil
	}
	if err != nil {
		metrics.RecordCacheOperation("get", "error")
		return zero, false, err
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		metrics.RecordCacheOperation("get", "decode_error")
		return zero, false, &TransportError{Op: "get", Key: key, Err: err}
	}
	metrics.RecordCacheOperation("get", "hit")
	return value, true, nil
}

// Invalidate implements Store. The delete and the generation bump run in one
// MULTI/EXEC block.
func (s *RedisStore[T]) Invalidate(ctx context.Context, key string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key(key))
		pipe.Incr(ctx, s.genKey(key))
		return nil
	})
	if err != nil {
		metrics.RecordCacheOperation("invalidate", "error")
		return err
	}
	metrics.RecordCacheOperation("invalidate", "success")
	return nil
}

// Generation implements Store. A key never invalidated is at generation 0.
func (s *RedisStore[T]) Generation(ctx context.Context, key string) (uint64, error) {
	gen, err := s.client.Get(ctx, s.genKey(key)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// PutIfGeneration implements Store with a server-side compare and set.
func (s *RedisStore[T]) PutIfGeneration(ctx context.Context, key string, value T, gen uint64) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		metrics.RecordCacheOperation("put", "encode_error")
		return false, &TransportError{Op: "put", Key: key, Err: err}
	}

	ttl := max(s.ttl, 0)
	stored, err := putIfGenerationScript.Run(ctx, s.client,
		[]string{s.key(key), s.genKey(key)},
		data, strconv.FormatUint(gen, 10), ttl.Milliseconds(),
	).Int()
	if err != nil {
		metrics.RecordCacheOperation("put", "error")
		return false, err
	}
	if stored == 0 {
		metrics.RecordCacheOperation("put", "stale")
		return false, nil
	}
	metrics.RecordCacheOperation("put", "success")
	return true, nil
}
