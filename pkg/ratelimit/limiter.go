// Package ratelimit provides a fixed-window attempt counter keyed by an
// arbitrary string (typically a client IP). The store is injected so request
// handling never depends on a process-global counter, and tests can run
// against the in-memory implementation with a fake clock.
package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter tracks attempt counts per key with an expiring window.
type Limiter interface {
	// TooManyAttempts reports whether key has reached max attempts within
	// its current window.
	TooManyAttempts(ctx context.Context, key string, max int) (bool, error)

	// Hit records one attempt against key. The window is started with ttl
	// on the first hit and is not extended by later hits.
	Hit(ctx context.Context, key string, ttl time.Duration) error

	// AvailableIn returns how long until the window for key resets.
	AvailableIn(ctx context.Context, key string) (time.Duration, error)
}

// RedisLimiter implements Limiter on Redis using INCR with an NX expiry,
// so concurrent hits against the same key stay atomic.
type RedisLimiter struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisLimiter creates a Redis-backed limiter. All keys are stored under
// the given prefix.
func NewRedisLimiter(client *redis.Client, keyPrefix string) *RedisLimiter {
	return &RedisLimiter{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// TooManyAttempts reports whether key has reached max attempts.
func (l *RedisLimiter) TooManyAttempts(ctx context.Context, key string, max int) (bool, error) {
	count, err := l.client.Get(ctx, l.keyPrefix+key).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return count >= max, nil
}

// Hit increments the attempt counter for key, starting the expiry window on
// the first hit.
func (l *RedisLimiter) Hit(ctx context.Context, key string, ttl time.Duration) error {
	redisKey := l.keyPrefix + key
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// AvailableIn returns the remaining lifetime of the window for key.
func (l *RedisLimiter) AvailableIn(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := l.client.TTL(ctx, l.keyPrefix+key).Result()
	if err != nil {
		return 0, err
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}
