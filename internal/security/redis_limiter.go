package security

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/helpdesk-service/internal/config"
)

const (
	loginAttemptPrefix = "login:attempts:"
	loginFailurePrefix = "login:failures:"
)

// RedisLimiter shares fixed-window login counters across instances using
// INCR plus TTL. Keys expire on their own, so no sweeper is needed.
type RedisLimiter struct {
	client *redis.Client
	limits limits
}

// NewRedisLimiter builds the limiter on an existing client.
func NewRedisLimiter(client *redis.Client, cfg config.RateLimitConfig) *RedisLimiter {
	return &RedisLimiter{client: client, limits: limitsFromConfig(cfg)}
}

// Allow counts one attempt against the fixed window for key.
func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := loginAttemptPrefix + key
	count, err := r.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := r.client.Expire(ctx, redisKey, time.Duration(r.limits.window)*time.Second).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(r.limits.maxAttempts), nil
}

// RecordFailure increments the consecutive-failure counter for key.
func (r *RedisLimiter) RecordFailure(ctx context.Context, key string) error {
	redisKey := loginFailurePrefix + key
	count, err := r.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return err
	}
	if count == 1 {
		return r.client.Expire(ctx, redisKey, time.Duration(r.limits.lockout)*time.Second).Err()
	}
	return nil
}

// IsLocked reports whether key has hit the failure threshold.
func (r *RedisLimiter) IsLocked(ctx context.Context, key string) (bool, error) {
	count, err := r.client.Get(ctx, loginFailurePrefix+key).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return count >= r.limits.threshold, nil
}

// Reset clears failure tracking for key.
func (r *RedisLimiter) Reset(ctx context.Context, key string) error {
	return r.client.Del(ctx, loginFailurePrefix+key).Err()
}
