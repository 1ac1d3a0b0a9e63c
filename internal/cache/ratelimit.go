package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// rateLimitUserPrefix is the Redis key prefix for per-owner API limits.
	rateLimitUserPrefix = "ratelimit:user:"
	// rateLimitIPPrefix is the Redis key prefix for public storefront limits.
	rateLimitIPPrefix = "ratelimit:ip:"
	// rateLimitUserTTL is the TTL for API rate limit keys.
	rateLimitUserTTL = 120 * time.Second
	// rateLimitIPTTL is the TTL for IP rate limit keys.
	rateLimitIPTTL = 10 * time.Second

	// Dashboard API limits are fixed; there is one tier of owner.
	apiRatePerMinute = 300
	apiBurst         = 30
)

// RateLimitResult contains the result of a rate limit check.
type RateLimitResult struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// tokenBucketScript implements the token bucket algorithm atomically:
// refill and consume in a single Redis round trip.
var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local rate = tonumber(ARGV[1])      -- tokens per second
	local burst = tonumber(ARGV[2])     -- max tokens (bucket capacity)
	local now = tonumber(ARGV[3])       -- current time in seconds
	local ttl = tonumber(ARGV[4])       -- TTL in seconds

	local data = redis.call('HMGET', key, 'tokens', 'last_update')
	local tokens = tonumber(data[1]) or burst
	local last_update = tonumber(data[2]) or now

	local elapsed = now - last_update
	tokens = math.min(burst, tokens + (elapsed * rate))

	local allowed = 0
	local retry_after = 0

	if tokens >= 1 then
		tokens = tokens - 1
		allowed = 1
	else
		retry_after = math.ceil((1 - tokens) / rate)
	end

	redis.call('HMSET', key, 'tokens', tokens, 'last_update', now)
	redis.call('EXPIRE', key, ttl)

	return {allowed, retry_after, math.floor(tokens)}
`)

// CheckUserRateLimit checks and updates the dashboard API rate limit for
// an authenticated owner.
func (c *Cache) CheckUserRateLimit(ctx context.Context, userID string) (*RateLimitResult, error) {
	key := rateLimitUserPrefix + userID
	return c.runTokenBucket(ctx, key, apiRatePerMinute, apiBurst, rateLimitUserTTL)
}

// CheckIPRateLimit checks and updates the public storefront rate limit for
// a client IP. IPs are hashed so raw addresses never become Redis keys.
func (c *Cache) CheckIPRateLimit(ctx context.Context, ip string, ratePerSecond, burst int) (*RateLimitResult, error) {
	sum := sha256.Sum256([]byte(ip))
	key := rateLimitIPPrefix + hex.EncodeToString(sum[:8])
	return c.runTokenBucket(ctx, key, ratePerSecond*60, burst, rateLimitIPTTL)
}

// runTokenBucket executes the Lua token bucket for one key.
// ratePerMinute of 0 means unlimited.
func (c *Cache) runTokenBucket(ctx context.Context, key string, ratePerMinute, burst int, ttl time.Duration) (*RateLimitResult, error) {
	if ratePerMinute == 0 {
		return &RateLimitResult{Allowed: true, Remaining: int64(burst)}, nil
	}

	ratePerSecond := float64(ratePerMinute) / 60
	now := time.Now().Unix()

	res, err := tokenBucketScript.Run(ctx, c.client,
		[]string{key},
		ratePerSecond,
		burst,
		now,
		int(ttl.Seconds()),
	).Result()
	if err != nil {
		return nil, fmt.Errorf("rate limit script: %w", err)
	}

	values, ok := res.([]interface{})
	if !ok || len(values) != 3 {
		return nil, fmt.Errorf("unexpected rate limit script result: %v", res)
	}

	allowed, _ := values[0].(int64)
	retryAfter, _ := values[1].(int64)
	remaining, _ := values[2].(int64)

	return &RateLimitResult{
		Allowed:    allowed == 1,
		Remaining:  remaining,
		RetryAfter: time.Duration(retryAfter) * time.Second,
	}, nil
}
