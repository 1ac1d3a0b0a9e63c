package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tavolo/tavolo/internal/auth"
	"github.com/tavolo/tavolo/internal/model"
)

// sessionPrefix is the Redis key prefix for login sessions.
const sessionPrefix = "session:"

// SetSession stores a login session under a key derived from the token.
// The TTL bounds the session lifetime; Redis expiry is the logout-by-time
// mechanism.
func (c *Cache) SetSession(ctx context.Context, token string, sess *model.Session, ttl time.Duration) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	key := sessionPrefix + auth.SessionCacheKey(token)
	return c.client.Set(ctx, key, data, ttl).Err()
}

// GetSession retrieves a session by its token.
// Returns nil on a miss; an expired or revoked session is a miss. Redis
// is the system of record for sessions, so transport errors propagate
// instead of masquerading as misses.
func (c *Cache) GetSession(ctx context.Context, token string) (*model.Session, error) {
	key := sessionPrefix + auth.SessionCacheKey(token)

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var sess model.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// Corrupted entry - treat as miss
		return nil, nil //nolint:nilerr
	}

	return &sess, nil
}

// DeleteSession revokes a session (logout).
func (c *Cache) DeleteSession(ctx context.Context, token string) error {
	key := sessionPrefix + auth.SessionCacheKey(token)
	return c.client.Del(ctx, key).Err()
}
