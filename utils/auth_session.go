// File: utils/auth_session.go
package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Principal is the cached identity of an authenticated staff member.
type Principal struct {
	UserID   string    `json:"userId"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	CachedAt time.Time `json:"cachedAt"`
}

// AuthCache stores principals so Protect can skip the user lookup.
type AuthCache interface {
	Get(ctx context.Context, userID string) (*Principal, error)
	Set(ctx context.Context, p Principal) error
	Invalidate(ctx context.Context, userID string) error
}

// RedisAuthCache is the Redis-backed AuthCache.
type RedisAuthCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisAuthCache(client *redis.Client, ttl time.Duration) *RedisAuthCache {
	return &RedisAuthCache{client: client, ttl: ttl}
}

// Get returns (nil, nil) on a cache miss.
func (c *RedisAuthCache) Get(ctx context.Context, userID string) (*Principal, error) {
	data, err := c.client.Get(ctx, AuthCachePrefix+userID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var p Principal
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal principal: %w", err)
	}
	return &p, nil
}

// Set saves the principal with the configured TTL.
func (c *RedisAuthCache) Set(ctx context.Context, p Principal) error {
	p.CachedAt = time.Now()
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal principal: %w", err)
	}
	if err := c.client.Set(ctx, AuthCachePrefix+p.UserID, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save principal: %w", err)
	}
	return nil
}

// Invalidate removes a cached principal, e.g. after a role change.
func (c *RedisAuthCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, AuthCachePrefix+userID).Err()
}
