package http

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "kitabu:reports:"

// ResponseCache memoises rendered report payloads in Redis. The engine
// itself never caches; this layer sits outside it so identical concurrent
// requests do not recompute the same report.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache wraps a Redis client with a TTL for report payloads.
func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	return &ResponseCache{client: client, ttl: ttl}
}

// Get returns the cached payload for key, if present and fresh.
func (c *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

// Set stores a payload under key. Failures are ignored; the cache is an
// optimisation, not a dependency.
func (c *ResponseCache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Set(ctx, key, payload, c.ttl).Err()
}

// Bust removes every cached report payload.
func (c *ResponseCache) Bust(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, cacheKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		_ = c.client.Del(ctx, iter.Val()).Err()
	}
}

func cacheKey(report string, companyID int64, parts ...string) string {
	return fmt.Sprintf("%s%s:%d:%s", cacheKeyPrefix, report, companyID, strings.Join(parts, ":"))
}
