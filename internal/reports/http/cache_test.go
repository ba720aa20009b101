package http

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestResponseCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewResponseCache(client, time.Minute)
	ctx := context.Background()

	key := cacheKey("tb", 1, "2026-03-31")
	if _, ok := cache.Get(ctx, key); ok {
		t.Fatal("expected miss on empty cache")
	}
	cache.Set(ctx, key, []byte(`{"balanced":true}`))
	payload, ok := cache.Get(ctx, key)
	require.True(t, ok)
	require.JSONEq(t, `{"balanced":true}`, string(payload))
}

func TestResponseCacheExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewResponseCache(client, time.Second)
	ctx := context.Background()

	key := cacheKey("bs", 2, "2026-03-31")
	cache.Set(ctx, key, []byte(`{}`))
	mr.FastForward(2 * time.Second)
	if _, ok := cache.Get(ctx, key); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestResponseCacheBust(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewResponseCache(client, time.Minute)
	ctx := context.Background()

	cache.Set(ctx, cacheKey("tb", 1, "2026-03-31"), []byte(`{}`))
	cache.Set(ctx, cacheKey("is", 1, "2026-01-01", "2026-03-31"), []byte(`{}`))
	cache.Bust(ctx)
	if _, ok := cache.Get(ctx, cacheKey("tb", 1, "2026-03-31")); ok {
		t.Fatal("bust must clear report keys")
	}
}

func TestResponseCacheNilSafe(t *testing.T) {
	var cache *ResponseCache
	cache.Set(context.Background(), "k", []byte("v"))
	if _, ok := cache.Get(context.Background(), "k"); ok {
		t.Fatal("nil cache must always miss")
	}
}
