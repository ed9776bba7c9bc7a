package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func TestMemoryLimiterFixedWindow(t *testing.T) {
	now := time.Date(2026, 10, 15, 10, 5, 0, 0, time.UTC)
	l := newMemory(Config{Limit: 2, Window: time.Hour}, func() time.Time { return now })
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		d, _ := l.Allow(ctx, "u1")
		if !d.Allowed {
			t.Fatalf("call %d should be allowed", i+1)
		}
	}
	d, _ := l.Allow(ctx, "u1")
	if d.Allowed || d.Remaining != 0 {
		t.Fatalf("third call should be denied: %+v", d)
	}
	if !d.ResetAt.Equal(time.Date(2026, 10, 15, 11, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected reset: %s", d.ResetAt)
	}

	if d, _ := l.Allow(ctx, "u2"); !d.Allowed {
		t.Fatalf("other keys have their own window")
	}

	now = now.Add(time.Hour)
	if d, _ := l.Allow(ctx, "u1"); !d.Allowed || d.Remaining != 1 {
		t.Fatalf("new window should reset the count: %+v", d)
	}
}

func TestRedisLimiterFixedWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	now := time.Date(2026, 10, 15, 10, 5, 0, 0, time.UTC)
	l := NewRedis(rdb, "test", Config{Limit: 3, Window: time.Hour}).(*redisLimiter)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		d, err := l.Allow(ctx, "llm:u1")
		if err != nil {
			t.Fatalf("Allow: %v", err)
		}
		if !d.Allowed || d.Remaining != 2-i {
			t.Fatalf("call %d: unexpected decision %+v", i+1, d)
		}
	}
	d, err := l.Allow(ctx, "llm:u1")
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if d.Allowed {
		t.Fatalf("fourth call should be denied")
	}

	key := "test:llm:u1:" + "1792058400"
	if !mr.Exists(key) {
		t.Fatalf("expected counter key %s, have %v", key, mr.Keys())
	}
	if ttl := mr.TTL(key); ttl <= 0 || ttl > time.Hour {
		t.Fatalf("counter key should expire within the window, ttl=%s", ttl)
	}

	now = now.Add(time.Hour)
	if d, _ := l.Allow(ctx, "llm:u1"); !d.Allowed {
		t.Fatalf("next window should allow again")
	}
}

func TestRedisLimiterReportsStoreErrors(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	if _, err := NewRedis(rdb, "", Config{}).Allow(context.Background(), "k"); err == nil {
		t.Fatalf("expected error when redis is down")
	}
}
