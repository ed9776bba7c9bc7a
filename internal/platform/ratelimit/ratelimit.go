package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ErrLimited is returned by callers that translate a denied Decision into an error.
var ErrLimited = errors.New("rate limit exceeded")

type Decision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter counts calls per key in fixed windows. Allow never blocks.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

type Config struct {
	Limit  int
	Window time.Duration
}

func (c Config) normalized() Config {
	if c.Limit <= 0 {
		c.Limit = 20
	}
	if c.Window <= 0 {
		c.Window = time.Hour
	}
	return c
}

func windowStart(now time.Time, window time.Duration) time.Time {
	return now.UTC().Truncate(window)
}

func decide(count int64, limit int, resetAt time.Time) Decision {
	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Decision{Allowed: count <= int64(limit), Remaining: remaining, ResetAt: resetAt}
}

type redisLimiter struct {
	rdb    *goredis.Client
	cfg    Config
	prefix string
	now    func() time.Time
}

// NewRedis shares counters across every API instance.
func NewRedis(rdb *goredis.Client, prefix string, cfg Config) Limiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &redisLimiter{rdb: rdb, cfg: cfg.normalized(), prefix: prefix, now: time.Now}
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	start := windowStart(l.now(), l.cfg.Window)
	resetAt := start.Add(l.cfg.Window)
	redisKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, start.Unix())

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	// key embeds the window start; the TTL only bounds storage
	pipe.Expire(ctx, redisKey, l.cfg.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("rate limit incr: %w", err)
	}
	return decide(incr.Val(), l.cfg.Limit, resetAt), nil
}

type memoryLimiter struct {
	mu      sync.Mutex
	cfg     Config
	now     func() time.Time
	windows map[string]*memoryWindow
}

type memoryWindow struct {
	start time.Time
	count int64
}

// NewMemory is a single-process limiter for dev mode and tests.
func NewMemory(cfg Config) Limiter {
	return newMemory(cfg, time.Now)
}

func newMemory(cfg Config, now func() time.Time) *memoryLimiter {
	return &memoryLimiter{cfg: cfg.normalized(), now: now, windows: map[string]*memoryWindow{}}
}

func (l *memoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	start := windowStart(l.now(), l.cfg.Window)

	l.mu.Lock()
	defer l.mu.Unlock()
	w, ok := l.windows[key]
	if !ok || !w.start.Equal(start) {
		w = &memoryWindow{start: start}
		l.windows[key] = w
		l.sweep(start)
	}
	w.count++
	return decide(w.count, l.cfg.Limit, start.Add(l.cfg.Window)), nil
}

// sweep drops windows that ended before the current one; caller holds mu.
func (l *memoryLimiter) sweep(current time.Time) {
	for k, w := range l.windows {
		if w.start.Before(current) {
			delete(l.windows, k)
		}
	}
}
