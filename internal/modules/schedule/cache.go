package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	domain "github.com/yungbote/studyplan-backend/internal/domain/schedule"
)

// DefaultCacheTTL is fixed; entries never slide.
const DefaultCacheTTL = 24 * time.Hour

// epochTTL must outlive the longest generation.
const epochTTL = 2 * DefaultCacheTTL

// Cache stores one serialized WeeklySchedule per user. Get returns (nil, nil)
// on a miss; Invalidate on a missing key is not an error.
//
// Every Invalidate advances the user's epoch. A generation reads Epoch before
// it starts and writes with SetIfEpoch, so a result built before an
// invalidation is never stored after it.
type Cache interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.WeeklySchedule, error)
	Set(ctx context.Context, userID uuid.UUID, s *domain.WeeklySchedule, ttl time.Duration) error
	SetIfEpoch(ctx context.Context, userID uuid.UUID, s *domain.WeeklySchedule, ttl time.Duration, epoch int64) (bool, error)
	Epoch(ctx context.Context, userID uuid.UUID) (int64, error)
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

func CacheKey(userID uuid.UUID) string {
	return "schedule:" + userID.String()
}

func epochKey(userID uuid.UUID) string {
	return "schedule:epoch:" + userID.String()
}

func encodeSchedule(s *domain.WeeklySchedule) ([]byte, error) {
	if s == nil {
		return nil, errors.New("nil schedule")
	}
	return json.Marshal(s)
}

func decodeSchedule(raw []byte) (*domain.WeeklySchedule, error) {
	var s domain.WeeklySchedule
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode cached schedule: %w", err)
	}
	return &s, nil
}

// setIfEpochScript: KEYS[1]=entry, KEYS[2]=epoch; ARGV = payload, expected epoch, ttl ms.
var setIfEpochScript = goredis.NewScript(`
local cur = redis.call('GET', KEYS[2])
if not cur then cur = '0' end
if cur ~= ARGV[2] then return 0 end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
return 1
`)

type redisCache struct {
	rdb *goredis.Client
}

func NewRedisCache(rdb *goredis.Client) Cache {
	return &redisCache{rdb: rdb}
}

func (c *redisCache) Get(ctx context.Context, userID uuid.UUID) (*domain.WeeklySchedule, error) {
	raw, err := c.rdb.Get(ctx, CacheKey(userID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return decodeSchedule(raw)
}

func (c *redisCache) Set(ctx context.Context, userID uuid.UUID, s *domain.WeeklySchedule, ttl time.Duration) error {
	raw, err := encodeSchedule(s)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if err := c.rdb.Set(ctx, CacheKey(userID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *redisCache) SetIfEpoch(ctx context.Context, userID uuid.UUID, s *domain.WeeklySchedule, ttl time.Duration, epoch int64) (bool, error) {
	raw, err := encodeSchedule(s)
	if err != nil {
		return false, err
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	n, err := setIfEpochScript.Run(ctx, c.rdb,
		[]string{CacheKey(userID), epochKey(userID)},
		raw, epoch, ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("redis set: %w", err)
	}
	return n == 1, nil
}

func (c *redisCache) Epoch(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := c.rdb.Get(ctx, epochKey(userID)).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get epoch: %w", err)
	}
	return n, nil
}

func (c *redisCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	pipe := c.rdb.TxPipeline()
	pipe.Incr(ctx, epochKey(userID))
	pipe.Expire(ctx, epochKey(userID), epochTTL)
	pipe.Del(ctx, CacheKey(userID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis invalidate: %w", err)
	}
	return nil
}

type memoryEntry struct {
	raw       []byte
	expiresAt time.Time
}

// memoryCache keeps serialized entries so reads never alias a cached value.
type memoryCache struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]memoryEntry
	epochs  map[string]int64
}

// NewMemoryCache is the single-process cache used when REDIS_ADDR is unset.
func NewMemoryCache() Cache {
	return newMemoryCache(time.Now)
}

func newMemoryCache(now func() time.Time) *memoryCache {
	return &memoryCache{now: now, entries: map[string]memoryEntry{}, epochs: map[string]int64{}}
}

func (c *memoryCache) Get(_ context.Context, userID uuid.UUID) (*domain.WeeklySchedule, error) {
	key := CacheKey(userID)
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return decodeSchedule(e.raw)
}

func (c *memoryCache) Set(_ context.Context, userID uuid.UUID, s *domain.WeeklySchedule, ttl time.Duration) error {
	raw, err := encodeSchedule(s)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	c.mu.Lock()
	c.entries[CacheKey(userID)] = memoryEntry{raw: raw, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

func (c *memoryCache) SetIfEpoch(_ context.Context, userID uuid.UUID, s *domain.WeeklySchedule, ttl time.Duration, epoch int64) (bool, error) {
	raw, err := encodeSchedule(s)
	if err != nil {
		return false, err
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epochs[epochKey(userID)] != epoch {
		return false, nil
	}
	c.entries[CacheKey(userID)] = memoryEntry{raw: raw, expiresAt: c.now().Add(ttl)}
	return true, nil
}

func (c *memoryCache) Epoch(_ context.Context, userID uuid.UUID) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epochs[epochKey(userID)], nil
}

func (c *memoryCache) Invalidate(_ context.Context, userID uuid.UUID) error {
	c.mu.Lock()
	delete(c.entries, CacheKey(userID))
	c.epochs[epochKey(userID)]++
	c.mu.Unlock()
	return nil
}
