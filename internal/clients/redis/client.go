package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/studyplan-backend/internal/platform/logger"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

// Client is the process-wide redis connection shared by the schedule cache and
// the rate limiter. It is built once at startup and closed by the app.
type Client struct {
	rdb *goredis.Client
	log *logger.Logger
}

func NewClient(ctx context.Context, log *logger.Logger, cfg Config) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg.Addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Client{rdb: rdb, log: log.With("service", "RedisClient", "addr", cfg.Addr)}, nil
}

// Wrap adopts an existing go-redis client (tests use miniredis).
func Wrap(rdb *goredis.Client, log *logger.Logger) *Client {
	return &Client{rdb: rdb, log: log.With("service", "RedisClient")}
}

func (c *Client) Redis() *goredis.Client { return c.rdb }

func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("redis client not initialized")
	}
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
