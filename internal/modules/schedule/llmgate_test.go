package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/studyplan-backend/internal/platform/logger"
	"github.com/yungbote/studyplan-backend/internal/platform/ratelimit"
)

type brokenLimiter struct{}

func (brokenLimiter) Allow(context.Context, string) (ratelimit.Decision, error) {
	return ratelimit.Decision{}, errors.New("redis: connection refused")
}

func TestLimitedChatterDisabled(t *testing.T) {
	_, err := newGate(nil, nil).Chat(context.Background(), uuid.New(), "s", "u")
	if !errors.Is(err, ErrLLMDisabled) {
		t.Fatalf("want ErrLLMDisabled, got %v", err)
	}
}

func TestLimitedChatterPerUserLimit(t *testing.T) {
	chat := &fakeChatter{schedule: "{}"}
	gate := newGate(chat, ratelimit.NewMemory(ratelimit.Config{Limit: 2, Window: time.Hour}))
	alice, bob := uuid.New(), uuid.New()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := gate.Chat(ctx, alice, "s", "u"); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if _, err := gate.Chat(ctx, alice, "s", "u"); !errors.Is(err, ratelimit.ErrLimited) {
		t.Fatalf("want ErrLimited, got %v", err)
	}
	if _, err := gate.Chat(ctx, bob, "s", "u"); err != nil {
		t.Fatalf("other users keep their own budget: %v", err)
	}
	if chat.Calls() != 3 {
		t.Fatalf("calls: got=%d want=3", chat.Calls())
	}
}

func TestLimitedChatterFailsOpenOnLimiterError(t *testing.T) {
	chat := &fakeChatter{schedule: "{}"}
	gate := newGate(chat, brokenLimiter{})
	if _, err := gate.Chat(context.Background(), uuid.New(), "s", "u"); err != nil {
		t.Fatalf("limiter outage should not block the call: %v", err)
	}
}

func TestLimitedChatterTimeout(t *testing.T) {
	chat := &fakeChatter{release: make(chan struct{})}
	gate := NewLimitedChatter(chat, nil, 20*time.Millisecond, logger.Nop())
	_, err := gate.Chat(context.Background(), uuid.New(), "s", "u")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want deadline exceeded, got %v", err)
	}
}
