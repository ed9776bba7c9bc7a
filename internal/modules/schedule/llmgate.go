package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/studyplan-backend/internal/observability"
	"github.com/yungbote/studyplan-backend/internal/platform/logger"
	"github.com/yungbote/studyplan-backend/internal/platform/ratelimit"
)

// ErrLLMDisabled is returned when no chat client is configured.
var ErrLLMDisabled = errors.New("llm disabled")

// Chatter is the chat-completion surface; openai.Client satisfies it.
type Chatter interface {
	ChatJSON(ctx context.Context, system string, user string) (string, error)
}

// LimitedChatter gates every external call behind the per-user limiter and a
// per-call timeout. A denied call fails fast with ratelimit.ErrLimited.
type LimitedChatter struct {
	chat    Chatter
	limiter ratelimit.Limiter
	timeout time.Duration
	log     *logger.Logger
}

func NewLimitedChatter(chat Chatter, limiter ratelimit.Limiter, timeout time.Duration, baseLog *logger.Logger) *LimitedChatter {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &LimitedChatter{
		chat:    chat,
		limiter: limiter,
		timeout: timeout,
		log:     baseLog.With("service", "LimitedChatter"),
	}
}

func (c *LimitedChatter) Enabled() bool {
	return c != nil && c.chat != nil
}

func (c *LimitedChatter) Chat(ctx context.Context, userID uuid.UUID, system, user string) (string, error) {
	if !c.Enabled() {
		return "", ErrLLMDisabled
	}
	if c.limiter != nil {
		d, err := c.limiter.Allow(ctx, "llm:"+userID.String())
		switch {
		case err != nil:
			c.log.Warn("rate limiter unavailable; allowing call", "error", err, "user_id", userID)
		case !d.Allowed:
			c.log.Warn("llm call rate limited", "user_id", userID, "reset_at", d.ResetAt)
			observability.Current().IncRateLimited("llm")
			return "", ratelimit.ErrLimited
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	out, err := c.chat.ChatJSON(callCtx, system, user)
	if err != nil {
		return "", fmt.Errorf("llm chat: %w", err)
	}
	return out, nil
}
