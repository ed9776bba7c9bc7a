package schedule

import (
	"context"
	"encoding/json"
	"math"
	"strings"

	"github.com/google/uuid"

	domain "github.com/yungbote/studyplan-backend/internal/domain/schedule"
	"github.com/yungbote/studyplan-backend/internal/platform/logger"
)

// SentimentAnalyzer never fails; any problem degrades to neutral sentiment.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, userID uuid.UUID, entries []string) domain.JournalSentiment
}

type sentimentAnalyzer struct {
	llm *LimitedChatter
	log *logger.Logger
}

func NewSentimentAnalyzer(llm *LimitedChatter, baseLog *logger.Logger) SentimentAnalyzer {
	return &sentimentAnalyzer{llm: llm, log: baseLog.With("service", "SentimentAnalyzer")}
}

type sentimentReply struct {
	Sentiment *float64 `json:"sentiment"`
	Mood      string   `json:"mood"`
}

func (a *sentimentAnalyzer) Analyze(ctx context.Context, userID uuid.UUID, entries []string) domain.JournalSentiment {
	texts := make([]string, 0, len(entries))
	for _, e := range entries {
		if e = strings.TrimSpace(e); e != "" {
			texts = append(texts, e)
		}
	}
	if len(texts) == 0 || !a.llm.Enabled() {
		return domain.NeutralSentiment()
	}

	system, user, err := currentPrompts(a.log).sentiment.render(sentimentPromptData{Entries: texts})
	if err != nil {
		a.log.Warn("sentiment prompt render failed", "error", err)
		return domain.NeutralSentiment()
	}
	raw, err := a.llm.Chat(ctx, userID, system, user)
	if err != nil {
		a.log.Warn("sentiment analysis failed; using neutral", "error", err, "user_id", userID)
		return domain.NeutralSentiment()
	}
	out, ok := parseSentiment(raw)
	if !ok {
		a.log.Warn("sentiment reply unparseable; using neutral", "user_id", userID)
		return domain.NeutralSentiment()
	}
	return out
}

func parseSentiment(raw string) (domain.JournalSentiment, bool) {
	var reply sentimentReply
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &reply); err != nil || reply.Sentiment == nil {
		return domain.JournalSentiment{}, false
	}
	mood := strings.TrimSpace(reply.Mood)
	if mood == "" {
		mood = "neutral"
	}
	return domain.JournalSentiment{
		OverallSentiment: math.Max(-1, math.Min(1, *reply.Sentiment)),
		RecentMood:       mood,
	}, true
}
