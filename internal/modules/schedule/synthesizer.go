package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	domain "github.com/yungbote/studyplan-backend/internal/domain/schedule"
	"github.com/yungbote/studyplan-backend/internal/platform/ctxutil"
	"github.com/yungbote/studyplan-backend/internal/platform/logger"
	"github.com/yungbote/studyplan-backend/internal/platform/validate"
)

var errNoValidDays = errors.New("no valid weekday entries in reply")

// Synthesizer asks the LLM for a weekly plan. Synthesize returns nil on any
// failure (disabled, rate limited, timeout, unparseable reply) so the caller
// can fall back.
type Synthesizer struct {
	llm *LimitedChatter
	log *logger.Logger
	now func() time.Time
}

func NewSynthesizer(llm *LimitedChatter, baseLog *logger.Logger, now func() time.Time) *Synthesizer {
	if now == nil {
		now = time.Now
	}
	return &Synthesizer{llm: llm, log: baseLog.With("service", "Synthesizer"), now: now}
}

func (s *Synthesizer) Synthesize(ctx context.Context, signals *domain.UserSignals, user *ctxutil.Principal) *domain.WeeklySchedule {
	if signals == nil || !s.llm.Enabled() {
		return nil
	}
	userID := signals.UserID
	if user != nil {
		userID = user.ID
	}
	now := s.now().UTC()

	system, prompt, err := s.buildPrompt(signals, now)
	if err != nil {
		s.log.Warn("synthesis prompt build failed", "error", err, "user_id", userID)
		return nil
	}
	raw, err := s.llm.Chat(ctx, userID, system, prompt)
	if err != nil {
		s.log.Warn("synthesis call failed; falling back", "error", err, "user_id", userID)
		return nil
	}
	days, err := parseSchedule(raw)
	if err != nil {
		s.log.Warn("synthesis reply rejected; falling back", "error", err, "user_id", userID)
		return nil
	}
	for day := range days {
		if signals.Preferences.IsBreakDay(day) {
			days[day] = domain.RestDay()
		}
	}

	return &domain.WeeklySchedule{
		UserID:        signals.UserID,
		WeekStartDate: domain.WeekStart(now),
		Schedule:      days,
		GeneratedAt:   now,
		IsAIGenerated: true,
	}
}

func (s *Synthesizer) buildPrompt(signals *domain.UserSignals, now time.Time) (string, string, error) {
	payload, err := json.MarshalIndent(signals, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("marshal signals: %w", err)
	}
	mood := "no mood data"
	if signals.AverageMood != nil {
		mood = fmt.Sprintf("%.1f / 5 (%s)", *signals.AverageMood, signals.MoodTrend)
	}
	return currentPrompts(s.log).synthesis.render(synthesisPromptData{
		SignalsJSON: string(payload),
		MoodSummary: mood,
		Today:       now.Weekday().String(),
		WeekStart:   domain.WeekStart(now),
	})
}

// parseSchedule accepts the weekday object either at the top level or under a
// "schedule" key. Unknown keys are ignored and entries failing validation are
// dropped; a reply with no usable day is an error.
func parseSchedule(raw string) (map[string]domain.DaySchedule, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &top); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}
	for k, v := range top {
		if strings.EqualFold(strings.TrimSpace(k), "schedule") {
			var inner map[string]json.RawMessage
			if err := json.Unmarshal(v, &inner); err == nil {
				top = inner
			}
			break
		}
	}

	keys := make([]string, 0, len(top))
	for k := range top {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]domain.DaySchedule, len(domain.Weekdays))
	for _, k := range keys {
		day, ok := domain.CanonicalWeekday(k)
		if !ok {
			continue
		}
		if _, dup := out[day]; dup {
			continue
		}
		var entry domain.DaySchedule
		if err := json.Unmarshal(top[k], &entry); err != nil {
			continue
		}
		entry = normalizeDay(entry)
		if err := validate.Struct(entry); err != nil {
			continue
		}
		out[day] = entry
	}
	if len(out) == 0 {
		return nil, errNoValidDays
	}
	return out, nil
}

func normalizeDay(d domain.DaySchedule) domain.DaySchedule {
	d.Subject = strings.TrimSpace(d.Subject)
	d.Duration = strings.TrimSpace(d.Duration)
	d.Focus = strings.TrimSpace(d.Focus)
	d.Motivation = strings.TrimSpace(d.Motivation)
	d.Difficulty = domain.Difficulty(strings.ToLower(strings.TrimSpace(string(d.Difficulty))))
	return d
}

// stripCodeFence removes a ```json ... ``` wrapper some models add despite JSON mode.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
