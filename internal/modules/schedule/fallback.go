package schedule

import (
	"sort"
	"time"

	domain "github.com/yungbote/studyplan-backend/internal/domain/schedule"
)

const placeholderSubject = "General Review"

var fallbackDays = domain.Weekdays[:5]

// GenerateFallback builds the rule-based Monday–Friday plan: weakest subject
// first, then round-robin over the remaining subjects by weekday index.
// Break days keep their key but carry the rest marker.
func GenerateFallback(signals *domain.UserSignals, now time.Time) *domain.WeeklySchedule {
	subjects := sortedSubjects(signals.SubjectPerformance)

	days := make(map[string]domain.DaySchedule, len(fallbackDays))
	for i, day := range fallbackDays {
		if signals.Preferences.IsBreakDay(day) {
			days[day] = domain.RestDay()
			continue
		}
		days[day] = domain.DaySchedule{
			Subject:    subjects[i%len(subjects)].Subject,
			Duration:   "45 mins",
			Focus:      "Core concepts",
			Motivation: "Keep going!",
			Difficulty: domain.DifficultyMedium,
		}
	}

	return &domain.WeeklySchedule{
		UserID:        signals.UserID,
		WeekStartDate: domain.WeekStart(now),
		Schedule:      days,
		GeneratedAt:   now.UTC(),
		IsAIGenerated: false,
	}
}

// sortedSubjects orders ascending by score (ties by name) and never returns an empty slice.
func sortedSubjects(in []domain.SubjectPerformance) []domain.SubjectPerformance {
	if len(in) == 0 {
		return []domain.SubjectPerformance{{Subject: placeholderSubject}}
	}
	out := make([]domain.SubjectPerformance, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score < out[j].Score
		}
		return out[i].Subject < out[j].Subject
	})
	return out
}
