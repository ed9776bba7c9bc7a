package schedule

import (
	domain "github.com/yungbote/studyplan-backend/internal/domain/schedule"
)

const (
	trendWindow    = 5
	trendThreshold = 0.5
)

// MoodTrendOf classifies chronologically ordered ratings by the sum of the
// consecutive deltas across the last five of them.
func MoodTrendOf(ratings []float64) domain.MoodTrend {
	if len(ratings) < 2 {
		return domain.TrendStable
	}
	recent := ratings
	if len(recent) > trendWindow {
		recent = recent[len(recent)-trendWindow:]
	}
	sum := 0.0
	for i := 1; i < len(recent); i++ {
		sum += recent[i] - recent[i-1]
	}
	switch {
	case sum > trendThreshold:
		return domain.TrendImproving
	case sum < -trendThreshold:
		return domain.TrendDeclining
	default:
		return domain.TrendStable
	}
}

// AverageMood is nil for an empty slice.
func AverageMood(ratings []float64) *float64 {
	if len(ratings) == 0 {
		return nil
	}
	total := 0.0
	for _, r := range ratings {
		total += r
	}
	avg := total / float64(len(ratings))
	return &avg
}
