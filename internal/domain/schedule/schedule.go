package schedule

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Weekdays lists schedule keys in calendar order starting on Monday.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// CanonicalWeekday maps "monday", " MONDAY " etc. to "Monday".
func CanonicalWeekday(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, d := range Weekdays {
		if strings.EqualFold(s, d) {
			return d, true
		}
	}
	return "", false
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DaySchedule is one study session descriptor.
type DaySchedule struct {
	Subject    string     `json:"subject" validate:"required,max=120"`
	Duration   string     `json:"duration" validate:"required,max=40"`
	Focus      string     `json:"focus" validate:"required,max=240"`
	Motivation string     `json:"motivation" validate:"required,max=240"`
	Difficulty Difficulty `json:"difficulty" validate:"required,oneof=easy medium hard"`
}

// RestDay is the marker placed on a user's break days.
func RestDay() DaySchedule {
	return DaySchedule{
		Subject:    "Rest",
		Duration:   "0 mins",
		Focus:      "Recovery",
		Motivation: "Recharge today.",
		Difficulty: DifficultyEasy,
	}
}

// WeeklySchedule is immutable once built; a new generation supersedes it.
type WeeklySchedule struct {
	UserID        uuid.UUID              `json:"userId"`
	WeekStartDate string                 `json:"weekStartDate"`
	Schedule      map[string]DaySchedule `json:"schedule"`
	GeneratedAt   time.Time              `json:"generatedAt"`
	IsAIGenerated bool                   `json:"isAIGenerated"`
}

// WeekStart returns the Monday (UTC) of the week containing t as YYYY-MM-DD.
func WeekStart(t time.Time) string {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	monday := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -offset)
	return monday.Format("2006-01-02")
}
