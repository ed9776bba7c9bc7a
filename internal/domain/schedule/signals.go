package schedule

import (
	"time"

	"github.com/google/uuid"
)

type MoodTrend string

const (
	TrendImproving MoodTrend = "improving"
	TrendStable    MoodTrend = "stable"
	TrendDeclining MoodTrend = "declining"
)

type StudyTime string

const (
	StudyMorning   StudyTime = "morning"
	StudyAfternoon StudyTime = "afternoon"
	StudyEvening   StudyTime = "evening"
)

type SubjectPerformance struct {
	Subject     string    `json:"subject"`
	Score       float64   `json:"score"`
	LastStudied time.Time `json:"lastStudied"`
}

type JournalSentiment struct {
	OverallSentiment float64 `json:"overallSentiment"`
	RecentMood       string  `json:"recentMood"`
}

// NeutralSentiment is used whenever journal analysis is skipped or fails.
func NeutralSentiment() JournalSentiment {
	return JournalSentiment{OverallSentiment: 0, RecentMood: "neutral"}
}

type Preferences struct {
	PreferredStudyTime StudyTime `json:"preferredStudyTime" validate:"required,oneof=morning afternoon evening"`
	BreakDays          []string  `json:"breakDays" validate:"max=7,dive,weekday"`
	MaxDailyHours      float64   `json:"maxDailyHours" validate:"gt=0,lte=12"`
}

// DefaultPreferences applies to users who never saved any.
func DefaultPreferences() Preferences {
	return Preferences{
		PreferredStudyTime: StudyEvening,
		BreakDays:          []string{"Sunday"},
		MaxDailyHours:      3,
	}
}

func (p Preferences) IsBreakDay(day string) bool {
	for _, d := range p.BreakDays {
		if c, ok := CanonicalWeekday(d); ok && c == day {
			return true
		}
	}
	return false
}

// UserSignals is rebuilt on every uncached request and never persisted.
// AverageMood is nil when the user has no mood ratings.
type UserSignals struct {
	UserID             uuid.UUID            `json:"userId"`
	AverageMood        *float64             `json:"averageMood"`
	MoodTrend          MoodTrend            `json:"moodTrend"`
	SubjectPerformance []SubjectPerformance `json:"subjectPerformance"`
	JournalSentiment   JournalSentiment     `json:"journalSentiment"`
	Preferences        Preferences          `json:"preferences"`
	LastStudyDate      time.Time            `json:"lastStudyDate"`
}
