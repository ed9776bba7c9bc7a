package wellbeing

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MoodRating is a self-reported mood on a 1..5 scale.
type MoodRating struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_mood_user_recorded,priority:1" json:"user_id"`
	Rating     float64   `gorm:"not null" json:"rating"`
	Note       string    `gorm:"column:note" json:"note,omitempty"`
	RecordedAt time.Time `gorm:"not null;index:idx_mood_user_recorded,priority:2" json:"recorded_at"`
}

func (MoodRating) TableName() string { return "mood_rating" }

func (m *MoodRating) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.RecordedAt.IsZero() {
		m.RecordedAt = time.Now().UTC()
	}
	return nil
}

type JournalEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_journal_user_created,priority:1" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"not null;index:idx_journal_user_created,priority:2" json:"created_at"`
}

func (JournalEntry) TableName() string { return "journal_entry" }

func (j *JournalEntry) BeforeCreate(*gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// SubjectScore is one graded result; performance-by-subject is the latest per subject.
type SubjectScore struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_score_user_subject,priority:1" json:"user_id"`
	Subject    string    `gorm:"not null;index:idx_score_user_subject,priority:2" json:"subject"`
	Score      float64   `gorm:"not null" json:"score"`
	RecordedAt time.Time `gorm:"not null;index" json:"recorded_at"`
}

func (SubjectScore) TableName() string { return "subject_score" }

func (s *SubjectScore) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.RecordedAt.IsZero() {
		s.RecordedAt = time.Now().UTC()
	}
	return nil
}

type StudySession struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_session_user_started,priority:1" json:"user_id"`
	Subject   string    `gorm:"column:subject" json:"subject"`
	StartedAt time.Time `gorm:"not null;index:idx_session_user_started,priority:2" json:"started_at"`
	Minutes   int       `gorm:"not null;default:0" json:"minutes"`
}

func (StudySession) TableName() string { return "study_session" }

func (s *StudySession) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// StudyPreferences is the persisted form of schedule.Preferences.
type StudyPreferences struct {
	ID                 uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	PreferredStudyTime string                      `gorm:"not null" json:"preferred_study_time"`
	BreakDays          datatypes.JSONSlice[string] `gorm:"column:break_days" json:"break_days"`
	MaxDailyHours      float64                     `gorm:"not null" json:"max_daily_hours"`
	UpdatedAt          time.Time                   `gorm:"not null;index" json:"updated_at"`
}

func (StudyPreferences) TableName() string { return "study_preferences" }

// Models lists every table owned by this package, in migration order.
func Models() []any {
	return []any{
		&MoodRating{},
		&JournalEntry{},
		&SubjectScore{},
		&StudySession{},
		&StudyPreferences{},
	}
}
