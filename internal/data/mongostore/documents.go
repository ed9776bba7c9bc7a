package mongostore

import (
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/studyplan-backend/internal/domain/wellbeing"
)

// Documents keep ids as strings so the collections stay readable from the shell.

type moodDoc struct {
	ID         string    `bson:"_id"`
	UserID     string    `bson:"user_id"`
	Rating     float64   `bson:"rating"`
	Note       string    `bson:"note,omitempty"`
	RecordedAt time.Time `bson:"recorded_at"`
}

type journalDoc struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"created_at"`
}

type scoreDoc struct {
	ID         string    `bson:"_id"`
	UserID     string    `bson:"user_id"`
	Subject    string    `bson:"subject"`
	Score      float64   `bson:"score"`
	RecordedAt time.Time `bson:"recorded_at"`
}

type sessionDoc struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Subject   string    `bson:"subject,omitempty"`
	StartedAt time.Time `bson:"started_at"`
	Minutes   int       `bson:"minutes"`
}

type preferencesDoc struct {
	ID                 string    `bson:"_id"`
	UserID             string    `bson:"user_id"`
	PreferredStudyTime string    `bson:"preferred_study_time"`
	BreakDays          []string  `bson:"break_days"`
	MaxDailyHours      float64   `bson:"max_daily_hours"`
	UpdatedAt          time.Time `bson:"updated_at"`
}

func ensureID(id *uuid.UUID) string {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	return id.String()
}

func parseID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func orNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}

func (d moodDoc) toRow() *types.MoodRating {
	return &types.MoodRating{ID: parseID(d.ID), UserID: parseID(d.UserID), Rating: d.Rating, Note: d.Note, RecordedAt: d.RecordedAt.UTC()}
}

func (d journalDoc) toRow() *types.JournalEntry {
	return &types.JournalEntry{ID: parseID(d.ID), UserID: parseID(d.UserID), Content: d.Content, CreatedAt: d.CreatedAt.UTC()}
}

func (d scoreDoc) toRow() *types.SubjectScore {
	return &types.SubjectScore{ID: parseID(d.ID), UserID: parseID(d.UserID), Subject: d.Subject, Score: d.Score, RecordedAt: d.RecordedAt.UTC()}
}

func (d preferencesDoc) toRow() *types.StudyPreferences {
	return &types.StudyPreferences{
		ID:                 parseID(d.ID),
		UserID:             parseID(d.UserID),
		PreferredStudyTime: d.PreferredStudyTime,
		BreakDays:          d.BreakDays,
		MaxDailyHours:      d.MaxDailyHours,
		UpdatedAt:          d.UpdatedAt.UTC(),
	}
}
