package schedule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	wellbeingrepos "github.com/yungbote/studyplan-backend/internal/data/repos/wellbeing"
	domain "github.com/yungbote/studyplan-backend/internal/domain/schedule"
	types "github.com/yungbote/studyplan-backend/internal/domain/wellbeing"
	"github.com/yungbote/studyplan-backend/internal/platform/apierr"
	"github.com/yungbote/studyplan-backend/internal/platform/dbctx"
	"github.com/yungbote/studyplan-backend/internal/platform/validate"
)

// PreferencesStore returns DefaultPreferences for users without a saved row.
type PreferencesStore interface {
	Get(ctx context.Context, userID uuid.UUID) (domain.Preferences, error)
	Save(ctx context.Context, userID uuid.UUID, p domain.Preferences) (domain.Preferences, error)
}

type preferencesStore struct {
	repo wellbeingrepos.StudyPreferencesRepo
}

func NewPreferencesStore(repo wellbeingrepos.StudyPreferencesRepo) PreferencesStore {
	return &preferencesStore{repo: repo}
}

func (s *preferencesStore) Get(ctx context.Context, userID uuid.UUID) (domain.Preferences, error) {
	row, err := s.repo.GetByUserID(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("load preferences: %w", err)
	}
	if row == nil {
		return domain.DefaultPreferences(), nil
	}
	return domain.Preferences{
		PreferredStudyTime: domain.StudyTime(row.PreferredStudyTime),
		BreakDays:          append([]string{}, row.BreakDays...),
		MaxDailyHours:      row.MaxDailyHours,
	}, nil
}

// Save validates p, canonicalizes weekday names and upserts the row.
func (s *preferencesStore) Save(ctx context.Context, userID uuid.UUID, p domain.Preferences) (domain.Preferences, error) {
	if err := validate.Struct(p); err != nil {
		return domain.Preferences{}, apierr.BadRequest("invalid_preferences", err)
	}
	p.BreakDays = canonicalDays(p.BreakDays)
	err := s.repo.Upsert(dbctx.Context{Ctx: ctx}, &types.StudyPreferences{
		UserID:             userID,
		PreferredStudyTime: string(p.PreferredStudyTime),
		BreakDays:          p.BreakDays,
		MaxDailyHours:      p.MaxDailyHours,
	})
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("save preferences: %w", err)
	}
	return p, nil
}

// canonicalDays dedupes and orders break days Monday first.
func canonicalDays(in []string) []string {
	seen := map[string]bool{}
	for _, d := range in {
		if c, ok := domain.CanonicalWeekday(d); ok {
			seen[c] = true
		}
	}
	out := make([]string, 0, len(seen))
	for _, d := range domain.Weekdays {
		if seen[d] {
			out = append(out, d)
		}
	}
	return out
}
