package wellbeing

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/studyplan-backend/internal/domain/wellbeing"
	"github.com/yungbote/studyplan-backend/internal/platform/dbctx"
	"github.com/yungbote/studyplan-backend/internal/platform/logger"
)

type StudyPreferencesRepo interface {
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.StudyPreferences, error)
	Upsert(dbc dbctx.Context, row *types.StudyPreferences) error
}

type studyPreferencesRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudyPreferencesRepo(db *gorm.DB, baseLog *logger.Logger) StudyPreferencesRepo {
	return &studyPreferencesRepo{db: db, log: baseLog.With("repo", "StudyPreferencesRepo")}
}

func (r *studyPreferencesRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.StudyPreferences, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return nil, nil
	}
	var row types.StudyPreferences
	if err := t.WithContext(dbc.Ctx).Where("user_id = ?", userID).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *studyPreferencesRepo) Upsert(dbc dbctx.Context, row *types.StudyPreferences) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if row == nil || row.UserID == uuid.Nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	row.UpdatedAt = time.Now().UTC()
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"preferred_study_time",
				"break_days",
				"max_daily_hours",
				"updated_at",
			}),
		}).
		Create(row).Error
}
