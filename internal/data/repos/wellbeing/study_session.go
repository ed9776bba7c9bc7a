package wellbeing

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/studyplan-backend/internal/domain/wellbeing"
	"github.com/yungbote/studyplan-backend/internal/platform/dbctx"
	"github.com/yungbote/studyplan-backend/internal/platform/logger"
)

type StudySessionRepo interface {
	Create(dbc dbctx.Context, rows []*types.StudySession) error
	// LastStartedAt returns nil when the user has never logged a session.
	LastStartedAt(dbc dbctx.Context, userID uuid.UUID) (*time.Time, error)
}

type studySessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudySessionRepo(db *gorm.DB, baseLog *logger.Logger) StudySessionRepo {
	return &studySessionRepo{db: db, log: baseLog.With("repo", "StudySessionRepo")}
}

func (r *studySessionRepo) Create(dbc dbctx.Context, rows []*types.StudySession) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).Create(&rows).Error
}

func (r *studySessionRepo) LastStartedAt(dbc dbctx.Context, userID uuid.UUID) (*time.Time, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return nil, nil
	}
	var row types.StudySession
	err := t.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	started := row.StartedAt.UTC()
	return &started, nil
}
