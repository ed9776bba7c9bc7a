package wellbeing

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/studyplan-backend/internal/domain/wellbeing"
	"github.com/yungbote/studyplan-backend/internal/platform/dbctx"
	"github.com/yungbote/studyplan-backend/internal/platform/logger"
)

type MoodRatingRepo interface {
	Create(dbc dbctx.Context, rows []*types.MoodRating) error
	// ListSince returns ratings recorded at or after since, oldest first.
	ListSince(dbc dbctx.Context, userID uuid.UUID, since time.Time) ([]*types.MoodRating, error)
}

type moodRatingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMoodRatingRepo(db *gorm.DB, baseLog *logger.Logger) MoodRatingRepo {
	return &moodRatingRepo{db: db, log: baseLog.With("repo", "MoodRatingRepo")}
}

func (r *moodRatingRepo) Create(dbc dbctx.Context, rows []*types.MoodRating) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).Create(&rows).Error
}

func (r *moodRatingRepo) ListSince(dbc dbctx.Context, userID uuid.UUID, since time.Time) ([]*types.MoodRating, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.MoodRating
	if userID == uuid.Nil {
		return out, nil
	}
	q := t.WithContext(dbc.Ctx).Where("user_id = ?", userID)
	if !since.IsZero() {
		q = q.Where("recorded_at >= ?", since.UTC())
	}
	if err := q.Order("recorded_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
