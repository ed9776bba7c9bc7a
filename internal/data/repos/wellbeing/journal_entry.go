package wellbeing

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/studyplan-backend/internal/domain/wellbeing"
	"github.com/yungbote/studyplan-backend/internal/platform/dbctx"
	"github.com/yungbote/studyplan-backend/internal/platform/logger"
)

type JournalEntryRepo interface {
	Create(dbc dbctx.Context, rows []*types.JournalEntry) error
	// ListRecent returns at most limit entries, newest first.
	ListRecent(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.JournalEntry, error)
}

type journalEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJournalEntryRepo(db *gorm.DB, baseLog *logger.Logger) JournalEntryRepo {
	return &journalEntryRepo{db: db, log: baseLog.With("repo", "JournalEntryRepo")}
}

func (r *journalEntryRepo) Create(dbc dbctx.Context, rows []*types.JournalEntry) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).Create(&rows).Error
}

func (r *journalEntryRepo) ListRecent(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.JournalEntry, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.JournalEntry
	if userID == uuid.Nil {
		return out, nil
	}
	if limit <= 0 {
		limit = 10
	}
	err := t.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
