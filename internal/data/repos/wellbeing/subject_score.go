package wellbeing

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/studyplan-backend/internal/domain/wellbeing"
	"github.com/yungbote/studyplan-backend/internal/platform/dbctx"
	"github.com/yungbote/studyplan-backend/internal/platform/logger"
)

type SubjectScoreRepo interface {
	Create(dbc dbctx.Context, rows []*types.SubjectScore) error
	// LatestBySubject returns one row per subject: the most recently recorded score.
	LatestBySubject(dbc dbctx.Context, userID uuid.UUID) ([]*types.SubjectScore, error)
}

type subjectScoreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubjectScoreRepo(db *gorm.DB, baseLog *logger.Logger) SubjectScoreRepo {
	return &subjectScoreRepo{db: db, log: baseLog.With("repo", "SubjectScoreRepo")}
}

func (r *subjectScoreRepo) Create(dbc dbctx.Context, rows []*types.SubjectScore) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).Create(&rows).Error
}

func (r *subjectScoreRepo) LatestBySubject(dbc dbctx.Context, userID uuid.UUID) ([]*types.SubjectScore, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	out := []*types.SubjectScore{}
	if userID == uuid.Nil {
		return out, nil
	}
	latest := t.Model(&types.SubjectScore{}).
		Select("subject, MAX(recorded_at) AS latest").
		Where("user_id = ?", userID).
		Group("subject")

	var rows []*types.SubjectScore
	err := t.WithContext(dbc.Ctx).
		Table("subject_score AS s").
		Select("s.*").
		Joins("JOIN (?) AS m ON s.subject = m.subject AND s.recorded_at = m.latest", latest).
		Where("s.user_id = ?", userID).
		Order("s.subject ASC, s.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	// two scores recorded at the same instant collapse to the first
	seen := map[string]bool{}
	for _, row := range rows {
		if seen[row.Subject] {
			continue
		}
		seen[row.Subject] = true
		out = append(out, row)
	}
	return out, nil
}
