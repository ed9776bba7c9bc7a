package wellbeing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/studyplan-backend/internal/data/repos/testutil"
	types "github.com/yungbote/studyplan-backend/internal/domain/wellbeing"
	"github.com/yungbote/studyplan-backend/internal/platform/dbctx"
)

var base = time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

func TestMoodRatingRepoListSinceIsChronological(t *testing.T) {
	db := testutil.DB(t)
	repo := NewMoodRatingRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}
	userID := uuid.New()
	other := uuid.New()

	err := repo.Create(dbc, []*types.MoodRating{
		{UserID: userID, Rating: 4, RecordedAt: base.Add(48 * time.Hour)},
		{UserID: userID, Rating: 2, RecordedAt: base.Add(-72 * time.Hour)},
		{UserID: userID, Rating: 3, RecordedAt: base.Add(24 * time.Hour)},
		{UserID: other, Rating: 5, RecordedAt: base.Add(24 * time.Hour)},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.ListSince(dbc, userID, base)
	if err != nil {
		t.Fatalf("ListSince: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListSince: want=2 got=%d", len(got))
	}
	if got[0].Rating != 3 || got[1].Rating != 4 {
		t.Fatalf("ListSince: unexpected order: %v, %v", got[0].Rating, got[1].Rating)
	}
}

func TestJournalEntryRepoListRecentHonoursLimit(t *testing.T) {
	db := testutil.DB(t)
	repo := NewJournalEntryRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}
	userID := uuid.New()

	rows := make([]*types.JournalEntry, 0, 5)
	for i := 0; i < 5; i++ {
		rows = append(rows, &types.JournalEntry{
			UserID:    userID,
			Content:   "entry",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	if err := repo.Create(dbc, rows); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.ListRecent(dbc, userID, 3)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ListRecent: want=3 got=%d", len(got))
	}
	if !got[0].CreatedAt.Equal(base.Add(4 * time.Hour)) {
		t.Fatalf("ListRecent: newest first expected, got %s", got[0].CreatedAt)
	}
}

func TestSubjectScoreRepoLatestBySubject(t *testing.T) {
	db := testutil.DB(t)
	repo := NewSubjectScoreRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}
	userID := uuid.New()

	err := repo.Create(dbc, []*types.SubjectScore{
		{UserID: userID, Subject: "Math", Score: 30, RecordedAt: base},
		{UserID: userID, Subject: "Math", Score: 40, RecordedAt: base.Add(time.Hour)},
		{UserID: userID, Subject: "English", Score: 70, RecordedAt: base},
		{UserID: uuid.New(), Subject: "Math", Score: 99, RecordedAt: base.Add(2 * time.Hour)},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.LatestBySubject(dbc, userID)
	if err != nil {
		t.Fatalf("LatestBySubject: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("LatestBySubject: want=2 got=%d", len(got))
	}
	scores := map[string]float64{}
	for _, row := range got {
		scores[row.Subject] = row.Score
	}
	if scores["Math"] != 40 || scores["English"] != 70 {
		t.Fatalf("LatestBySubject: unexpected scores %v", scores)
	}
}

func TestStudySessionRepoLastStartedAt(t *testing.T) {
	db := testutil.DB(t)
	repo := NewStudySessionRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}
	userID := uuid.New()

	last, err := repo.LastStartedAt(dbc, userID)
	if err != nil {
		t.Fatalf("LastStartedAt (empty): %v", err)
	}
	if last != nil {
		t.Fatalf("LastStartedAt (empty): expected nil, got %s", last)
	}

	err = repo.Create(dbc, []*types.StudySession{
		{UserID: userID, Subject: "Math", StartedAt: base, Minutes: 30},
		{UserID: userID, Subject: "Science", StartedAt: base.Add(26 * time.Hour), Minutes: 45},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	last, err = repo.LastStartedAt(dbc, userID)
	if err != nil {
		t.Fatalf("LastStartedAt: %v", err)
	}
	if last == nil || !last.Equal(base.Add(26*time.Hour)) {
		t.Fatalf("LastStartedAt: unexpected %v", last)
	}
}

func TestStudyPreferencesRepoUpsert(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewStudyPreferencesRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	userID := uuid.New()

	if got, err := repo.GetByUserID(dbc, userID); err != nil || got != nil {
		t.Fatalf("GetByUserID (missing): got=%v err=%v", got, err)
	}

	if err := repo.Upsert(dbc, &types.StudyPreferences{
		UserID:             userID,
		PreferredStudyTime: "morning",
		BreakDays:          []string{"Saturday"},
		MaxDailyHours:      2,
	}); err != nil {
		t.Fatalf("Upsert (insert): %v", err)
	}
	if err := repo.Upsert(dbc, &types.StudyPreferences{
		UserID:             userID,
		PreferredStudyTime: "afternoon",
		BreakDays:          []string{"Saturday", "Sunday"},
		MaxDailyHours:      4,
	}); err != nil {
		t.Fatalf("Upsert (update): %v", err)
	}

	got, err := repo.GetByUserID(dbc, userID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if got == nil || got.PreferredStudyTime != "afternoon" || got.MaxDailyHours != 4 || len(got.BreakDays) != 2 {
		t.Fatalf("GetByUserID: unexpected row %+v", got)
	}
}
