package mongostore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/studyplan-backend/internal/domain/wellbeing"
	"github.com/yungbote/studyplan-backend/internal/platform/dbctx"
	"github.com/yungbote/studyplan-backend/internal/platform/logger"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("set TEST_MONGO_URI to run mongo integration tests")
	}
	s, err := Connect(context.Background(), logger.Nop(), Config{URI: uri, Database: "studyplan_test_" + uuid.NewString()[:8]})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() {
		_ = s.db.Drop(context.Background())
		_ = s.Close(context.Background())
	})
	return s
}

func TestSubjectScoreRepoLatestBySubject(t *testing.T) {
	s := testStore(t)
	repo := NewSubjectScoreRepo(s)
	dbc := dbctx.Context{Ctx: context.Background()}
	userID := uuid.New()
	base := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

	err := repo.Create(dbc, []*types.SubjectScore{
		{UserID: userID, Subject: "Math", Score: 30, RecordedAt: base},
		{UserID: userID, Subject: "Math", Score: 40, RecordedAt: base.Add(time.Hour)},
		{UserID: userID, Subject: "English", Score: 70, RecordedAt: base},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.LatestBySubject(dbc, userID)
	if err != nil {
		t.Fatalf("LatestBySubject: %v", err)
	}
	if len(got) != 2 || got[0].Subject != "English" || got[1].Score != 40 {
		t.Fatalf("LatestBySubject: unexpected rows %+v", got)
	}
}

func TestStudyPreferencesRepoUpsert(t *testing.T) {
	s := testStore(t)
	repo := NewStudyPreferencesRepo(s)
	dbc := dbctx.Context{Ctx: context.Background()}
	userID := uuid.New()

	for _, hours := range []float64{2, 5} {
		if err := repo.Upsert(dbc, &types.StudyPreferences{UserID: userID, PreferredStudyTime: "morning", BreakDays: []string{"Sunday"}, MaxDailyHours: hours}); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}
	got, err := repo.GetByUserID(dbc, userID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if got == nil || got.MaxDailyHours != 5 {
		t.Fatalf("GetByUserID: unexpected %+v", got)
	}
}
