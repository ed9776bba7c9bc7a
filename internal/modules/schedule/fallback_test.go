package schedule

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	domain "github.com/yungbote/studyplan-backend/internal/domain/schedule"
)

var fixedNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func signalsWith(subjects ...domain.SubjectPerformance) *domain.UserSignals {
	return &domain.UserSignals{
		UserID:             uuid.New(),
		MoodTrend:          domain.TrendStable,
		SubjectPerformance: subjects,
		JournalSentiment:   domain.NeutralSentiment(),
		Preferences:        domain.DefaultPreferences(),
	}
}

func TestGenerateFallbackWeakestFirstRoundRobin(t *testing.T) {
	s := signalsWith(
		domain.SubjectPerformance{Subject: "Math", Score: 40},
		domain.SubjectPerformance{Subject: "English", Score: 70},
		domain.SubjectPerformance{Subject: "Science", Score: 55},
	)
	got := GenerateFallback(s, fixedNow)

	if got.IsAIGenerated {
		t.Fatalf("fallback must not be marked AI generated")
	}
	if len(got.Schedule) != 5 {
		t.Fatalf("want 5 weekday keys, got %d", len(got.Schedule))
	}
	want := map[string]string{
		"Monday":    "Math",
		"Tuesday":   "Science",
		"Wednesday": "English",
		"Thursday":  "Math",
		"Friday":    "Science",
	}
	for day, subject := range want {
		entry, ok := got.Schedule[day]
		if !ok {
			t.Fatalf("missing %s", day)
		}
		if entry.Subject != subject {
			t.Fatalf("%s: got=%s want=%s", day, entry.Subject, subject)
		}
		if entry.Duration != "45 mins" || entry.Focus != "Core concepts" || entry.Motivation != "Keep going!" || entry.Difficulty != domain.DifficultyMedium {
			t.Fatalf("%s: unexpected descriptor %+v", day, entry)
		}
	}
	if got.WeekStartDate != "2026-10-12" {
		t.Fatalf("unexpected week start %s", got.WeekStartDate)
	}
	if got.UserID != s.UserID {
		t.Fatalf("user id not carried over")
	}
}

func TestGenerateFallbackIsDeterministic(t *testing.T) {
	s := signalsWith(
		domain.SubjectPerformance{Subject: "History", Score: 60},
		domain.SubjectPerformance{Subject: "Art", Score: 60},
		domain.SubjectPerformance{Subject: "Biology", Score: 10},
	)
	first := GenerateFallback(s, fixedNow)
	for i := 0; i < 10; i++ {
		if again := GenerateFallback(s, fixedNow); !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %+v vs %+v", i, first, again)
		}
	}
	if first.Schedule["Tuesday"].Subject != "Art" {
		t.Fatalf("score ties should break by name, got %s", first.Schedule["Tuesday"].Subject)
	}
}

func TestGenerateFallbackEmptySubjectsUsesPlaceholder(t *testing.T) {
	got := GenerateFallback(signalsWith(), fixedNow)
	if len(got.Schedule) != 5 {
		t.Fatalf("want 5 weekday keys, got %d", len(got.Schedule))
	}
	for day, entry := range got.Schedule {
		if entry.Subject != "General Review" {
			t.Fatalf("%s: got=%s want=General Review", day, entry.Subject)
		}
	}
}

func TestGenerateFallbackMarksBreakDaysAsRest(t *testing.T) {
	s := signalsWith(
		domain.SubjectPerformance{Subject: "Math", Score: 40},
		domain.SubjectPerformance{Subject: "English", Score: 70},
	)
	s.Preferences.BreakDays = []string{"wednesday"}
	got := GenerateFallback(s, fixedNow)

	if len(got.Schedule) != 5 {
		t.Fatalf("want 5 weekday keys, got %d", len(got.Schedule))
	}
	if got.Schedule["Wednesday"] != domain.RestDay() {
		t.Fatalf("Wednesday should be a rest day, got %+v", got.Schedule["Wednesday"])
	}
	if got.Schedule["Thursday"].Subject != "English" {
		t.Fatalf("round robin should keep the weekday index, got %s", got.Schedule["Thursday"].Subject)
	}
}

func TestGenerateFallbackDoesNotReorderInput(t *testing.T) {
	s := signalsWith(
		domain.SubjectPerformance{Subject: "English", Score: 70},
		domain.SubjectPerformance{Subject: "Math", Score: 40},
	)
	_ = GenerateFallback(s, fixedNow)
	if s.SubjectPerformance[0].Subject != "English" {
		t.Fatalf("input slice must not be sorted in place")
	}
}
