package validate

import (
	"strings"
	"testing"

	"github.com/yungbote/studyplan-backend/internal/domain/schedule"
)

func TestStructPreferences(t *testing.T) {
	ok := schedule.DefaultPreferences()
	if err := Struct(ok); err != nil {
		t.Fatalf("default preferences should validate: %v", err)
	}

	bad := schedule.Preferences{
		PreferredStudyTime: "midnight",
		BreakDays:          []string{"Funday"},
		MaxDailyHours:      0,
	}
	err := Struct(bad)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"PreferredStudyTime", "BreakDays[0]", "MaxDailyHours"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q should mention %s", err.Error(), want)
		}
	}
}

func TestStructDaySchedule(t *testing.T) {
	day := schedule.DaySchedule{Subject: "Math", Duration: "45 mins", Focus: "Algebra", Motivation: "Go", Difficulty: "extreme"}
	if err := Struct(day); err == nil {
		t.Fatalf("expected difficulty to be rejected")
	}
	day.Difficulty = schedule.DifficultyHard
	if err := Struct(day); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
