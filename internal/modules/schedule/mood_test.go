package schedule

import (
	"testing"

	domain "github.com/yungbote/studyplan-backend/internal/domain/schedule"
)

func TestMoodTrendOf(t *testing.T) {
	cases := []struct {
		name    string
		ratings []float64
		want    domain.MoodTrend
	}{
		{"empty", nil, domain.TrendStable},
		{"single", []float64{1}, domain.TrendStable},
		{"two rising", []float64{2, 4}, domain.TrendImproving},
		{"two falling", []float64{4, 2}, domain.TrendDeclining},
		{"exact threshold is stable", []float64{3, 3.5}, domain.TrendStable},
		{"noisy but flat", []float64{3, 4, 3, 4, 3}, domain.TrendStable},
		{"only last five count", []float64{1, 5, 5, 5, 5, 5}, domain.TrendStable},
		{"late decline", []float64{5, 5, 5, 4, 3}, domain.TrendDeclining},
		{"late rise beyond window", []float64{5, 1, 1, 2, 2, 3}, domain.TrendImproving},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MoodTrendOf(tc.ratings); got != tc.want {
				t.Fatalf("MoodTrendOf(%v): got=%s want=%s", tc.ratings, got, tc.want)
			}
		})
	}
}

func TestAverageMood(t *testing.T) {
	if AverageMood(nil) != nil {
		t.Fatalf("AverageMood(nil): expected nil")
	}
	got := AverageMood([]float64{2, 3, 4, 5})
	if got == nil || *got != 3.5 {
		t.Fatalf("AverageMood: got=%v want=3.5", got)
	}
}
