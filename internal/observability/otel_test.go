package observability

import (
	"reflect"
	"testing"
)

func TestParseHeaders(t *testing.T) {
	got := parseHeaders(" api-key = abc , broken, =x, team=study ")
	want := map[string]string{"api-key": "abc", "team": "study"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("parseHeaders: got=%v want=%v", got, want)
	}
	if parseHeaders("") != nil {
		t.Fatalf("empty headers should be nil")
	}
}

func TestClampRatio(t *testing.T) {
	cases := map[float64]float64{-1: 0.1, 0: 0.1, 0.5: 0.5, 3: 1}
	for in, want := range cases {
		if got := clampRatio(in); got != want {
			t.Fatalf("clampRatio(%v)=%v want %v", in, got, want)
		}
	}
}
