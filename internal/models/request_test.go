package models

import (
	"testing"
	"time"
)

func TestDateRangeValid(t *testing.T) {
	jan := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		dr   *DateRange
		want bool
	}{
		{"nil", nil, false},
		{"zero start", &DateRange{End: feb}, false},
		{"zero end", &DateRange{Start: jan}, false},
		{"reversed", &DateRange{Start: feb, End: jan}, false},
		{"single instant", &DateRange{Start: jan, End: jan}, true},
		{"ordered", &DateRange{Start: jan, End: feb}, true},
	}
	for _, tc := range cases {
		if got := tc.dr.Valid(); got != tc.want {
			t.Fatalf("%s: Valid() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
