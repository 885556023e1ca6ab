package analytics

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestGrowthRate(t *testing.T) {
	cases := []struct {
		previous, current string
		want              float64
	}{
		{"0", "0", 0},
		{"0", "50", 100},
		{"100", "150", 50},
		{"100", "50", -50},
		{"0", "-20", 0},
		{"200", "200", 0},
		{"-100", "-50", -50},
	}

	for _, tc := range cases {
		if got := GrowthRate(dec(tc.previous), dec(tc.current)); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("GrowthRate(%s, %s) = %v, want %v", tc.previous, tc.current, got, tc.want)
		}
	}
}

func TestPercentOfZeroWhole(t *testing.T) {
	if got := percentOf(dec("10"), decimal.Zero); got != 0 {
		t.Fatalf("percentOf(10, 0) = %v, want 0", got)
	}
	if got := percentOf(dec("25"), dec("200")); got != 12.5 {
		t.Fatalf("percentOf(25, 200) = %v, want 12.5", got)
	}
}

func TestAverageFloorsCount(t *testing.T) {
	assertDecimal(t, "average(0, 0)", average(decimal.Zero, 0), "0")
	assertDecimal(t, "average(100, 0)", average(dec("100"), 0), "100")
	assertDecimal(t, "average(100, 3)", average(dec("100"), 3), "33.33")
}

func TestStdDev(t *testing.T) {
	if got := stdDev(nil); got != 0 {
		t.Fatalf("stdDev(nil) = %v, want 0", got)
	}
	if got := stdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}); got != 2 {
		t.Fatalf("stdDev = %v, want 2", got)
	}
}
