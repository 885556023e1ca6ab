package analytics

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/freddy0077/chapelstack-backend-sub002/internal/models"
)

func TestComparisonWindows(t *testing.T) {
	now := time.Date(2026, time.February, 10, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		ct     models.ComparisonType
		labels []string
	}{
		{"month rolls into previous year", models.MonthOverMonth, []string{"2026-02", "2026-01", "2025-12"}},
		{"quarter rolls into previous year", models.QuarterOverQuarter, []string{"2026-Q1", "2025-Q4", "2025-Q3"}},
		{"year", models.YearOverYear, []string{"2026", "2025", "2024"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			windows := comparisonWindows(now, tc.ct, 2)
			if len(windows) != len(tc.labels) {
				t.Fatalf("len(windows) = %d, want %d", len(windows), len(tc.labels))
			}
			for i, w := range windows {
				if w.Label != tc.labels[i] {
					t.Fatalf("windows[%d].Label = %q, want %q", i, w.Label, tc.labels[i])
				}
				if !w.Start.Before(w.End) {
					t.Fatalf("windows[%d] start %v not before end %v", i, w.Start, w.End)
				}
				if i > 0 && !windows[i-1].Start.Equal(w.End.Add(time.Nanosecond)) {
					t.Fatalf("windows[%d] does not abut windows[%d]", i, i-1)
				}
			}
		})
	}
}

func TestComparativeYearOverYear(t *testing.T) {
	reader := &memReader{txs: []models.Transaction{
		contribution("150", day(2026, time.March, 1), "Tithe"),
		contribution("100", day(2025, time.March, 1), "Tithe"),
	}}

	report, err := newTestService(reader).Comparative(context.Background(), models.ComparativeRequest{
		Scope:          models.Scope{OrganisationID: testOrg},
		ComparisonType: models.YearOverYear,
		PeriodCount:    2,
	})
	if err != nil {
		t.Fatalf("Comparative() error = %v", err)
	}
	if len(report.Periods) != 2 {
		t.Fatalf("len(Periods) = %d, want 2", len(report.Periods))
	}

	first, second := report.Periods[0], report.Periods[1]
	if first.Period != "2026" || first.PreviousPeriod != "2025" {
		t.Fatalf("first pair = %s vs %s", first.Period, first.PreviousPeriod)
	}
	if first.IncomeGrowthRate != 50 || first.NetGrowthRate != 50 {
		t.Fatalf("first growth = %v income, %v net; want 50", first.IncomeGrowthRate, first.NetGrowthRate)
	}
	assertDecimal(t, "first IncomeVariance", first.IncomeVariance, "50")
	if second.IncomeGrowthRate != 100 {
		t.Fatalf("growth from zero = %v, want 100", second.IncomeGrowthRate)
	}
	if second.ExpenseGrowthRate != 0 {
		t.Fatalf("expense growth with no expenses = %v, want 0", second.ExpenseGrowthRate)
	}

	if report.AvgNetGrowthRate != 75 {
		t.Fatalf("AvgNetGrowthRate = %v, want 75", report.AvgNetGrowthRate)
	}
	if report.Trend != models.TrendImproving {
		t.Fatalf("Trend = %q, want IMPROVING", report.Trend)
	}
	if len(report.Insights) != 2 {
		t.Fatalf("Insights = %q, want growth and volatility", report.Insights)
	}
	if !strings.HasPrefix(report.Insights[0], "Strong growth") {
		t.Fatalf("Insights[0] = %q", report.Insights[0])
	}
	if !strings.Contains(report.Insights[1], "volatile") {
		t.Fatalf("Insights[1] = %q", report.Insights[1])
	}
}

func TestComparativeDefaultsAndCap(t *testing.T) {
	svc := newTestService(&memReader{})

	report, err := svc.Comparative(context.Background(), models.ComparativeRequest{
		Scope: models.Scope{OrganisationID: testOrg},
	})
	if err != nil {
		t.Fatalf("Comparative() error = %v", err)
	}
	if report.ComparisonType != models.YearOverYear {
		t.Fatalf("ComparisonType = %q, want YEAR_OVER_YEAR", report.ComparisonType)
	}
	if len(report.Periods) != DefaultSettings().DefaultPeriodCount {
		t.Fatalf("len(Periods) = %d, want default", len(report.Periods))
	}
	if report.Trend != models.TrendStable {
		t.Fatalf("Trend = %q, want STABLE", report.Trend)
	}
	if len(report.Insights) != 1 || !strings.HasPrefix(report.Insights[0], "Financial performance is stable") {
		t.Fatalf("Insights = %q", report.Insights)
	}

	capped, err := svc.Comparative(context.Background(), models.ComparativeRequest{
		Scope:          models.Scope{OrganisationID: testOrg},
		ComparisonType: models.MonthOverMonth,
		PeriodCount:    1000,
	})
	if err != nil {
		t.Fatalf("Comparative() error = %v", err)
	}
	if len(capped.Periods) != DefaultSettings().MaxPeriodCount {
		t.Fatalf("len(Periods) = %d, want %d", len(capped.Periods), DefaultSettings().MaxPeriodCount)
	}
}

func TestComparativeDeclining(t *testing.T) {
	reader := &memReader{txs: []models.Transaction{
		contribution("100", day(2026, time.April, 1), ""),
		contribution("200", day(2026, time.January, 1), ""),
	}}
	report, err := newTestService(reader).Comparative(context.Background(), models.ComparativeRequest{
		Scope:          models.Scope{OrganisationID: testOrg},
		ComparisonType: models.QuarterOverQuarter,
		PeriodCount:    1,
	})
	if err != nil {
		t.Fatalf("Comparative() error = %v", err)
	}
	if report.AvgNetGrowthRate != -50 {
		t.Fatalf("AvgNetGrowthRate = %v, want -50", report.AvgNetGrowthRate)
	}
	if report.Trend != models.TrendDeclining {
		t.Fatalf("Trend = %q, want DECLINING", report.Trend)
	}
	if !strings.HasPrefix(report.Insights[0], "Concerning decline") {
		t.Fatalf("Insights[0] = %q", report.Insights[0])
	}
}

func TestComparativeErrors(t *testing.T) {
	if _, err := newTestService(&memReader{}).Comparative(context.Background(), models.ComparativeRequest{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
	boom := errors.New("timeout")
	_, err := newTestService(&memReader{err: boom}).Comparative(context.Background(), models.ComparativeRequest{
		Scope: models.Scope{OrganisationID: testOrg},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}
