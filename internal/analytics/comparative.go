package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/freddy0077/chapelstack-backend-sub002/internal/models"
)

// window is one calendar period [Start, End] with its display label.
type window struct {
	Label string
	Start time.Time
	End   time.Time
}

// comparisonWindows returns n+1 consecutive windows ending with the period
// that contains now, most recent first. Pair i compares windows[i] with
// windows[i+1].
func comparisonWindows(now time.Time, ct models.ComparisonType, n int) []window {
	loc := now.Location()
	out := make([]window, 0, n+1)
	for i := 0; i <= n; i++ {
		var w window
		switch ct {
		case models.MonthOverMonth:
			w.Start = time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, loc)
			w.End = w.Start.AddDate(0, 1, 0).Add(-time.Nanosecond)
			w.Label = PeriodKey(w.Start, models.PeriodMonthly)
		case models.QuarterOverQuarter:
			q, year := quarterOf(now.Month())-i, now.Year()
			for q < 0 {
				q += 4
				year--
			}
			w.Start = time.Date(year, time.Month(q*3+1), 1, 0, 0, 0, 0, loc)
			w.End = w.Start.AddDate(0, 3, 0).Add(-time.Nanosecond)
			w.Label = PeriodKey(w.Start, models.PeriodQuarterly)
		default:
			w.Start = time.Date(now.Year()-i, time.January, 1, 0, 0, 0, 0, loc)
			w.End = w.Start.AddDate(1, 0, 0).Add(-time.Nanosecond)
			w.Label = PeriodKey(w.Start, models.PeriodYearly)
		}
		out = append(out, w)
	}
	return out
}

// Comparative compares each of the last PeriodCount periods with the period
// before it and classifies the average net growth.
func (s *Service) Comparative(ctx context.Context, req models.ComparativeRequest) (*models.ComparativeReport, error) {
	if err := validateScope(req.Scope); err != nil {
		return nil, err
	}
	ct := req.ComparisonType
	if !ct.Valid() {
		ct = models.YearOverYear
	}
	n := req.PeriodCount
	if n <= 0 {
		n = s.settings.DefaultPeriodCount
	}
	if n > s.settings.MaxPeriodCount {
		n = s.settings.MaxPeriodCount
	}

	windows := comparisonWindows(s.clock(), ct, n)
	sets := make([][]models.Transaction, len(windows))
	g, gctx := errgroup.WithContext(ctx)
	for i, w := range windows {
		g.Go(func() error {
			txs, err := s.reader.FindTransactions(gctx, transactionFilter(req.Scope,
				models.DateRange{Start: w.Start, End: w.End},
				models.TransactionContribution, models.TransactionExpense))
			sets[i] = txs
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &models.ComparativeReport{
		Scope:          req.Scope,
		ComparisonType: ct,
		Periods:        make([]models.PeriodComparison, 0, n),
	}
	var incomeRates, expenseRates, netRates []float64
	for i := 0; i < n; i++ {
		cur, prev := windows[i], windows[i+1]
		curIncome, curExpenses, curNet := totalsOf(sets[i])
		prevIncome, prevExpenses, prevNet := totalsOf(sets[i+1])

		pc := models.PeriodComparison{
			Period:            cur.Label,
			PreviousPeriod:    prev.Label,
			CurrentStart:      cur.Start,
			CurrentEnd:        cur.End,
			PreviousStart:     prev.Start,
			PreviousEnd:       prev.End,
			CurrentIncome:     curIncome,
			PreviousIncome:    prevIncome,
			CurrentExpenses:   curExpenses,
			PreviousExpenses:  prevExpenses,
			CurrentNet:        curNet,
			PreviousNet:       prevNet,
			IncomeGrowthRate:  GrowthRate(prevIncome, curIncome),
			ExpenseGrowthRate: GrowthRate(prevExpenses, curExpenses),
			NetGrowthRate:     GrowthRate(prevNet, curNet),
			IncomeVariance:    curIncome.Sub(prevIncome),
			ExpenseVariance:   curExpenses.Sub(prevExpenses),
			NetVariance:       curNet.Sub(prevNet),
		}
		report.Periods = append(report.Periods, pc)
		incomeRates = append(incomeRates, pc.IncomeGrowthRate)
		expenseRates = append(expenseRates, pc.ExpenseGrowthRate)
		netRates = append(netRates, pc.NetGrowthRate)
	}

	report.AvgIncomeGrowthRate = mean(incomeRates)
	report.AvgExpenseGrowthRate = mean(expenseRates)
	report.AvgNetGrowthRate = mean(netRates)
	report.Trend = classifyNetTrend(report.AvgNetGrowthRate, s.settings.TrendThreshold)
	report.Insights = comparativeInsights(report.AvgNetGrowthRate, stdDev(incomeRates), stdDev(expenseRates), s.settings.VolatilityThreshold)
	return report, nil
}

func classifyNetTrend(avgNetGrowth, threshold float64) models.Trend {
	switch {
	case avgNetGrowth > threshold:
		return models.TrendImproving
	case avgNetGrowth < -threshold:
		return models.TrendDeclining
	}
	return models.TrendStable
}

func comparativeInsights(avgNetGrowth, incomeStdDev, expenseStdDev, volatility float64) []string {
	var insights []string
	switch {
	case avgNetGrowth > 10:
		insights = append(insights, fmt.Sprintf("Strong growth: net position improved by an average of %.1f%% per period.", avgNetGrowth))
	case avgNetGrowth > 0:
		insights = append(insights, fmt.Sprintf("Positive growth: net position improved by an average of %.1f%% per period.", avgNetGrowth))
	case avgNetGrowth < -10:
		insights = append(insights, fmt.Sprintf("Concerning decline: net position fell by an average of %.1f%% per period.", math.Abs(avgNetGrowth)))
	default:
		insights = append(insights, fmt.Sprintf("Financial performance is stable with an average net change of %.1f%% per period.", avgNetGrowth))
	}
	if incomeStdDev > volatility || expenseStdDev > volatility {
		insights = append(insights, fmt.Sprintf("Growth rates are volatile (income std dev %.1f, expense std dev %.1f); review irregular receipts and one-off spending.", incomeStdDev, expenseStdDev))
	}
	return insights
}
