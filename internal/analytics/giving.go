package analytics

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/freddy0077/chapelstack-backend-sub002/internal/models"
)

const generalFundID = "general"

// MemberGiving analyses one contributor's giving within the requested range
// and ranks them against every contributor in the same scope.
func (s *Service) MemberGiving(ctx context.Context, req models.MemberGivingRequest) (*models.MemberGivingReport, error) {
	if err := validateScope(req.Scope); err != nil {
		return nil, err
	}
	if req.MemberID == uuid.Nil {
		return nil, &ValidationError{Field: "memberId"}
	}
	dr := s.resolveDateRange(req.DateRange)
	limit := req.RecentLimit
	if limit <= 0 {
		limit = s.settings.DefaultRecentLimit
	}

	now := s.clock()
	thisYear := models.DateRange{Start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), End: now}
	lastYear := models.DateRange{Start: thisYear.Start.AddDate(-1, 0, 0), End: now.AddDate(-1, 0, 0)}

	var (
		gifts, giftsThisYear, giftsLastYear []models.Transaction
		member                              *models.Member
		totals                              []models.MemberTotal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		gifts, err = s.reader.FindTransactions(gctx, s.memberFilter(req, dr))
		return err
	})
	g.Go(func() error {
		var err error
		giftsThisYear, err = s.reader.FindTransactions(gctx, s.memberFilter(req, thisYear))
		return err
	})
	g.Go(func() error {
		var err error
		giftsLastYear, err = s.reader.FindTransactions(gctx, s.memberFilter(req, lastYear))
		return err
	})
	g.Go(func() error {
		var err error
		member, err = s.reader.GetMember(gctx, req.MemberID)
		if IsNotFound(err) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		start, end := dr.Start, dr.End
		var err error
		totals, err = s.reader.FindMemberTotals(gctx, models.MemberTotalsFilter{
			OrganisationID: req.OrganisationID,
			BranchID:       req.BranchID,
			Start:          &start,
			End:            &end,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortNewestFirst(gifts)
	report := &models.MemberGivingReport{
		MemberID:            req.MemberID,
		Member:              member,
		Scope:               req.Scope,
		DateRange:           dr,
		Totals:              givingTotals(gifts),
		Trend:               givingTrend(gifts, s.settings.TrendThreshold),
		Consistency:         consistencyScore(gifts),
		MonthlyBreakdown:    monthlyGiving(gifts),
		RecentContributions: recentContributions(gifts, limit),
	}
	report.FundBreakdown = fundGiving(gifts, report.Totals.TotalGiving)

	current, _, _ := totalsOf(giftsThisYear)
	previous, _, _ := totalsOf(giftsLastYear)
	report.YearOverYearChange = GrowthRate(previous, current)
	report.GivingRank, report.PercentileRank = givingRank(totals, req.MemberID)
	return report, nil
}

func (s *Service) memberFilter(req models.MemberGivingRequest, dr models.DateRange) models.TransactionFilter {
	memberID := req.MemberID
	start, end := dr.Start, dr.End
	return models.TransactionFilter{
		OrganisationID: req.OrganisationID,
		BranchID:       req.BranchID,
		MemberID:       &memberID,
		Types:          []models.TransactionType{models.TransactionContribution},
		Start:          &start,
		End:            &end,
	}
}

// sortNewestFirst orders by date descending, then by id for stable output.
func sortNewestFirst(txs []models.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if !txs[i].Date.Equal(txs[j].Date) {
			return txs[i].Date.After(txs[j].Date)
		}
		return txs[i].ID.String() < txs[j].ID.String()
	})
}

// givingTotals expects gifts sorted newest first.
func givingTotals(gifts []models.Transaction) models.GivingTotals {
	totals := models.GivingTotals{ContributionCount: len(gifts)}
	for i := range gifts {
		totals.TotalGiving = totals.TotalGiving.Add(gifts[i].Amount)
	}
	if len(gifts) == 0 {
		return totals
	}
	totals.AverageGift = average(totals.TotalGiving, len(gifts))
	first, last := gifts[len(gifts)-1].Date, gifts[0].Date
	totals.FirstGift, totals.LastGift = &first, &last
	return totals
}

// givingTrend compares the mean gift of the older half with the newer half.
func givingTrend(gifts []models.Transaction, threshold float64) models.GivingTrend {
	trend := models.GivingTrend{Direction: models.TrendStable}
	if len(gifts) < 2 {
		return trend
	}
	oldestFirst := make([]models.Transaction, len(gifts))
	for i := range gifts {
		oldestFirst[len(gifts)-1-i] = gifts[i]
	}
	mid := len(oldestFirst) / 2
	older, _, _ := totalsOf(oldestFirst[:mid])
	newer, _, _ := totalsOf(oldestFirst[mid:])
	olderAvg := older.Div(decimal.NewFromInt(int64(mid)))
	newerAvg := newer.Div(decimal.NewFromInt(int64(len(oldestFirst) - mid)))

	trend.ChangePercent = GrowthRate(olderAvg, newerAvg)
	switch {
	case trend.ChangePercent > threshold:
		trend.Direction = models.TrendIncreasing
	case trend.ChangePercent < -threshold:
		trend.Direction = models.TrendDecreasing
	}
	return trend
}

// consistencyScore is 100 minus the coefficient of variation as a percentage,
// floored at 0. Fewer than three gifts score 0.
func consistencyScore(gifts []models.Transaction) float64 {
	if len(gifts) < 3 {
		return 0
	}
	amounts := make([]float64, len(gifts))
	for i := range gifts {
		amounts[i] = gifts[i].Amount.InexactFloat64()
	}
	m := mean(amounts)
	if m == 0 {
		return 0
	}
	cv := stdDev(amounts) / m
	return math.Max(0, 100-cv*100)
}

func monthlyGiving(gifts []models.Transaction) []models.MonthlyGiving {
	byMonth := map[string]*models.MonthlyGiving{}
	for i := range gifts {
		key := PeriodKey(gifts[i].Date, models.PeriodMonthly)
		mg, ok := byMonth[key]
		if !ok {
			mg = &models.MonthlyGiving{Month: key}
			byMonth[key] = mg
		}
		mg.Amount = mg.Amount.Add(gifts[i].Amount)
		mg.Count++
	}

	out := make([]models.MonthlyGiving, 0, len(byMonth))
	for _, mg := range byMonth {
		mg.Average = average(mg.Amount, mg.Count)
		out = append(out, *mg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

func fundGiving(gifts []models.Transaction, total decimal.Decimal) []models.FundGiving {
	byFund := map[string]*models.FundGiving{}
	for i := range gifts {
		id := generalFundID
		if gifts[i].FundID != nil {
			id = gifts[i].FundID.String()
		}
		fg, ok := byFund[id]
		if !ok {
			fg = &models.FundGiving{FundID: id, FundName: fundLabel(&gifts[i])}
			byFund[id] = fg
		}
		fg.Amount = fg.Amount.Add(gifts[i].Amount)
		fg.Count++
	}

	out := make([]models.FundGiving, 0, len(byFund))
	for _, fg := range byFund {
		fg.Percentage = percentOf(fg.Amount, total)
		out = append(out, *fg)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].FundID < out[j].FundID
	})
	return out
}

// recentContributions expects gifts sorted newest first.
func recentContributions(gifts []models.Transaction, limit int) []models.RecentContribution {
	if limit > len(gifts) {
		limit = len(gifts)
	}
	out := make([]models.RecentContribution, 0, limit)
	for i := range gifts[:limit] {
		out = append(out, models.RecentContribution{
			Date:        gifts[i].Date,
			Amount:      gifts[i].Amount,
			FundName:    fundLabel(&gifts[i]),
			Description: gifts[i].Description,
			Reference:   gifts[i].ID.String(),
		})
	}
	return out
}

// givingRank returns the 1-based position of memberID among totals sorted
// by total descending, and the matching percentile. A member missing from
// totals ranks one past the end.
func givingRank(totals []models.MemberTotal, memberID uuid.UUID) (int, float64) {
	sorted := make([]models.MemberTotal, len(totals))
	copy(sorted, totals)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Total.Equal(sorted[j].Total) {
			return sorted[i].Total.GreaterThan(sorted[j].Total)
		}
		return sorted[i].MemberID.String() < sorted[j].MemberID.String()
	})

	size := len(sorted)
	rank := size + 1
	for i := range sorted {
		if sorted[i].MemberID == memberID {
			rank = i + 1
			break
		}
	}
	if size == 0 {
		return rank, 0
	}
	return rank, float64(size-rank+1) / float64(size) * 100
}
