package analytics

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/freddy0077/chapelstack-backend-sub002/internal/models"
)

// CashFlow buckets contributions and expenses into periods and adds a
// running cumulative net flow.
func (s *Service) CashFlow(ctx context.Context, req models.CashFlowRequest) (*models.CashFlowReport, error) {
	if err := validateScope(req.Scope); err != nil {
		return nil, err
	}
	dr := s.resolveDateRange(req.DateRange)
	pt := req.PeriodType
	if !pt.Valid() {
		pt = models.PeriodMonthly
	}

	var (
		txs      []models.Transaction
		fund     *models.Fund
		ctypes   []models.ContributionType
		typeName = strings.TrimSpace(req.ContributionType)
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txs, err = s.reader.FindTransactions(gctx, transactionFilter(req.Scope, dr, models.TransactionContribution, models.TransactionExpense))
		return err
	})
	if req.FundID != nil {
		g.Go(func() error {
			var err error
			fund, err = s.reader.GetFund(gctx, *req.FundID)
			if IsNotFound(err) {
				return nil
			}
			return err
		})
	}
	if typeName != "" {
		g.Go(func() error {
			var err error
			ctypes, err = s.reader.FindContributionTypes(gctx, req.OrganisationID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if typeName != "" {
		txs = filterContributionType(txs, ctypes, typeName)
	}

	report := buildCashFlowReport(BucketTransactions(txs, pt))
	report.Scope = req.Scope
	report.DateRange = dr
	report.PeriodType = pt
	if fund != nil {
		report.FundName = fund.Name
	}
	return report, nil
}

func buildCashFlowReport(buckets []PeriodBucket) *models.CashFlowReport {
	report := &models.CashFlowReport{Periods: make([]models.CashFlowPeriod, 0, len(buckets))}
	cumulative := decimal.Zero
	for _, b := range buckets {
		net := b.NetFlow()
		cumulative = cumulative.Add(net)
		report.Periods = append(report.Periods, models.CashFlowPeriod{
			Period:           b.Key,
			Income:           b.Income,
			Expenses:         b.Expense,
			NetFlow:          net,
			CumulativeFlow:   cumulative,
			IncomeBreakdown:  b.IncomeBreakdown,
			ExpenseBreakdown: b.ExpenseBreakdown,
		})
		report.TotalIncome = report.TotalIncome.Add(b.Income)
		report.TotalExpenses = report.TotalExpenses.Add(b.Expense)
	}
	report.TotalNetFlow = report.TotalIncome.Sub(report.TotalExpenses)

	n := len(buckets)
	report.AverageIncome = average(report.TotalIncome, n)
	report.AverageExpenses = average(report.TotalExpenses, n)
	report.AverageNetFlow = average(report.TotalNetFlow, n)
	return report
}

// filterContributionType keeps only contributions whose metadata references
// a contribution type named name (case-insensitive). Other rows pass through.
func filterContributionType(txs []models.Transaction, types []models.ContributionType, name string) []models.Transaction {
	wanted := map[uuid.UUID]bool{}
	for _, ct := range types {
		if strings.EqualFold(ct.Name, name) {
			wanted[ct.ID] = true
		}
	}

	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if !tx.IsIncome() {
			out = append(out, tx)
			continue
		}
		id, err := uuid.Parse(tx.Metadata[models.MetaContributionType])
		if err == nil && wanted[id] {
			out = append(out, tx)
		}
	}
	return out
}
