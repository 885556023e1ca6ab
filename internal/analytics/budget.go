package analytics

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/freddy0077/chapelstack-backend-sub002/internal/models"
)

const (
	defaultExpenseCategory = "Other Expenses"
	noBudgetsNote          = "No budgets overlap the selected period; create a budget for this period to compare against actual giving and spending."
)

// ClassifyFundAsRevenue reports whether a fund name looks like an income
// fund. It is a keyword match on the name until funds carry an explicit
// category.
func ClassifyFundAsRevenue(name string, keywords []string) bool {
	lower := strings.ToLower(name)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// BudgetVsActual reconciles the budgets overlapping the range with the
// contributions and expenses recorded in it.
func (s *Service) BudgetVsActual(ctx context.Context, req models.BudgetRequest) (*models.BudgetVsActualReport, error) {
	if err := validateScope(req.Scope); err != nil {
		return nil, err
	}
	dr := s.resolveDateRange(req.DateRange)
	pt := req.PeriodType
	if !pt.Valid() {
		pt = models.PeriodMonthly
	}

	var (
		budgets []models.Budget
		txs     []models.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		budgets, err = s.reader.FindBudgets(gctx, models.BudgetFilter{
			OrganisationID: req.OrganisationID,
			BranchID:       req.BranchID,
			FundID:         req.FundID,
			Start:          dr.Start,
			End:            dr.End,
		})
		return err
	})
	g.Go(func() error {
		var err error
		txs, err = s.reader.FindTransactions(gctx, transactionFilter(req.Scope, dr, models.TransactionContribution, models.TransactionExpense))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &models.BudgetVsActualReport{
		Scope:        req.Scope,
		DateRange:    dr,
		PeriodType:   pt,
		RevenueItems: []models.BudgetVarianceItem{},
		ExpenseItems: []models.BudgetVarianceItem{},
		Notes:        []string{},
	}

	overlapping := budgets[:0:0]
	for _, b := range budgets {
		if b.Overlaps(dr.Start, dr.End) {
			overlapping = append(overlapping, b)
		}
	}
	if len(overlapping) == 0 {
		report.Notes = append(report.Notes, noBudgetsNote)
		return report, nil
	}

	budgetedRevenue, budgetedExpenses := categorizeBudgets(overlapping, s.settings.RevenueKeywords)
	actualRevenue := sumBy(txs, isIncome, fundLabel)
	actualExpenses := sumBy(txs, isExpense, descriptionLabel)

	for _, category := range sortedKeys(budgetedRevenue) {
		budgeted, actual := budgetedRevenue[category], actualRevenue[category]
		item := models.BudgetVarianceItem{
			Category:    category,
			Budgeted:    budgeted,
			Actual:      actual,
			Variance:    actual.Sub(budgeted),
			Utilization: percentOf(actual, budgeted),
			Status:      models.StatusOnTarget,
		}
		if item.Variance.IsNegative() {
			item.Status = models.StatusUnderBudget
		}
		report.RevenueItems = append(report.RevenueItems, item)
	}
	for _, category := range sortedKeys(budgetedExpenses) {
		budgeted, actual := budgetedExpenses[category], actualExpenses[category]
		item := models.BudgetVarianceItem{
			Category:    category,
			Budgeted:    budgeted,
			Actual:      actual,
			Variance:    budgeted.Sub(actual),
			Utilization: percentOf(actual, budgeted),
			Status:      models.StatusUnderBudget,
		}
		if item.Variance.IsNegative() {
			item.Status = models.StatusOverBudget
		}
		report.ExpenseItems = append(report.ExpenseItems, item)
	}

	sum := &report.Summary
	sum.BudgetCount = len(overlapping)
	sum.BudgetedRevenue = sumValues(budgetedRevenue)
	sum.BudgetedExpenses = sumValues(budgetedExpenses)
	sum.ActualRevenue, sum.ActualExpenses, sum.TotalActual = totalsOf(txs)
	sum.TotalBudgeted = sum.BudgetedRevenue.Sub(sum.BudgetedExpenses)
	sum.TotalVariance = sum.TotalActual.Sub(sum.TotalBudgeted)
	sum.BudgetUtilization = percentOf(sum.ActualExpenses, sum.BudgetedExpenses)

	if len(report.ExpenseItems) == 0 {
		report.Notes = append(report.Notes, "No budget line items found; expense utilization is reported as 0.")
	}
	return report, nil
}

// categorizeBudgets splits budgeted amounts into revenue (by fund name) and
// expense (by line-item category). A budget with line items counts toward
// expenses; it also counts toward revenue when it has no items or its fund
// name classifies as revenue. Each budget adds its total to revenue at most
// once.
func categorizeBudgets(budgets []models.Budget, keywords []string) (revenue, expenses map[string]decimal.Decimal) {
	revenue = map[string]decimal.Decimal{}
	expenses = map[string]decimal.Decimal{}
	for _, b := range budgets {
		for _, item := range b.Items {
			addTo(expenses, itemCategory(item), item.Amount)
		}
		fund := strings.TrimSpace(b.FundName)
		if fund == "" {
			fund = defaultFundLabel
		}
		if len(b.Items) == 0 || ClassifyFundAsRevenue(b.FundName, keywords) {
			addTo(revenue, fund, b.TotalAmount)
		}
	}
	return revenue, expenses
}

func itemCategory(item models.BudgetItem) string {
	if name := strings.TrimSpace(item.CategoryName); name != "" {
		return name
	}
	if name := strings.TrimSpace(item.Name); name != "" {
		return name
	}
	return defaultExpenseCategory
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sumValues(m map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range m {
		total = total.Add(v)
	}
	return total
}
