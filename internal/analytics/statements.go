package analytics

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/freddy0077/chapelstack-backend-sub002/internal/models"
)

// Statement assembles one financial statement over the requested range.
// Balance-sheet style statements are derived from per-fund net flow: no
// liabilities, restrictions or opening balances exist in the ledger.
func (s *Service) Statement(ctx context.Context, req models.StatementRequest) (*models.FinancialStatement, error) {
	if err := validateScope(req.Scope); err != nil {
		return nil, err
	}
	if req.StatementType == "" {
		return nil, &ValidationError{Field: "statementType"}
	}
	if !req.StatementType.Valid() {
		return nil, &ValidationError{Field: "statementType", Reason: "unknown statement type " + string(req.StatementType)}
	}
	dr := s.resolveDateRange(req.DateRange)

	// Fund narrowing does not apply to organisation-wide statements.
	scope := req.Scope
	scope.FundID = nil
	txs, err := s.reader.FindTransactions(ctx, transactionFilter(scope, dr, models.TransactionContribution, models.TransactionExpense))
	if err != nil {
		return nil, err
	}

	stmt := &models.FinancialStatement{
		Type:        req.StatementType,
		Scope:       scope,
		DateRange:   dr,
		GeneratedAt: s.clock(),
	}
	switch req.StatementType {
	case models.IncomeStatementType:
		stmt.IncomeStatement = buildIncomeStatement(txs)
	case models.BalanceSheetType:
		stmt.BalanceSheet = buildBalanceSheet(txs)
	case models.CashFlowStatementType:
		stmt.CashFlowStatement = buildCashFlowStatement(txs)
	case models.StatementOfNetAssetsType:
		stmt.StatementOfNetAssets = buildStatementOfNetAssets(txs)
	}
	return stmt, nil
}

func buildIncomeStatement(txs []models.Transaction) *models.IncomeStatement {
	revenue := lineItems(sumBy(txs, isIncome, fundLabel))
	expenses := lineItems(sumBy(txs, isExpense, descriptionLabel))
	is := &models.IncomeStatement{
		Revenue:       revenue,
		Expenses:      expenses,
		TotalRevenue:  totalOf(revenue),
		TotalExpenses: totalOf(expenses),
	}
	is.NetIncome = is.TotalRevenue.Sub(is.TotalExpenses)
	return is
}

func buildBalanceSheet(txs []models.Transaction) *models.BalanceSheet {
	assets := lineItems(positiveFundBalances(txs))
	bs := &models.BalanceSheet{
		Assets:      assets,
		Liabilities: []models.LineItem{},
		TotalAssets: totalOf(assets),
	}
	bs.NetAssets = bs.TotalAssets.Sub(bs.TotalLiabilities)
	return bs
}

func buildCashFlowStatement(txs []models.Transaction) *models.CashFlowStatement {
	inflows := lineItems(sumBy(txs, isIncome, fundLabel))
	outflows := lineItems(sumBy(txs, isExpense, descriptionLabel))

	operating := make([]models.LineItem, 0, len(inflows)+len(outflows))
	for _, li := range inflows {
		operating = append(operating, models.LineItem{Name: "Contributions: " + li.Name, Amount: li.Amount})
	}
	for _, li := range outflows {
		operating = append(operating, models.LineItem{Name: "Expenses: " + li.Name, Amount: li.Amount.Neg()})
	}

	cf := &models.CashFlowStatement{
		OperatingActivities:  operating,
		InvestingActivities:  []models.LineItem{},
		FinancingActivities:  []models.LineItem{},
		NetCashFromOperating: totalOf(inflows).Sub(totalOf(outflows)),
	}
	cf.NetChangeInCash = cf.NetCashFromOperating.Add(cf.NetCashFromInvesting).Add(cf.NetCashFromFinancing)
	cf.EndingCash = cf.BeginningCash.Add(cf.NetChangeInCash)
	return cf
}

func buildStatementOfNetAssets(txs []models.Transaction) *models.StatementOfNetAssets {
	unrestricted := lineItems(positiveFundBalances(txs))
	sna := &models.StatementOfNetAssets{
		Unrestricted:          unrestricted,
		TemporarilyRestricted: []models.LineItem{},
		PermanentlyRestricted: []models.LineItem{},
		TotalUnrestricted:     totalOf(unrestricted),
	}
	sna.TotalNetAssets = sna.TotalUnrestricted.Add(sna.TotalTemporarilyRestricted).Add(sna.TotalPermanentlyRestricted)
	return sna
}

// positiveFundBalances nets contributions against expenses per fund and
// drops funds whose balance is not positive.
func positiveFundBalances(txs []models.Transaction) map[string]decimal.Decimal {
	balances := map[string]decimal.Decimal{}
	for i := range txs {
		switch {
		case txs[i].IsIncome():
			addTo(balances, fundLabel(&txs[i]), txs[i].Amount)
		case txs[i].IsExpense():
			addTo(balances, fundLabel(&txs[i]), txs[i].Amount.Neg())
		}
	}
	for name, balance := range balances {
		if !balance.IsPositive() {
			delete(balances, name)
		}
	}
	return balances
}

// lineItems orders by amount descending, then name.
func lineItems(amounts map[string]decimal.Decimal) []models.LineItem {
	items := make([]models.LineItem, 0, len(amounts))
	for name, amount := range amounts {
		items = append(items, models.LineItem{Name: name, Amount: amount})
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].Amount.Equal(items[j].Amount) {
			return items[i].Amount.GreaterThan(items[j].Amount)
		}
		return items[i].Name < items[j].Name
	})
	return items
}

func totalOf(items []models.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.Amount)
	}
	return total
}
