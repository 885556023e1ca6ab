package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/freddy0077/chapelstack-backend-sub002/internal/models"
)

const (
	defaultFundLabel        = "General"
	defaultDescriptionLabel = "Other"
)

// PeriodBucket aggregates the flows of one calendar period.
type PeriodBucket struct {
	Key              string
	Income           decimal.Decimal
	Expense          decimal.Decimal
	IncomeBreakdown  map[string]decimal.Decimal
	ExpenseBreakdown map[string]decimal.Decimal
}

func (b PeriodBucket) NetFlow() decimal.Decimal {
	return b.Income.Sub(b.Expense)
}

// PeriodKey renders t as YYYY-MM, YYYY-Qn or YYYY. The keys sort
// lexicographically in chronological order.
func PeriodKey(t time.Time, pt models.PeriodType) string {
	switch pt {
	case models.PeriodQuarterly:
		return fmt.Sprintf("%04d-Q%d", t.Year(), quarterOf(t.Month())+1)
	case models.PeriodYearly:
		return fmt.Sprintf("%04d", t.Year())
	default:
		return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
	}
}

// quarterOf returns the zero-based quarter index of m.
func quarterOf(m time.Month) int {
	return (int(m) - 1) / 3
}

// BucketTransactions groups txs into periods of the given granularity,
// sorted by key. Types other than CONTRIBUTION and EXPENSE are ignored.
func BucketTransactions(txs []models.Transaction, pt models.PeriodType) []PeriodBucket {
	byKey := make(map[string]*PeriodBucket)
	for i := range txs {
		tx := &txs[i]
		if !tx.IsIncome() && !tx.IsExpense() {
			continue
		}
		key := PeriodKey(tx.Date, pt)
		b, ok := byKey[key]
		if !ok {
			b = &PeriodBucket{
				Key:              key,
				IncomeBreakdown:  map[string]decimal.Decimal{},
				ExpenseBreakdown: map[string]decimal.Decimal{},
			}
			byKey[key] = b
		}
		if tx.IsIncome() {
			b.Income = b.Income.Add(tx.Amount)
			addTo(b.IncomeBreakdown, fundLabel(tx), tx.Amount)
		} else {
			b.Expense = b.Expense.Add(tx.Amount)
			addTo(b.ExpenseBreakdown, descriptionLabel(tx), tx.Amount)
		}
	}

	buckets := make([]PeriodBucket, 0, len(byKey))
	for _, b := range byKey {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Key < buckets[j].Key })
	return buckets
}

// sumBy totals the amounts of the transactions accepted by keep, keyed by label.
func sumBy(txs []models.Transaction, keep func(*models.Transaction) bool, label func(*models.Transaction) string) map[string]decimal.Decimal {
	out := map[string]decimal.Decimal{}
	for i := range txs {
		if keep(&txs[i]) {
			addTo(out, label(&txs[i]), txs[i].Amount)
		}
	}
	return out
}

func addTo(m map[string]decimal.Decimal, key string, amount decimal.Decimal) {
	m[key] = m[key].Add(amount)
}

func fundLabel(tx *models.Transaction) string {
	if name := strings.TrimSpace(tx.FundName); name != "" {
		return name
	}
	return defaultFundLabel
}

func descriptionLabel(tx *models.Transaction) string {
	if desc := strings.TrimSpace(tx.Description); desc != "" {
		return desc
	}
	return defaultDescriptionLabel
}

func isIncome(tx *models.Transaction) bool  { return tx.IsIncome() }
func isExpense(tx *models.Transaction) bool { return tx.IsExpense() }

// totalsOf returns income, expenses and net for a transaction set.
func totalsOf(txs []models.Transaction) (income, expenses, net decimal.Decimal) {
	for i := range txs {
		switch {
		case txs[i].IsIncome():
			income = income.Add(txs[i].Amount)
		case txs[i].IsExpense():
			expenses = expenses.Add(txs[i].Amount)
		}
	}
	return income, expenses, income.Sub(expenses)
}
