package analytics

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freddy0077/chapelstack-backend-sub002/internal/models"
)

var (
	testOrg = uuid.MustParse("6f0e7c1a-0000-4000-8000-000000000001")
	testNow = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
)

// memReader is an in-memory LedgerReader for tests.
type memReader struct {
	txs     []models.Transaction
	budgets []models.Budget
	members map[uuid.UUID]models.Member
	funds   map[uuid.UUID]models.Fund
	types   []models.ContributionType
	err     error
	calls   atomic.Int32
}

func (m *memReader) FindTransactions(ctx context.Context, f models.TransactionFilter) ([]models.Transaction, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Transaction
	for i := range m.txs {
		if f.Matches(&m.txs[i]) {
			out = append(out, m.txs[i])
		}
	}
	return out, nil
}

func (m *memReader) FindBudgets(ctx context.Context, f models.BudgetFilter) ([]models.Budget, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Budget
	for _, b := range m.budgets {
		if b.OrganisationID != f.OrganisationID || !b.Overlaps(f.Start, f.End) {
			continue
		}
		if f.FundID != nil && (b.FundID == nil || *b.FundID != *f.FundID) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (m *memReader) FindMemberTotals(ctx context.Context, f models.MemberTotalsFilter) ([]models.MemberTotal, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	filter := models.TransactionFilter{
		OrganisationID: f.OrganisationID,
		BranchID:       f.BranchID,
		Types:          []models.TransactionType{models.TransactionContribution},
		Start:          f.Start,
		End:            f.End,
	}
	sums := map[uuid.UUID]decimal.Decimal{}
	var order []uuid.UUID
	for i := range m.txs {
		tx := &m.txs[i]
		if tx.MemberID == nil || !filter.Matches(tx) {
			continue
		}
		if _, ok := sums[*tx.MemberID]; !ok {
			order = append(order, *tx.MemberID)
		}
		sums[*tx.MemberID] = sums[*tx.MemberID].Add(tx.Amount)
	}
	out := make([]models.MemberTotal, 0, len(order))
	for _, id := range order {
		out = append(out, models.MemberTotal{MemberID: id, Total: sums[id]})
	}
	return out, nil
}

func (m *memReader) GetMember(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	member, ok := m.members[id]
	if !ok {
		return nil, fmt.Errorf("member %s: %w", id, models.ErrNotFound)
	}
	return &member, nil
}

func (m *memReader) GetFund(ctx context.Context, id uuid.UUID) (*models.Fund, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	fund, ok := m.funds[id]
	if !ok {
		return nil, fmt.Errorf("fund %s: %w", id, models.ErrNotFound)
	}
	return &fund, nil
}

func (m *memReader) FindContributionTypes(ctx context.Context, organisationID uuid.UUID) ([]models.ContributionType, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return m.types, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 10, 0, 0, 0, time.UTC)
}

func contribution(amount string, date time.Time, fund string) models.Transaction {
	return models.Transaction{
		ID:             uuid.New(),
		OrganisationID: testOrg,
		Type:           models.TransactionContribution,
		Amount:         dec(amount),
		Date:           date,
		FundName:       fund,
	}
}

func expense(amount string, date time.Time, description string) models.Transaction {
	return models.Transaction{
		ID:             uuid.New(),
		OrganisationID: testOrg,
		Type:           models.TransactionExpense,
		Amount:         dec(amount),
		Date:           date,
		Description:    description,
	}
}

func newTestService(reader LedgerReader) *Service {
	return New(reader, DefaultSettings(), FixedClock(testNow))
}

func assertDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Fatalf("%s = %s, want %s", name, got, want)
	}
}
