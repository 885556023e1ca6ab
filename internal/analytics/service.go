// Package analytics turns ledger reads into cash-flow, comparative, giving,
// statement and budget-variance reports. Every report is computed in memory
// from one set of reads; nothing here writes to the ledger.
package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/freddy0077/chapelstack-backend-sub002/internal/models"
)

// LedgerReader is the read-only view of the ledger the engine consumes.
// GetMember and GetFund may return an error satisfying IsNotFound when the
// row does not exist.
type LedgerReader interface {
	FindTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error)
	FindBudgets(ctx context.Context, filter models.BudgetFilter) ([]models.Budget, error)
	FindMemberTotals(ctx context.Context, filter models.MemberTotalsFilter) ([]models.MemberTotal, error)
	GetMember(ctx context.Context, id uuid.UUID) (*models.Member, error)
	GetFund(ctx context.Context, id uuid.UUID) (*models.Fund, error)
	FindContributionTypes(ctx context.Context, organisationID uuid.UUID) ([]models.ContributionType, error)
}

type Service struct {
	reader   LedgerReader
	settings Settings
	clock    func() time.Time
}

// New builds a Service. A nil clock falls back to time.Now.
func New(reader LedgerReader, settings Settings, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		reader:   reader,
		settings: settings.withDefaults(),
		clock:    clock,
	}
}

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// resolveDateRange substitutes the current calendar year (Jan 1 to now) for a
// missing or invalid range.
func (s *Service) resolveDateRange(dr *models.DateRange) models.DateRange {
	if dr.Valid() {
		return *dr
	}
	now := s.clock()
	return models.DateRange{
		Start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()),
		End:   now,
	}
}

func transactionFilter(scope models.Scope, dr models.DateRange, types ...models.TransactionType) models.TransactionFilter {
	start, end := dr.Start, dr.End
	return models.TransactionFilter{
		OrganisationID: scope.OrganisationID,
		BranchID:       scope.BranchID,
		FundID:         scope.FundID,
		Types:          types,
		Start:          &start,
		End:            &end,
	}
}
