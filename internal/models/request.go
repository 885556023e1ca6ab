package models

import (
	"time"

	"github.com/google/uuid"
)

type PeriodType string

const (
	PeriodMonthly   PeriodType = "MONTHLY"
	PeriodQuarterly PeriodType = "QUARTERLY"
	PeriodYearly    PeriodType = "YEARLY"
)

func (p PeriodType) Valid() bool {
	switch p {
	case PeriodMonthly, PeriodQuarterly, PeriodYearly:
		return true
	}
	return false
}

type ComparisonType string

const (
	MonthOverMonth     ComparisonType = "MONTH_OVER_MONTH"
	QuarterOverQuarter ComparisonType = "QUARTER_OVER_QUARTER"
	YearOverYear       ComparisonType = "YEAR_OVER_YEAR"
)

func (c ComparisonType) Valid() bool {
	switch c {
	case MonthOverMonth, QuarterOverQuarter, YearOverYear:
		return true
	}
	return false
}

type StatementType string

const (
	IncomeStatementType      StatementType = "INCOME_STATEMENT"
	BalanceSheetType         StatementType = "BALANCE_SHEET"
	CashFlowStatementType    StatementType = "CASH_FLOW_STATEMENT"
	StatementOfNetAssetsType StatementType = "STATEMENT_OF_NET_ASSETS"
)

func (s StatementType) Valid() bool {
	switch s {
	case IncomeStatementType, BalanceSheetType, CashFlowStatementType, StatementOfNetAssetsType:
		return true
	}
	return false
}

// Scope is the organisation/branch/fund slice of the ledger a report covers.
type Scope struct {
	OrganisationID uuid.UUID  `json:"organisation_id"`
	BranchID       *uuid.UUID `json:"branch_id,omitempty"`
	FundID         *uuid.UUID `json:"fund_id,omitempty"`
}

// DateRange is inclusive on both ends.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Valid is false for zero bounds or a start after the end.
func (d *DateRange) Valid() bool {
	if d == nil || d.Start.IsZero() || d.End.IsZero() {
		return false
	}
	return !d.Start.After(d.End)
}

type CashFlowRequest struct {
	Scope
	DateRange        *DateRange
	PeriodType       PeriodType
	ContributionType string
}

type ComparativeRequest struct {
	Scope
	ComparisonType ComparisonType
	PeriodCount    int
}

type MemberGivingRequest struct {
	Scope
	MemberID    uuid.UUID
	DateRange   *DateRange
	RecentLimit int
}

type StatementRequest struct {
	Scope
	DateRange     *DateRange
	StatementType StatementType
}

type BudgetRequest struct {
	Scope
	DateRange  *DateRange
	PeriodType PeriodType
}
