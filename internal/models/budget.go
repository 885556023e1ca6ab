package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Budget struct {
	ID             uuid.UUID       `json:"id"`
	OrganisationID uuid.UUID       `json:"organisation_id"`
	BranchID       *uuid.UUID      `json:"branch_id,omitempty"`
	FundID         *uuid.UUID      `json:"fund_id,omitempty"`
	FundName       string          `json:"fund_name,omitempty"`
	Name           string          `json:"name"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        time.Time       `json:"end_date"`
	Status         string          `json:"status"`
	Items          []BudgetItem    `json:"items"`
}

// Overlaps reports whether the budget window intersects [start, end].
func (b *Budget) Overlaps(start, end time.Time) bool {
	return !b.StartDate.After(end) && !b.EndDate.Before(start)
}

type BudgetItem struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Amount            decimal.Decimal `json:"amount"`
	ExpenseCategoryID *uuid.UUID      `json:"expense_category_id,omitempty"`
	CategoryName      string          `json:"category_name,omitempty"`
}

// BudgetFilter selects budgets whose window overlaps [Start, End].
type BudgetFilter struct {
	OrganisationID uuid.UUID
	BranchID       *uuid.UUID
	FundID         *uuid.UUID
	Start          time.Time
	End            time.Time
}
