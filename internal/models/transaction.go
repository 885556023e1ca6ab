package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionContribution TransactionType = "CONTRIBUTION"
	TransactionExpense      TransactionType = "EXPENSE"
)

// MetaContributionType is the metadata key holding a ContributionType id.
const MetaContributionType = "contributionTypeId"

// Transaction is a read-only ledger row. FundName is filled in by the reader
// and is empty when the row carries no fund.
type Transaction struct {
	ID             uuid.UUID         `json:"id"`
	OrganisationID uuid.UUID         `json:"organisation_id"`
	BranchID       *uuid.UUID        `json:"branch_id,omitempty"`
	FundID         *uuid.UUID        `json:"fund_id,omitempty"`
	FundName       string            `json:"fund_name,omitempty"`
	MemberID       *uuid.UUID        `json:"member_id,omitempty"`
	UserID         *uuid.UUID        `json:"user_id,omitempty"`
	EventID        *uuid.UUID        `json:"event_id,omitempty"`
	Type           TransactionType   `json:"type"`
	Amount         decimal.Decimal   `json:"amount"`
	Date           time.Time         `json:"date"`
	Description    string            `json:"description"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

func (t *Transaction) IsIncome() bool  { return t.Type == TransactionContribution }
func (t *Transaction) IsExpense() bool { return t.Type == TransactionExpense }

type Fund struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	OrganisationID *uuid.UUID `json:"organisation_id,omitempty"`
	BranchID       *uuid.UUID `json:"branch_id,omitempty"`
}

type ContributionType struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type Member struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email,omitempty"`
}

// MemberTotal is one contributor's summed CONTRIBUTION amount within a scope.
type MemberTotal struct {
	MemberID uuid.UUID       `json:"member_id"`
	Total    decimal.Decimal `json:"total"`
}

// TransactionFilter narrows FindTransactions. OrganisationID is always set;
// nil pointers and empty slices mean "no restriction".
type TransactionFilter struct {
	OrganisationID uuid.UUID
	BranchID       *uuid.UUID
	FundID         *uuid.UUID
	MemberID       *uuid.UUID
	Types          []TransactionType
	Start          *time.Time
	End            *time.Time
}

// Matches reports whether tx satisfies every predicate of the filter.
func (f TransactionFilter) Matches(tx *Transaction) bool {
	if tx.OrganisationID != f.OrganisationID {
		return false
	}
	if !idMatches(f.BranchID, tx.BranchID) || !idMatches(f.FundID, tx.FundID) || !idMatches(f.MemberID, tx.MemberID) {
		return false
	}
	if len(f.Types) > 0 {
		found := false
		for _, typ := range f.Types {
			if typ == tx.Type {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Start != nil && tx.Date.Before(*f.Start) {
		return false
	}
	if f.End != nil && tx.Date.After(*f.End) {
		return false
	}
	return true
}

type MemberTotalsFilter struct {
	OrganisationID uuid.UUID
	BranchID       *uuid.UUID
	Start          *time.Time
	End            *time.Time
}

func idMatches(want, got *uuid.UUID) bool {
	if want == nil {
		return true
	}
	return got != nil && *got == *want
}
