package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freddy0077/chapelstack-backend-sub002/internal/models"
)

// dateLayout is how dates are stored and compared. It has no fractional part
// so text comparison matches chronological order.
const dateLayout = "2006-01-02 15:04:05"

// Repository is a read-only ledger reader over database/sql.
type Repository struct {
	db      *sql.DB
	dialect Dialect
}

func NewRepository(db *sql.DB, dialect Dialect) *Repository {
	return &Repository{db: db, dialect: dialect}
}

func (r *Repository) FindTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	query := `
		SELECT t.id, t.organisation_id, t.branch_id, t.fund_id, COALESCE(f.name, ''),
		       t.member_id, t.user_id, t.event_id, t.type, CAST(t.amount AS TEXT), t.txn_date,
		       COALESCE(t.description, ''), COALESCE(t.metadata, '')
		FROM transactions t
		LEFT JOIN funds f ON f.id = t.fund_id
		WHERE t.organisation_id = ?`
	args := []interface{}{filter.OrganisationID}

	if filter.BranchID != nil {
		query += ` AND t.branch_id = ?`
		args = append(args, *filter.BranchID)
	}
	if filter.FundID != nil {
		query += ` AND t.fund_id = ?`
		args = append(args, *filter.FundID)
	}
	if filter.MemberID != nil {
		query += ` AND t.member_id = ?`
		args = append(args, *filter.MemberID)
	}
	if len(filter.Types) > 0 {
		query += ` AND t.type IN (` + placeholders(len(filter.Types)) + `)`
		for _, typ := range filter.Types {
			args = append(args, string(typ))
		}
	}
	if filter.Start != nil {
		query += ` AND t.txn_date >= ?`
		args = append(args, formatDate(*filter.Start))
	}
	if filter.End != nil {
		query += ` AND t.txn_date <= ?`
		args = append(args, formatDate(*filter.End))
	}
	query += ` ORDER BY t.txn_date ASC, t.id ASC`

	rows, err := r.db.QueryContext(ctx, r.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var (
			tx                                     models.Transaction
			branchID, fundID, memberID, userID     uuid.NullUUID
			eventID                                uuid.NullUUID
			txType, txnDate, description, metadata string
		)
		err := rows.Scan(
			&tx.ID, &tx.OrganisationID, &branchID, &fundID, &tx.FundName,
			&memberID, &userID, &eventID, &txType, &tx.Amount, &txnDate,
			&description, &metadata,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.BranchID = nullUUID(branchID)
		tx.FundID = nullUUID(fundID)
		tx.MemberID = nullUUID(memberID)
		tx.UserID = nullUUID(userID)
		tx.EventID = nullUUID(eventID)
		tx.Type = models.TransactionType(txType)
		tx.Description = description
		if tx.Date, err = parseDate(txnDate); err != nil {
			return nil, fmt.Errorf("transaction %s: %w", tx.ID, err)
		}
		if tx.Metadata, err = parseMetadata(metadata); err != nil {
			return nil, fmt.Errorf("transaction %s: %w", tx.ID, err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

// FindBudgets returns budgets overlapping [filter.Start, filter.End] with
// their line items in position order.
func (r *Repository) FindBudgets(ctx context.Context, filter models.BudgetFilter) ([]models.Budget, error) {
	query := `
		SELECT b.id, b.organisation_id, b.branch_id, b.fund_id, COALESCE(f.name, ''),
		       b.name, CAST(b.total_amount AS TEXT), b.start_date, b.end_date, b.status
		FROM budgets b
		LEFT JOIN funds f ON f.id = b.fund_id
		WHERE b.organisation_id = ?
		  AND b.start_date <= ?
		  AND b.end_date >= ?`
	args := []interface{}{filter.OrganisationID, formatDate(filter.End), formatDate(filter.Start)}

	if filter.BranchID != nil {
		query += ` AND b.branch_id = ?`
		args = append(args, *filter.BranchID)
	}
	if filter.FundID != nil {
		query += ` AND b.fund_id = ?`
		args = append(args, *filter.FundID)
	}
	query += ` ORDER BY b.start_date ASC, b.id ASC`

	rows, err := r.db.QueryContext(ctx, r.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	var budgets []models.Budget
	index := map[uuid.UUID]int{}
	for rows.Next() {
		var (
			b                  models.Budget
			branchID, fundID   uuid.NullUUID
			startDate, endDate string
		)
		err := rows.Scan(&b.ID, &b.OrganisationID, &branchID, &fundID, &b.FundName,
			&b.Name, &b.TotalAmount, &startDate, &endDate, &b.Status)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		b.BranchID = nullUUID(branchID)
		b.FundID = nullUUID(fundID)
		if b.StartDate, err = parseDate(startDate); err != nil {
			return nil, fmt.Errorf("budget %s: %w", b.ID, err)
		}
		if b.EndDate, err = parseDate(endDate); err != nil {
			return nil, fmt.Errorf("budget %s: %w", b.ID, err)
		}
		index[b.ID] = len(budgets)
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(budgets) == 0 {
		return budgets, nil
	}

	if err := r.loadBudgetItems(ctx, budgets, index); err != nil {
		return nil, err
	}
	return budgets, nil
}

func (r *Repository) loadBudgetItems(ctx context.Context, budgets []models.Budget, index map[uuid.UUID]int) error {
	query := `
		SELECT i.id, i.budget_id, COALESCE(i.name, ''), CAST(i.amount AS TEXT), i.expense_category_id,
		       COALESCE(c.name, '')
		FROM budget_items i
		LEFT JOIN expense_categories c ON c.id = i.expense_category_id
		WHERE i.budget_id IN (` + placeholders(len(budgets)) + `)
		ORDER BY i.budget_id ASC, i.position ASC, i.id ASC`
	args := make([]interface{}, 0, len(budgets))
	for _, b := range budgets {
		args = append(args, b.ID)
	}

	rows, err := r.db.QueryContext(ctx, r.rebind(query), args...)
	if err != nil {
		return fmt.Errorf("failed to query budget items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item       models.BudgetItem
			budgetID   uuid.UUID
			categoryID uuid.NullUUID
		)
		if err := rows.Scan(&item.ID, &budgetID, &item.Name, &item.Amount, &categoryID, &item.CategoryName); err != nil {
			return fmt.Errorf("failed to scan budget item: %w", err)
		}
		item.ExpenseCategoryID = nullUUID(categoryID)
		if i, ok := index[budgetID]; ok {
			budgets[i].Items = append(budgets[i].Items, item)
		}
	}
	return rows.Err()
}

// FindMemberTotals sums CONTRIBUTION amounts per member within the scope.
// Rows are added up with decimal arithmetic; SQL SUM would go through REAL
// on sqlite.
func (r *Repository) FindMemberTotals(ctx context.Context, filter models.MemberTotalsFilter) ([]models.MemberTotal, error) {
	query := `
		SELECT member_id, CAST(amount AS TEXT)
		FROM transactions
		WHERE organisation_id = ?
		  AND type = ?
		  AND member_id IS NOT NULL`
	args := []interface{}{filter.OrganisationID, string(models.TransactionContribution)}

	if filter.BranchID != nil {
		query += ` AND branch_id = ?`
		args = append(args, *filter.BranchID)
	}
	if filter.Start != nil {
		query += ` AND txn_date >= ?`
		args = append(args, formatDate(*filter.Start))
	}
	if filter.End != nil {
		query += ` AND txn_date <= ?`
		args = append(args, formatDate(*filter.End))
	}
	query += ` ORDER BY member_id ASC`

	rows, err := r.db.QueryContext(ctx, r.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query member totals: %w", err)
	}
	defer rows.Close()

	var totals []models.MemberTotal
	for rows.Next() {
		var (
			memberID uuid.UUID
			amount   decimal.Decimal
		)
		if err := rows.Scan(&memberID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan member total: %w", err)
		}
		if n := len(totals); n > 0 && totals[n-1].MemberID == memberID {
			totals[n-1].Total = totals[n-1].Total.Add(amount)
			continue
		}
		totals = append(totals, models.MemberTotal{MemberID: memberID, Total: amount})
	}
	return totals, rows.Err()
}

func (r *Repository) GetMember(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	var m models.Member
	err := r.db.QueryRowContext(ctx, r.rebind(`SELECT id, name, COALESCE(email, '') FROM members WHERE id = ?`), id).
		Scan(&m.ID, &m.Name, &m.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("member %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return &m, nil
}

func (r *Repository) GetFund(ctx context.Context, id uuid.UUID) (*models.Fund, error) {
	var (
		f               models.Fund
		orgID, branchID uuid.NullUUID
	)
	err := r.db.QueryRowContext(ctx, r.rebind(`SELECT id, name, organisation_id, branch_id FROM funds WHERE id = ?`), id).
		Scan(&f.ID, &f.Name, &orgID, &branchID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("fund %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fund: %w", err)
	}
	f.OrganisationID = nullUUID(orgID)
	f.BranchID = nullUUID(branchID)
	return &f, nil
}

func (r *Repository) FindContributionTypes(ctx context.Context, organisationID uuid.UUID) ([]models.ContributionType, error) {
	rows, err := r.db.QueryContext(ctx,
		r.rebind(`SELECT id, name FROM contribution_types WHERE organisation_id = ? ORDER BY name ASC`),
		organisationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query contribution types: %w", err)
	}
	defer rows.Close()

	var types []models.ContributionType
	for rows.Next() {
		var ct models.ContributionType
		if err := rows.Scan(&ct.ID, &ct.Name); err != nil {
			return nil, fmt.Errorf("failed to scan contribution type: %w", err)
		}
		types = append(types, ct)
	}
	return types, rows.Err()
}

// rebind rewrites ? placeholders to $n for postgres.
func (r *Repository) rebind(query string) string {
	if r.dialect != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// parseDate accepts the storage layout plus the RFC3339 and plain-date forms
// other writers and drivers produce.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{dateLayout, time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}

func parseMetadata(raw string) (map[string]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var generic map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &generic); err != nil {
		return nil, fmt.Errorf("invalid metadata: %w", err)
	}
	out := make(map[string]string, len(generic))
	for k, v := range generic {
		switch val := v.(type) {
		case string:
			out[k] = val
		case nil:
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out, nil
}

func nullUUID(n uuid.NullUUID) *uuid.UUID {
	if !n.Valid {
		return nil
	}
	id := n.UUID
	return &id
}
