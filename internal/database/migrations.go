package database

import "database/sql"

// migrate creates the ledger read model when it does not exist yet. The
// statements are portable between sqlite and postgres. Dates are stored as
// UTC text in dateLayout so range predicates compare lexicographically.
// Amounts are decimal text and are only ever summed in Go.
func migrate(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS funds (
			id TEXT PRIMARY KEY,
			organisation_id TEXT,
			branch_id TEXT,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS contribution_types (
			id TEXT PRIMARY KEY,
			organisation_id TEXT NOT NULL,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS expense_categories (
			id TEXT PRIMARY KEY,
			organisation_id TEXT NOT NULL,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS members (
			id TEXT PRIMARY KEY,
			organisation_id TEXT NOT NULL,
			branch_id TEXT,
			name TEXT NOT NULL,
			email TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			organisation_id TEXT NOT NULL,
			branch_id TEXT,
			fund_id TEXT,
			member_id TEXT,
			user_id TEXT,
			event_id TEXT,
			type TEXT NOT NULL,
			amount TEXT NOT NULL DEFAULT '0',
			txn_date TEXT NOT NULL,
			description TEXT,
			metadata TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS budgets (
			id TEXT PRIMARY KEY,
			organisation_id TEXT NOT NULL,
			branch_id TEXT,
			fund_id TEXT,
			name TEXT NOT NULL,
			total_amount TEXT NOT NULL DEFAULT '0',
			start_date TEXT NOT NULL,
			end_date TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'ACTIVE'
		)`,
		`CREATE TABLE IF NOT EXISTS budget_items (
			id TEXT PRIMARY KEY,
			budget_id TEXT NOT NULL,
			name TEXT,
			amount TEXT NOT NULL DEFAULT '0',
			expense_category_id TEXT,
			position INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_org_date ON transactions(organisation_id, txn_date)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_member ON transactions(member_id)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_fund ON transactions(fund_id)`,
		`CREATE INDEX IF NOT EXISTS idx_budgets_org ON budgets(organisation_id)`,
		`CREATE INDEX IF NOT EXISTS idx_budget_items_budget ON budget_items(budget_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
