package database

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

// DialectFor picks postgres for postgres:// URLs and sqlite for anything else,
// which is treated as a file path.
func DialectFor(databaseURL string) Dialect {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return Postgres
	}
	return SQLite
}

func New(databaseURL string) (*sql.DB, Dialect, error) {
	dialect := DialectFor(databaseURL)
	driver := "sqlite"
	if dialect == Postgres {
		driver = "pgx"
	}

	db, err := sql.Open(driver, databaseURL)
	if err != nil {
		return nil, dialect, fmt.Errorf("failed to open database: %w", err)
	}

	if dialect == SQLite {
		// Enable foreign keys and WAL mode
		_, err = db.Exec(`
			PRAGMA foreign_keys = ON;
			PRAGMA journal_mode = WAL;
		`)
		if err != nil {
			db.Close()
			return nil, dialect, err
		}
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, dialect, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, dialect, nil
}
