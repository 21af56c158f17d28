package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nandakv/paisaflow/internal/common"
)

// expectedSchemaVersion is the latest schema version the application
// expects. Failing to reach it is fatal at startup.
const expectedSchemaVersion = 1

type migration struct {
	up          func(*sql.Tx, *SQLiteStorage) error
	description string
	version     int
}

var migrations = []migration{
	{
		version:     1,
		description: "Initial schema",
		up: func(tx *sql.Tx, s *SQLiteStorage) error {
			queries := []string{
				fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
					hash TEXT PRIMARY KEY,
					document_id TEXT NOT NULL,
					bank_name TEXT NOT NULL,
					date TEXT NOT NULL,
					month_year TEXT NOT NULL,
					quarter TEXT NOT NULL,
					day_of_week TEXT NOT NULL,
					is_weekend INTEGER NOT NULL,
					description TEXT NOT NULL,
					debit TEXT NOT NULL,
					credit TEXT NOT NULL,
					balance TEXT NOT NULL,
					payment_method TEXT NOT NULL,
					transaction_category TEXT NOT NULL,
					is_debit INTEGER NOT NULL,
					is_credit INTEGER NOT NULL,
					amount_range TEXT NOT NULL,
					is_recurring INTEGER NOT NULL,
					recipient_bank_details TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`, s.transactionsTable()),
				fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%[1]s_document
					ON %[1]s(document_id)`, s.transactionsTable()),
				fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%[1]s_date
					ON %[1]s(date)`, s.transactionsTable()),
				fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%[1]s_category
					ON %[1]s(transaction_category)`, s.transactionsTable()),

				fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
					run_id TEXT PRIMARY KEY,
					document_id TEXT NOT NULL,
					status TEXT NOT NULL,
					transaction_count INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`, s.runsTable()),
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate brings the database schema up to the expected version.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	// The version pragma is shared by every table suffix in the file. A
	// suffix seen for the first time still needs its tables, so re-run the
	// migrations from scratch when they are missing.
	var name string
	err := s.db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?",
		s.transactionsTable(),
	).Scan(&name)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		version = 0
	case err != nil:
		return fmt.Errorf("failed to inspect schema: %w", err)
	}

	for _, m := range migrations {
		if m.version <= version {
			continue
		}

		slog.Info("Applying migration", "version", m.version, "description", m.description)

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.version, err)
		}

		if err := m.up(tx, s); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", m.version, err)
		}

		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to set schema version %d: %w", m.version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.version, err)
		}
	}

	if version > expectedSchemaVersion {
		return fmt.Errorf("%w: schema version %d is newer than expected %d",
			common.ErrDatabaseCorrupted, version, expectedSchemaVersion)
	}

	return nil
}
