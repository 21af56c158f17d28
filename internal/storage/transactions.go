package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/nandakv/paisaflow/internal/model"
)

// Submit stores one document's transactions and its ingest-run record in a
// single SQL transaction. A failure rolls everything back, so a document is
// either fully submitted or not at all.
func (s *SQLiteStorage) Submit(ctx context.Context, documentID string, records []model.Transaction) error {
	if documentID == "" {
		return fmt.Errorf("documentID must not be empty")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
		INSERT OR IGNORE INTO %s (
			hash, document_id, bank_name, date, month_year, quarter,
			day_of_week, is_weekend, description, debit, credit, balance,
			payment_method, transaction_category, is_debit, is_credit,
			amount_range, is_recurring, recipient_bank_details
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.transactionsTable()))
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range records {
		txn := &records[i]

		var counterpartyJSON any
		if txn.Counterparty != nil {
			data, marshalErr := json.Marshal(txn.Counterparty)
			if marshalErr != nil {
				return fmt.Errorf("failed to encode counterparty details: %w", marshalErr)
			}
			counterpartyJSON = string(data)
		}

		if _, err = stmt.ExecContext(ctx,
			txn.GenerateHash(),
			txn.DocumentID,
			txn.BankName,
			txn.ISODate(),
			txn.MonthYear,
			txn.Quarter,
			txn.DayOfWeek,
			txn.IsWeekend,
			txn.Description,
			txn.Debit.StringFixed(2),
			txn.Credit.StringFixed(2),
			txn.Balance.StringFixed(2),
			string(txn.Method),
			string(txn.Category),
			txn.IsDebit,
			txn.IsCredit,
			string(txn.AmountRange),
			txn.IsRecurring,
			counterpartyJSON,
		); err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}
	}

	if _, err = tx.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (run_id, document_id, status, transaction_count)
		VALUES (?, ?, ?, ?)
	`, s.runsTable()),
		uuid.NewString(), documentID, "COMPLETED", len(records),
	); err != nil {
		return fmt.Errorf("failed to record ingest run: %w", err)
	}

	return tx.Commit()
}

// CountTransactions returns the number of stored transactions.
func (s *SQLiteStorage) CountTransactions(ctx context.Context) (int, error) {
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", s.transactionsTable())
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// CountIngestRuns returns the number of recorded ingest runs.
func (s *SQLiteStorage) CountIngestRuns(ctx context.Context) (int, error) {
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", s.runsTable())
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count ingest runs: %w", err)
	}
	return count, nil
}
