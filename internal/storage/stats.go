package storage

import (
	"context"
	"fmt"
)

// CategorySummary aggregates stored transactions for one category.
type CategorySummary struct {
	Category    string
	Count       int
	TotalDebit  float64
	TotalCredit float64
}

// MonthSummary aggregates stored transactions for one calendar month.
type MonthSummary struct {
	MonthYear   string
	Count       int
	TotalDebit  float64
	TotalCredit float64
}

// SummarizeByCategory returns per-category totals, largest debit volume
// first. Amounts are stored as fixed-point text, so the sums are cast for
// aggregation only.
func (s *SQLiteStorage) SummarizeByCategory(ctx context.Context) ([]CategorySummary, error) {
	query := fmt.Sprintf(`
		SELECT transaction_category,
		       COUNT(*),
		       ROUND(SUM(CAST(debit AS REAL)), 2),
		       ROUND(SUM(CAST(credit AS REAL)), 2)
		FROM %s
		GROUP BY transaction_category
		ORDER BY SUM(CAST(debit AS REAL)) DESC, transaction_category
	`, s.transactionsTable())

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize by category: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []CategorySummary
	for rows.Next() {
		var cs CategorySummary
		if err := rows.Scan(&cs.Category, &cs.Count, &cs.TotalDebit, &cs.TotalCredit); err != nil {
			return nil, fmt.Errorf("failed to scan category summary: %w", err)
		}
		summaries = append(summaries, cs)
	}
	return summaries, rows.Err()
}

// SummarizeByMonth returns per-month totals in chronological order.
func (s *SQLiteStorage) SummarizeByMonth(ctx context.Context) ([]MonthSummary, error) {
	query := fmt.Sprintf(`
		SELECT month_year,
		       COUNT(*),
		       ROUND(SUM(CAST(debit AS REAL)), 2),
		       ROUND(SUM(CAST(credit AS REAL)), 2)
		FROM %s
		GROUP BY month_year
		ORDER BY month_year
	`, s.transactionsTable())

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize by month: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []MonthSummary
	for rows.Next() {
		var ms MonthSummary
		if err := rows.Scan(&ms.MonthYear, &ms.Count, &ms.TotalDebit, &ms.TotalCredit); err != nil {
			return nil, fmt.Errorf("failed to scan month summary: %w", err)
		}
		summaries = append(summaries, ms)
	}
	return summaries, rows.Err()
}
