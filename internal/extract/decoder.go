package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nandakv/paisaflow/internal/enrich"
	"github.com/nandakv/paisaflow/internal/model"
	"github.com/nandakv/paisaflow/internal/schema"
)

// RowDecoder converts mapped raw rows into enriched transactions.
type RowDecoder struct {
	enricher    *enrich.Enricher
	dateFormats []string
}

// NewRowDecoder creates a decoder trying dateFormats in order.
func NewRowDecoder(dateFormats []string, enricher *enrich.Enricher) *RowDecoder {
	return &RowDecoder{dateFormats: dateFormats, enricher: enricher}
}

// Decode turns one raw row into a transaction. A row whose date cell is
// blank or does not parse under any configured format is not a data row;
// Decode returns (nil, nil) and the caller moves on. A malformed numeric
// cell is a real row-level error: the caller logs it and skips the row.
func (d *RowDecoder) Decode(row RawRow, colMap schema.ColumnMap, documentID string) (*model.Transaction, error) {
	dateStr := strings.TrimSpace(cellAt(row, colMap, schema.RoleDate))
	if dateStr == "" {
		return nil, nil
	}

	var date time.Time
	parsed := false
	for _, layout := range d.dateFormats {
		if t, err := time.Parse(layout, dateStr); err == nil {
			date = t
			parsed = true
			break
		}
	}
	if !parsed {
		return nil, nil
	}

	description := strings.TrimSpace(cellAt(row, colMap, schema.RoleDescription))
	description = strings.ReplaceAll(description, "\n", " ")

	debit, err := parseAmount(cellAt(row, colMap, schema.RoleDebit))
	if err != nil {
		return nil, fmt.Errorf("debit: %w", err)
	}
	credit, err := parseAmount(cellAt(row, colMap, schema.RoleCredit))
	if err != nil {
		return nil, fmt.Errorf("credit: %w", err)
	}
	balance, err := parseAmount(cellAt(row, colMap, schema.RoleBalance))
	if err != nil {
		return nil, fmt.Errorf("balance: %w", err)
	}

	meta := d.enricher.Enrich(description, debit, credit)

	weekday := date.Weekday()
	return &model.Transaction{
		DocumentID:   documentID,
		Date:         date,
		MonthYear:    date.Format("2006-01"),
		Quarter:      fmt.Sprintf("Q%d", (int(date.Month())-1)/3+1),
		DayOfWeek:    weekday.String(),
		IsWeekend:    weekday == time.Saturday || weekday == time.Sunday,
		Description:  description,
		Debit:        debit,
		Credit:       credit,
		Balance:      balance,
		Method:       meta.Method,
		Category:     meta.Category,
		IsDebit:      meta.IsDebit,
		IsCredit:     meta.IsCredit,
		AmountRange:  meta.AmountRange,
		IsRecurring:  meta.IsRecurring,
		Counterparty: meta.Counterparty,
	}, nil
}

// cellAt reads the cell mapped to a role, tolerating unmapped roles and
// rows shorter than the header promised.
func cellAt(row RawRow, colMap schema.ColumnMap, role schema.Role) string {
	idx, ok := colMap[role]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseAmount parses a decimal amount cell after stripping thousands
// separators. Blank cells mean zero, never an error.
func parseAmount(cell string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if cleaned == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("malformed amount %q: %w", cell, err)
	}
	return amount, nil
}
