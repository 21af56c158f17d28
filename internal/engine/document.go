// Package engine orchestrates statement processing: one state machine per
// document, one bounded worker pool per batch.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nandakv/paisaflow/internal/common"
	"github.com/nandakv/paisaflow/internal/extract"
	"github.com/nandakv/paisaflow/internal/model"
	"github.com/nandakv/paisaflow/internal/schema"
)

// docState tracks where a document scan is in its lifecycle. A scan starts
// awaiting the header row and becomes mapped once the date and description
// columns are resolved; end of input ends the scan in whatever state it
// reached.
type docState int

const (
	awaitingHeader docState = iota
	mapped
)

// DocumentResult is the outcome of scanning one document.
type DocumentResult struct {
	DocumentID   string
	BankName     string
	Transactions []model.Transaction
	RowsSkipped  int
	PagesSkipped int
}

// Processor owns a single statement's lifecycle: resolve the bank, find the
// header row, then decode every subsequent data row. Row and page failures
// are isolated; whatever decoded before a failure is still returned.
type Processor struct {
	registry *schema.Registry
	decoder  *extract.RowDecoder
	banks    []string
}

// NewProcessor creates a document processor.
func NewProcessor(registry *schema.Registry, decoder *extract.RowDecoder, banks []string) *Processor {
	return &Processor{registry: registry, decoder: decoder, banks: banks}
}

// ResolveBank matches the document id's leading token against the
// configured bank list and returns the display name ("CANARA BANK") and
// the schema key ("CANARA").
func (p *Processor) ResolveBank(documentID string) (display, key string, err error) {
	hint := strings.ToUpper(strings.SplitN(documentID, "_", 2)[0])
	for _, bank := range p.banks {
		if strings.Contains(hint, bank) {
			return bank + " BANK", bank, nil
		}
	}
	return "", "", fmt.Errorf("%w: document %s", common.ErrUnknownBank, documentID)
}

// Process scans one document. It returns an error only for document-level
// failures (unknown bank, no tables); a document with no recognizable
// header simply yields zero transactions.
func (p *Processor) Process(ctx context.Context, doc *extract.Document) (*DocumentResult, error) {
	display, key, err := p.ResolveBank(doc.ID)
	if err != nil {
		return nil, err
	}

	bankSchema, ok := p.registry.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrUnknownBank, key)
	}

	result := &DocumentResult{DocumentID: doc.ID, BankName: display}
	state := awaitingHeader
	var colMap schema.ColumnMap
	tablesSeen := 0

	for _, page := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if page.Error != "" {
			slog.Warn("Skipping unreadable page",
				"document_id", doc.ID,
				"page", page.Number,
				"reason", page.Error)
			result.PagesSkipped++
			continue
		}

		for _, table := range page.Tables {
			tablesSeen++
			for _, row := range table.Rows {
				if row.IsEmpty() {
					continue
				}

				if state == awaitingHeader {
					candidate := schema.DetectColumnMap(row, bankSchema)
					if candidate.HasRequired() {
						colMap = candidate
						state = mapped
						slog.Debug("Mapped header row",
							"document_id", doc.ID,
							"column_map", colMap)
					}
					// Header row itself is never a data row.
					continue
				}

				txn, decodeErr := p.decoder.Decode(row, colMap, doc.ID)
				if decodeErr != nil {
					slog.Warn("Skipping malformed row",
						"document_id", doc.ID,
						"row", []string(row),
						"error", decodeErr)
					result.RowsSkipped++
					continue
				}
				if txn == nil {
					continue
				}

				txn.BankName = display
				result.Transactions = append(result.Transactions, *txn)
			}
		}
	}
	if tablesSeen == 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrNoTables, doc.ID)
	}

	if state == awaitingHeader {
		slog.Info("No header row recognized; document yields no transactions",
			"document_id", doc.ID)
	}

	return result, nil
}
