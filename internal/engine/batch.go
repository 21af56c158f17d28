package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nandakv/paisaflow/internal/common"
	"github.com/nandakv/paisaflow/internal/extract"
	"github.com/nandakv/paisaflow/internal/service"
)

// BatchStats summarizes a batch run.
type BatchStats struct {
	Documents    int
	Submitted    int
	Failed       int
	Transactions int
	RowsSkipped  int
}

// BatchOrchestrator processes a set of documents and forwards each
// completed document's transactions to storage as one atomic submission.
// Documents are independent, so they run on a bounded worker pool; order is
// preserved within a document, not across documents. One bad document never
// halts the batch.
type BatchOrchestrator struct {
	processor *Processor
	storage   service.Storage
	// OnDocumentDone, when set, is called after each document finishes,
	// successfully or not. Used by the CLI for progress display.
	OnDocumentDone func(documentID string, err error)
	workers        int
}

// NewBatchOrchestrator creates a batch orchestrator running at most workers
// documents concurrently.
func NewBatchOrchestrator(processor *Processor, storage service.Storage, workers int) *BatchOrchestrator {
	if workers <= 0 {
		workers = 1
	}
	return &BatchOrchestrator{processor: processor, storage: storage, workers: workers}
}

// Run processes every document and returns aggregate statistics. Document
// failures are logged and counted, never propagated. Cancellation stops
// workers from picking up further documents; submissions already committed
// stay committed.
func (o *BatchOrchestrator) Run(ctx context.Context, docs []*extract.Document) *BatchStats {
	stats := &BatchStats{Documents: len(docs)}
	var mu sync.Mutex

	jobs := make(chan *extract.Document)
	var wg sync.WaitGroup

	for i := 0; i < o.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for doc := range jobs {
				result, err := o.processOne(ctx, doc)

				mu.Lock()
				if err != nil {
					stats.Failed++
				} else {
					stats.Submitted++
					stats.Transactions += len(result.Transactions)
					stats.RowsSkipped += result.RowsSkipped
				}
				mu.Unlock()

				if o.OnDocumentDone != nil {
					o.OnDocumentDone(doc.ID, err)
				}
			}
		}()
	}

	// Dispatch stops on cancellation; closing the channel lets in-flight
	// workers drain and exit.
	for _, doc := range docs {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return stats
		case jobs <- doc:
		}
	}
	close(jobs)
	wg.Wait()

	return stats
}

func (o *BatchOrchestrator) processOne(ctx context.Context, doc *extract.Document) (*DocumentResult, error) {
	slog.Info("Processing document", "document_id", doc.ID)

	result, err := o.processor.Process(ctx, doc)
	if err != nil {
		slog.Error("Failed to process document",
			"document_id", doc.ID,
			"error", err)
		return nil, common.NewDocumentError(doc.ID, err)
	}

	if err := o.storage.Submit(ctx, doc.ID, result.Transactions); err != nil {
		slog.Error("Failed to submit document batch",
			"document_id", doc.ID,
			"transaction_count", len(result.Transactions),
			"error", err)
		return nil, common.NewDocumentError(doc.ID, fmt.Errorf("%w: %w", common.ErrSubmitFailed, err))
	}

	slog.Info("Submitted document",
		"document_id", doc.ID,
		"bank", result.BankName,
		"transactions", len(result.Transactions),
		"rows_skipped", result.RowsSkipped,
		"pages_skipped", result.PagesSkipped)
	return result, nil
}
