package engine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/nandakv/paisaflow/internal/common"
	"github.com/nandakv/paisaflow/internal/extract"
	"github.com/nandakv/paisaflow/internal/model"
)

// memoryStorage implements service.Storage for tests. Submissions are
// recorded per document so atomicity and ordering can be asserted.
type memoryStorage struct {
	mu         sync.Mutex
	submitted  map[string][]model.Transaction
	failDocs   map[string]bool
	submitErrs int
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{
		submitted: make(map[string][]model.Transaction),
		failDocs:  make(map[string]bool),
	}
}

func (m *memoryStorage) Migrate(ctx context.Context) error { return nil }

func (m *memoryStorage) Submit(ctx context.Context, documentID string, records []model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDocs[documentID] {
		m.submitErrs++
		return errors.New("disk full")
	}
	m.submitted[documentID] = records
	return nil
}

func (m *memoryStorage) CountTransactions(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, records := range m.submitted {
		n += len(records)
	}
	return n, nil
}

func (m *memoryStorage) Close() error { return nil }

func docWithRows(id string, rows ...extract.RawRow) *extract.Document {
	all := []extract.RawRow{{"Txn Date", "Particulars", "Withdrawal", "Deposit", "Balance"}}
	all = append(all, rows...)
	return &extract.Document{
		ID:    id,
		Pages: []extract.Page{{Number: 1, Tables: []extract.Table{{Rows: all}}}},
	}
}

func TestBatchRun(t *testing.T) {
	processor := testProcessor()
	storage := newMemoryStorage()
	orchestrator := NewBatchOrchestrator(processor, storage, 3)

	docs := []*extract.Document{
		docWithRows("CANARA_jan2025",
			extract.RawRow{"03-01-2025", "UPI/P2M/1/ZOMATO//HDFC", "250.00", "", "9,750.00"},
			extract.RawRow{"04-01-2025", "POS DMART", "900.00", "", "8,850.00"},
		),
		docWithRows("CANARA_feb2025",
			extract.RawRow{"03-02-2025", "NEFT SALARY ACME", "", "55,000.00", "63,850.00"},
		),
		// Resolves to no configured bank, so processing fails.
		{ID: "HDFC_mar2025", Pages: []extract.Page{{Tables: []extract.Table{{}}}}},
	}

	stats := orchestrator.Run(context.Background(), docs)

	if stats.Documents != 3 {
		t.Errorf("Documents = %d, want 3", stats.Documents)
	}
	if stats.Submitted != 2 {
		t.Errorf("Submitted = %d, want 2", stats.Submitted)
	}
	if stats.Failed != 1 {
		t.Errorf("Failed = %d, want 1", stats.Failed)
	}
	if stats.Transactions != 3 {
		t.Errorf("Transactions = %d, want 3", stats.Transactions)
	}

	// Failed document must leave nothing behind.
	if _, ok := storage.submitted["HDFC_mar2025"]; ok {
		t.Error("failed document must not be submitted")
	}

	// Within-document order survives the concurrent batch.
	jan := storage.submitted["CANARA_jan2025"]
	if len(jan) != 2 {
		t.Fatalf("got %d january transactions, want 2", len(jan))
	}
	if jan[0].ISODate() != "2025-01-03" || jan[1].ISODate() != "2025-01-04" {
		t.Errorf("january order = %s, %s; want 2025-01-03, 2025-01-04",
			jan[0].ISODate(), jan[1].ISODate())
	}
}

func TestBatchRun_SubmitFailureIsIsolated(t *testing.T) {
	processor := testProcessor()
	storage := newMemoryStorage()
	storage.failDocs["CANARA_jan2025"] = true
	orchestrator := NewBatchOrchestrator(processor, storage, 2)

	docs := []*extract.Document{
		docWithRows("CANARA_jan2025",
			extract.RawRow{"03-01-2025", "UPI/P2M/1/ZOMATO//HDFC", "250.00", "", "9,750.00"},
		),
		docWithRows("CANARA_feb2025",
			extract.RawRow{"03-02-2025", "NEFT SALARY ACME", "", "55,000.00", "63,850.00"},
		),
	}

	stats := orchestrator.Run(context.Background(), docs)

	if stats.Submitted != 1 || stats.Failed != 1 {
		t.Errorf("Submitted=%d Failed=%d, want 1 and 1", stats.Submitted, stats.Failed)
	}
	if _, ok := storage.submitted["CANARA_feb2025"]; !ok {
		t.Error("healthy document must still be submitted")
	}
}

func TestBatchRun_DoneCallback(t *testing.T) {
	processor := testProcessor()
	storage := newMemoryStorage()
	orchestrator := NewBatchOrchestrator(processor, storage, 1)

	var mu sync.Mutex
	outcomes := make(map[string]error)
	orchestrator.OnDocumentDone = func(documentID string, err error) {
		mu.Lock()
		outcomes[documentID] = err
		mu.Unlock()
	}

	docs := []*extract.Document{
		docWithRows("CANARA_jan2025",
			extract.RawRow{"03-01-2025", "POS DMART", "900.00", "", "8,850.00"},
		),
		{ID: "HDFC_mar2025", Pages: []extract.Page{{Tables: []extract.Table{{}}}}},
	}

	orchestrator.Run(context.Background(), docs)

	if len(outcomes) != 2 {
		t.Fatalf("callback fired %d times, want 2", len(outcomes))
	}
	if outcomes["CANARA_jan2025"] != nil {
		t.Errorf("unexpected error for healthy document: %v", outcomes["CANARA_jan2025"])
	}
	if !errors.Is(outcomes["HDFC_mar2025"], common.ErrUnknownBank) {
		t.Errorf("outcome = %v, want ErrUnknownBank", outcomes["HDFC_mar2025"])
	}
}

func TestBatchRun_Cancellation(t *testing.T) {
	processor := testProcessor()
	storage := newMemoryStorage()
	orchestrator := NewBatchOrchestrator(processor, storage, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	docs := []*extract.Document{
		docWithRows("CANARA_jan2025",
			extract.RawRow{"03-01-2025", "POS DMART", "900.00", "", "8,850.00"},
		),
	}

	stats := orchestrator.Run(ctx, docs)
	if stats.Submitted != 0 {
		t.Errorf("Submitted = %d, want 0 after cancellation", stats.Submitted)
	}
}

func TestNewBatchOrchestrator_ClampsWorkers(t *testing.T) {
	orchestrator := NewBatchOrchestrator(testProcessor(), newMemoryStorage(), 0)
	if orchestrator.workers != 1 {
		t.Errorf("workers = %d, want clamp to 1", orchestrator.workers)
	}
}
