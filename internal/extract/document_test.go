package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeDoc(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadDocument(t *testing.T) {
	path := writeDoc(t, "statement.json", `{
		"document_id": "CANARA_mar2025",
		"pages": [
			{"number": 1, "tables": [{"rows": [["Txn Date", "Particulars"]]}]},
			{"number": 2, "error": "damaged page", "tables": []}
		]
	}`)

	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}
	if doc.ID != "CANARA_mar2025" {
		t.Errorf("ID = %s, want CANARA_mar2025", doc.ID)
	}
	if len(doc.Pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(doc.Pages))
	}
	if doc.Pages[1].Error != "damaged page" {
		t.Errorf("page error = %q, want damaged page", doc.Pages[1].Error)
	}
}

func TestLoadDocument_IDDefaultsToFilenameStem(t *testing.T) {
	path := writeDoc(t, "AXIS_jan2025.json", `{"pages": []}`)

	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}
	if doc.ID != "AXIS_jan2025" {
		t.Errorf("ID = %s, want AXIS_jan2025", doc.ID)
	}
}

func TestLoadDocument_Malformed(t *testing.T) {
	path := writeDoc(t, "bad.json", `{"pages": [`)

	if _, err := LoadDocument(path); err == nil {
		t.Error("LoadDocument() should fail on malformed JSON")
	}
	if _, err := LoadDocument(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadDocument() should fail on a missing file")
	}
}

func TestFileSource(t *testing.T) {
	path := writeDoc(t, "CANARA_feb2025.json", `{"pages": []}`)

	doc, err := NewFileSource().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.ID != "CANARA_feb2025" {
		t.Errorf("ID = %s, want CANARA_feb2025", doc.ID)
	}
}

func TestRawRowIsEmpty(t *testing.T) {
	if !(RawRow{"", "  ", "\t"}).IsEmpty() {
		t.Error("whitespace-only row should be empty")
	}
	if (RawRow{"", "x"}).IsEmpty() {
		t.Error("row with content should not be empty")
	}
	if !(RawRow{}).IsEmpty() {
		t.Error("zero-length row should be empty")
	}
}
