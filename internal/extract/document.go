// Package extract turns raw extracted table rows into typed transactions.
// It consumes the output of the external table-extraction collaborator and
// never reads raw statement bytes itself.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RawRow is one table row: an ordered sequence of text cells. An empty
// string marks a cell the extractor could not read. Cells carry no
// semantics until a column map assigns them roles.
type RawRow []string

// IsEmpty reports whether every cell is blank.
func (r RawRow) IsEmpty() bool {
	for _, cell := range r {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Table is an ordered sequence of rows from one extracted table.
type Table struct {
	Rows []RawRow `json:"rows"`
}

// Page holds the tables extracted from one statement page. Error is set by
// the upstream extractor when the page could not be read; the engine skips
// such pages and keeps going.
type Page struct {
	Error  string  `json:"error,omitempty"`
	Tables []Table `json:"tables"`
	Number int     `json:"number"`
}

// Document is one statement's worth of extracted tables. ID comes from the
// source filename and doubles as the bank-resolution hint.
type Document struct {
	ID    string `json:"document_id"`
	Pages []Page `json:"pages"`
}

// LoadDocument reads an extracted-tables JSON file. When the file carries
// no document id, the filename stem is used.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document %s: %w", filepath.Base(path), err)
	}

	if doc.ID == "" {
		base := filepath.Base(path)
		doc.ID = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return &doc, nil
}

// FileSource loads documents from extracted-tables JSON files on disk.
type FileSource struct{}

// NewFileSource creates a file-backed document source.
func NewFileSource() *FileSource {
	return &FileSource{}
}

// Load reads the document at path.
func (FileSource) Load(_ context.Context, path string) (*Document, error) {
	return LoadDocument(path)
}
