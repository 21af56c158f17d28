// Package common provides shared errors and logging helpers used across the
// application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Configuration errors. These are the only errors allowed to abort a run.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")

	// Document errors. Each one fails a single document, never the batch.
	ErrUnknownBank  = errors.New("no schema configured for bank")
	ErrNoTables     = errors.New("no tables found in document")
	ErrSubmitFailed = errors.New("batch submission failed")

	// Database errors.
	ErrDatabaseCorrupted = errors.New("database corrupted")
)

// DocumentError wraps a failure with the identity of the document that
// caused it, so the batch orchestrator can log and move on.
type DocumentError struct {
	Err        error
	DocumentID string
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document %s: %v", e.DocumentID, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// NewDocumentError attaches a document identity to an error.
func NewDocumentError(documentID string, err error) error {
	return &DocumentError{DocumentID: documentID, Err: err}
}
