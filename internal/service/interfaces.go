// Package service defines the interfaces between the engine and its
// collaborators.
package service

import (
	"context"

	"github.com/nandakv/paisaflow/internal/extract"
	"github.com/nandakv/paisaflow/internal/model"
)

// Storage is the persistence collaborator. Submit must be atomic per
// document: either every record of the document is stored or none are.
// Retrying failed submissions is the implementation's concern, never the
// engine's.
type Storage interface {
	Migrate(ctx context.Context) error
	Submit(ctx context.Context, documentID string, records []model.Transaction) error
	CountTransactions(ctx context.Context) (int, error)
	Close() error
}

// TableSource supplies extracted-table documents by reference. The reference
// format belongs to the implementation; the file-backed source treats it as
// a path.
type TableSource interface {
	Load(ctx context.Context, ref string) (*extract.Document, error)
}
