package driving

import (
	"context"

	"github.com/vynal-docs/vynal/internal/core/domain"
)

// DocumentService manages the registry of generated documents.
type DocumentService interface {
	// List returns generated documents newest first. limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]domain.GeneratedDocument, error)

	// Get retrieves a generated document by reference.
	Get(ctx context.Context, reference string) (*domain.GeneratedDocument, error)

	// Content returns the canonical plain-text rendering of a document.
	Content(ctx context.Context, reference string) (string, error)

	// Delete removes the document's file and its record.
	Delete(ctx context.Context, reference string) error

	// Open opens the document's file in the default application.
	Open(ctx context.Context, reference string) error
}
