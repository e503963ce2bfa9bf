package driven

import (
	"context"

	"github.com/vynal-docs/vynal/internal/core/domain"
)

// DocumentStore persists metadata about generated documents.
// Backed by SQLite, with a unique index on the reference id.
type DocumentStore interface {
	// Save stores a generated document record.
	// Returns domain.ErrAlreadyExists if the reference is taken.
	Save(ctx context.Context, doc *domain.GeneratedDocument) error

	// Get retrieves a document by reference.
	// Returns domain.ErrNotFound if the reference is unknown.
	Get(ctx context.Context, reference string) (*domain.GeneratedDocument, error)

	// Exists returns true if the reference has been issued.
	Exists(ctx context.Context, reference string) (bool, error)

	// List returns documents newest first. A zero limit returns all of them.
	List(ctx context.Context, limit int) ([]domain.GeneratedDocument, error)

	// Delete removes a document record.
	Delete(ctx context.Context, reference string) error
}
