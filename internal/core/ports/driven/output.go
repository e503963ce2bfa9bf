package driven

import (
	"context"
	"io"

	"github.com/vynal-docs/vynal/internal/core/domain"
)

// OutputStore holds generated files in a single output directory.
type OutputStore interface {
	// Dir returns the output directory.
	Dir() string

	// Create opens a new file called name for writing, failing with
	// domain.ErrAlreadyExists if it is already present.
	// Directory failures are reported as *domain.StorageError.
	Create(ctx context.Context, name string) (io.WriteCloser, string, error)

	// Exists returns true if a file called name is present.
	Exists(ctx context.Context, name string) (bool, error)

	// Claimed returns true if a file named stem, or stem with any
	// extension, is present.
	Claimed(ctx context.Context, stem string) (bool, error)

	// Open returns a reader over the file at path.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Remove deletes the file at path. Missing files are not an error.
	Remove(ctx context.Context, path string) error
}

// FormatRenderer writes a generated document in one output format.
type FormatRenderer interface {
	// Format returns the output format handled.
	Format() domain.OutputFormat

	// Extension returns the file extension, without the dot.
	Extension() string

	// Render writes doc to w.
	Render(ctx context.Context, doc *domain.GeneratedDocument, w io.Writer) error
}

// FormatRegistry selects the renderer for an output format.
type FormatRegistry interface {
	// Get returns the renderer for format.
	// Returns *domain.UnsupportedFormatError if none is registered.
	Get(format domain.OutputFormat) (FormatRenderer, error)

	// Formats returns the registered formats in sorted order.
	Formats() []domain.OutputFormat
}
