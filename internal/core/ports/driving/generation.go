package driving

import (
	"context"

	"github.com/vynal-docs/vynal/internal/core/domain"
)

// GenerationService turns raw input fields into a written document.
type GenerationService interface {
	// Generate runs the full pipeline and records the generated document.
	Generate(ctx context.Context, req domain.GenerateRequest) (*domain.GeneratedDocument, error)

	// Preview renders the template body without writing anything.
	Preview(ctx context.Context, req domain.GenerateRequest) (*Preview, error)

	// GenerateBatch generates many documents with at most concurrency in flight.
	// Results are returned in request order; a failed item does not stop the others.
	GenerateBatch(ctx context.Context, reqs []domain.GenerateRequest, concurrency int) []BatchResult
}

// Preview is the outcome of a dry run.
type Preview struct {
	// Body is the rendered template text.
	Body string

	// Fields holds the formatted canonical values used for rendering.
	Fields map[string]string

	// Corrections lists values rewritten by the validator.
	Corrections []domain.Correction

	// Unmapped lists input fields matching no canonical key.
	Unmapped []string

	// Missing lists template placeholders left without a value.
	Missing []string
}

// BatchResult is the outcome of one request of a batch.
type BatchResult struct {
	// Index is the request's position in the batch.
	Index int

	// Document is set on success.
	Document *domain.GeneratedDocument

	// Err is set on failure.
	Err error
}
