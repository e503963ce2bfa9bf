package driving

import (
	"context"

	"github.com/vynal-docs/vynal/internal/core/domain"
)

// TemplateService manages document templates.
type TemplateService interface {
	// Create stores a new template. Every placeholder must name a canonical key.
	Create(ctx context.Context, tpl domain.Template) (*domain.Template, error)

	// Update replaces an existing template's content and metadata.
	Update(ctx context.Context, tpl domain.Template) (*domain.Template, error)

	// Get retrieves a template by ID or, failing that, by name.
	Get(ctx context.Context, idOrName string) (*domain.Template, error)

	// List returns all templates ordered by category then name.
	List(ctx context.Context) ([]domain.Template, error)

	// Delete removes a template.
	Delete(ctx context.Context, id string) error

	// Placeholders returns the distinct keys a template uses.
	Placeholders(ctx context.Context, idOrName string) ([]string, error)

	// Import loads every template file in dir, creating or updating by name.
	Import(ctx context.Context, dir string) ([]domain.Template, error)

	// Watch re-imports template files in dir as they change, until ctx is cancelled.
	Watch(ctx context.Context, dir string) error
}
