package driven

import (
	"context"

	"github.com/vynal-docs/vynal/internal/core/domain"
)

// TemplateStore persists document templates.
// Stores keep the raw content only; segments are parsed by the caller.
type TemplateStore interface {
	// Save stores or updates a template.
	Save(ctx context.Context, tpl domain.Template) error

	// Get retrieves a template by ID.
	// Returns domain.ErrNotFound if the template does not exist.
	Get(ctx context.Context, id string) (*domain.Template, error)

	// GetByName retrieves a template by its unique name.
	// Returns domain.ErrNotFound if no template has that name.
	GetByName(ctx context.Context, name string) (*domain.Template, error)

	// List returns all templates ordered by category then name.
	List(ctx context.Context) ([]domain.Template, error)

	// Delete removes a template.
	Delete(ctx context.Context, id string) error
}

// TemplateLoader reads template files from a directory.
type TemplateLoader interface {
	// Load parses every template file in dir.
	Load(ctx context.Context, dir string) ([]domain.Template, error)

	// Watch calls onChange with each template file created or modified in dir
	// until ctx is cancelled.
	Watch(ctx context.Context, dir string, onChange func(domain.Template)) error
}
