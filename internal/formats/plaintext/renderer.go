// Package plaintext writes generated documents as UTF-8 text.
package plaintext

import (
	"context"
	"io"

	"github.com/vynal-docs/vynal/internal/core/domain"
	"github.com/vynal-docs/vynal/internal/core/ports/driven"
	"github.com/vynal-docs/vynal/internal/formats/layout"
)

// Ensure Renderer implements the interface.
var _ driven.FormatRenderer = (*Renderer)(nil)

// Renderer writes the canonical text form.
type Renderer struct{}

// New creates a new plain-text renderer.
func New() *Renderer {
	return &Renderer{}
}

// Format returns domain.FormatText.
func (r *Renderer) Format() domain.OutputFormat {
	return domain.FormatText
}

// Extension returns "txt".
func (r *Renderer) Extension() string {
	return "txt"
}

// Render writes the header block followed by the body.
func (r *Renderer) Render(ctx context.Context, doc *domain.GeneratedDocument, w io.Writer) error {
	if doc == nil {
		return domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := io.WriteString(w, layout.Text(doc))
	return err
}
