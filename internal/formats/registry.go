// Package formats maps output formats to their renderers.
package formats

import (
	"sort"
	"sync"

	"github.com/vynal-docs/vynal/internal/core/domain"
	"github.com/vynal-docs/vynal/internal/core/ports/driven"
	"github.com/vynal-docs/vynal/internal/formats/docx"
	"github.com/vynal-docs/vynal/internal/formats/pdf"
	"github.com/vynal-docs/vynal/internal/formats/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.FormatRegistry = (*Registry)(nil)

// Registry maps output formats to renderers.
type Registry struct {
	mu        sync.RWMutex
	renderers map[domain.OutputFormat]driven.FormatRenderer
}

// NewRegistry creates a registry holding the given renderers.
func NewRegistry(renderers ...driven.FormatRenderer) *Registry {
	r := &Registry{
		renderers: make(map[domain.OutputFormat]driven.FormatRenderer, len(renderers)),
	}
	for _, renderer := range renderers {
		r.Register(renderer)
	}
	return r
}

// NewDefaultRegistry creates a registry with every built-in format.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

// RegisterDefaults registers the plain text, PDF and DOCX renderers.
func RegisterDefaults(r *Registry) {
	r.Register(plaintext.New())
	r.Register(pdf.New())
	r.Register(docx.New())
}

// Register adds a renderer, replacing any previous one for the same format.
func (r *Registry) Register(renderer driven.FormatRenderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[renderer.Format()] = renderer
}

// Get returns the renderer for format.
func (r *Registry) Get(format domain.OutputFormat) (driven.FormatRenderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[format]
	if !ok {
		return nil, &domain.UnsupportedFormatError{Format: string(format)}
	}
	return renderer, nil
}

// Has returns true if a renderer is registered for format.
func (r *Registry) Has(format domain.OutputFormat) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.renderers[format]
	return ok
}

// Formats returns the registered formats in sorted order.
func (r *Registry) Formats() []domain.OutputFormat {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]domain.OutputFormat, 0, len(r.renderers))
	for f := range r.renderers {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}
