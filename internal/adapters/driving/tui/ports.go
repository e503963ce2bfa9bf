// Package tui provides an interactive terminal user interface for vynal.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/vynal-docs/vynal/internal/core/ports/driving"
	"github.com/vynal-docs/vynal/internal/fields"
)

// Ports aggregates the driving ports and lookups used by the TUI.
type Ports struct {
	// Generation previews and writes documents.
	Generation driving.GenerationService

	// Template lists templates and their placeholders.
	Template driving.TemplateService

	// Document browses generated documents.
	Document driving.DocumentService

	// Mapping labels form fields. Optional.
	Mapping *fields.Mapping
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Generation == nil {
		return ErrMissingGenerationService
	}
	if p.Template == nil {
		return ErrMissingTemplateService
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	return nil
}
