package mcp

import (
	"github.com/vynal-docs/vynal/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Generation fills templates and writes documents.
	Generation driving.GenerationService

	// Template lists and reads templates.
	Template driving.TemplateService

	// Document reads generated documents.
	Document driving.DocumentService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Generation == nil {
		return ErrMissingGenerationService
	}
	// Template and Document only back resources
	return nil
}
