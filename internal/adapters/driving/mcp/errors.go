// Package mcp provides an MCP (Model Context Protocol) server adapter for Vynal.
// It lets AI assistants fill templates and read generated documents.
package mcp

import "errors"

// ErrMissingGenerationService is returned when the generation service is not provided.
var ErrMissingGenerationService = errors.New("mcp: generation service is required")
