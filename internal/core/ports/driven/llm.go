// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import (
	"context"

	"github.com/vynal-docs/vynal/internal/core/domain"
)

// LLMService provides language model operations for field auto-fill.
// This is an optional service - when nil, unrecognised fields are simply reported.
type LLMService interface {
	// Generate produces text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// JSON asks the model for a JSON object response.
	JSON bool
}

// FieldSuggester proposes canonical keys for input fields the mapping did not recognise.
type FieldSuggester interface {
	// Suggest returns at most one suggestion per unmapped field.
	// values holds the raw input values keyed by field name.
	Suggest(ctx context.Context, unmapped []string, values map[string]string,
		defs []domain.FieldDefinition) ([]domain.FieldSuggestion, error)
}
