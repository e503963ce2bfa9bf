package driving

import "github.com/vynal-docs/vynal/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Keys lists the configurable keys in display order.
	Keys() []string

	// Value returns the effective value of a key as text.
	Value(key string) (string, error)

	// Set parses and stores a single key.
	Set(key, value string) error

	// Reset removes a key so its default applies again.
	Reset(key string) error

	// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
	ValidateLLMConfig() error
}
