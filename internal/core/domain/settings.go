package domain

const unknownDescription = "Unknown"

// DefaultConfidenceThreshold is the minimum auto-fill confidence for a field to be used.
const DefaultConfidenceThreshold = 0.8

// AIProvider identifies an AI service provider for field suggestions.
type AIProvider string

// Available AI providers.
const (
	// AIProviderNone disables AI suggestions.
	AIProviderNone AIProvider = ""

	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	return p == AIProviderOllama
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderNone:
		return "Disabled"
	default:
		return unknownDescription
	}
}

// ValidationSettings selects which format checks run and how failures are handled.
type ValidationSettings struct {
	// StrictMode fails the request on a value that cannot be made valid.
	StrictMode bool

	// AutoCorrect applies deterministic fixes even in strict mode.
	AutoCorrect bool

	// ValidateDates enables the date rule.
	ValidateDates bool

	// ValidateAmounts enables the amount rule.
	ValidateAmounts bool

	// ValidateEmails enables the email rule.
	ValidateEmails bool

	// ValidatePhones enables the phone rule.
	ValidatePhones bool

	// ValidateAddresses enables the address rule.
	ValidateAddresses bool

	// ConfidenceThreshold is the minimum auto-fill confidence in [0,1].
	ConfidenceThreshold float64
}

// Enabled returns true if the rule for kind is switched on.
func (v ValidationSettings) Enabled(kind FieldKind) bool {
	switch kind {
	case FieldKindDate:
		return v.ValidateDates
	case FieldKindAmount:
		return v.ValidateAmounts
	case FieldKindEmail:
		return v.ValidateEmails
	case FieldKindPhone:
		return v.ValidatePhones
	case FieldKindAddress:
		return v.ValidateAddresses
	default:
		return false
	}
}

// OutputSettings holds where and how documents are written.
type OutputSettings struct {
	// Directory is the output directory for generated files.
	Directory string

	// DefaultFormat is used when a request names no format.
	DefaultFormat OutputFormat
}

// FieldSettings holds field mapping configuration.
type FieldSettings struct {
	// MappingFile is an optional YAML file replacing the built-in field table.
	MappingFile string
}

// TemplateSettings holds template import configuration.
type TemplateSettings struct {
	// Directories are scanned for template files at startup.
	Directories []string

	// Watch re-imports templates when files in Directories change (MCP server only).
	Watch bool
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint.
	BaseURL string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	return l.Provider.IsValid()
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Validation holds validator behaviour.
	Validation ValidationSettings

	// Output holds output directory settings.
	Output OutputSettings

	// Fields holds field mapping settings.
	Fields FieldSettings

	// Templates holds template import settings.
	Templates TemplateSettings

	// LLM holds LLM provider settings.
	LLM LLMSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// Strict mode is on and auto-correction off, every format check is active.
// The LLM is left unconfigured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Validation: ValidationSettings{
			StrictMode:          true,
			AutoCorrect:         false,
			ValidateDates:       true,
			ValidateAmounts:     true,
			ValidateEmails:      true,
			ValidatePhones:      true,
			ValidateAddresses:   true,
			ConfidenceThreshold: DefaultConfidenceThreshold,
		},
		Output: OutputSettings{
			DefaultFormat: FormatText,
		},
		LLM: LLMSettings{},
	}
}
