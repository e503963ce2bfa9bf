package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vynal-docs/vynal/internal/core/domain"
	"github.com/vynal-docs/vynal/internal/core/ports/driven"
	"github.com/vynal-docs/vynal/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyStrictMode      = "validation.strict_mode"
	keyAutoCorrect     = "validation.auto_correct"
	keyValidateDates   = "validation.validate_dates"
	keyValidateAmounts = "validation.validate_amounts"
	keyValidateEmails  = "validation.validate_emails"
	keyValidatePhones  = "validation.validate_phones"
	keyValidateAddress = "validation.validate_addresses"
	keyConfidence      = "validation.confidence_threshold"
	keyOutputDir       = "output.directory"
	keyOutputFormat    = "output.default_format"
	keyMappingFile     = "fields.mapping_file"
	keyTemplateDirs    = "templates.directories"
	keyTemplateWatch   = "templates.watch"
	keyLLMProvider     = "llm.provider"
	keyLLMModel        = "llm.model"
	keyLLMBaseURL      = "llm.base_url"
)

const defaultOllamaURL = "http://localhost:11434"

// settingKind selects how a setting is parsed and stored.
type settingKind int

const (
	kindBool settingKind = iota
	kindFloat
	kindString
	kindList
	kindFormat
	kindProvider
)

// settingKeys lists every configurable key in display order.
var settingKeys = []string{
	keyStrictMode, keyAutoCorrect,
	keyValidateDates, keyValidateAmounts, keyValidateEmails, keyValidatePhones, keyValidateAddress,
	keyConfidence,
	keyOutputDir, keyOutputFormat,
	keyMappingFile,
	keyTemplateDirs, keyTemplateWatch,
	keyLLMProvider, keyLLMModel, keyLLMBaseURL,
}

var settingKinds = map[string]settingKind{
	keyStrictMode:      kindBool,
	keyAutoCorrect:     kindBool,
	keyValidateDates:   kindBool,
	keyValidateAmounts: kindBool,
	keyValidateEmails:  kindBool,
	keyValidatePhones:  kindBool,
	keyValidateAddress: kindBool,
	keyConfidence:      kindFloat,
	keyOutputDir:       kindString,
	keyOutputFormat:    kindFormat,
	keyMappingFile:     kindString,
	keyTemplateDirs:    kindList,
	keyTemplateWatch:   kindBool,
	keyLLMProvider:     kindProvider,
	keyLLMModel:        kindString,
	keyLLMBaseURL:      kindString,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Validation: domain.ValidationSettings{
			StrictMode:          s.getBool(keyStrictMode, defaults.Validation.StrictMode),
			AutoCorrect:         s.getBool(keyAutoCorrect, defaults.Validation.AutoCorrect),
			ValidateDates:       s.getBool(keyValidateDates, defaults.Validation.ValidateDates),
			ValidateAmounts:     s.getBool(keyValidateAmounts, defaults.Validation.ValidateAmounts),
			ValidateEmails:      s.getBool(keyValidateEmails, defaults.Validation.ValidateEmails),
			ValidatePhones:      s.getBool(keyValidatePhones, defaults.Validation.ValidatePhones),
			ValidateAddresses:   s.getBool(keyValidateAddress, defaults.Validation.ValidateAddresses),
			ConfidenceThreshold: s.getThreshold(defaults.Validation.ConfidenceThreshold),
		},
		Output: domain.OutputSettings{
			Directory:     s.getString(keyOutputDir, defaults.Output.Directory),
			DefaultFormat: s.getFormat(defaults.Output.DefaultFormat),
		},
		Fields: domain.FieldSettings{
			MappingFile: s.getString(keyMappingFile, defaults.Fields.MappingFile),
		},
		Templates: domain.TemplateSettings{
			Directories: s.configStore.GetStringSlice(keyTemplateDirs),
			Watch:       s.getBool(keyTemplateWatch, defaults.Templates.Watch),
		},
		LLM: domain.LLMSettings{
			Provider: s.getProvider(defaults.LLM.Provider),
			Model:    s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:  s.getString(keyLLMBaseURL, defaults.LLM.BaseURL),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if t := settings.Validation.ConfidenceThreshold; t < 0 || t > 1 {
		return fmt.Errorf("confidence threshold %v outside [0,1]: %w", t, domain.ErrInvalidInput)
	}

	values := []struct {
		key   string
		value any
	}{
		{keyStrictMode, settings.Validation.StrictMode},
		{keyAutoCorrect, settings.Validation.AutoCorrect},
		{keyValidateDates, settings.Validation.ValidateDates},
		{keyValidateAmounts, settings.Validation.ValidateAmounts},
		{keyValidateEmails, settings.Validation.ValidateEmails},
		{keyValidatePhones, settings.Validation.ValidatePhones},
		{keyValidateAddress, settings.Validation.ValidateAddresses},
		{keyConfidence, settings.Validation.ConfidenceThreshold},
		{keyOutputDir, settings.Output.Directory},
		{keyOutputFormat, settings.Output.DefaultFormat.String()},
		{keyMappingFile, settings.Fields.MappingFile},
		{keyTemplateDirs, settings.Templates.Directories},
		{keyTemplateWatch, settings.Templates.Watch},
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
	}
	for _, v := range values {
		if list, ok := v.value.([]string); ok && list == nil {
			v.value = []string{}
		}
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Keys lists the configurable keys in display order.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// Value returns the effective value of a key as text.
func (s *SettingsService) Value(key string) (string, error) {
	if _, ok := settingKinds[key]; !ok {
		return "", fmt.Errorf("unknown setting %q: %w", key, domain.ErrNotFound)
	}
	settings, err := s.Get()
	if err != nil {
		return "", err
	}

	switch key {
	case keyStrictMode:
		return strconv.FormatBool(settings.Validation.StrictMode), nil
	case keyAutoCorrect:
		return strconv.FormatBool(settings.Validation.AutoCorrect), nil
	case keyValidateDates:
		return strconv.FormatBool(settings.Validation.ValidateDates), nil
	case keyValidateAmounts:
		return strconv.FormatBool(settings.Validation.ValidateAmounts), nil
	case keyValidateEmails:
		return strconv.FormatBool(settings.Validation.ValidateEmails), nil
	case keyValidatePhones:
		return strconv.FormatBool(settings.Validation.ValidatePhones), nil
	case keyValidateAddress:
		return strconv.FormatBool(settings.Validation.ValidateAddresses), nil
	case keyConfidence:
		return strconv.FormatFloat(settings.Validation.ConfidenceThreshold, 'g', -1, 64), nil
	case keyOutputDir:
		return settings.Output.Directory, nil
	case keyOutputFormat:
		return settings.Output.DefaultFormat.String(), nil
	case keyMappingFile:
		return settings.Fields.MappingFile, nil
	case keyTemplateDirs:
		return strings.Join(settings.Templates.Directories, ","), nil
	case keyTemplateWatch:
		return strconv.FormatBool(settings.Templates.Watch), nil
	case keyLLMProvider:
		return settings.LLM.Provider.String(), nil
	case keyLLMModel:
		return settings.LLM.Model, nil
	default:
		return settings.LLM.BaseURL, nil
	}
}

// Set parses and stores a single key.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrNotFound)
	}
	value = strings.TrimSpace(value)

	var stored any
	switch kind {
	case kindBool:
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		stored = b
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 || f > 1 {
			return fmt.Errorf("%s must be a number between 0 and 1: %w", key, domain.ErrInvalidInput)
		}
		stored = f
	case kindFormat:
		format := domain.ParseOutputFormat(value)
		if !format.IsValid() {
			return &domain.UnsupportedFormatError{Format: format.String()}
		}
		stored = format.String()
	case kindProvider:
		provider := domain.AIProvider(strings.ToLower(value))
		if provider != domain.AIProviderNone && !provider.IsValid() {
			return fmt.Errorf("invalid LLM provider %q: %w", value, domain.ErrInvalidInput)
		}
		stored = provider.String()
		if provider.IsLocal() && s.getString(keyLLMBaseURL, "") == "" {
			if err := s.configStore.Set(keyLLMBaseURL, defaultOllamaURL); err != nil {
				return fmt.Errorf("save %s: %w", keyLLMBaseURL, err)
			}
		}
	case kindList:
		list := []string{}
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				list = append(list, item)
			}
		}
		stored = list
	default:
		stored = value
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Reset removes a key so its default applies again.
func (s *SettingsService) Reset(key string) error {
	if _, ok := settingKinds[key]; !ok {
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrNotFound)
	}
	return s.configStore.Delete(key)
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getThreshold(defaultVal float64) float64 {
	if _, exists := s.configStore.Get(keyConfidence); !exists {
		return defaultVal
	}
	val := s.configStore.GetFloat(keyConfidence)
	if val < 0 || val > 1 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFormat(defaultVal domain.OutputFormat) domain.OutputFormat {
	val := s.configStore.GetString(keyOutputFormat)
	if val == "" {
		return defaultVal
	}
	format := domain.ParseOutputFormat(val)
	if !format.IsValid() {
		return defaultVal
	}
	return format
}

func (s *SettingsService) getProvider(defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(keyLLMProvider)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	default:
		return false, fmt.Errorf("expected true or false, got %q: %w", value, domain.ErrInvalidInput)
	}
}
