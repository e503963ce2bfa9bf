package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vynal-docs/vynal/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure validation, output, template and AI settings.

Settings are addressed by dotted keys (e.g. validation.strict_mode).
Run "vynal settings keys" to list them.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a setting",
	Long: `Set a single setting.

Examples:
  vynal settings set validation.strict_mode false
  vynal settings set output.default_format pdf
  vynal settings set templates.directories ~/templates,~/shared/templates
  vynal settings set llm.provider ollama`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Reset a setting to its default",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsReset,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List settings keys and their values",
	RunE:  runSettingsKeys,
}

var settingsLLMCheckCmd = &cobra.Command{
	Use:   "check-llm",
	Short: "Check the configured LLM provider is reachable",
	RunE:  runSettingsLLMCheck,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsLLMCheckCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	v := settings.Validation
	cmd.Println("[Validation]")
	cmd.Printf("  Strict mode:   %s\n", yesNo(v.StrictMode))
	cmd.Printf("  Auto-correct:  %s\n", yesNo(v.AutoCorrect))
	cmd.Printf("  Dates:         %s\n", yesNo(v.ValidateDates))
	cmd.Printf("  Amounts:       %s\n", yesNo(v.ValidateAmounts))
	cmd.Printf("  Emails:        %s\n", yesNo(v.ValidateEmails))
	cmd.Printf("  Phones:        %s\n", yesNo(v.ValidatePhones))
	cmd.Printf("  Addresses:     %s\n", yesNo(v.ValidateAddresses))
	cmd.Printf("  Confidence:    %.2f\n", v.ConfidenceThreshold)
	cmd.Println()

	cmd.Println("[Output]")
	cmd.Printf("  Directory:      %s\n", orDefault(settings.Output.Directory, "~/.vynal/documents"))
	cmd.Printf("  Default format: %s\n", settings.Output.DefaultFormat)
	cmd.Println()

	cmd.Println("[Fields]")
	cmd.Printf("  Mapping file: %s\n", orDefault(settings.Fields.MappingFile, "(built-in)"))
	cmd.Println()

	cmd.Println("[Templates]")
	if len(settings.Templates.Directories) == 0 {
		cmd.Println("  Directories: (none)")
	} else {
		cmd.Printf("  Directories: %s\n", strings.Join(settings.Templates.Directories, ", "))
	}
	cmd.Printf("  Watch:       %s\n", yesNo(settings.Templates.Watch))
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	if settings.LLM.IsConfigured() {
		cmd.Printf("  Model:    %s\n", settings.LLM.Model)
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("unknown setting %q (see \"vynal settings keys\")", key)
		}
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	current, err := settingsService.Value(key)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}

	cmd.Printf("%s = %s\n", key, current)
	return nil
}

func runSettingsReset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	if err := settingsService.Reset(key); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("unknown setting %q (see \"vynal settings keys\")", key)
		}
		return fmt.Errorf("failed to reset %s: %w", key, err)
	}

	current, err := settingsService.Value(key)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}

	cmd.Printf("%s reset to %s\n", key, orDefault(current, "(empty)"))
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	for _, key := range settingsService.Keys() {
		value, err := settingsService.Value(key)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		cmd.Printf("%-32s %s\n", key, value)
	}
	return nil
}

func runSettingsLLMCheck(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.ValidateLLMConfig(); err != nil {
		return fmt.Errorf("LLM check failed: %w", err)
	}

	cmd.Println("LLM provider is reachable.")
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
