// Package cli provides the vynal command-line interface.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/vynal-docs/vynal/internal/core/ports/driving"
	"github.com/vynal-docs/vynal/internal/fields"
	"github.com/vynal-docs/vynal/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Options carries the global flags to the bootstrap function.
type Options struct {
	// ConfigDir overrides the configuration directory (~/.vynal by default).
	ConfigDir string

	// DataDir overrides the data directory (~/.vynal/data by default).
	DataDir string

	// Verbose enables debug logging.
	Verbose bool
}

// Services holds the driving ports the commands call into.
type Services struct {
	Generation driving.GenerationService
	Template   driving.TemplateService
	Document   driving.DocumentService
	Settings   driving.SettingsService
	Mapping    *fields.Mapping
}

// Bootstrap builds the services from the global flags.
// The returned cleanup function runs after the command finishes.
type Bootstrap func(ctx context.Context, opts Options) (*Services, func(), error)

var (
	generationService driving.GenerationService
	templateService   driving.TemplateService
	documentService   driving.DocumentService
	settingsService   driving.SettingsService
	fieldMapping      *fields.Mapping

	bootstrap Bootstrap
	cleanup   func()
	opts      Options
)

// skipBootstrap marks commands that run without services.
const skipBootstrap = "skip-bootstrap"

var rootCmd = &cobra.Command{
	Use:   "vynal",
	Short: "Generate documents from templates",
	Long: `Vynal fills document templates from loosely named input fields.

Input fields are mapped to canonical keys, validated, rendered into a
template and written as a referenced document (txt, pdf or docx).`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&opts.ConfigDir, "config-dir", "", "Configuration directory (default ~/.vynal)")
	rootCmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "Data directory (default ~/.vynal/data)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetBootstrap registers the function that builds services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs the services used by the commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	generationService = s.Generation
	templateService = s.Template
	documentService = s.Document
	settingsService = s.Settings
	fieldMapping = s.Mapping
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	defer func() {
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(opts.Verbose)

	if cmd.Annotations[skipBootstrap] == "true" || bootstrap == nil {
		return nil
	}

	svc, done, err := bootstrap(commandContext(cmd), opts)
	if err != nil {
		return err
	}
	if svc == nil {
		return errors.New("bootstrap returned no services")
	}
	SetServices(svc)
	cleanup = done
	return nil
}

// commandContext returns the command's context, falling back to Background.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
