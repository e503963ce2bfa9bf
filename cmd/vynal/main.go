// Command vynal fills document templates from loosely named input fields.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/vynal-docs/vynal/internal/adapters/driven/ai"
	"github.com/vynal-docs/vynal/internal/adapters/driven/config/file"
	"github.com/vynal-docs/vynal/internal/adapters/driven/output/filesystem"
	"github.com/vynal-docs/vynal/internal/adapters/driven/storage/sqlite"
	templatedir "github.com/vynal-docs/vynal/internal/adapters/driven/templates/dir"
	"github.com/vynal-docs/vynal/internal/adapters/driving/cli"
	"github.com/vynal-docs/vynal/internal/assembly"
	"github.com/vynal-docs/vynal/internal/core/ports/driven"
	"github.com/vynal-docs/vynal/internal/core/services"
	"github.com/vynal-docs/vynal/internal/fields"
	"github.com/vynal-docs/vynal/internal/formats"
	"github.com/vynal-docs/vynal/internal/logger"
	"github.com/vynal-docs/vynal/internal/validation"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}

// bootstrap wires the adapters and services for one command run.
func bootstrap(ctx context.Context, opts cli.Options) (*cli.Services, func(), error) {
	configDir := expandHome(opts.ConfigDir)
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, nil, fmt.Errorf("locating config directory: %w", err)
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	promptStore, err := file.NewPromptStore(filepath.Join(configDir, "prompts"))
	if err != nil {
		return nil, nil, fmt.Errorf("loading prompts: %w", err)
	}

	settingsSvc := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsSvc.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("reading settings: %w", err)
	}

	mapping, err := loadMapping(expandHome(settings.Fields.MappingFile))
	if err != nil {
		return nil, nil, err
	}

	dataDir := expandHome(opts.DataDir)
	if dataDir == "" {
		dataDir = filepath.Join(configDir, "data")
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("metadata database: %s", store.Path())

	outputDir := expandHome(settings.Output.Directory)
	if outputDir == "" {
		outputDir = filepath.Join(configDir, "documents")
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("creating output directory: %w", err)
	}
	output := filesystem.New(outputDir)

	templates := store.TemplateStore()
	documents := store.DocumentStore()

	var suggester driven.FieldSuggester
	llm, err := ai.CreateAndValidateLLMService(&settings.LLM)
	if err != nil {
		// Suggestions are optional; generation still works without them.
		logger.Warn("%v", err)
	}
	if llm != nil {
		suggester = ai.NewSuggester(llm, promptStore, ai.NewRateLimiter(ai.DefaultRateLimit))
	}

	templateSvc := services.NewTemplateService(templates, templatedir.New(), mapping)
	importTemplateDirs(ctx, templateSvc, settings.Templates.Directories)

	generationSvc := services.NewGenerationService(services.GenerationConfig{
		Templates:     templates,
		Documents:     documents,
		Output:        output,
		Mapping:       mapping,
		Validator:     validation.New(settings.Validation),
		Assembler:     assembly.New(formats.NewDefaultRegistry(), output, documents),
		Suggester:     suggester,
		DefaultFormat: settings.Output.DefaultFormat,
	})

	cleanup := func() {
		if llm != nil {
			llm.Close()
		}
		if err := store.Close(); err != nil {
			logger.Warn("closing database: %v", err)
		}
	}

	return &cli.Services{
		Generation: generationSvc,
		Template:   templateSvc,
		Document:   services.NewDocumentService(documents, output),
		Settings:   settingsSvc,
		Mapping:    mapping,
	}, cleanup, nil
}

// loadMapping reads the field table from path, or the built-in one when path is empty.
func loadMapping(path string) (*fields.Mapping, error) {
	if path == "" {
		return fields.DefaultMapping()
	}
	mapping, err := fields.LoadMapping(path)
	if err != nil {
		return nil, fmt.Errorf("loading field mapping %s: %w", path, err)
	}
	return mapping, nil
}

// importTemplateDirs refreshes templates from the configured directories.
func importTemplateDirs(ctx context.Context, svc *services.TemplateService, dirs []string) {
	for _, dir := range dirs {
		dir = expandHome(dir)
		if _, err := svc.Import(ctx, dir); err != nil {
			logger.Warn("importing templates from %s: %v", dir, err)
		}
	}
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
