package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/vynal-docs/vynal/internal/adapters/driven/output/filesystem"
	"github.com/vynal-docs/vynal/internal/adapters/driven/storage/memory"
	templatedir "github.com/vynal-docs/vynal/internal/adapters/driven/templates/dir"
	"github.com/vynal-docs/vynal/internal/assembly"
	"github.com/vynal-docs/vynal/internal/core/domain"
	"github.com/vynal-docs/vynal/internal/core/services"
	"github.com/vynal-docs/vynal/internal/fields"
	"github.com/vynal-docs/vynal/internal/formats"
	"github.com/vynal-docs/vynal/internal/validation"
)

const testContract = "CONTRAT\n\nClient : {{client_name}}\nMontant : {{amount}} EUR\nFait le {{current_date}}\n"

// testEnv holds the stores behind the services installed by setupTestServices.
type testEnv struct {
	outputDir string
	templates *memory.TemplateStore
	documents *memory.DocumentStore
	config    *memory.ConfigStore
	template  *domain.Template
}

// setupTestServices installs real services over in-memory stores and a
// temporary output directory, seeded with one "contrat" template.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	mapping, err := fields.DefaultMapping()
	require.NoError(t, err)

	env := &testEnv{
		outputDir: t.TempDir(),
		templates: memory.NewTemplateStore(),
		documents: memory.NewDocumentStore(),
		config:    memory.NewConfigStore(),
	}

	output := filesystem.New(env.outputDir)
	lenient := domain.DefaultAppSettings().Validation
	lenient.StrictMode = false

	templateSvc := services.NewTemplateService(env.templates, templatedir.New(), mapping)
	generationSvc := services.NewGenerationService(services.GenerationConfig{
		Templates: env.templates,
		Documents: env.documents,
		Output:    output,
		Mapping:   mapping,
		Validator: validation.New(lenient),
		Assembler: assembly.New(formats.NewDefaultRegistry(), output, env.documents),
		Now:       func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) },
	})

	env.template, err = templateSvc.Create(context.Background(), domain.Template{
		Name:         "contrat",
		DocumentType: "Contrat de prestation",
		Category:     "legal",
		Content:      testContract,
	})
	require.NoError(t, err)

	SetServices(&Services{
		Generation: generationSvc,
		Template:   templateSvc,
		Document:   services.NewDocumentService(env.documents, output),
		Settings:   services.NewSettingsService(env.config, nil),
		Mapping:    mapping,
	})
	resetFlags(rootCmd)

	t.Cleanup(func() {
		SetServices(nil)
		resetFlags(rootCmd)
	})
	return env
}

// resetFlags restores every flag of cmd and its subcommands to its default.
// Cobra keeps flag state between Execute calls on the same command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// runCLI executes the root command with args and returns its combined output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
