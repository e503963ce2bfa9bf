package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vynal-docs/vynal/internal/core/domain"
	"github.com/vynal-docs/vynal/internal/core/ports/driving"
)

var generateCmd = &cobra.Command{
	Use:   "generate [template]",
	Short: "Generate a document from a template",
	Long: `Generate a document from a template and a set of input fields.

Input field names are free-form: they are mapped to canonical keys using
the field table (see "vynal fields"). Values are validated and corrected
according to the validation settings.

Examples:
  vynal generate contract --field "Nom client=Jean Dupont" --field montant=1500
  vynal generate contract --fields-file input.yaml --format pdf
  vynal generate contract --fields-file input.yaml --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

var generateBatchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Generate many documents from a YAML batch file",
	Long: `Generate many documents from a YAML batch file.

File layout:
  template: contract        # default template
  format: pdf               # default format
  documents:
    - client:
        name: Jean Dupont
      fields:
        montant: "1500"
    - template: invoice
      fields:
        amount: 99.5`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerateBatch,
}

var (
	generateFields      []string
	generateConfidence  []string
	generateFieldsFile  string
	generateFormat      string
	generateDryRun      bool
	generateClient      domain.ClientInfo
	generateConcurrency int
)

func init() {
	flags := generateCmd.Flags()
	flags.StringArrayVarP(&generateFields, "field", "f", nil, "Input field as name=value (repeatable)")
	flags.StringArrayVar(&generateConfidence, "confidence", nil, "Auto-fill confidence as name=score (repeatable)")
	flags.StringVar(&generateFieldsFile, "fields-file", "", "YAML file of input fields")
	flags.StringVar(&generateFormat, "format", "", "Output format: txt, pdf, docx (default from settings)")
	flags.BoolVar(&generateDryRun, "dry-run", false, "Render without writing a document")
	flags.StringVar(&generateClient.Name, "client-name", "", "Client name")
	flags.StringVar(&generateClient.Company, "client-company", "", "Client company")
	flags.StringVar(&generateClient.Email, "client-email", "", "Client email")
	flags.StringVar(&generateClient.Phone, "client-phone", "", "Client phone")
	flags.StringVar(&generateClient.Address, "client-address", "", "Client address")

	generateBatchCmd.Flags().IntVarP(&generateConcurrency, "concurrency", "c", 0, "Documents generated in parallel (default 4)")

	generateCmd.AddCommand(generateBatchCmd)
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if generationService == nil {
		return errors.New("generation service not configured")
	}

	req, err := buildGenerateRequest(args[0])
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)

	if generateDryRun {
		preview, err := generationService.Preview(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to preview document: %w", err)
		}
		printPreview(cmd, preview)
		return nil
	}

	doc, err := generationService.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to generate document: %w", err)
	}

	cmd.Printf("Generated %s\n", doc.Title)
	cmd.Printf("  Reference: %s\n", doc.Reference)
	cmd.Printf("  Path:      %s\n", doc.Path)
	return nil
}

func buildGenerateRequest(template string) (domain.GenerateRequest, error) {
	req := domain.GenerateRequest{
		TemplateID: template,
		Fields:     map[string]string{},
		Client:     generateClient,
	}

	if generateFieldsFile != "" {
		data, err := os.ReadFile(generateFieldsFile)
		if err != nil {
			return req, fmt.Errorf("reading fields file: %w", err)
		}
		var fromFile map[string]string
		if err := yaml.Unmarshal(data, &fromFile); err != nil {
			return req, fmt.Errorf("parsing fields file: %w", err)
		}
		for k, v := range fromFile {
			req.Fields[k] = v
		}
	}

	// Flags override the file.
	for _, pair := range generateFields {
		name, value, err := splitPair(pair)
		if err != nil {
			return req, err
		}
		req.Fields[name] = value
	}

	if len(generateConfidence) > 0 {
		req.Confidence = make(map[string]float64, len(generateConfidence))
		for _, pair := range generateConfidence {
			name, value, err := splitPair(pair)
			if err != nil {
				return req, err
			}
			score, err := strconv.ParseFloat(value, 64)
			if err != nil || score < 0 || score > 1 {
				return req, fmt.Errorf("invalid confidence %q: must be a number in [0,1]", value)
			}
			req.Confidence[name] = score
		}
	}

	if generateFormat != "" {
		format := domain.ParseOutputFormat(generateFormat)
		if !format.IsValid() {
			return req, &domain.UnsupportedFormatError{Format: generateFormat}
		}
		req.Format = format
	}

	return req, nil
}

// splitPair splits "name=value" on the first '='.
func splitPair(pair string) (string, string, error) {
	name, value, ok := strings.Cut(pair, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", fmt.Errorf("invalid field %q: expected name=value", pair)
	}
	return name, value, nil
}

func printPreview(cmd *cobra.Command, preview *driving.Preview) {
	cmd.Println(preview.Body)
	cmd.Println()
	cmd.Println("---")

	if len(preview.Corrections) > 0 {
		cmd.Println("Corrections:")
		for _, c := range preview.Corrections {
			cmd.Printf("  %s (%s): %q -> %q\n", c.Field, c.Rule, c.From, c.To)
		}
	}
	if len(preview.Unmapped) > 0 {
		cmd.Printf("Unmapped fields: %s\n", strings.Join(preview.Unmapped, ", "))
	}
	if len(preview.Missing) > 0 {
		cmd.Printf("Missing placeholders: %s\n", strings.Join(preview.Missing, ", "))
	}
	if len(preview.Corrections) == 0 && len(preview.Unmapped) == 0 && len(preview.Missing) == 0 {
		cmd.Println("All placeholders filled.")
	}
}

// batchFile is the YAML layout of a batch generation file.
type batchFile struct {
	Template  string      `yaml:"template"`
	Format    string      `yaml:"format"`
	Documents []batchItem `yaml:"documents"`
}

type batchItem struct {
	Template   string             `yaml:"template"`
	Format     string             `yaml:"format"`
	Client     batchClient        `yaml:"client"`
	Fields     map[string]string  `yaml:"fields"`
	Confidence map[string]float64 `yaml:"confidence"`
}

type batchClient struct {
	Name    string `yaml:"name"`
	Company string `yaml:"company"`
	Email   string `yaml:"email"`
	Phone   string `yaml:"phone"`
	Address string `yaml:"address"`
}

// parseBatch decodes a batch file into generation requests.
func parseBatch(data []byte) ([]domain.GenerateRequest, error) {
	var file batchFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing batch file: %w", err)
	}
	if len(file.Documents) == 0 {
		return nil, fmt.Errorf("batch file lists no documents: %w", domain.ErrInvalidInput)
	}

	reqs := make([]domain.GenerateRequest, 0, len(file.Documents))
	for i, item := range file.Documents {
		template := orDefault(item.Template, file.Template)
		if template == "" {
			return nil, fmt.Errorf("document %d: no template: %w", i+1, domain.ErrInvalidInput)
		}

		req := domain.GenerateRequest{
			TemplateID: template,
			Fields:     item.Fields,
			Confidence: item.Confidence,
			Client:     domain.ClientInfo(item.Client),
		}
		if name := orDefault(item.Format, file.Format); name != "" {
			format := domain.ParseOutputFormat(name)
			if !format.IsValid() {
				return nil, fmt.Errorf("document %d: %w", i+1, &domain.UnsupportedFormatError{Format: name})
			}
			req.Format = format
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func runGenerateBatch(cmd *cobra.Command, args []string) error {
	if generationService == nil {
		return errors.New("generation service not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading batch file: %w", err)
	}
	reqs, err := parseBatch(data)
	if err != nil {
		return err
	}

	results := generationService.GenerateBatch(commandContext(cmd), reqs, generateConcurrency)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			cmd.Printf("  [%d] FAILED: %v\n", r.Index+1, r.Err)
			continue
		}
		cmd.Printf("  [%d] %s  %s\n", r.Index+1, r.Document.Reference, r.Document.Path)
	}

	cmd.Printf("\nGenerated %d of %d documents\n", len(results)-failed, len(results))
	if failed > 0 {
		return fmt.Errorf("%d documents failed", failed)
	}
	return nil
}
