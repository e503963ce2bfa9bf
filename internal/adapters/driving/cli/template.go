package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vynal-docs/vynal/internal/adapters/driven/templates/dir"
	"github.com/vynal-docs/vynal/internal/core/domain"
)

var templateCmd = &cobra.Command{
	Use:     "template",
	Aliases: []string{"templates"},
	Short:   "Manage document templates",
	Long: `Add, list, update, or delete document templates.

Templates are plain text with {{placeholder}} markers naming canonical
field keys (see "vynal fields").`,
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates",
	Args:  cobra.NoArgs,
	RunE:  runTemplateList,
}

var templateGetCmd = &cobra.Command{
	Use:   "get [id-or-name]",
	Short: "Show a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateGet,
}

var templateAddCmd = &cobra.Command{
	Use:   "add [file]",
	Short: "Add a template from a file",
	Long: `Add a template from a file.

The template name defaults to the file name. Metadata flags override any
front matter in the file.`,
	Args: cobra.ExactArgs(1),
	RunE: runTemplateAdd,
}

var templateUpdateCmd = &cobra.Command{
	Use:   "update [id-or-name] [file]",
	Short: "Replace a template's content from a file",
	Args:  cobra.ExactArgs(2),
	RunE:  runTemplateUpdate,
}

var templateDeleteCmd = &cobra.Command{
	Use:   "delete [id-or-name]",
	Short: "Delete a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateDelete,
}

var templatePlaceholdersCmd = &cobra.Command{
	Use:   "placeholders [id-or-name]",
	Short: "List the fields a template uses",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplatePlaceholders,
}

var templateImportCmd = &cobra.Command{
	Use:   "import [dir]",
	Short: "Import every template file in a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateImport,
}

var (
	templateName         string
	templateDocumentType string
	templateCategory     string
	templateDescription  string
)

func init() {
	for _, c := range []*cobra.Command{templateAddCmd, templateUpdateCmd} {
		c.Flags().StringVar(&templateName, "name", "", "Template name")
		c.Flags().StringVar(&templateDocumentType, "type", "", "Document type used in titles")
		c.Flags().StringVar(&templateCategory, "category", "", "Category")
		c.Flags().StringVar(&templateDescription, "description", "", "Description")
	}

	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateGetCmd)
	templateCmd.AddCommand(templateAddCmd)
	templateCmd.AddCommand(templateUpdateCmd)
	templateCmd.AddCommand(templateDeleteCmd)
	templateCmd.AddCommand(templatePlaceholdersCmd)
	templateCmd.AddCommand(templateImportCmd)
	rootCmd.AddCommand(templateCmd)
}

func runTemplateList(cmd *cobra.Command, _ []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}

	templates, err := templateService.List(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	if len(templates) == 0 {
		cmd.Println("No templates. Add one with \"vynal template add <file>\".")
		return nil
	}

	category := "\x00"
	for i := range templates {
		t := templates[i]
		if t.Category != category {
			category = t.Category
			cmd.Printf("[%s]\n", orDefault(category, "uncategorised"))
		}
		cmd.Printf("  %s  %s\n", t.ID, t.Name)
		if t.Description != "" {
			cmd.Printf("    %s\n", t.Description)
		}
	}

	cmd.Printf("\nTotal: %d templates\n", len(templates))
	return nil
}

func runTemplateGet(cmd *cobra.Command, args []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}

	tpl, err := templateService.Get(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to get template: %w", err)
	}

	cmd.Printf("Template: %s\n\n", tpl.Name)
	cmd.Printf("  ID:       %s\n", tpl.ID)
	cmd.Printf("  Type:     %s\n", tpl.DocumentType)
	cmd.Printf("  Category: %s\n", tpl.Category)
	if tpl.Description != "" {
		cmd.Printf("  About:    %s\n", tpl.Description)
	}
	cmd.Printf("  Updated:  %s\n", tpl.UpdatedAt.Format("2006-01-02 15:04:05"))
	cmd.Println()
	cmd.Println(tpl.Content)
	return nil
}

func runTemplateAdd(cmd *cobra.Command, args []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}

	tpl, err := readTemplateFile(args[0])
	if err != nil {
		return err
	}
	applyTemplateFlags(cmd, tpl)

	created, err := templateService.Create(commandContext(cmd), *tpl)
	if err != nil {
		return fmt.Errorf("failed to add template: %w", err)
	}

	cmd.Printf("Template %q added (%s).\n", created.Name, created.ID)
	return nil
}

func runTemplateUpdate(cmd *cobra.Command, args []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}

	ctx := commandContext(cmd)
	existing, err := templateService.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get template: %w", err)
	}

	parsed, err := readTemplateFile(args[1])
	if err != nil {
		return err
	}
	existing.Content = parsed.Content
	applyTemplateFlags(cmd, existing)

	updated, err := templateService.Update(ctx, *existing)
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}

	cmd.Printf("Template %q updated.\n", updated.Name)
	return nil
}

func runTemplateDelete(cmd *cobra.Command, args []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}

	ctx := commandContext(cmd)
	tpl, err := templateService.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get template: %w", err)
	}
	if err := templateService.Delete(ctx, tpl.ID); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	cmd.Printf("Template %q deleted.\n", tpl.Name)
	return nil
}

func runTemplatePlaceholders(cmd *cobra.Command, args []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}

	keys, err := templateService.Placeholders(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to read placeholders: %w", err)
	}

	if len(keys) == 0 {
		cmd.Println("Template has no placeholders.")
		return nil
	}
	for _, key := range keys {
		label := ""
		if fieldMapping != nil {
			if def, ok := fieldMapping.Definition(key); ok {
				label = def.Label
			}
		}
		cmd.Printf("  %-20s %s\n", key, label)
	}
	return nil
}

func runTemplateImport(cmd *cobra.Command, args []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}

	imported, err := templateService.Import(commandContext(cmd), args[0])
	for i := range imported {
		cmd.Printf("  %s\n", imported[i].Name)
	}
	cmd.Printf("Imported %d templates from %s\n", len(imported), args[0])
	if err != nil {
		return fmt.Errorf("some templates were not imported: %w", err)
	}
	return nil
}

// readTemplateFile reads a template file, honouring YAML front matter.
// The name defaults to the file name without extension.
func readTemplateFile(path string) (*domain.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template file: %w", err)
	}
	tpl, err := dir.Parse(data)
	if err != nil {
		return nil, err
	}
	if tpl.Name == "" {
		tpl.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &tpl, nil
}

// applyTemplateFlags copies the metadata flags that were set onto tpl.
func applyTemplateFlags(cmd *cobra.Command, tpl *domain.Template) {
	if cmd.Flags().Changed("name") {
		tpl.Name = templateName
	}
	if cmd.Flags().Changed("type") {
		tpl.DocumentType = templateDocumentType
	}
	if cmd.Flags().Changed("category") {
		tpl.Category = templateCategory
	}
	if cmd.Flags().Changed("description") {
		tpl.Description = templateDescription
	}
}
