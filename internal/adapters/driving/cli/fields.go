package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Show the canonical field table",
	Long: `Show the canonical fields templates can use, with the input names
accepted for each. Matching ignores case and accents.`,
	Args: cobra.NoArgs,
	RunE: runFieldsList,
}

var fieldsResolveCmd = &cobra.Command{
	Use:   "resolve [name...]",
	Short: "Show which canonical field an input name maps to",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFieldsResolve,
}

var fieldsVerbose bool

func init() {
	fieldsCmd.Flags().BoolVar(&fieldsVerbose, "synonyms", false, "Show accepted input names")
	fieldsCmd.AddCommand(fieldsResolveCmd)
	rootCmd.AddCommand(fieldsCmd)
}

func runFieldsList(cmd *cobra.Command, _ []string) error {
	if fieldMapping == nil {
		return errors.New("field mapping not configured")
	}

	for _, def := range fieldMapping.Definitions() {
		cmd.Printf("  %-18s %-8s %s\n", def.Key, def.Kind, def.Label)
		if fieldsVerbose && len(def.Synonyms) > 0 {
			cmd.Printf("      %s\n", strings.Join(def.Synonyms, ", "))
		}
	}
	return nil
}

func runFieldsResolve(cmd *cobra.Command, args []string) error {
	if fieldMapping == nil {
		return errors.New("field mapping not configured")
	}

	for _, name := range args {
		if key, ok := fieldMapping.Resolve(name); ok {
			cmd.Printf("  %s -> %s\n", name, key)
		} else {
			cmd.Printf("  %s -> (unmapped)\n", name)
		}
	}
	return nil
}
