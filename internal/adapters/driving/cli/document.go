package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage generated documents",
	Long:  `List, view, open, or delete generated documents.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List generated documents, newest first",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [reference]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentContentCmd = &cobra.Command{
	Use:   "content [reference]",
	Short: "Print document content",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentContent,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [reference]",
	Short: "Delete a document and its file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

var documentOpenCmd = &cobra.Command{
	Use:   "open [reference]",
	Short: "Open document in default application",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentOpen,
}

var documentListLimit int

func init() {
	documentListCmd.Flags().IntVarP(&documentListLimit, "limit", "n", 0, "Maximum number of documents (0 = all)")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentContentCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	documentCmd.AddCommand(documentOpenCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(commandContext(cmd), documentListLimit)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents generated yet.")
		return nil
	}

	cmd.Println("Generated documents:")
	cmd.Println()
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].Reference)
		cmd.Printf("    Title:     %s\n", docs[i].Title)
		cmd.Printf("    Format:    %s\n", docs[i].Format)
		cmd.Printf("    Generated: %s\n", docs[i].GeneratedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %s\n\n", doc.Reference)
	cmd.Printf("  Title:     %s\n", doc.Title)
	cmd.Printf("  Template:  %s\n", doc.TemplateID)
	cmd.Printf("  Format:    %s\n", doc.Format)
	cmd.Printf("  Path:      %s\n", doc.Path)
	cmd.Printf("  Generated: %s\n", doc.GeneratedAt.Format("2006-01-02 15:04:05"))

	if !doc.Client.IsEmpty() {
		cmd.Println("\n  Client:")
		printField(cmd, "Name", doc.Client.Name)
		printField(cmd, "Company", doc.Client.Company)
		printField(cmd, "Email", doc.Client.Email)
		printField(cmd, "Phone", doc.Client.Phone)
		printField(cmd, "Address", doc.Client.Address)
	}

	if len(doc.Fields) > 0 {
		cmd.Println("\n  Fields:")
		printFields(cmd, doc.Fields)
	}

	return nil
}

func runDocumentContent(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	content, err := documentService.Content(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document content: %w", err)
	}

	cmd.Println(content)
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	ref := args[0]
	if err := documentService.Delete(commandContext(cmd), ref); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Document %s deleted.\n", ref)
	return nil
}

func runDocumentOpen(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	ref := args[0]
	if err := documentService.Open(commandContext(cmd), ref); err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}

	cmd.Printf("Opened document %s in default application.\n", ref)
	return nil
}

func printField(cmd *cobra.Command, label, value string) {
	if value != "" {
		cmd.Printf("    %-8s %s\n", label+":", value)
	}
}

// printFields prints key/value pairs in key order.
func printFields(cmd *cobra.Command, values map[string]string) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cmd.Printf("    %s: %s\n", k, values[k])
	}
}
