package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/consentlens/display"
	"github.com/teranos/consentlens/errors"
)

// DocumentsCmd lists the documents ingested from a folder
var DocumentsCmd = &cobra.Command{
	Use:   "documents <folder>",
	Short: "List the documents found in a folder",
	Long: `Ingest <folder> and print a catalog of documents with their detected type
and a preview of the cleaned text. Use --id to print one document in full.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocuments,
}

func init() {
	DocumentsCmd.Flags().String("id", "", "Show a single document by ID")
	addFormatFlags(DocumentsCmd)
}

func runDocuments(cmd *cobra.Command, args []string) error {
	format, err := display.FormatFromCommand(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, err := loadStore(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if id, _ := cmd.Flags().GetString("id"); id != "" {
		doc, ok := store.Get(id)
		if !ok {
			return errors.NewNotFoundError("document %s", id)
		}
		return display.Document(cmd.OutOrStdout(), doc, format)
	}

	return display.Documents(cmd.OutOrStdout(), display.Catalog{
		DocumentCount: store.Len(),
		Counts:        store.CountsByType(),
		Documents:     store.Summaries(cfg.Ingest.PreviewLength),
	}, format)
}
