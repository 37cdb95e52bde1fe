package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/teranos/consentlens/cmd/consentlens/commands"
	"github.com/teranos/consentlens/config"
	"github.com/teranos/consentlens/errors"
	"github.com/teranos/consentlens/logger"
)

var rootCmd = &cobra.Command{
	Use:   "consentlens",
	Short: "ConsentLens - explainable attribute inference over personal documents",
	Long: `ConsentLens - see what your documents reveal about you.

ConsentLens ingests a folder of emails, notes, CVs and transcripts, runs
per-attribute classifiers over different document subsets, and quotes the
sentences behind every inference.

Available commands:
  analyze   - Infer attributes for each scenario and show the evidence
  documents - List the documents found in a folder
  models    - List the loaded attribute models
  status    - Show documents indexed and model readiness
  watch     - Re-run analysis whenever documents or models change
  config    - Show, validate or locate configuration

Examples:
  consentlens analyze ~/exports                 # Run the default scenarios
  consentlens analyze ~/exports --doc-types email,notes --format json
  consentlens documents ~/exports               # Catalog with previews
  consentlens models --models-dir ./artifacts   # Inspect model bundles`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return errors.Wrap(err, "failed to load .env")
		}

		if path, _ := cmd.Flags().GetString("config"); path != "" {
			config.SetConfigFile(path)
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(cfg.Log.JSON, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().String("config", "", "Config file layered above the standard cascade")
	rootCmd.PersistentFlags().String("models-dir", "", "Override models.dir")

	rootCmd.AddCommand(commands.AnalyzeCmd)
	rootCmd.AddCommand(commands.DocumentsCmd)
	rootCmd.AddCommand(commands.ModelsCmd)
	rootCmd.AddCommand(commands.StatusCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	err := rootCmd.Execute()
	logger.Cleanup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
