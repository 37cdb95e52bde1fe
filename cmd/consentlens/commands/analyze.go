package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/consentlens/analysis"
	"github.com/teranos/consentlens/config"
	"github.com/teranos/consentlens/display"
	"github.com/teranos/consentlens/document"
)

// AnalyzeCmd runs the scenario analysis over a folder
var AnalyzeCmd = &cobra.Command{
	Use:   "analyze <folder>",
	Short: "Infer attributes from a folder of documents",
	Long: `Ingest every .txt, .md and .pdf file under <folder>, then run each
attribute model over the configured scenarios (or the doc types given with
--doc-types) and print every prediction with its supporting sentences.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	AnalyzeCmd.Flags().StringSlice("doc-types", nil, "Analyze only these doc types as one custom scenario (email, cv, notes, transcript, other)")
	AnalyzeCmd.Flags().Int("top-k", 0, "Top features per attribute, 1-10 (default analysis.top_k_features)")
	AnalyzeCmd.Flags().Int("max-sentences", 0, "Supporting sentences per attribute, 1-10 (default analysis.max_supporting_sentences)")
	addFormatFlags(AnalyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format, err := display.FormatFromCommand(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	req, err := analysisRequest(cmd, cfg)
	if err != nil {
		return err
	}

	svc, err := newService(cmd.Context(), cfg, args[0], nil)
	if err != nil {
		return err
	}
	report, err := svc.Analyze(cmd.Context(), req)
	if err != nil {
		return err
	}
	return display.Report(cmd.OutOrStdout(), report, format)
}

// analysisRequest merges flags over configured defaults.
func analysisRequest(cmd *cobra.Command, cfg *config.Config) (analysis.Request, error) {
	req := analysis.Request{Options: cfg.AnalysisOptions()}

	if cmd.Flags().Changed("top-k") {
		req.Options.TopKFeatures, _ = cmd.Flags().GetInt("top-k")
	}
	if cmd.Flags().Changed("max-sentences") {
		req.Options.MaxSupportingSentences, _ = cmd.Flags().GetInt("max-sentences")
	}

	raw, _ := cmd.Flags().GetStringSlice("doc-types")
	types, err := document.ParseDocTypes(raw)
	if err != nil {
		return analysis.Request{}, err
	}
	req.DocTypes = types
	return req, nil
}
