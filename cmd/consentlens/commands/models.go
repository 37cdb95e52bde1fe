package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/consentlens/analysis"
	"github.com/teranos/consentlens/display"
)

// ModelsCmd lists the loaded attribute models
var ModelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the loaded attribute models",
	Long:  `Load every bundle in models.dir and list its attribute, classes and vocabulary size.`,
	Args:  cobra.NoArgs,
	RunE:  runModels,
}

// StatusCmd reports readiness for a folder
var StatusCmd = &cobra.Command{
	Use:   "status <folder>",
	Short: "Show documents indexed and model readiness",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func init() {
	addFormatFlags(ModelsCmd)
	addFormatFlags(StatusCmd)
}

func runModels(cmd *cobra.Command, args []string) error {
	format, err := display.FormatFromCommand(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	engine, err := loadEngine(cfg)
	if err != nil {
		return err
	}
	return display.Models(cmd.OutOrStdout(), display.ModelList{
		Dir:    engine.Dir(),
		Ready:  engine.IsReady(),
		Models: engine.Models(),
	}, format)
}

func runStatus(cmd *cobra.Command, args []string) error {
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
	engine, err := loadEngine(cfg)
	if err != nil {
		return err
	}
	explainer, err := newExplainer(cfg)
	if err != nil {
		return err
	}

	health := analysis.NewService(store, engine, explainer).Health()
	if format == display.FormatTable {
		fmt.Fprintf(cmd.OutOrStdout(), "status: %s\ndocuments indexed: %d\nmodels loaded: %t\n",
			health.Status, health.DocumentsIndexed, health.ModelsLoaded)
		return nil
	}
	return display.Encode(cmd.OutOrStdout(), health, format)
}
