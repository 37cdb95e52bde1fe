package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/teranos/consentlens/analysis"
	"github.com/teranos/consentlens/config"
	"github.com/teranos/consentlens/document"
	"github.com/teranos/consentlens/errors"
	"github.com/teranos/consentlens/explanation"
	"github.com/teranos/consentlens/inference"
	"github.com/teranos/consentlens/ingest"
)

// loadConfig loads and validates configuration, applying command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	loaded, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg := *loaded
	if dir, _ := cmd.Flags().GetString("models-dir"); dir != "" {
		cfg.Models.Dir = dir
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return &cfg, nil
}

func loadEngine(cfg *config.Config) (*inference.Engine, error) {
	return inference.Load(cfg.Models.Dir, cfg.EngineOptions()...)
}

func loadStore(ctx context.Context, folder string) (*document.Store, error) {
	docs, err := ingest.Folder(ctx, folder)
	if err != nil {
		return nil, err
	}
	store := document.NewStore()
	store.ReplaceAll(docs)
	return store, nil
}

func newExplainer(cfg *config.Config) (*explanation.Engine, error) {
	return explanation.NewEngine(explanation.WithCacheSize(cfg.Explanation.CacheSize))
}

// newService wires the store, engine and explainer into an analysis service.
// A nil explainer is built from cfg.
func newService(ctx context.Context, cfg *config.Config, folder string, explainer *explanation.Engine) (*analysis.Service, error) {
	store, err := loadStore(ctx, folder)
	if err != nil {
		return nil, err
	}
	engine, err := loadEngine(cfg)
	if err != nil {
		return nil, err
	}
	if explainer == nil {
		if explainer, err = newExplainer(cfg); err != nil {
			return nil, err
		}
	}
	scenarios, err := cfg.Scenarios()
	if err != nil {
		return nil, err
	}
	return analysis.NewService(store, engine, explainer, analysis.WithScenarios(scenarios)), nil
}

func addFormatFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "table", "Output format: table, json, yaml")
	cmd.Flags().BoolP("json", "j", false, "Shorthand for --format json")
}
