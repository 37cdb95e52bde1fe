// Package config loads consentlens settings from layered TOML files and the
// environment.
//
// Precedence, lowest to highest: built-in defaults, /etc/consentlens/config.toml,
// ~/.consentlens/config.toml, the nearest consentlens.toml found walking up from
// the working directory, an explicit --config file, CONSENTLENS_* env vars.
package config

import (
	"github.com/teranos/consentlens/analysis"
	"github.com/teranos/consentlens/document"
	"github.com/teranos/consentlens/errors"
	"github.com/teranos/consentlens/inference"
)

// Config is the complete consentlens configuration.
type Config struct {
	Models      ModelsConfig      `mapstructure:"models" json:"models" yaml:"models" toml:"models"`
	Analysis    AnalysisConfig    `mapstructure:"analysis" json:"analysis" yaml:"analysis" toml:"analysis"`
	Explanation ExplanationConfig `mapstructure:"explanation" json:"explanation" yaml:"explanation" toml:"explanation"`
	Ingest      IngestConfig      `mapstructure:"ingest" json:"ingest" yaml:"ingest" toml:"ingest"`
	Log         LogConfig         `mapstructure:"log" json:"log" yaml:"log" toml:"log"`
}

// ModelsConfig locates model bundles.
type ModelsConfig struct {
	Dir     string `mapstructure:"dir" json:"dir" yaml:"dir" toml:"dir"`
	Pattern string `mapstructure:"pattern" json:"pattern" yaml:"pattern" toml:"pattern"`
	Strict  bool   `mapstructure:"strict" json:"strict" yaml:"strict" toml:"strict"` // fail on any unusable bundle
}

// AnalysisConfig bounds explanations and names the default scenarios.
type AnalysisConfig struct {
	TopKFeatures           int              `mapstructure:"top_k_features" json:"top_k_features" yaml:"top_k_features" toml:"top_k_features"`
	MaxSupportingSentences int              `mapstructure:"max_supporting_sentences" json:"max_supporting_sentences" yaml:"max_supporting_sentences" toml:"max_supporting_sentences"`
	Scenarios              []ScenarioConfig `mapstructure:"scenarios" json:"scenarios" yaml:"scenarios" toml:"scenarios"` // empty = built-in scenarios
}

// ScenarioConfig is one configured scenario.
type ScenarioConfig struct {
	Name     string   `mapstructure:"name" json:"name" yaml:"name" toml:"name"`
	DocTypes []string `mapstructure:"doc_types" json:"doc_types" yaml:"doc_types" toml:"doc_types"`
}

// ExplanationConfig sizes the sentence cache.
type ExplanationConfig struct {
	CacheSize int `mapstructure:"cache_size" json:"cache_size" yaml:"cache_size" toml:"cache_size"`
}

// IngestConfig controls document catalog output.
type IngestConfig struct {
	PreviewLength int `mapstructure:"preview_length" json:"preview_length" yaml:"preview_length" toml:"preview_length"`
}

// LogConfig controls logger output.
type LogConfig struct {
	JSON bool `mapstructure:"json" json:"json" yaml:"json" toml:"json"`
}

// File system constants
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// AnalysisOptions returns the configured analysis bounds.
func (c *Config) AnalysisOptions() analysis.Options {
	return analysis.Options{
		TopKFeatures:           c.Analysis.TopKFeatures,
		MaxSupportingSentences: c.Analysis.MaxSupportingSentences,
	}
}

// Scenarios converts the configured scenarios. An empty list yields the defaults.
func (c *Config) Scenarios() ([]analysis.ScenarioDefinition, error) {
	if len(c.Analysis.Scenarios) == 0 {
		return analysis.DefaultScenarios(), nil
	}
	out := make([]analysis.ScenarioDefinition, 0, len(c.Analysis.Scenarios))
	for _, sc := range c.Analysis.Scenarios {
		types, err := document.ParseDocTypes(sc.DocTypes)
		if err != nil {
			return nil, errors.Wrapf(err, "analysis.scenarios %q", sc.Name)
		}
		def := analysis.ScenarioDefinition{Name: sc.Name, DocTypes: types}
		if err := def.Validate(); err != nil {
			return nil, err
		}
		out = append(out, def)
	}
	return out, nil
}

// EngineOptions returns the inference loading options for this configuration.
func (c *Config) EngineOptions() []inference.Option {
	return []inference.Option{
		inference.WithPattern(c.Models.Pattern),
		inference.WithStrict(c.Models.Strict),
	}
}
