package config

import (
	"github.com/spf13/viper"

	"github.com/teranos/consentlens/analysis"
	"github.com/teranos/consentlens/explanation"
	"github.com/teranos/consentlens/inference"
)

// Default values
const (
	DefaultModelsDir     = "models/artifacts"
	DefaultPreviewLength = 320
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("models.dir", DefaultModelsDir)
	v.SetDefault("models.pattern", inference.DefaultPattern)
	v.SetDefault("models.strict", false)

	v.SetDefault("analysis.top_k_features", analysis.DefaultTopKFeatures)
	v.SetDefault("analysis.max_supporting_sentences", analysis.DefaultMaxSupportingSentences)
	v.SetDefault("analysis.scenarios", []map[string]interface{}{})

	v.SetDefault("explanation.cache_size", explanation.DefaultCacheSize)

	v.SetDefault("ingest.preview_length", DefaultPreviewLength)

	v.SetDefault("log.json", false)
}

// Defaults returns the configuration with only built-in defaults applied.
func Defaults() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// Defaults always decode.
		panic(err)
	}
	return cfg
}
