package config

import (
	"github.com/teranos/consentlens/analysis"
	"github.com/teranos/consentlens/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Models.Dir == "" {
		return errors.New("models.dir cannot be empty")
	}
	if c.Models.Pattern == "" {
		return errors.New("models.pattern cannot be empty")
	}

	if c.Analysis.TopKFeatures < analysis.MinOptionValue || c.Analysis.TopKFeatures > analysis.MaxOptionValue {
		return errors.Newf("analysis.top_k_features must be between %d and %d, got %d",
			analysis.MinOptionValue, analysis.MaxOptionValue, c.Analysis.TopKFeatures)
	}
	if c.Analysis.MaxSupportingSentences < analysis.MinOptionValue || c.Analysis.MaxSupportingSentences > analysis.MaxOptionValue {
		return errors.Newf("analysis.max_supporting_sentences must be between %d and %d, got %d",
			analysis.MinOptionValue, analysis.MaxOptionValue, c.Analysis.MaxSupportingSentences)
	}
	if _, err := c.Scenarios(); err != nil {
		return err
	}

	if c.Explanation.CacheSize < 1 {
		return errors.Newf("explanation.cache_size must be >= 1, got %d", c.Explanation.CacheSize)
	}

	// 0 = previews are just the ellipsis
	if c.Ingest.PreviewLength < 0 {
		return errors.Newf("ingest.preview_length must be >= 0, got %d", c.Ingest.PreviewLength)
	}

	return nil
}
