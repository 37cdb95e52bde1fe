package analysis

import (
	"github.com/teranos/consentlens/errors"
)

const (
	DefaultTopKFeatures           = 5
	DefaultMaxSupportingSentences = 3

	// MinOptionValue and MaxOptionValue bound both analysis options.
	MinOptionValue = 1
	MaxOptionValue = 10
)

// Options bounds the size of each attribute explanation.
type Options struct {
	TopKFeatures           int `json:"top_k_features"`
	MaxSupportingSentences int `json:"max_supporting_sentences"`
}

// DefaultOptions returns the default analysis options.
func DefaultOptions() Options {
	return Options{
		TopKFeatures:           DefaultTopKFeatures,
		MaxSupportingSentences: DefaultMaxSupportingSentences,
	}
}

// Validate checks both options are within bounds.
func (o Options) Validate() error {
	if o.TopKFeatures < MinOptionValue || o.TopKFeatures > MaxOptionValue {
		return errors.NewInvalidRequestError("top_k_features must be between %d and %d, got %d",
			MinOptionValue, MaxOptionValue, o.TopKFeatures)
	}
	if o.MaxSupportingSentences < MinOptionValue || o.MaxSupportingSentences > MaxOptionValue {
		return errors.NewInvalidRequestError("max_supporting_sentences must be between %d and %d, got %d",
			MinOptionValue, MaxOptionValue, o.MaxSupportingSentences)
	}
	return nil
}
