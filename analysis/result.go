package analysis

import (
	"time"

	"github.com/teranos/consentlens/document"
	"github.com/teranos/consentlens/explanation"
)

// AttributeExplanation is one attribute's prediction within a scenario,
// decorated with the sentences that support it.
type AttributeExplanation struct {
	Name                string                           `json:"name" yaml:"name"`
	PredictedValue      *string                          `json:"predicted_value" yaml:"predicted_value"`
	Confidence          float64                          `json:"confidence" yaml:"confidence"`
	TopFeatures         []string                         `json:"top_features" yaml:"top_features"`
	SupportingSentences []explanation.SupportingSentence `json:"supporting_sentences" yaml:"supporting_sentences"`
	// Available is false when the scenario had no documents or no model produced a result.
	Available bool `json:"available" yaml:"available"`
}

// ScenarioResult holds every attribute explanation for one scenario, ordered by attribute name.
type ScenarioResult struct {
	Name          string                 `json:"name" yaml:"name"`
	DocTypes      []document.DocType     `json:"doc_types" yaml:"doc_types"`
	DocumentCount int                    `json:"document_count" yaml:"document_count"`
	Attributes    []AttributeExplanation `json:"attributes" yaml:"attributes"`
}

// Report is the outcome of one analysis run.
type Report struct {
	GeneratedAt time.Time        `json:"generated_at" yaml:"generated_at"`
	Scenarios   []ScenarioResult `json:"scenarios" yaml:"scenarios"`
}

func unavailable(name string) AttributeExplanation {
	return AttributeExplanation{
		Name:                name,
		TopFeatures:         []string{},
		SupportingSentences: []explanation.SupportingSentence{},
	}
}
