// Package analysis runs attribute inference over named document scenarios
// and attaches sentence evidence to each prediction.
package analysis

import (
	"sort"
	"strings"

	"github.com/teranos/consentlens/document"
	"github.com/teranos/consentlens/explanation"
	"github.com/teranos/consentlens/inference"
)

// Predictor produces attribute inferences for a text.
type Predictor interface {
	AttributeNames() []string
	Predict(text string, topK int) map[string]inference.AttributeInference
}

// EvidenceCollector finds sentences in docs that mention any of terms.
type EvidenceCollector interface {
	CollectSupportingSentences(docs []document.Document, terms []string, limit int) []explanation.SupportingSentence
}

// RunScenarios produces one result per scenario, in scenario order.
//
// Every result lists each attribute known to the predictor, sorted by name.
// Attributes without a prediction are reported with Available false.
func RunScenarios(docs []document.Document, scenarios []ScenarioDefinition, predictor Predictor, evidence EvidenceCollector, opts Options) []ScenarioResult {
	names := append([]string(nil), predictor.AttributeNames()...)
	sort.Strings(names)

	results := make([]ScenarioResult, 0, len(scenarios))
	for _, s := range scenarios {
		results = append(results, runScenario(docs, s, names, predictor, evidence, opts))
	}
	return results
}

func runScenario(docs []document.Document, s ScenarioDefinition, names []string, predictor Predictor, evidence EvidenceCollector, opts Options) ScenarioResult {
	var selected []document.Document
	texts := make([]string, 0, len(docs))
	for _, d := range docs {
		if s.includes(d.Type) {
			selected = append(selected, d)
			texts = append(texts, d.CleanText)
		}
	}

	result := ScenarioResult{
		Name:          s.Name,
		DocTypes:      append([]document.DocType{}, s.DocTypes...),
		DocumentCount: len(selected),
		Attributes:    make([]AttributeExplanation, 0, len(names)),
	}

	if len(selected) == 0 {
		for _, name := range names {
			result.Attributes = append(result.Attributes, unavailable(name))
		}
		return result
	}

	var predictions map[string]inference.AttributeInference
	if combined := strings.TrimSpace(strings.Join(texts, "\n\n")); combined != "" {
		predictions = predictor.Predict(combined, opts.TopKFeatures)
	}

	for _, name := range names {
		inf, ok := predictions[name]
		if !ok {
			result.Attributes = append(result.Attributes, unavailable(name))
			continue
		}
		features := append([]string{}, inf.TopFeatures...)
		sentences := evidence.CollectSupportingSentences(selected, features, opts.MaxSupportingSentences)
		if sentences == nil {
			sentences = []explanation.SupportingSentence{}
		}
		result.Attributes = append(result.Attributes, AttributeExplanation{
			Name:                name,
			PredictedValue:      inf.PredictedValue,
			Confidence:          inf.Confidence,
			TopFeatures:         features,
			SupportingSentences: sentences,
			Available:           true,
		})
	}
	return result
}
