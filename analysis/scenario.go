package analysis

import (
	"github.com/teranos/consentlens/document"
	"github.com/teranos/consentlens/errors"
)

// CustomScenarioName names the single scenario built from an explicit doc-type selection.
const CustomScenarioName = "custom_selection"

// ScenarioDefinition names a subset of documents selected by type.
type ScenarioDefinition struct {
	Name     string             `json:"name" mapstructure:"name"`
	DocTypes []document.DocType `json:"doc_types" mapstructure:"doc_types"`
}

// DefaultScenarios returns the built-in scenarios: one per common source plus everything combined.
func DefaultScenarios() []ScenarioDefinition {
	return []ScenarioDefinition{
		{Name: "emails_only", DocTypes: []document.DocType{document.DocTypeEmail}},
		{Name: "notes_only", DocTypes: []document.DocType{document.DocTypeNotes}},
		{Name: "cv_only", DocTypes: []document.DocType{document.DocTypeCV}},
		{Name: "all_data", DocTypes: document.AllDocTypes()},
	}
}

// CustomScenario wraps an explicit doc-type selection.
func CustomScenario(types []document.DocType) ScenarioDefinition {
	return ScenarioDefinition{Name: CustomScenarioName, DocTypes: append([]document.DocType(nil), types...)}
}

// Validate checks that the scenario is named and lists only known doc types.
func (s ScenarioDefinition) Validate() error {
	if s.Name == "" {
		return errors.NewInvalidRequestError("scenario name is empty")
	}
	for _, t := range s.DocTypes {
		if !t.Valid() {
			return errors.NewInvalidRequestError("scenario %s: unknown doc type %q", s.Name, t)
		}
	}
	return nil
}

// includes reports whether the scenario selects documents of type t.
func (s ScenarioDefinition) includes(t document.DocType) bool {
	for _, want := range s.DocTypes {
		if want == t {
			return true
		}
	}
	return false
}
