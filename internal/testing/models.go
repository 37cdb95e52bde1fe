// Package testing provides fixtures shared by package tests: small hand-built
// model bundles and document folders.
package testing

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// Bundle mirrors the on-disk model bundle format.
type Bundle struct {
	FormatVersion string     `json:"format_version"`
	AttributeName string     `json:"attribute_name"`
	Vectorizer    Vectorizer `json:"vectorizer"`
	Classifier    Classifier `json:"classifier"`
}

// Vectorizer mirrors the bundle vectorizer section.
type Vectorizer struct {
	Kind        string    `json:"kind"`
	Vocabulary  []string  `json:"vocabulary"`
	IDF         []float64 `json:"idf"`
	NgramRange  [2]int    `json:"ngram_range"`
	Lowercase   bool      `json:"lowercase"`
	StopWords   []string  `json:"stop_words,omitempty"`
	Norm        string    `json:"norm"`
	SublinearTF bool      `json:"sublinear_tf"`
}

// Classifier mirrors the bundle classifier section.
type Classifier struct {
	Kind       string      `json:"kind"`
	Classes    []string    `json:"classes"`
	Coef       [][]float64 `json:"coef"`
	Intercept  []float64   `json:"intercept"`
	MultiClass string      `json:"multi_class,omitempty"`
}

// StopWords is the stop list used by the fixture bundles.
var StopWords = []string{"the", "to", "in", "my", "and", "of", "from", "was", "at", "for", "is", "we"}

func ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

// LocationRegionBundle is a binary model with a single shared coefficient row
// that scores "New England" positively and "Bay Area" negatively.
func LocationRegionBundle() Bundle {
	vocab := []string{"boston", "cambridge", "mbta", "harbor", "san", "francisco", "san francisco", "bart", "valley"}
	return Bundle{
		FormatVersion: "1.0.0",
		AttributeName: "location_region",
		Vectorizer: Vectorizer{
			Kind:       "tfidf",
			Vocabulary: vocab,
			IDF:        ones(len(vocab)),
			NgramRange: [2]int{1, 2},
			Lowercase:  true,
			StopWords:  StopWords,
			Norm:       "l2",
		},
		Classifier: Classifier{
			Kind:       "logistic_regression",
			Classes:    []string{"Bay Area", "New England"},
			Coef:       [][]float64{{2.0, 1.5, 1.5, 0.5, -1.0, -1.0, -2.0, -1.5, -1.0}},
			Intercept:  []float64{0},
			MultiClass: "multinomial",
		},
	}
}

// FieldOfStudyBundle is a three-class multinomial model.
func FieldOfStudyBundle() Bundle {
	vocab := []string{"computer", "science", "computer science", "economics", "market", "biology", "lab", "cells"}
	return Bundle{
		FormatVersion: "1.2.0",
		AttributeName: "field_of_study",
		Vectorizer: Vectorizer{
			Kind:       "tfidf",
			Vocabulary: vocab,
			IDF:        []float64{1.2, 1.1, 1.5, 1.4, 1.3, 1.4, 1.0, 1.6},
			NgramRange: [2]int{1, 2},
			Lowercase:  true,
			StopWords:  StopWords,
			Norm:       "l2",
		},
		Classifier: Classifier{
			Kind:    "logistic_regression",
			Classes: []string{"Biology", "Computer Science", "Economics"},
			Coef: [][]float64{
				{-0.5, 0.2, -0.5, -0.5, -0.5, 2.0, 0.8, 2.0},
				{2.0, 0.8, 2.5, -0.5, -0.3, -0.5, 0.4, -0.5},
				{-0.5, -0.4, -0.5, 2.5, 2.0, -0.5, -0.6, -0.5},
			},
			Intercept:  []float64{0.1, 0.0, -0.1},
			MultiClass: "multinomial",
		},
	}
}

// WriteBundle writes b as <name>.json into dir and returns the file path.
func WriteBundle(t *testing.T, dir, name string, b Bundle) string {
	t.Helper()

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		t.Fatalf("Failed to encode bundle: %v", err)
	}
	return WriteFile(t, dir, name+".json", string(data))
}

// ModelDir creates a temp artifacts directory holding the given bundles.
func ModelDir(t *testing.T, bundles ...Bundle) string {
	t.Helper()

	dir := t.TempDir()
	for _, b := range bundles {
		WriteBundle(t, dir, b.AttributeName, b)
	}
	return dir
}

// WriteFile writes content to dir/name, creating parent directories.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}
