// Package inference loads per-attribute linear models and turns text into
// attributed predictions.
//
// Each attribute is served by an AttributeModel pairing a TextVectorizer with a
// LinearClassifier. Models are immutable once loaded, so an Engine can be
// shared by concurrent callers without locking.
package inference

// SparseVector holds the non-zero entries of a feature vector.
// Indices are strictly increasing.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// Len returns the number of non-zero entries.
func (v SparseVector) Len() int {
	return len(v.Indices)
}

// Dot returns the inner product with a dense vector.
func (v SparseVector) Dot(dense []float64) float64 {
	var sum float64
	for i, idx := range v.Indices {
		if idx < len(dense) {
			sum += v.Values[i] * dense[idx]
		}
	}
	return sum
}

// TextVectorizer turns text into a weighted sparse feature vector over a fixed vocabulary.
type TextVectorizer interface {
	// Transform vectorizes text. Terms outside the vocabulary are ignored.
	Transform(text string) SparseVector
	// Vocabulary returns the feature terms ordered by feature index.
	Vocabulary() []string
}

// LinearClassifier scores feature vectors with one coefficient row per class.
type LinearClassifier interface {
	// Classes returns the class labels in probability order.
	Classes() []string
	// PredictProba returns one probability per class, summing to 1.
	PredictProba(x SparseVector) []float64
	// Coefficients returns the dense coefficient row that pushes towards class.
	Coefficients(class int) []float64
}

// AttributeModel pairs a vectorizer and a classifier for one attribute.
type AttributeModel struct {
	Name       string
	Vectorizer TextVectorizer
	Classifier LinearClassifier
	// Source is the bundle file the model was loaded from, if any.
	Source string
}

// AttributeInference is an explainable prediction for a single attribute.
type AttributeInference struct {
	Name                 string             `json:"name" yaml:"name"`
	PredictedValue       *string            `json:"predicted_value" yaml:"predicted_value"`
	Confidence           float64            `json:"confidence" yaml:"confidence"`
	TopFeatures          []string           `json:"top_features" yaml:"top_features"`
	FeatureContributions map[string]float64 `json:"feature_contributions" yaml:"feature_contributions"`
}

// ModelInfo describes a loaded model.
type ModelInfo struct {
	Name           string   `json:"name" yaml:"name"`
	Classes        []string `json:"classes" yaml:"classes"`
	VocabularySize int      `json:"vocabulary_size" yaml:"vocabulary_size"`
	Source         string   `json:"source,omitempty" yaml:"source,omitempty"`
}
