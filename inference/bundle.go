package inference

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/consentlens/errors"
)

// SupportedFormat is the semver constraint a bundle's format_version must satisfy.
const SupportedFormat = ">= 1.0.0, < 2.0.0"

const (
	vectorizerKindTfidf  = "tfidf"
	classifierKindLogReg = "logistic_regression"
)

// Bundle is the persisted form of one attribute model.
type Bundle struct {
	FormatVersion string           `json:"format_version"`
	AttributeName string           `json:"attribute_name"`
	Vectorizer    VectorizerBundle `json:"vectorizer"`
	Classifier    ClassifierBundle `json:"classifier"`
}

// VectorizerBundle holds the fitted TF-IDF state.
type VectorizerBundle struct {
	Kind        string    `json:"kind"`
	Vocabulary  []string  `json:"vocabulary"`
	IDF         []float64 `json:"idf"`
	NgramRange  [2]int    `json:"ngram_range"`
	Lowercase   bool      `json:"lowercase"`
	StopWords   []string  `json:"stop_words,omitempty"`
	Norm        Norm      `json:"norm"`
	SublinearTF bool      `json:"sublinear_tf"`
}

// ClassifierBundle holds the fitted logistic-regression state.
type ClassifierBundle struct {
	Kind       string      `json:"kind"`
	Classes    []string    `json:"classes"`
	Coef       [][]float64 `json:"coef"`
	Intercept  []float64   `json:"intercept"`
	MultiClass MultiClass  `json:"multi_class,omitempty"`
}

var supportedFormat = mustConstraint(SupportedFormat)

func mustConstraint(c string) *semver.Constraints {
	constraint, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return constraint
}

// ReadBundleFile reads and decodes a bundle from disk.
func ReadBundleFile(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "read bundle %s", path), errors.ErrCorruptArtifact)
	}
	b, err := DecodeBundle(data)
	if err != nil {
		return nil, errors.Wrapf(err, "bundle %s", path)
	}
	return b, nil
}

// DecodeBundle parses and validates a JSON bundle.
func DecodeBundle(data []byte) (*Bundle, error) {
	var b Bundle
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&b); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decode bundle"), errors.ErrCorruptArtifact)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Validate checks format compatibility and structural consistency.
func (b *Bundle) Validate() error {
	version, err := semver.NewVersion(b.FormatVersion)
	if err != nil {
		return errors.NewUnsupportedFormatError("invalid format_version %q", b.FormatVersion)
	}
	if !supportedFormat.Check(version) {
		return errors.NewUnsupportedFormatError("format_version %s does not satisfy %s", version, SupportedFormat)
	}
	if b.Vectorizer.Kind != vectorizerKindTfidf {
		return errors.NewUnsupportedFormatError("vectorizer kind %q", b.Vectorizer.Kind)
	}
	if b.Classifier.Kind != classifierKindLogReg {
		return errors.NewUnsupportedFormatError("classifier kind %q", b.Classifier.Kind)
	}
	switch b.Classifier.MultiClass {
	case "", MultiClassMultinomial, MultiClassOVR:
	default:
		return errors.NewUnsupportedFormatError("multi_class %q", b.Classifier.MultiClass)
	}

	if b.AttributeName == "" {
		return errors.NewCorruptArtifactError("attribute_name is empty")
	}

	vec := b.Vectorizer
	nFeatures := len(vec.Vocabulary)
	if len(vec.IDF) != nFeatures {
		return errors.NewCorruptArtifactError("idf has %d entries for %d vocabulary terms", len(vec.IDF), nFeatures)
	}
	if vec.NgramRange[0] < 1 || vec.NgramRange[1] < vec.NgramRange[0] {
		return errors.NewCorruptArtifactError("invalid ngram_range %v", vec.NgramRange)
	}
	switch vec.Norm {
	case NormL2, NormL1, NormNone:
	default:
		return errors.NewCorruptArtifactError("unknown norm %q", vec.Norm)
	}

	clf := b.Classifier
	nClasses := len(clf.Classes)
	if nClasses < 2 {
		return errors.NewCorruptArtifactError("classifier has %d classes, need at least 2", nClasses)
	}
	wantRows := nClasses
	if nClasses == 2 && len(clf.Coef) == 1 {
		wantRows = 1
	}
	if len(clf.Coef) != wantRows {
		return errors.NewCorruptArtifactError("coef has %d rows for %d classes", len(clf.Coef), nClasses)
	}
	for i, row := range clf.Coef {
		if len(row) != nFeatures {
			return errors.NewCorruptArtifactError("coef row %d has %d entries for %d features", i, len(row), nFeatures)
		}
	}
	if len(clf.Intercept) != len(clf.Coef) {
		return errors.NewCorruptArtifactError("intercept has %d entries for %d coef rows", len(clf.Intercept), len(clf.Coef))
	}
	return nil
}

// Model builds the immutable AttributeModel described by the bundle.
func (b *Bundle) Model(source string) *AttributeModel {
	vec := NewTfidfVectorizer(TfidfParams{
		Vocabulary:  b.Vectorizer.Vocabulary,
		IDF:         b.Vectorizer.IDF,
		NgramMin:    b.Vectorizer.NgramRange[0],
		NgramMax:    b.Vectorizer.NgramRange[1],
		Lowercase:   b.Vectorizer.Lowercase,
		StopWords:   b.Vectorizer.StopWords,
		Norm:        b.Vectorizer.Norm,
		SublinearTF: b.Vectorizer.SublinearTF,
	})
	clf := NewLogisticRegression(b.Classifier.Classes, b.Classifier.Coef, b.Classifier.Intercept, b.Classifier.MultiClass)
	return &AttributeModel{
		Name:       b.AttributeName,
		Vectorizer: vec,
		Classifier: clf,
		Source:     source,
	}
}
