package inference

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/consentlens/errors"
	"github.com/teranos/consentlens/internal/util"
	"github.com/teranos/consentlens/logger"
)

// DefaultPattern matches bundle files inside the artifacts directory.
const DefaultPattern = "*.json"

// Engine is an immutable registry of attribute models.
//
// Models live in an arena sorted by attribute name with a name index on top,
// so AttributeNames and Models need no sorting at call time.
type Engine struct {
	dir    string
	models []*AttributeModel
	byName map[string]int
	logger *zap.SugaredLogger
}

// Option configures engine construction.
type Option func(*engineOptions)

type engineOptions struct {
	pattern string
	strict  bool
	logger  *zap.SugaredLogger
}

// WithPattern sets the glob used to enumerate bundle files.
func WithPattern(pattern string) Option {
	return func(o *engineOptions) {
		if pattern != "" {
			o.pattern = pattern
		}
	}
}

// WithStrict makes any unreadable, invalid or duplicate bundle abort loading.
// By default such bundles are skipped and logged.
func WithStrict(strict bool) Option {
	return func(o *engineOptions) {
		o.strict = strict
	}
}

// WithLogger sets the logger used while loading.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *engineOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// Load builds an engine from the bundles in dir.
//
// A missing directory is created and yields an engine that is not ready.
func Load(dir string, opts ...Option) (*Engine, error) {
	o := engineOptions{pattern: DefaultPattern, logger: logger.ComponentLogger("inference")}
	for _, opt := range opts {
		opt(&o)
	}

	if _, err := os.Stat(dir); err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "stat artifacts dir %s", dir)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "create artifacts dir %s", dir)
		}
		o.logger.Warnw("Artifacts directory did not exist, created empty", logger.FieldPath, dir)
		return newEngine(dir, nil, o.logger), nil
	}

	paths, err := filepath.Glob(filepath.Join(dir, o.pattern))
	if err != nil {
		return nil, errors.Wrapf(err, "list bundles with pattern %q", o.pattern)
	}
	sort.Strings(paths)

	var models []*AttributeModel
	seen := make(map[string]string)
	for _, path := range paths {
		bundle, err := ReadBundleFile(path)
		if err != nil {
			if o.strict {
				return nil, err
			}
			o.logger.Warnw("Skipping unusable model bundle", logger.FieldFile, path, logger.FieldError, err)
			continue
		}
		if first, dup := seen[bundle.AttributeName]; dup {
			err := errors.NewCorruptArtifactError("attribute %q in %s already loaded from %s", bundle.AttributeName, path, first)
			if o.strict {
				return nil, err
			}
			o.logger.Warnw("Skipping duplicate model bundle", logger.FieldFile, path, logger.FieldError, err)
			continue
		}
		seen[bundle.AttributeName] = path
		models = append(models, bundle.Model(path))
		o.logger.Infow("Loaded model",
			logger.FieldAttribute, bundle.AttributeName,
			logger.FieldFile, path,
			"classes", len(bundle.Classifier.Classes),
			"vocabulary", len(bundle.Vectorizer.Vocabulary))
	}

	e := newEngine(dir, models, o.logger)
	if !e.IsReady() {
		o.logger.Warnw("No models loaded", logger.FieldPath, dir, "pattern", o.pattern)
	}
	return e, nil
}

// NewEngine builds an engine from in-memory models.
// Later models with an already registered name are ignored.
func NewEngine(models ...*AttributeModel) *Engine {
	kept := make([]*AttributeModel, 0, len(models))
	seen := make(map[string]struct{}, len(models))
	for _, m := range models {
		if m == nil {
			continue
		}
		if _, dup := seen[m.Name]; dup {
			continue
		}
		seen[m.Name] = struct{}{}
		kept = append(kept, m)
	}
	return newEngine("", kept, logger.ComponentLogger("inference"))
}

func newEngine(dir string, models []*AttributeModel, l *zap.SugaredLogger) *Engine {
	sort.SliceStable(models, func(i, j int) bool { return models[i].Name < models[j].Name })
	byName := make(map[string]int, len(models))
	for i, m := range models {
		byName[m.Name] = i
	}
	return &Engine{dir: dir, models: models, byName: byName, logger: l}
}

// Dir returns the artifacts directory the engine was loaded from.
func (e *Engine) Dir() string {
	return e.dir
}

// IsReady reports whether at least one model is loaded.
func (e *Engine) IsReady() bool {
	return len(e.models) > 0
}

// AttributeNames returns the loaded attribute names, sorted.
func (e *Engine) AttributeNames() []string {
	names := make([]string, len(e.models))
	for i, m := range e.models {
		names[i] = m.Name
	}
	return names
}

// Model returns the model for an attribute.
func (e *Engine) Model(name string) (*AttributeModel, bool) {
	i, ok := e.byName[name]
	if !ok {
		return nil, false
	}
	return e.models[i], true
}

// Models describes every loaded model, sorted by name.
func (e *Engine) Models() []ModelInfo {
	out := make([]ModelInfo, len(e.models))
	for i, m := range e.models {
		out[i] = ModelInfo{
			Name:           m.Name,
			Classes:        append([]string(nil), m.Classifier.Classes()...),
			VocabularySize: len(m.Vectorizer.Vocabulary()),
			Source:         m.Source,
		}
	}
	return out
}

// Predict runs every loaded model against text.
//
// Empty or whitespace-only text, or an engine without models, yields an empty map.
func (e *Engine) Predict(text string, topK int) map[string]AttributeInference {
	out := make(map[string]AttributeInference, len(e.models))
	if strings.TrimSpace(text) == "" || len(e.models) == 0 {
		return out
	}
	for _, m := range e.models {
		out[m.Name] = m.Predict(text, topK)
	}
	return out
}

// Predict produces an explainable prediction for a single attribute.
func (m *AttributeModel) Predict(text string, topK int) AttributeInference {
	x := m.Vectorizer.Transform(text)
	probs := m.Classifier.PredictProba(x)

	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	predicted := m.Classifier.Classes()[best]
	confidence := util.Clamp(probs[best], 0, 1)

	vocabulary := m.Vectorizer.Vocabulary()
	ranking := rankFeatures(x, m.Classifier.Coefficients(best), len(vocabulary), topK)
	features, contributions := explain(ranking, vocabulary, topK)

	return AttributeInference{
		Name:                 m.Name,
		PredictedValue:       util.Ptr(predicted),
		Confidence:           confidence,
		TopFeatures:          features,
		FeatureContributions: contributions,
	}
}
