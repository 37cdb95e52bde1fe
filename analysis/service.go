package analysis

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/consentlens/document"
	"github.com/teranos/consentlens/errors"
	"github.com/teranos/consentlens/logger"
)

// ModelRegistry is a Predictor that can report whether any model is loaded.
type ModelRegistry interface {
	Predictor
	IsReady() bool
}

// Request selects what to analyze. An empty DocTypes runs the configured scenarios.
type Request struct {
	DocTypes []document.DocType
	Options  Options
}

// Health summarizes service readiness.
type Health struct {
	Status           string `json:"status" yaml:"status"`
	DocumentsIndexed int    `json:"documents_indexed" yaml:"documents_indexed"`
	ModelsLoaded     bool   `json:"models_loaded" yaml:"models_loaded"`
}

// Service runs analyses against a document store.
type Service struct {
	store     *document.Store
	models    ModelRegistry
	evidence  EvidenceCollector
	scenarios []ScenarioDefinition
	now       func() time.Time
	logger    *zap.SugaredLogger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithScenarios replaces the default scenarios. An empty list keeps the defaults.
func WithScenarios(scenarios []ScenarioDefinition) ServiceOption {
	return func(s *Service) {
		if len(scenarios) > 0 {
			s.scenarios = append([]ScenarioDefinition(nil), scenarios...)
		}
	}
}

// WithClock sets the time source for report timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l *zap.SugaredLogger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates an analysis service.
func NewService(store *document.Store, models ModelRegistry, evidence EvidenceCollector, opts ...ServiceOption) *Service {
	s := &Service{
		store:     store,
		models:    models,
		evidence:  evidence,
		scenarios: DefaultScenarios(),
		now:       func() time.Time { return time.Now().UTC() },
		logger:    logger.ComponentLogger("analysis"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scenarios returns the scenarios run when a request names no doc types.
func (s *Service) Scenarios() []ScenarioDefinition {
	return append([]ScenarioDefinition(nil), s.scenarios...)
}

// Analyze runs the requested scenarios over every stored document.
func (s *Service) Analyze(ctx context.Context, req Request) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.Options.Validate(); err != nil {
		return nil, err
	}

	docs := s.store.All()
	if len(docs) == 0 {
		return nil, errors.WithHint(
			errors.NewInvalidRequestError("no documents ingested"),
			"ingest a folder of .txt, .md or .pdf files before running analysis")
	}
	if !s.models.IsReady() {
		return nil, errors.WithHint(
			errors.Wrap(errors.ErrServiceUnavailable, "no attribute models loaded"),
			"place model bundles in models.dir and try again")
	}

	scenarios := s.scenarios
	if len(req.DocTypes) > 0 {
		custom := CustomScenario(req.DocTypes)
		if err := custom.Validate(); err != nil {
			return nil, err
		}
		scenarios = []ScenarioDefinition{custom}
	}

	results := RunScenarios(docs, scenarios, s.models, s.evidence, req.Options)
	for _, r := range results {
		s.logger.Infow("Scenario completed",
			logger.FieldScenario, r.Name,
			logger.FieldDocuments, r.DocumentCount,
			"available", countAvailable(r))
	}

	return &Report{GeneratedAt: s.now(), Scenarios: results}, nil
}

// Health reports how many documents are indexed and whether models are loaded.
func (s *Service) Health() Health {
	return Health{
		Status:           "ok",
		DocumentsIndexed: s.store.Len(),
		ModelsLoaded:     s.models.IsReady(),
	}
}

func countAvailable(r ScenarioResult) int {
	n := 0
	for _, a := range r.Attributes {
		if a.Available {
			n++
		}
	}
	return n
}
