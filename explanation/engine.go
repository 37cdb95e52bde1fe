// Package explanation maps model features back to literal sentences in the
// documents they came from.
package explanation

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/teranos/consentlens/document"
	"github.com/teranos/consentlens/logger"
)

// SupportingSentence is a sentence quoted from a document as evidence.
type SupportingSentence struct {
	DocID   string           `json:"doc_id" yaml:"doc_id"`
	DocType document.DocType `json:"doc_type" yaml:"doc_type"`
	Text    string           `json:"text" yaml:"text"`
}

// Engine finds supporting sentences. It owns its sentence cache.
type Engine struct {
	segmenter Segmenter
	cache     *SentenceCache
	logger    *zap.SugaredLogger
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	cacheSize int
	segmenter Segmenter
	logger    *zap.SugaredLogger
}

// WithCacheSize sets the sentence cache capacity.
func WithCacheSize(size int) Option {
	return func(o *engineOptions) {
		o.cacheSize = size
	}
}

// WithSegmenter replaces the default Punkt segmenter.
func WithSegmenter(s Segmenter) Option {
	return func(o *engineOptions) {
		o.segmenter = s
	}
}

// WithLogger sets the component logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *engineOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewEngine creates an explanation engine.
func NewEngine(opts ...Option) (*Engine, error) {
	o := engineOptions{cacheSize: DefaultCacheSize, logger: logger.ComponentLogger("explanation")}
	for _, opt := range opts {
		opt(&o)
	}

	if o.segmenter == nil {
		seg, err := NewPunktSegmenter()
		if err != nil {
			return nil, err
		}
		o.segmenter = seg
	}
	cache, err := NewSentenceCache(o.cacheSize, o.logger)
	if err != nil {
		return nil, err
	}
	return &Engine{segmenter: o.segmenter, cache: cache, logger: o.logger}, nil
}

// Cache exposes the engine's sentence cache.
func (e *Engine) Cache() *SentenceCache {
	return e.cache
}

// SentencesForDocument returns the sentences of a document's raw text,
// segmenting on a cache miss.
func (e *Engine) SentencesForDocument(docID, rawText string) []string {
	if sentences, ok := e.cache.Get(docID); ok {
		return sentences
	}
	sentences := e.segmenter.Segment(rawText)
	e.cache.Add(docID, sentences)
	return sentences
}

// CollectSupportingSentences returns up to limit sentences, across all docs in
// order, that contain any of terms case-insensitively. Each (doc, sentence)
// pair is reported once.
func (e *Engine) CollectSupportingSentences(docs []document.Document, terms []string, limit int) []SupportingSentence {
	hits := []SupportingSentence{}
	if limit <= 0 {
		return hits
	}

	lower := cases.Lower(language.Und)
	normalized := make([]string, 0, len(terms))
	for _, term := range terms {
		if term == "" {
			continue
		}
		normalized = append(normalized, lower.String(term))
	}
	if len(normalized) == 0 {
		return hits
	}

	type key struct{ docID, text string }
	seen := make(map[key]struct{})

	for _, doc := range docs {
		for _, sentence := range e.SentencesForDocument(doc.ID, doc.RawText) {
			k := key{doc.ID, sentence}
			if _, dup := seen[k]; dup {
				continue
			}
			if !containsAny(lower.String(sentence), normalized) {
				continue
			}
			seen[k] = struct{}{}
			hits = append(hits, SupportingSentence{DocID: doc.ID, DocType: doc.Type, Text: sentence})
			if len(hits) >= limit {
				return hits
			}
		}
	}
	return hits
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
