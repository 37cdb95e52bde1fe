package explanation

import (
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"

	"github.com/teranos/consentlens/errors"
	"github.com/teranos/consentlens/logger"
)

// DefaultCacheSize is the number of documents whose sentences are kept.
const DefaultCacheSize = 256

// SentenceCache memoizes segmented sentences per document ID with
// least-recently-used eviction. It is safe for concurrent use.
type SentenceCache struct {
	lru *lru.Cache
}

// NewSentenceCache creates a cache holding at most size documents.
func NewSentenceCache(size int, log *zap.SugaredLogger) (*SentenceCache, error) {
	if size < 1 {
		return nil, errors.NewInvalidRequestError("sentence cache size must be at least 1, got %d", size)
	}
	if log == nil {
		log = logger.ComponentLogger("explanation")
	}
	c, err := lru.NewWithEvict(size, func(key, _ interface{}) {
		log.Debugw("Evicted cached sentences", logger.FieldDocID, key)
	})
	if err != nil {
		return nil, errors.Wrap(err, "create sentence cache")
	}
	return &SentenceCache{lru: c}, nil
}

// Get returns the cached sentences and refreshes their recency.
func (c *SentenceCache) Get(docID string) ([]string, bool) {
	v, ok := c.lru.Get(docID)
	if !ok {
		return nil, false
	}
	return v.([]string), true
}

// Add stores sentences, evicting the least recently used entry when full.
func (c *SentenceCache) Add(docID string, sentences []string) {
	c.lru.Add(docID, sentences)
}

// Contains reports whether docID is cached without touching its recency.
func (c *SentenceCache) Contains(docID string) bool {
	return c.lru.Contains(docID)
}

// Len returns the number of cached documents.
func (c *SentenceCache) Len() int {
	return c.lru.Len()
}

// Purge drops every entry.
func (c *SentenceCache) Purge() {
	c.lru.Purge()
}
