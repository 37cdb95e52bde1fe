package document

import (
	"sync"
)

// Store is an in-memory document catalog keyed by document ID.
// Listing preserves insertion order. Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	order []string
	docs  map[string]Document
}

// NewStore creates an empty catalog.
func NewStore() *Store {
	return &Store{docs: make(map[string]Document)}
}

// ReplaceAll swaps the whole catalog for the given documents.
func (s *Store) ReplaceAll(documents []Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = s.order[:0]
	s.docs = make(map[string]Document, len(documents))
	for _, doc := range documents {
		s.putLocked(doc)
	}
}

// Add inserts or replaces a single document.
func (s *Store) Add(doc Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putLocked(doc)
}

func (s *Store) putLocked(doc Document) {
	if _, exists := s.docs[doc.ID]; !exists {
		s.order = append(s.order, doc.ID)
	}
	s.docs[doc.ID] = doc
}

// Get returns the document with the given ID.
func (s *Store) Get(id string) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	return doc, ok
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// All returns every document in insertion order.
func (s *Store) All() []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Document, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.docs[id])
	}
	return out
}

// FilterByTypes returns the documents whose type is in types, in insertion order.
func (s *Store) FilterByTypes(types []DocType) []Document {
	return FilterByTypes(s.All(), types)
}

// CountsByType returns how many documents exist per type.
func (s *Store) CountsByType() map[DocType]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[DocType]int)
	for _, doc := range s.docs {
		counts[doc.Type]++
	}
	return counts
}

// Summaries returns a Summary for every document in insertion order.
func (s *Store) Summaries(previewLength int) []Summary {
	docs := s.All()
	out := make([]Summary, len(docs))
	for i, doc := range docs {
		out[i] = doc.Summarize(previewLength)
	}
	return out
}

// FilterByTypes keeps the documents whose type is a member of types,
// preserving input order.
func FilterByTypes(documents []Document, types []DocType) []Document {
	allowed := make(map[DocType]struct{}, len(types))
	for _, t := range types {
		allowed[t] = struct{}{}
	}
	var out []Document
	for _, doc := range documents {
		if _, ok := allowed[doc.Type]; ok {
			out = append(out, doc)
		}
	}
	return out
}
