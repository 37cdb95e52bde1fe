// Package document defines the document records analysed by consentlens and
// an in-memory catalog for them.
package document

import (
	"strings"

	"github.com/teranos/consentlens/errors"
	"github.com/teranos/consentlens/internal/util"
)

// DocType is the closed set of document categories used by scenario filtering.
type DocType string

const (
	DocTypeEmail      DocType = "email"
	DocTypeCV         DocType = "cv"
	DocTypeNotes      DocType = "notes"
	DocTypeTranscript DocType = "transcript"
	DocTypeOther      DocType = "other"
)

// AllDocTypes returns every supported document type in declaration order.
func AllDocTypes() []DocType {
	return []DocType{DocTypeEmail, DocTypeCV, DocTypeNotes, DocTypeTranscript, DocTypeOther}
}

// Valid reports whether t is one of the supported document types.
func (t DocType) Valid() bool {
	switch t {
	case DocTypeEmail, DocTypeCV, DocTypeNotes, DocTypeTranscript, DocTypeOther:
		return true
	}
	return false
}

// ParseDocType converts a user-supplied value into a DocType.
// Matching ignores case and surrounding whitespace.
func ParseDocType(s string) (DocType, error) {
	t := DocType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", errors.NewInvalidRequestError("unknown document type %q", s)
	}
	return t, nil
}

// ParseDocTypes parses every value, failing on the first invalid entry.
func ParseDocTypes(values []string) ([]DocType, error) {
	out := make([]DocType, 0, len(values))
	for _, v := range values {
		t, err := ParseDocType(v)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Document is a normalized representation of a single ingested file.
type Document struct {
	ID          string  `json:"doc_id" yaml:"doc_id"`
	SourceFile  string  `json:"source_file" yaml:"source_file"`
	Type        DocType `json:"doc_type" yaml:"doc_type"`
	RawText     string  `json:"raw_text" yaml:"raw_text"`
	CleanText   string  `json:"clean_text" yaml:"clean_text"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// Summary is a lightweight view of a stored document.
type Summary struct {
	ID         string  `json:"doc_id" yaml:"doc_id"`
	Type       DocType `json:"doc_type" yaml:"doc_type"`
	SourceFile string  `json:"source_file" yaml:"source_file"`
	Preview    string  `json:"preview" yaml:"preview"`
}

// Summarize builds a Summary whose preview holds the first previewLength runes
// of the clean text, followed by an ellipsis when truncated.
func (d Document) Summarize(previewLength int) Summary {
	return Summary{
		ID:         d.ID,
		Type:       d.Type,
		SourceFile: d.SourceFile,
		Preview:    util.Truncate(d.CleanText, previewLength),
	}
}
