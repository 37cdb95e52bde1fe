package explanation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	"github.com/teranos/consentlens/errors"
)

// Segmenter splits text into sentences.
//
// Implementations must be deterministic: the same text always yields the
// same sentences. Every returned sentence is trimmed, non-empty and a
// verbatim substring of the input.
type Segmenter interface {
	Segment(text string) []string
}

// paragraphBreak matches a blank line, which always ends a sentence.
var paragraphBreak = regexp.MustCompile(`\n[ \t]*\n`)

// numberEnd matches terminal punctuation after a digit, which Punkt treats as
// an ordinal and does not split on.
var numberEnd = regexp.MustCompile(`\d[.!?]+\s+`)

// PunktSegmenter detects sentence boundaries with the Punkt model trained for English.
type PunktSegmenter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewPunktSegmenter loads the English Punkt model.
func NewPunktSegmenter() (*PunktSegmenter, error) {
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, errors.Wrap(err, "load english sentence tokenizer")
	}
	return &PunktSegmenter{tokenizer: tok}, nil
}

// Segment splits text into trimmed, non-empty sentences.
func (s *PunktSegmenter) Segment(text string) []string {
	var out []string
	for _, paragraph := range paragraphBreak.Split(text, -1) {
		if strings.TrimSpace(paragraph) == "" {
			continue
		}
		for _, sent := range s.tokenizer.Tokenize(paragraph) {
			for _, part := range splitAfterNumbers(sent.Text) {
				if trimmed := strings.TrimSpace(part); trimmed != "" {
					out = append(out, trimmed)
				}
			}
		}
	}
	return out
}

// splitAfterNumbers cuts text after "2020. " style endings when the next
// word is capitalized. Decimals such as 3.5 have no whitespace and stay whole.
func splitAfterNumbers(text string) []string {
	var parts []string
	start := 0
	for _, m := range numberEnd.FindAllStringIndex(text, -1) {
		next, _ := utf8.DecodeRuneInString(text[m[1]:])
		if !unicode.IsUpper(next) {
			continue
		}
		parts = append(parts, text[start:m[1]])
		start = m[1]
	}
	return append(parts, text[start:])
}
