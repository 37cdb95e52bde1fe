package ingest

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/teranos/consentlens/document"
)

var (
	excessNewlines = regexp.MustCompile(`\n{3,}`)
	repeatedBlanks = regexp.MustCompile(`[ \t]{2,}`)
	pageNumberLine = regexp.MustCompile(`(?m)^[ \t]*\d+[ \t]*$`)
)

// CleanText normalizes extracted text for inference.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = excessNewlines.ReplaceAllString(text, "\n\n")
	text = repeatedBlanks.ReplaceAllString(text, " ")
	text = pageNumberLine.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// docTypeTokens is checked in order; the first type with a token in the file name wins.
var docTypeTokens = []struct {
	docType document.DocType
	tokens  []string
}{
	{document.DocTypeEmail, []string{"mail", "email", "inbox", "sent"}},
	{document.DocTypeCV, []string{"cv", "resume"}},
	{document.DocTypeNotes, []string{"note", "journal"}},
	{document.DocTypeTranscript, []string{"transcript", "grade"}},
}

// DetectDocType infers a document type from the file name.
func DetectDocType(path string) document.DocType {
	name := strings.ToLower(filepath.Base(path))
	for _, rule := range docTypeTokens {
		for _, token := range rule.tokens {
			if strings.Contains(name, token) {
				return rule.docType
			}
		}
	}
	return document.DocTypeOther
}
