package ingest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/teranos/consentlens/errors"
)

// SupportedExtensions lists the file extensions that are ingested.
var SupportedExtensions = []string{".txt", ".md", ".pdf"}

// Supported reports whether path has an ingestible extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// ExtractText reads the text content of a supported file.
func ExtractText(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", errors.Wrapf(err, "read %s", path)
		}
		return strings.ToValidUTF8(string(data), ""), nil
	case ".pdf":
		return extractPDF(path)
	default:
		return "", errors.NewInvalidRequestError("unsupported file type: %s", path)
	}
}

// extractPDF concatenates the plain text of every readable page.
func extractPDF(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", path)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.Wrapf(err, "parse pdf %s", path)
	}

	var content strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if content.Len() > 0 {
			content.WriteString("\n\n")
		}
		content.WriteString(strings.TrimSpace(text))
	}
	return content.String(), nil
}
