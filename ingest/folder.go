// Package ingest turns a folder of text, markdown and PDF files into documents.
package ingest

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/consentlens/document"
	"github.com/teranos/consentlens/errors"
	"github.com/teranos/consentlens/logger"
)

// documentNamespace scopes name-based document IDs.
var documentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://consentlens.dev/document"))

// DocumentID derives a stable ID from a file path and its content.
// Re-ingesting an unchanged file yields the same ID.
func DocumentID(path, raw string) string {
	id := uuid.NewSHA1(documentNamespace, []byte(path+"\x00"+raw))
	return strings.ReplaceAll(id.String(), "-", "")
}

// Option configures folder ingestion.
type Option func(*options)

type options struct {
	logger *zap.SugaredLogger
}

// WithLogger sets the ingestion logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Folder walks root recursively in lexical order and returns one document per
// supported file. Unreadable files are logged and skipped.
func Folder(ctx context.Context, root string, opts ...Option) ([]document.Document, error) {
	o := options{logger: logger.ComponentLogger("ingest")}
	for _, opt := range opts {
		opt(&o)
	}

	root, err := resolve(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("folder %s", root)
		}
		return nil, errors.Wrapf(err, "stat %s", root)
	}
	if !info.IsDir() {
		return nil, errors.NewInvalidRequestError("%s is not a folder", root)
	}

	var docs []document.Document
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			o.logger.Warnw("Skipping unreadable path", logger.FieldPath, path, logger.FieldError, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !Supported(path) {
			o.logger.Debugw("Skipping unsupported file", logger.FieldFile, path)
			return nil
		}

		raw, err := ExtractText(path)
		if err != nil {
			o.logger.Warnw("Failed to read document", logger.FieldFile, path, logger.FieldError, err)
			return nil
		}
		docs = append(docs, document.Document{
			ID:         DocumentID(path, raw),
			SourceFile: path,
			Type:       DetectDocType(path),
			RawText:    raw,
			CleanText:  CleanText(raw),
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk %s", root)
	}

	if len(docs) == 0 {
		return nil, errors.WithHint(
			errors.NewInvalidRequestError("no supported documents found in %s", root),
			"supported extensions are .txt, .md and .pdf")
	}
	o.logger.Infow("Ingested folder", logger.FieldPath, root, logger.FieldDocuments, len(docs))
	return docs, nil
}

// resolve expands a leading ~ and makes root absolute.
func resolve(root string) (string, error) {
	if root == "~" || strings.HasPrefix(root, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "resolve home directory")
		}
		root = filepath.Join(home, strings.TrimPrefix(root, "~"))
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Wrapf(err, "resolve %s", root)
	}
	return abs, nil
}
