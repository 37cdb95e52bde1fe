package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging.
// Use these constants instead of raw strings to ensure consistency.
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldFile      = "file"
	FieldPath      = "path"
	FieldCount     = "count"

	FieldAttribute = "attribute"
	FieldScenario  = "scenario"
	FieldDocID     = "doc_id"
	FieldDocType   = "doc_type"
	FieldDocuments = "document_count"
	FieldModels    = "model_count"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Engine struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewEngine() *Engine {
//	    return &Engine{
//	        logger: logger.ComponentLogger("inference"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
