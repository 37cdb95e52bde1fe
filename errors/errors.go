// Package errors provides error handling for consentlens.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints
//
// Usage:
//
//	// Wrap with context
//	if err := loadBundle(path); err != nil {
//	    return errors.Wrapf(err, "load model bundle %s", path)
//	}
//
//	// Add hints for users
//	return errors.WithHint(errors.ErrServiceUnavailable, "place model bundles in models.dir")
//
//	// Check errors
//	if errors.Is(err, errors.ErrCorruptArtifact) {
//	    // skip the bundle
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is            = crdb.Is
	IsAny         = crdb.IsAny
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Common sentinel errors.
// Use these with errors.Is() for type-safe error checking.
// Wrap or Mark them to add context while preserving the type.
var (
	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = New("not found")

	// ErrInvalidRequest indicates the request was malformed or invalid
	ErrInvalidRequest = New("invalid request")

	// ErrServiceUnavailable indicates a required component is not ready
	ErrServiceUnavailable = New("service unavailable")

	// ErrCorruptArtifact indicates a model bundle could not be read or is structurally invalid
	ErrCorruptArtifact = New("corrupt model artifact")

	// ErrUnsupportedFormat indicates a model bundle uses a format this build cannot load
	ErrUnsupportedFormat = New("unsupported model format")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsInvalidRequestError checks if an error is or wraps ErrInvalidRequest
func IsInvalidRequestError(err error) bool {
	return err != nil && Is(err, ErrInvalidRequest)
}

// IsServiceUnavailableError checks if an error is or wraps ErrServiceUnavailable
func IsServiceUnavailableError(err error) bool {
	return err != nil && Is(err, ErrServiceUnavailable)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}

// NewInvalidRequestError creates an invalid-request error with a formatted message
func NewInvalidRequestError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidRequest, Newf(format, args...).Error())
}

// NewCorruptArtifactError creates a corrupt-artifact error with a formatted message
func NewCorruptArtifactError(format string, args ...interface{}) error {
	return Wrap(ErrCorruptArtifact, Newf(format, args...).Error())
}

// NewUnsupportedFormatError creates an unsupported-format error with a formatted message
func NewUnsupportedFormatError(format string, args ...interface{}) error {
	return Wrap(ErrUnsupportedFormat, Newf(format, args...).Error())
}
