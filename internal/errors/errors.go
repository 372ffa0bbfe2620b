// Package errors provides a lightweight structured error type (PitchgenError)
// for category-based classification in the CLI.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a pitchgen error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryTemplate   ErrorCategory = "template"
	CategoryValidation ErrorCategory = "validation"

	// Generation and output errors
	CategoryRender     ErrorCategory = "render"
	CategoryFileSystem ErrorCategory = "filesystem"

	// Supporting infrastructure errors
	CategoryHistory  ErrorCategory = "history"
	CategoryPublish  ErrorCategory = "publish"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// PitchgenError is a structured error with category, severity, and context
type PitchgenError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for PitchgenError
type ContextFields map[string]any

// Error implements the error interface
func (e *PitchgenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *PitchgenError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *PitchgenError) WithContext(key string, value any) *PitchgenError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new PitchgenError
func New(category ErrorCategory, severity ErrorSeverity, message string) *PitchgenError {
	return &PitchgenError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new PitchgenError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *PitchgenError {
	return &PitchgenError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory reports whether err (or anything it wraps) is a PitchgenError
// of the given category.
func IsCategory(err error, category ErrorCategory) bool {
	for err != nil {
		if pe, ok := err.(*PitchgenError); ok && pe.Category == category {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
