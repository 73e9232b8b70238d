package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig  Category = "config"
	CategoryPattern Category = "pattern"
	CategoryUsage   Category = "usage"
	CategoryCLI     Category = "cli"
)

// Severity distinguishes fatal errors from development warnings.
type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
)

// String returns the lower-case severity name.
func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// LiveError is a structured error with a registry code, hints and documentation.
type LiveError struct {
	// Code is a unique identifier (e.g., "E101", "W201").
	Code string

	// Category groups related codes.
	Category Category

	// Severity is SeverityWarning for W-codes.
	Severity Severity

	// Message is a short description of the error.
	Message string

	// Detail is a longer, instance-specific explanation.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *LiveError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *LiveError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a LiveError with the same code.
func (e *LiveError) Is(target error) bool {
	t, ok := target.(*LiveError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// IsWarning reports whether the error is a development warning.
func (e *LiveError) IsWarning() bool {
	return e.Severity == SeverityWarning
}

// WithSuggestion adds a fix suggestion to the error.
func (e *LiveError) WithSuggestion(s string) *LiveError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *LiveError) WithDetail(d string) *LiveError {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted detailed explanation to the error.
func (e *LiveError) WithDetailf(format string, args ...any) *LiveError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *LiveError) Wrap(err error) *LiveError {
	e.Wrapped = err
	return e
}

// New creates a LiveError from a registered code.
func New(code string) *LiveError {
	template, ok := registry[code]
	if !ok {
		return &LiveError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &LiveError{
		Code:     code,
		Category: template.Category,
		Severity: template.Severity,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a LiveError with a formatted message and no code.
func Newf(category Category, format string, args ...any) *LiveError {
	return &LiveError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a LiveError.
// An error that already is (or wraps) a LiveError is returned as that LiveError.
func FromError(err error, code string) *LiveError {
	if err == nil {
		return nil
	}
	var le *LiveError
	if stderrors.As(err, &le) {
		return le
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err is or wraps a LiveError with the given code.
func HasCode(err error, code string) bool {
	return stderrors.Is(err, &LiveError{Code: code})
}
