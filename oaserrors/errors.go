package oaserrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrInputMissing indicates a required input (document or selector) was empty.
	ErrInputMissing = errors.New("input missing")

	// ErrParse indicates the document text could not be parsed.
	ErrParse = errors.New("parse error")

	// ErrValidation indicates the document failed a structural check.
	ErrValidation = errors.New("validation error")

	// ErrExtraction indicates the filtering step failed.
	ErrExtraction = errors.New("extraction error")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// InputError reports that a required input was not provided.
type InputError struct {
	// Input names the missing input, e.g. "document" or "selector"
	Input string
	// Message is the user-facing instruction
	Message string
}

// Error returns the user-facing instruction, or a generic message naming the input.
func (e *InputError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Input != "" {
		return "missing " + e.Input
	}
	return "input missing"
}

// Is reports whether target matches this error type.
func (e *InputError) Is(target error) bool {
	return target == ErrInputMissing
}

// ParseError represents a failure to parse a document as JSON or YAML.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message is the parser's own message
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Detail returns the parser message alone, falling back to the cause.
func (e *ParseError) Detail() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "Syntax error"
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ValidationError represents a structural problem found by the validator.
type ValidationError struct {
	// Path is the location of the problem, e.g. "paths"
	Path string
	// Message describes the problem
	Message string
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	msg := "validation error"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ExtractionError represents a failure while building the filtered document.
type ExtractionError struct {
	// Selector is the selector text being applied (may be empty)
	Selector string
	// Unmatched lists "method:path" pairs that matched nothing, when that is the failure
	Unmatched []string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ExtractionError) Error() string {
	msg := "extraction error"
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if len(e.Unmatched) > 0 {
		msg += ": " + strings.Join(e.Unmatched, ", ")
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtraction
}

// ResourceLimitError represents a resource exhaustion condition.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded, e.g. "document_size"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError represents an invalid configuration or option value.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
