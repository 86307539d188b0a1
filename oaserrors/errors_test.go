package oaserrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestInputError(t *testing.T) {
	t.Run("Error returns the instruction", func(t *testing.T) {
		err := &InputError{Input: "selector", Message: "Please specify methods to extract"}
		if err.Error() != "Please specify methods to extract" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error falls back to the input name", func(t *testing.T) {
		err := &InputError{Input: "document"}
		if err.Error() != "missing document" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrInputMissing", func(t *testing.T) {
		wrapped := fmt.Errorf("pipeline: %w", &InputError{Input: "document"})
		if !errors.Is(wrapped, ErrInputMissing) {
			t.Error("InputError should match ErrInputMissing")
		}
		if errors.Is(wrapped, ErrParse) {
			t.Error("InputError should not match ErrParse")
		}
	})
}

func TestParseError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &ParseError{
			Path:    "api.json",
			Line:    3,
			Column:  7,
			Message: "invalid character 'n' looking for beginning of object key string",
		}
		want := "parse error in api.json at line 3, column 7: invalid character 'n' looking for beginning of object key string"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &ParseError{}
		if err.Error() != "parse error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Detail prefers message then cause", func(t *testing.T) {
		if got := (&ParseError{Message: "bad"}).Detail(); got != "bad" {
			t.Errorf("Detail() = %q", got)
		}
		if got := (&ParseError{Cause: errors.New("boom")}).Detail(); got != "boom" {
			t.Errorf("Detail() = %q", got)
		}
		if got := (&ParseError{}).Detail(); got != "Syntax error" {
			t.Errorf("Detail() = %q", got)
		}
	})

	t.Run("Unwrap and As", func(t *testing.T) {
		cause := errors.New("underlying")
		err := fmt.Errorf("document: %w", &ParseError{Cause: cause})
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatal("errors.As should extract ParseError")
		}
		if !errors.Is(err, cause) {
			t.Error("errors.Is should reach the cause")
		}
		if !errors.Is(err, ErrParse) {
			t.Error("ParseError should match ErrParse")
		}
	})
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Path: "paths", Message: "paths must be an object"}
	if err.Error() != "validation error at paths: paths must be an object" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("ValidationError should match ErrValidation")
	}
}

func TestExtractionError(t *testing.T) {
	t.Run("Error message lists unmatched pairs", func(t *testing.T) {
		err := &ExtractionError{Message: "selector matched nothing", Unmatched: []string{"get:/a", "post:/b"}}
		want := "extraction error: selector matched nothing: get:/a, post:/b"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is and Unwrap", func(t *testing.T) {
		cause := errors.New("round trip")
		err := &ExtractionError{Cause: cause}
		if !errors.Is(err, ErrExtraction) {
			t.Error("ExtractionError should match ErrExtraction")
		}
		if !errors.Is(err, cause) {
			t.Error("ExtractionError should unwrap to its cause")
		}
		if errors.Is(err, ErrConfig) {
			t.Error("ExtractionError should not match ErrConfig")
		}
	})
}

func TestResourceLimitError(t *testing.T) {
	err := &ResourceLimitError{ResourceType: "document_size", Limit: 10, Actual: 20}
	if err.Error() != "resource limit exceeded: document_size (limit: 10, actual: 20)" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if !errors.Is(err, ErrResourceLimit) {
		t.Error("ResourceLimitError should match ErrResourceLimit")
	}
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Option: "unmatched", Value: "sometimes", Message: "must be ignore, warn or fail"}
	want := "configuration error for unmatched (value: sometimes): must be ignore, warn or fail"
	if err.Error() != want {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if !errors.Is(err, ErrConfig) {
		t.Error("ConfigError should match ErrConfig")
	}
}
