package validator

import (
	"errors"
	"strings"

	"github.com/erraggy/oaspick/document"
	"github.com/erraggy/oaspick/internal/severity"
	"github.com/erraggy/oaspick/oaserrors"
)

// Diagnostic messages reported by the heuristic checks.
const (
	MsgMissingMarker  = "This doesn't appear to be a valid OpenAPI/Swagger document (missing openapi or swagger field)"
	MsgNoPaths        = "No paths found in the Swagger document"
	MsgPathsNotObject = "paths must be an object"
	MsgValid          = "✓ Valid Swagger/OpenAPI JSON detected"
)

// VerdictKind classifies a validation outcome.
type VerdictKind int

const (
	// VerdictNone means there was no input to judge.
	VerdictNone VerdictKind = iota
	// VerdictValid means the document passed every check.
	VerdictValid
	// VerdictInvalidJSON means the text could not be parsed. Extraction must not run.
	VerdictInvalidJSON
	// VerdictWarning means the document parsed but looks suspicious.
	// Extraction may still run.
	VerdictWarning
)

// String returns the name used in API responses.
func (k VerdictKind) String() string {
	switch k {
	case VerdictNone:
		return "none"
	case VerdictValid:
		return "valid"
	case VerdictInvalidJSON:
		return "invalid_json"
	case VerdictWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k VerdictKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Verdict is the result of validating raw document text.
type Verdict struct {
	// Kind classifies the outcome
	Kind VerdictKind
	// Message is the diagnostic text without any display prefix
	Message string
	// Version is the value of the openapi or swagger marker, if any
	Version string
	// Stats counts paths and operations when paths is an object
	Stats document.Stats
	// Document is the parsed document; null for VerdictNone and VerdictInvalidJSON
	Document document.Value
	// Err is a *oaserrors.ParseError for VerdictInvalidJSON and a
	// *oaserrors.ValidationError for VerdictWarning
	Err error
}

// CanExtract reports whether extraction may proceed on this verdict.
func (v Verdict) CanExtract() bool {
	return v.Kind == VerdictValid || v.Kind == VerdictWarning
}

// Severity returns how serious the verdict is.
func (v Verdict) Severity() severity.Severity {
	switch v.Kind {
	case VerdictInvalidJSON:
		return severity.SeverityError
	case VerdictWarning:
		return severity.SeverityWarning
	default:
		return severity.SeverityInfo
	}
}

// Display renders the verdict as the single status line shown under the
// input box. VerdictNone renders as the empty string.
func (v Verdict) Display() string {
	switch v.Kind {
	case VerdictValid:
		return MsgValid
	case VerdictInvalidJSON:
		return "Invalid JSON: " + v.Message
	case VerdictWarning:
		return "Warning: " + v.Message
	default:
		return ""
	}
}

// Validate parses raw and applies the heuristic OpenAPI shape checks.
// It never fails: every problem is reported through the verdict.
func Validate(raw string, opts ...Option) Verdict {
	cfg := applyOptions(opts...)

	if strings.TrimSpace(raw) == "" {
		return Verdict{Kind: VerdictNone}
	}

	doc, err := document.ParseString(raw, cfg.format)
	if err != nil {
		v := Verdict{Kind: VerdictInvalidJSON, Message: parseMessage(err), Err: err}
		cfg.logger.Debug("document did not parse", "format", string(cfg.format), "error", err)
		return v
	}

	v := check(doc)
	cfg.logger.Debug("validated document",
		"verdict", v.Kind.String(),
		"version", v.Version,
		"operations", v.Stats.OperationCount)
	return v
}

// ValidateDocument applies the shape checks to an already parsed document.
func ValidateDocument(doc document.Value, opts ...Option) Verdict {
	cfg := applyOptions(opts...)
	v := check(doc)
	cfg.logger.Debug("validated document", "verdict", v.Kind.String(), "version", v.Version)
	return v
}

func check(doc document.Value) Verdict {
	v := Verdict{Kind: VerdictValid, Document: doc, Stats: document.CountOperations(doc)}

	version, ok := document.VersionMarker(doc)
	if !ok {
		return v.warn("", MsgMissingMarker)
	}
	v.Version = version

	paths, ok := doc.Get(document.FieldPaths)
	if !ok || !paths.Truthy() {
		return v.warn(document.FieldPaths, MsgNoPaths)
	}
	if paths.Kind() != document.KindObject {
		return v.warn(document.FieldPaths, MsgPathsNotObject)
	}
	return v
}

func (v Verdict) warn(path, msg string) Verdict {
	v.Kind = VerdictWarning
	v.Message = msg
	v.Err = &oaserrors.ValidationError{Path: path, Message: msg}
	return v
}

// parseMessage extracts the decoder's own message from a parse failure.
func parseMessage(err error) string {
	var perr *oaserrors.ParseError
	if errors.As(err, &perr) {
		return perr.Detail()
	}
	return err.Error()
}
