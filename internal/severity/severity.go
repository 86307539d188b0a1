// Package severity provides the severity levels attached to validation
// verdicts and extraction warnings.
//
// The levels are ordered from least to most severe:
// Info < Warning < Error
package severity

import (
	"fmt"
	"log/slog"
)

// Severity indicates how serious a reported condition is.
type Severity int

const (
	// SeverityInfo marks informational notices, e.g. a valid document.
	SeverityInfo Severity = iota

	// SeverityWarning marks conditions that do not block extraction, such as
	// a missing version marker or an unmatched selector.
	SeverityWarning

	// SeverityError marks conditions that stop processing, such as
	// unparsable input.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Parse converts a name produced by String back into a Severity.
func Parse(name string) (Severity, error) {
	switch name {
	case "info":
		return SeverityInfo, nil
	case "warning":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	default:
		return 0, fmt.Errorf("severity: unknown level %q", name)
	}
}

// Level maps the severity onto the slog level used when logging it.
func (s Severity) Level() slog.Level {
	switch s {
	case SeverityWarning:
		return slog.LevelWarn
	case SeverityError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
