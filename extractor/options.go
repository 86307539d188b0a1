package extractor

import (
	"strings"

	"github.com/erraggy/oaspick/document"
	"github.com/erraggy/oaspick/oaserrors"
)

// UnmatchedPolicy decides what happens to selector pairs that match no
// operation in the document.
type UnmatchedPolicy int

const (
	// UnmatchedIgnore skips unmatched pairs silently. This is the default.
	UnmatchedIgnore UnmatchedPolicy = iota
	// UnmatchedWarn skips unmatched pairs and records a warning for each.
	UnmatchedWarn
	// UnmatchedFail rejects the extraction when any pair is unmatched.
	UnmatchedFail
)

// String returns the policy name accepted by ParseUnmatchedPolicy.
func (p UnmatchedPolicy) String() string {
	switch p {
	case UnmatchedIgnore:
		return "ignore"
	case UnmatchedWarn:
		return "warn"
	case UnmatchedFail:
		return "fail"
	default:
		return "unknown"
	}
}

// ParseUnmatchedPolicy converts "ignore", "warn" or "fail" into a policy.
// The empty string selects UnmatchedIgnore.
func ParseUnmatchedPolicy(name string) (UnmatchedPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "ignore":
		return UnmatchedIgnore, nil
	case "warn":
		return UnmatchedWarn, nil
	case "fail":
		return UnmatchedFail, nil
	default:
		return UnmatchedIgnore, &oaserrors.ConfigError{
			Option:  "unmatched",
			Value:   name,
			Message: "must be ignore, warn or fail",
		}
	}
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithUnmatchedPolicy sets how unmatched selector pairs are handled.
func WithUnmatchedPolicy(p UnmatchedPolicy) Option {
	return func(e *Extractor) {
		e.policy = p
	}
}

// WithLogger sets a logger for diagnostic output. A nil logger is ignored.
func WithLogger(l document.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.logger = l
		}
	}
}
