// Package options provides shared checks for tool and command inputs.
package options

import (
	"strings"

	"github.com/erraggy/oaspick/oaserrors"
)

// Source is one candidate input, e.g. a file path or inline content.
type Source struct {
	// Name identifies the source in error messages, e.g. "file"
	Name string
	// Set reports whether the caller provided this source
	Set bool
}

// ValidateSingleInputSource ensures exactly one input source is set.
// None set yields *oaserrors.InputError, more than one *oaserrors.ConfigError.
func ValidateSingleInputSource(sources ...Source) error {
	var set []string
	names := make([]string, 0, len(sources))
	for _, s := range sources {
		names = append(names, s.Name)
		if s.Set {
			set = append(set, s.Name)
		}
	}
	expected := "exactly one of " + joinNames(names) + " must be provided"

	switch len(set) {
	case 1:
		return nil
	case 0:
		return &oaserrors.InputError{Input: "document", Message: expected}
	default:
		return &oaserrors.ConfigError{Option: strings.Join(set, "+"), Message: expected}
	}
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return "the inputs"
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
	}
}
