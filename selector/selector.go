package selector

import (
	"strings"

	"github.com/erraggy/oaspick/internal/httputil"
)

// WildcardToken selects every operation in a document.
const WildcardToken = "*"

// Pair selects the operation stored under paths[Path][Method].
type Pair struct {
	// Method is the lowercased HTTP method
	Method string
	// Path is the path template exactly as written, e.g. "/user/{username}"
	Path string
	// HasPath is false when the token had no ':' separator. Such a pair
	// never matches anything.
	HasPath bool
}

// String returns the pair in "method:path" form.
func (p Pair) String() string {
	if !p.HasPath {
		return p.Method
	}
	return p.Method + ":" + p.Path
}

// Selector is a parsed selector expression: either the wildcard or an
// ordered list of method/path pairs.
type Selector struct {
	Wildcard bool
	Pairs    []Pair
}

// Parse parses a selector expression. It never fails: blank tokens are
// skipped and malformed tokens become pairs that match nothing.
//
// The expression is "*" or a comma-separated list of method:path tokens.
// Each token is trimmed and split on its first ':'; the method is lowercased
// and the path is kept verbatim, so "get:/a:b" selects the path "/a:b".
func Parse(s string) Selector {
	trimmed := strings.TrimSpace(s)
	if trimmed == WildcardToken {
		return Selector{Wildcard: true}
	}
	var sel Selector
	for token := range strings.SplitSeq(trimmed, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		method, path, found := strings.Cut(token, ":")
		sel.Pairs = append(sel.Pairs, Pair{
			Method:  httputil.NormalizeMethod(method),
			Path:    path,
			HasPath: found,
		})
	}
	return sel
}

// IsEmpty reports whether the selector selects nothing at all.
func (s Selector) IsEmpty() bool {
	return !s.Wildcard && len(s.Pairs) == 0
}

// String renders the canonical form: "*" or "method:path,method:path".
func (s Selector) String() string {
	if s.Wildcard {
		return WildcardToken
	}
	parts := make([]string, len(s.Pairs))
	for i, p := range s.Pairs {
		parts[i] = p.String()
	}
	return strings.Join(parts, ",")
}
