// Package httputil provides HTTP method constants and helpers shared by the
// document model, the extractor and the servers.
package httputil

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// HTTP Method Constants, in the lowercase form used as path item keys.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace" // OAS 3.0+ only
	MethodQuery   = "query" // OAS 3.2+ only
)

// OperationMethods lists the path item keys that hold operations, in the
// order the OpenAPI specification documents them.
var OperationMethods = []string{
	MethodGet, MethodPut, MethodPost, MethodDelete,
	MethodOptions, MethodHead, MethodPatch, MethodTrace, MethodQuery,
}

var (
	lower = cases.Lower(language.Und)
	upper = cases.Upper(language.Und)
)

// NormalizeMethod returns the path item key form of a method name.
// Any casing is accepted; Unicode is folded the same way for every input.
func NormalizeMethod(method string) string {
	return lower.String(method)
}

// DisplayMethod returns the upper-case form used in listings, e.g. "GET".
func DisplayMethod(method string) string {
	return upper.String(method)
}

// IsOperationMethod reports whether key names an operation inside a path
// item, as opposed to fields like "parameters", "summary" or "$ref".
func IsOperationMethod(key string) bool {
	return slices.Contains(OperationMethods, strings.ToLower(key))
}
