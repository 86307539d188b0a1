package document

import "github.com/erraggy/oaspick/internal/httputil"

// Top-level field names the rest of oaspick looks at.
const (
	FieldOpenAPI = "openapi"
	FieldSwagger = "swagger"
	FieldPaths   = "paths"
)

// OperationRef identifies one operation in a document.
type OperationRef struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	OperationID string `json:"operation_id,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Description string `json:"description,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty"`
}

// Key returns the selector form "method:path".
func (r OperationRef) Key() string {
	return r.Method + ":" + r.Path
}

// Stats summarizes the operations in a document.
type Stats struct {
	PathCount      int `json:"path_count"`
	OperationCount int `json:"operation_count"`
}

// VersionMarker returns the value of the "openapi" field, or of "swagger"
// when "openapi" is absent or empty. The second result is false when
// neither marker is present with a truthy value.
func VersionMarker(doc Value) (string, bool) {
	for _, field := range []string{FieldOpenAPI, FieldSwagger} {
		v, ok := doc.Get(field)
		if !ok || !v.Truthy() {
			continue
		}
		if s, isStr := v.AsString(); isStr {
			return s, true
		}
		if lit, isNum := v.NumberLiteral(); isNum {
			return lit, true
		}
		return v.Kind().String(), true
	}
	return "", false
}

// Operations lists every operation in doc.paths in document order. Path
// item keys that are not HTTP methods ("parameters", "summary", "$ref",
// extensions) are skipped, as are non-object path items.
func Operations(doc Value) []OperationRef {
	paths, ok := doc.Get(FieldPaths)
	if !ok || paths.Kind() != KindObject {
		return nil
	}
	var ops []OperationRef
	for path, item := range paths.Object().All() {
		if item.Kind() != KindObject {
			continue
		}
		for method, op := range item.Object().All() {
			if !httputil.IsOperationMethod(method) {
				continue
			}
			ref := OperationRef{Method: method, Path: path}
			ref.OperationID = stringField(op, "operationId")
			ref.Summary = stringField(op, "summary")
			ref.Description = stringField(op, "description")
			if dep, ok := op.Get("deprecated"); ok {
				ref.Deprecated, _ = dep.AsBool()
			}
			ops = append(ops, ref)
		}
	}
	return ops
}

// CountOperations returns path and operation counts for doc.
func CountOperations(doc Value) Stats {
	var stats Stats
	if paths, ok := doc.Get(FieldPaths); ok && paths.Kind() == KindObject {
		stats.PathCount = paths.Len()
	}
	stats.OperationCount = len(Operations(doc))
	return stats
}

func stringField(v Value, key string) string {
	f, ok := v.Get(key)
	if !ok {
		return ""
	}
	s, _ := f.AsString()
	return s
}
