package extractor

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oaspick/document"
	"github.com/erraggy/oaspick/oaserrors"
	"github.com/erraggy/oaspick/selector"
)

const petstore = `{"openapi":"3.0.0","paths":{"/pet":{"put":{"summary":"Update"},"post":{"summary":"Add"}},"/user/{username}":{"get":{"summary":"Get user"}}}}`

func parse(t *testing.T, src string) document.Value {
	t.Helper()
	v, err := document.ParseString(src, document.FormatJSON)
	require.NoError(t, err)
	return v
}

func encode(t *testing.T, v document.Value) string {
	t.Helper()
	out, err := document.EncodeJSON(v, "  ")
	require.NoError(t, err)
	return string(out)
}

func resultJSON(t *testing.T, res *Result) string {
	t.Helper()
	out, err := res.JSON()
	require.NoError(t, err)
	return string(out)
}

func TestExtractPetstoreScenario(t *testing.T) {
	res, err := Extract(parse(t, petstore), "put:/pet,get:/user/{username}")
	require.NoError(t, err)

	want := `{
  "openapi": "3.0.0",
  "paths": {
    "/pet": {
      "put": {
        "summary": "Update"
      }
    },
    "/user/{username}": {
      "get": {
        "summary": "Get user"
      }
    }
  }
}`
	assert.Equal(t, want, resultJSON(t, res))
	assert.Equal(t, document.Stats{PathCount: 2, OperationCount: 2}, res.Stats)
	assert.Empty(t, res.Unmatched)
	assert.Empty(t, res.Warnings)
}

func TestExtractSelectorOrderDrivesPathOrder(t *testing.T) {
	res, err := Extract(parse(t, petstore), "get:/user/{username},post:/pet,put:/pet")
	require.NoError(t, err)

	paths, _ := res.Document.Get("paths")
	assert.Equal(t, []string{"/user/{username}", "/pet"}, paths.Object().Keys())
	pet, _ := paths.Get("/pet")
	assert.Equal(t, []string{"post", "put"}, pet.Object().Keys())
}

func TestExtractKeepsTopLevelOrder(t *testing.T) {
	res, err := Extract(parse(t, `{"paths":{"/a":{"get":{}}},"openapi":"3.0.0","info":{"title":"t"}}`), "get:/a")
	require.NoError(t, err)
	assert.Equal(t, []string{"paths", "openapi", "info"}, res.Document.Object().Keys())

	res, err = Extract(parse(t, `{"openapi":"3.0.0","info":{"title":"t"}}`), "get:/a")
	require.NoError(t, err)
	assert.Equal(t, []string{"openapi", "info", "paths"}, res.Document.Object().Keys(), "paths is appended when absent")
	paths, _ := res.Document.Get("paths")
	assert.Equal(t, 0, paths.Len())
}

func TestExtractIdempotent(t *testing.T) {
	doc := parse(t, petstore)
	first, err := Extract(doc, "put:/pet,get:/user/{username}")
	require.NoError(t, err)
	second, err := Extract(doc, "put:/pet,get:/user/{username}")
	require.NoError(t, err)
	assert.Equal(t, resultJSON(t, first), resultJSON(t, second))

	again, err := Extract(first.Document, "put:/pet,get:/user/{username}")
	require.NoError(t, err)
	assert.Equal(t, resultJSON(t, first), resultJSON(t, again), "re-extracting a result changes nothing")
}

func TestExtractWildcardIdentity(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"petstore", petstore},
		{"no paths", `{"openapi":"3.0.0","info":{"version":1.50}}`},
		{"unusual paths", `{"swagger":"2.0","paths":["x"]}`},
		{"array root", `[1,{"b":2,"a":1}]`},
		{"scalar root", `"just text"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parse(t, tt.src)
			res, err := Extract(doc, "  *  ")
			require.NoError(t, err)
			assert.True(t, res.Selector.Wildcard)
			assert.True(t, doc.Equal(res.Document))
			assert.Equal(t, encode(t, doc), resultJSON(t, res))
		})
	}
}

func TestExtractWildcardReportsAllOperations(t *testing.T) {
	res, err := Extract(parse(t, petstore), "*")
	require.NoError(t, err)
	want := []selector.Pair{
		{Method: "put", Path: "/pet", HasPath: true},
		{Method: "post", Path: "/pet", HasPath: true},
		{Method: "get", Path: "/user/{username}", HasPath: true},
	}
	if diff := cmp.Diff(want, res.Matched); diff != "" {
		t.Errorf("Matched mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, res.Stats.OperationCount)
}

func TestExtractSelectorIsolation(t *testing.T) {
	src := `{"openapi":"3.0.0","paths":{
		"/a":{"get":{"x":1},"post":{"x":2},"delete":{"x":3}},
		"/b":{"get":{"x":4},"post":{"x":5}},
		"/c":{"put":{"x":6}}}}`
	res, err := Extract(parse(t, src), "get:/a,post:/b")
	require.NoError(t, err)

	ops := document.Operations(res.Document)
	var keys []string
	for _, op := range ops {
		keys = append(keys, op.Key())
	}
	assert.Equal(t, []string{"get:/a", "post:/b"}, keys)
}

func TestExtractUnknownSelectorTolerance(t *testing.T) {
	res, err := Extract(parse(t, petstore), "get:/nonexistent")
	require.NoError(t, err)
	paths, ok := res.Document.Get("paths")
	require.True(t, ok)
	assert.Equal(t, document.KindObject, paths.Kind())
	assert.Equal(t, 0, paths.Len())
	assert.Equal(t, []selector.Pair{{Method: "get", Path: "/nonexistent", HasPath: true}}, res.Unmatched)
	assert.Empty(t, res.Warnings, "ignore is the default policy")
}

func TestExtractCaseNormalization(t *testing.T) {
	doc := parse(t, petstore)
	upper, err := Extract(doc, "PUT:/pet")
	require.NoError(t, err)
	lower, err := Extract(doc, "put:/pet")
	require.NoError(t, err)
	assert.Equal(t, resultJSON(t, lower), resultJSON(t, upper))
	assert.Equal(t, 1, upper.Stats.OperationCount)

	// path matching stays case sensitive
	res, err := Extract(doc, "put:/PET")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Stats.OperationCount)
}

func TestExtractDoesNotMutateInput(t *testing.T) {
	doc := parse(t, `{"openapi":"3.0.0","info":{"title":"t"},"paths":{"/pet":{"put":{"tags":["a"]},"post":{}}}}`)
	before := encode(t, doc)

	res, err := Extract(doc, "put:/pet")
	require.NoError(t, err)
	assert.Equal(t, before, encode(t, doc))

	// edits to the result must not reach the input
	info, _ := res.Document.Get("info")
	info.Object().Set("title", document.String("changed"))
	paths, _ := res.Document.Get("paths")
	pet, _ := paths.Get("/pet")
	put, _ := pet.Get("put")
	put.Object().Set("summary", document.String("added"))
	res.Document.Object().Set("x-extra", document.Bool(true))

	assert.Equal(t, before, encode(t, doc))
}

func TestExtractMatchingRules(t *testing.T) {
	src := `{"openapi":"3.0.0","paths":{
		"/null-op":{"get":null},
		"/false-op":{"get":false},
		"/str-item":"nope",
		"/empty-op":{"get":{}},
		"/a:b":{"get":{}}}}`
	doc := parse(t, src)

	tests := []struct {
		selector string
		matched  int
	}{
		{"get:/null-op", 0},
		{"get:/false-op", 0},
		{"get:/str-item", 0},
		{"get:/empty-op", 1},
		{"get:/a:b", 1},
		{"get", 0},
		{"get:", 0},
		{"", 0},
		{" , ", 0},
		{"get:/empty-op,GET:/empty-op", 1},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			res, err := Extract(doc, tt.selector)
			require.NoError(t, err)
			assert.Len(t, res.Matched, tt.matched)
			assert.Equal(t, tt.matched, res.Stats.OperationCount)
		})
	}
}

func TestExtractNonObjectPaths(t *testing.T) {
	res, err := Extract(parse(t, `{"openapi":"3.0.0","paths":[{"get":{}}]}`), "get:/0")
	require.NoError(t, err)
	paths, _ := res.Document.Get("paths")
	assert.Equal(t, document.KindObject, paths.Kind(), "result paths is always an object")
	assert.Equal(t, 0, paths.Len())
}

func TestExtractNonObjectRoot(t *testing.T) {
	for _, src := range []string{`[]`, `null`, `"text"`, `42`} {
		_, err := Extract(parse(t, src), "get:/a")
		require.Error(t, err, src)
		assert.True(t, errors.Is(err, oaserrors.ErrExtraction), src)
		assert.Contains(t, err.Error(), "document root must be an object")
	}
}

func TestUnmatchedPolicies(t *testing.T) {
	doc := parse(t, petstore)
	sel := "put:/pet,get:/nope,delete:/pet"

	res, err := Extract(doc, sel, WithUnmatchedPolicy(UnmatchedIgnore))
	require.NoError(t, err)
	assert.Len(t, res.Unmatched, 2)
	assert.Empty(t, res.Warnings)

	res, err = Extract(doc, sel, WithUnmatchedPolicy(UnmatchedWarn))
	require.NoError(t, err)
	assert.Equal(t, []string{
		`no operation matches "get:/nope"`,
		`no operation matches "delete:/pet"`,
	}, res.Warnings)
	assert.Equal(t, 1, res.Stats.OperationCount)

	res, err = Extract(doc, sel, WithUnmatchedPolicy(UnmatchedFail))
	require.Error(t, err)
	assert.Nil(t, res)
	var exErr *oaserrors.ExtractionError
	require.True(t, errors.As(err, &exErr))
	assert.Equal(t, []string{"get:/nope", "delete:/pet"}, exErr.Unmatched)
	assert.Equal(t, "put:/pet,get:/nope,delete:/pet", exErr.Selector)

	_, err = Extract(doc, "put:/pet", WithUnmatchedPolicy(UnmatchedFail))
	assert.NoError(t, err, "fail only triggers on unmatched pairs")
}

func TestParseUnmatchedPolicy(t *testing.T) {
	for in, want := range map[string]UnmatchedPolicy{
		"":        UnmatchedIgnore,
		"ignore":  UnmatchedIgnore,
		" WARN ":  UnmatchedWarn,
		"fail":    UnmatchedFail,
		"Fail\n":  UnmatchedFail,
		"warn\t ": UnmatchedWarn,
	} {
		got, err := ParseUnmatchedPolicy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseUnmatchedPolicy("explode")
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))

	assert.Equal(t, "warn", UnmatchedWarn.String())
	assert.Equal(t, "unknown", UnmatchedPolicy(9).String())
}

func TestResultYAML(t *testing.T) {
	res, err := Extract(parse(t, petstore), "get:/user/{username},put:/pet")
	require.NoError(t, err)
	out, err := res.YAML()
	require.NoError(t, err)

	text := string(out)
	assert.Less(t, strings.Index(text, "/user/{username}"), strings.Index(text, "/pet"))

	back, err := document.Parse(out, document.FormatYAML)
	require.NoError(t, err)
	assert.True(t, res.Document.Equal(back))
}

func TestExtractorLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := document.NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	e := New(WithLogger(logger), WithUnmatchedPolicy(UnmatchedWarn))

	_, err := e.Extract(parse(t, petstore), "put:/pet,get:/nope")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "extracted operations")
	assert.Contains(t, buf.String(), "selector pairs matched nothing")
}
