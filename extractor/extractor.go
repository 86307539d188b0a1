package extractor

import (
	"fmt"

	"github.com/erraggy/oaspick/document"
	"github.com/erraggy/oaspick/oaserrors"
	"github.com/erraggy/oaspick/selector"
)

// Result is a filtered document plus a report of what the selector matched.
type Result struct {
	// Document is the filtered document. It shares no storage with the input.
	Document document.Value
	// Selector is the parsed selector that produced the result
	Selector selector.Selector
	// Matched lists the pairs that selected an operation, without duplicates.
	// Under the wildcard it lists every operation in the document.
	Matched []selector.Pair
	// Unmatched lists the pairs that selected nothing, without duplicates
	Unmatched []selector.Pair
	// Warnings holds one entry per unmatched pair under UnmatchedWarn
	Warnings []string
	// Stats counts the paths and operations kept
	Stats document.Stats
}

// JSON encodes the filtered document with two-space indentation.
func (r *Result) JSON() ([]byte, error) {
	return document.EncodeJSON(r.Document, "  ")
}

// YAML encodes the filtered document as YAML in the same member order.
func (r *Result) YAML() ([]byte, error) {
	return document.EncodeYAML(r.Document)
}

// Extractor filters documents down to selected operations.
// An Extractor is stateless apart from its options and safe for concurrent use.
type Extractor struct {
	policy UnmatchedPolicy
	logger document.Logger
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{policy: UnmatchedIgnore, logger: document.NopLogger{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses sel and filters doc with a default Extractor configured by opts.
func Extract(doc document.Value, sel string, opts ...Option) (*Result, error) {
	return New(opts...).Extract(doc, sel)
}

// Extract parses sel and filters doc. See ExtractSelector.
func (e *Extractor) Extract(doc document.Value, sel string) (*Result, error) {
	return e.ExtractSelector(doc, selector.Parse(sel))
}

// ExtractSelector builds a new document holding only the operations sel
// selects. doc is never modified.
//
// Under the wildcard the whole document is copied through a JSON encode and
// re-parse, whatever its shape. Otherwise the root must be an object: every
// top-level member is copied, paths is replaced by an object holding the
// matched operations in selector order, and pairs that match nothing are
// handled according to the unmatched policy.
func (e *Extractor) ExtractSelector(doc document.Value, sel selector.Selector) (*Result, error) {
	if sel.Wildcard {
		return e.extractAll(doc, sel)
	}

	root := doc.Object()
	if root == nil {
		return nil, &oaserrors.ExtractionError{
			Selector: sel.String(),
			Message:  fmt.Sprintf("document root must be an object, got %s", doc.Kind()),
		}
	}

	out := document.NewObject()
	for key, val := range root.All() {
		if key == document.FieldPaths {
			// placeholder so paths keeps its source position
			out.Set(key, document.Null())
			continue
		}
		out.Set(key, val.Clone())
	}

	srcPaths := document.NewObject()
	if p, ok := doc.Get(document.FieldPaths); ok && p.Kind() == document.KindObject {
		srcPaths = p.Object()
	}
	dstPaths := document.NewObject()
	out.Set(document.FieldPaths, document.FromObject(dstPaths))

	res := &Result{Selector: sel}
	seen := make(map[selector.Pair]bool, len(sel.Pairs))
	for _, pair := range sel.Pairs {
		if seen[pair] {
			continue
		}
		seen[pair] = true

		op, ok := lookup(srcPaths, pair)
		if !ok {
			res.Unmatched = append(res.Unmatched, pair)
			continue
		}
		item, exists := dstPaths.Get(pair.Path)
		if !exists {
			item = document.FromObject(nil)
			dstPaths.Set(pair.Path, item)
		}
		item.Object().Set(pair.Method, op.Clone())
		res.Matched = append(res.Matched, pair)
	}

	if err := e.applyPolicy(res); err != nil {
		return nil, err
	}

	res.Document = document.FromObject(out)
	res.Stats = document.CountOperations(res.Document)
	e.logger.Debug("extracted operations",
		"selector", sel.String(),
		"matched", len(res.Matched),
		"unmatched", len(res.Unmatched),
		"policy", e.policy.String())
	return res, nil
}

func (e *Extractor) extractAll(doc document.Value, sel selector.Selector) (*Result, error) {
	encoded, err := document.EncodeJSON(doc, "")
	if err != nil {
		return nil, &oaserrors.ExtractionError{Selector: sel.String(), Message: "encoding document", Cause: err}
	}
	copied, err := document.Parse(encoded, document.FormatJSON)
	if err != nil {
		return nil, &oaserrors.ExtractionError{Selector: sel.String(), Message: "re-parsing document", Cause: err}
	}

	res := &Result{Document: copied, Selector: sel, Stats: document.CountOperations(copied)}
	for _, op := range document.Operations(copied) {
		res.Matched = append(res.Matched, selector.Pair{Method: op.Method, Path: op.Path, HasPath: true})
	}
	e.logger.Debug("extracted all operations", "operations", res.Stats.OperationCount)
	return res, nil
}

func (e *Extractor) applyPolicy(res *Result) error {
	if len(res.Unmatched) == 0 {
		return nil
	}
	switch e.policy {
	case UnmatchedWarn:
		for _, pair := range res.Unmatched {
			res.Warnings = append(res.Warnings, fmt.Sprintf("no operation matches %q", pair.String()))
		}
		e.logger.Warn("selector pairs matched nothing", "unmatched", pairStrings(res.Unmatched))
	case UnmatchedFail:
		return &oaserrors.ExtractionError{
			Selector:  res.Selector.String(),
			Unmatched: pairStrings(res.Unmatched),
			Message:   "no operation matches",
		}
	}
	return nil
}

// lookup returns paths[pair.Path][pair.Method] when it holds a present
// (truthy) value.
func lookup(paths *document.Object, pair selector.Pair) (document.Value, bool) {
	if !pair.HasPath {
		return document.Value{}, false
	}
	item, ok := paths.Get(pair.Path)
	if !ok || item.Kind() != document.KindObject {
		return document.Value{}, false
	}
	op, ok := item.Get(pair.Method)
	if !ok || !op.Truthy() {
		return document.Value{}, false
	}
	return op, true
}

func pairStrings(pairs []selector.Pair) []string {
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.String()
	}
	return out
}
