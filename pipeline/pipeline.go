package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/erraggy/oaspick/document"
	"github.com/erraggy/oaspick/extractor"
	"github.com/erraggy/oaspick/oaserrors"
	"github.com/erraggy/oaspick/validator"
)

// Messages shown when an input is missing or a failure carries no text.
const (
	MsgMissingDocument = "Please provide Swagger JSON input"
	MsgMissingSelector = `Please specify methods to extract (e.g., "put:/pet,get:/user/{username}")`
	MsgFallback        = "Failed to process Swagger JSON"
)

// ErrorPrefix starts Outcome.Text whenever the run failed.
const ErrorPrefix = "Error: "

// Request is one extraction request as entered by a user.
type Request struct {
	// Document is the raw document text
	Document string
	// Selector is the raw selector text
	Selector string
	// Format selects the document decoder; empty means strict JSON
	Format document.Format
	// Unmatched sets the unmatched selector policy
	Unmatched extractor.UnmatchedPolicy
}

// Outcome is everything a front end needs to render a run.
type Outcome struct {
	// Text is the two-space indented result, or "Error: " followed by a message
	Text string
	// Preview is Text parsed back into a document, or nil when the run failed
	Preview *document.Value
	// Verdict is the validation verdict; zero when input was missing
	Verdict validator.Verdict
	// Result is the extraction result, or nil when the run failed
	Result *extractor.Result
	// Err is nil on success and one of the oaserrors types otherwise
	Err error
}

// OK reports whether the run produced a document.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Run checks the inputs, validates the document and extracts the selected
// operations. It never panics: every failure, including a panic inside
// extraction, comes back in Outcome.Err and as display text.
func Run(req Request, opts ...Option) Outcome {
	cfg := applyOptions(opts...)

	if strings.TrimSpace(req.Document) == "" {
		return failed(Outcome{}, &oaserrors.InputError{Input: "document", Message: MsgMissingDocument})
	}
	if strings.TrimSpace(req.Selector) == "" {
		return failed(Outcome{}, &oaserrors.InputError{Input: "selector", Message: MsgMissingSelector})
	}

	verdict := validator.Validate(req.Document, validator.WithFormat(req.Format), validator.WithLogger(cfg.logger))
	if !verdict.CanExtract() {
		return failed(Outcome{Verdict: verdict}, verdict.Err)
	}
	return cfg.run(verdict, req.Selector, req.Unmatched)
}

// RunDocument is Run for a document that is already parsed, such as one
// read from a file or fetched from a URL.
func RunDocument(doc document.Value, sel string, unmatched extractor.UnmatchedPolicy, opts ...Option) Outcome {
	cfg := applyOptions(opts...)

	if strings.TrimSpace(sel) == "" {
		return failed(Outcome{}, &oaserrors.InputError{Input: "selector", Message: MsgMissingSelector})
	}
	verdict := validator.ValidateDocument(doc, validator.WithLogger(cfg.logger))
	return cfg.run(verdict, sel, unmatched)
}

func (cfg *runConfig) run(verdict validator.Verdict, sel string, unmatched extractor.UnmatchedPolicy) (out Outcome) {
	out.Verdict = verdict
	defer func() {
		if r := recover(); r != nil {
			cfg.logger.Error("extraction panicked", "panic", r)
			out = failed(Outcome{Verdict: verdict}, recovered(sel, r))
		}
	}()

	res, err := cfg.extract(verdict.Document, sel, extractor.WithUnmatchedPolicy(unmatched), extractor.WithLogger(cfg.logger))
	if err != nil {
		var exErr *oaserrors.ExtractionError
		if !errors.As(err, &exErr) {
			err = &oaserrors.ExtractionError{Selector: sel, Cause: err}
		}
		return failed(out, err)
	}

	text, err := res.JSON()
	if err != nil {
		return failed(out, &oaserrors.ExtractionError{Selector: sel, Message: "encoding result", Cause: err})
	}
	out.Result = res
	out.Text = string(text)

	preview, err := document.Parse(text, document.FormatJSON)
	if err != nil {
		// the text is still shown; only the viewer goes without
		cfg.logger.Warn("failed to parse extracted result", "error", err)
	} else {
		out.Preview = &preview
	}
	cfg.logger.Debug("extraction finished",
		"matched", len(res.Matched),
		"unmatched", len(res.Unmatched),
		"warning", verdict.Message)
	return out
}

func failed(out Outcome, err error) Outcome {
	out.Err = err
	out.Text = ErrorPrefix + Message(err)
	out.Preview = nil
	out.Result = nil
	return out
}

// Message returns the user-facing text for err, without the error prefix.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var (
		inputErr *oaserrors.InputError
		parseErr *oaserrors.ParseError
		exErr    *oaserrors.ExtractionError
	)
	switch {
	case errors.As(err, &inputErr):
		return inputErr.Error()
	case errors.As(err, &parseErr):
		return parseErr.Detail()
	case errors.As(err, &exErr):
		return extractionMessage(exErr)
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return MsgFallback
}

func extractionMessage(e *oaserrors.ExtractionError) string {
	var parts []string
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if len(e.Unmatched) > 0 {
		parts = append(parts, strings.Join(e.Unmatched, ", "))
	}
	if e.Cause != nil {
		parts = append(parts, Message(e.Cause))
	}
	if len(parts) == 0 {
		return MsgFallback
	}
	return strings.Join(parts, ": ")
}

func recovered(sel string, r any) error {
	switch v := r.(type) {
	case error:
		return &oaserrors.ExtractionError{Selector: sel, Cause: v}
	case string:
		return &oaserrors.ExtractionError{Selector: sel, Message: v}
	default:
		return &oaserrors.ExtractionError{Selector: sel, Message: fmt.Sprint(v)}
	}
}
