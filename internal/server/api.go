package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/erraggy/oaspick"
	"github.com/erraggy/oaspick/document"
	"github.com/erraggy/oaspick/extractor"
	"github.com/erraggy/oaspick/oaserrors"
	"github.com/erraggy/oaspick/pipeline"
	"github.com/erraggy/oaspick/selector"
	"github.com/erraggy/oaspick/validator"
)

type validateRequest struct {
	Document string `json:"document"`
	Format   string `json:"format,omitempty"`
}

type validateResponse struct {
	Verdict        string `json:"verdict"`
	Message        string `json:"message,omitempty"`
	Display        string `json:"display"`
	CanExtract     bool   `json:"can_extract"`
	Version        string `json:"version,omitempty"`
	OperationCount int    `json:"operation_count"`
	Line           int    `json:"line,omitempty"`
	Column         int    `json:"column,omitempty"`
}

type extractRequest struct {
	Document  string `json:"document"`
	Selector  string `json:"selector"`
	Format    string `json:"format,omitempty"`
	Unmatched string `json:"unmatched,omitempty"`
}

type extractResponse struct {
	// Result is the text for the output box: the document or "Error: ..."
	Result    string          `json:"result"`
	Document  *document.Value `json:"document,omitempty"`
	Verdict   string          `json:"verdict"`
	Warning   string          `json:"warning,omitempty"`
	Matched   []string        `json:"matched,omitempty"`
	Unmatched []string        `json:"unmatched,omitempty"`
	Warnings  []string        `json:"warnings,omitempty"`
	Error     string          `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	format, err := document.ParseFormat(req.Format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	v := validator.Validate(req.Document, validator.WithFormat(format), validator.WithLogger(s.libLogger(r)))
	resp := validateResponse{
		Verdict:        v.Kind.String(),
		Message:        v.Message,
		Display:        v.Display(),
		CanExtract:     v.CanExtract(),
		Version:        v.Version,
		OperationCount: v.Stats.OperationCount,
	}
	var perr *oaserrors.ParseError
	if errors.As(v.Err, &perr) {
		resp.Line, resp.Column = perr.Line, perr.Column
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	pipeReq, err := s.pipelineRequest(req.Document, req.Selector, req.Format, req.Unmatched)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := pipeline.Run(pipeReq, pipeline.WithLogger(s.libLogger(r)))
	resp := extractResponse{
		Result:   out.Text,
		Document: out.Preview,
		Verdict:  out.Verdict.Kind.String(),
	}
	if out.Verdict.Kind == validator.VerdictWarning {
		resp.Warning = out.Verdict.Message
	}
	if !out.OK() {
		resp.Error = pipeline.Message(out.Err)
		s.writeJSON(w, r, statusFor(out.Err), resp)
		return
	}
	resp.Matched = pairKeys(out.Result.Matched)
	resp.Unmatched = pairKeys(out.Result.Unmatched)
	resp.Warnings = out.Result.Warnings
	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, oaspick.Info(s.now()))
}

// pipelineRequest resolves the optional format and policy fields shared by
// the API and the form.
func (s *Server) pipelineRequest(doc, sel, format, unmatched string) (pipeline.Request, error) {
	f, err := document.ParseFormat(format)
	if err != nil {
		return pipeline.Request{}, err
	}
	policy := s.cfg.Unmatched
	if strings.TrimSpace(unmatched) != "" {
		if policy, err = extractor.ParseUnmatchedPolicy(unmatched); err != nil {
			return pipeline.Request{}, err
		}
	}
	return pipeline.Request{Document: doc, Selector: sel, Format: f, Unmatched: policy}, nil
}

// decodeBody reads a JSON body capped at cfg.MaxDocumentSize.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxDocumentSize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return &oaserrors.ResourceLimitError{
				ResourceType: "document_size",
				Limit:        maxErr.Limit,
				Message:      "request body too large",
			}
		}
		return &oaserrors.InputError{Input: "body", Message: "invalid request body: " + err.Error()}
	}
	return nil
}

// statusFor maps an error to the HTTP status that reports it.
func statusFor(err error) int {
	switch {
	case errors.Is(err, oaserrors.ErrResourceLimit):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, oaserrors.ErrInputMissing), errors.Is(err, oaserrors.ErrConfig):
		return http.StatusBadRequest
	case errors.Is(err, oaserrors.ErrParse), errors.Is(err, oaserrors.ErrExtraction):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	msg := pipeline.Message(err)
	var limitErr *oaserrors.ResourceLimitError
	if errors.As(err, &limitErr) {
		msg = limitErr.Error()
	}
	s.writeJSON(w, r, statusFor(err), errorResponse{Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		s.logger.Warn("writing response", "id", RequestID(r.Context()), "error", err)
	}
}

// libLogger adapts the server logger for library packages, tagged with the
// request id.
func (s *Server) libLogger(r *http.Request) document.Logger {
	return document.NewSlogAdapter(s.logger.With("id", RequestID(r.Context())))
}

func pairKeys(pairs []selector.Pair) []string {
	if len(pairs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(pairs))
	for _, p := range pairs {
		keys = append(keys, p.String())
	}
	return keys
}
