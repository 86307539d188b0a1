package server

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/erraggy/oaspick/document"
	"github.com/erraggy/oaspick/internal/httputil"
	"github.com/erraggy/oaspick/pipeline"
	"github.com/erraggy/oaspick/validator"
)

// pageData feeds templates/page.html.tmpl.
type pageData struct {
	ViewerURL  string
	DebounceMS int64
	Document   string
	Selector   string
	Format     string
	Result     string
	Status     string
	StatusKind string
	// Failed is set when Result holds an error message
	Failed     bool
	Operations []operationRow
	Warnings   []string
}

// operationRow is one line of the server-rendered operation table.
type operationRow struct {
	Method      string
	Path        string
	OperationID string
	Summary     string
	Description template.HTML
	Deprecated  bool
}

var templateFuncs = template.FuncMap{
	"lower": strings.ToLower,
}

var (
	descriptionPolicyOnce sync.Once
	descriptionPolicy     *bluemonday.Policy
)

// descriptionSanitizer allows the inline markup OpenAPI descriptions commonly
// carry and strips everything else.
func descriptionSanitizer() *bluemonday.Policy {
	descriptionPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "code", "pre", "br", "p", "ul", "ol", "li")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		policy.RequireNoFollowOnLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		descriptionPolicy = policy
	})
	return descriptionPolicy
}

func sanitizeDescription(raw string) template.HTML {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	//nolint:gosec // G203: output of the bluemonday policy above
	return template.HTML(strings.TrimSpace(descriptionSanitizer().Sanitize(trimmed)))
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, s.basePage())
}

// handleForm serves browsers without scripts: the same page, with the
// extraction done on the server and the result listed as a table.
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxDocumentSize)
	if err := r.ParseForm(); err != nil {
		data := s.basePage()
		data.Failed = true
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			data.Result = pipeline.ErrorPrefix + "request body too large"
			s.render(w, r, http.StatusRequestEntityTooLarge, data)
			return
		}
		data.Result = pipeline.ErrorPrefix + "invalid form body: " + err.Error()
		s.render(w, r, http.StatusBadRequest, data)
		return
	}

	data := s.basePage()
	data.Document = r.PostForm.Get("document")
	data.Selector = r.PostForm.Get("selector")
	data.Format = r.PostForm.Get("format")

	req, err := s.pipelineRequest(data.Document, data.Selector, data.Format, r.PostForm.Get("unmatched"))
	if err != nil {
		data.Result = pipeline.ErrorPrefix + pipeline.Message(err)
		data.Failed = true
		s.render(w, r, http.StatusBadRequest, data)
		return
	}

	out := pipeline.Run(req, pipeline.WithLogger(s.libLogger(r)))
	data.Result = out.Text
	data.Status = out.Verdict.Display()
	data.StatusKind = statusKind(out.Verdict)
	if !out.OK() {
		data.Failed = true
		s.render(w, r, statusFor(out.Err), data)
		return
	}

	data.Warnings = out.Result.Warnings
	for _, op := range document.Operations(out.Result.Document) {
		data.Operations = append(data.Operations, operationRow{
			Method:      httputil.DisplayMethod(op.Method),
			Path:        op.Path,
			OperationID: op.OperationID,
			Summary:     op.Summary,
			Description: sanitizeDescription(op.Description),
			Deprecated:  op.Deprecated,
		})
	}
	s.render(w, r, http.StatusOK, data)
}

func (s *Server) basePage() pageData {
	return pageData{
		ViewerURL:  s.cfg.ViewerURL,
		DebounceMS: s.cfg.Debounce.Milliseconds(),
	}
}

// statusKind names the CSS class of the status line.
func statusKind(v validator.Verdict) string {
	if v.Kind == validator.VerdictNone {
		return ""
	}
	if v.Kind == validator.VerdictValid {
		return "ok"
	}
	return v.Severity().String()
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		s.logger.Error("rendering page", "id", RequestID(r.Context()), "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
