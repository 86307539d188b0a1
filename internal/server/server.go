package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/erraggy/oaspick/internal/config"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Server holds the handlers for the page and the JSON API. It has no
// mutable state; handlers may run concurrently.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	page   *template.Template
	now    func() time.Time
}

// New builds a Server from cfg. A nil logger discards all output.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server: config is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	page, err := template.New("page.html.tmpl").Funcs(templateFuncs).ParseFS(templateFS, "templates/page.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("server: parsing page template: %w", err)
	}
	return &Server{cfg: cfg, logger: logger, page: page, now: time.Now}, nil
}

// Handler returns the routed handler wrapped in request id and logging
// middleware.
func (s *Server) Handler() http.Handler {
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		// the directory is embedded at build time
		panic(err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("POST /{$}", s.handleForm)
	mux.HandleFunc("POST /api/validate", s.handleValidate)
	mux.HandleFunc("POST /api/extract", s.handleExtract)
	mux.HandleFunc("GET /api/version", s.handleVersion)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return withRequestID(withLogging(s.logger, mux))
}

// ListenAndServe serves on cfg.Addr until ctx is cancelled, then shuts down,
// giving in-flight requests cfg.ShutdownGrace to finish.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("server: listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       requestContext(ctx),
	}

	s.logger.Info("listening", "addr", ln.Addr().String(), "viewer", s.cfg.ViewerURL)

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err, ok := <-errChan:
		if ok {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownGrace)
	defer cancel()

	s.logger.Info("shutting down", "grace", s.cfg.ShutdownGrace)
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

// requestContext gives requests the values of ctx but not its
// cancellation, so in-flight requests run on through the shutdown grace period.
func requestContext(ctx context.Context) func(net.Listener) context.Context {
	base := context.WithoutCancel(ctx)
	return func(net.Listener) context.Context { return base }
}
