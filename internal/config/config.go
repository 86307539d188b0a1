// Package config loads oaspick settings from OASPICK_* environment variables.
package config

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/erraggy/oaspick/extractor"
)

// Default values used when a variable is unset or invalid.
const (
	DefaultAddr            = ":8080"
	DefaultShutdownGrace   = 5 * time.Second
	DefaultMaxDocumentSize = int64(10 * 1024 * 1024)
	DefaultDebounce        = 500 * time.Millisecond
	DefaultViewerURL       = "https://unpkg.com/swagger-ui-dist@5"
)

// Config holds the settings shared by the serve, watch and mcp commands.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string
	// ShutdownGrace bounds how long in-flight requests may finish on shutdown.
	ShutdownGrace time.Duration
	// MaxDocumentSize caps request bodies and inline documents, in bytes.
	MaxDocumentSize int64
	// Debounce is the delay between the last edit and the extraction it triggers.
	Debounce time.Duration
	// Unmatched is the default policy for selector pairs that match nothing.
	Unmatched extractor.UnmatchedPolicy
	// ViewerURL is the base URL serving swagger-ui-bundle.js and swagger-ui.css.
	ViewerURL string
	// LogLevel is the minimum level written by the logger.
	LogLevel slog.Level
	// LogFormat is "text" or "json".
	LogFormat string
}

// Load reads configuration from OASPICK_* environment variables.
// Invalid values log a warning and fall back to the default.
func Load() *Config {
	return &Config{
		Addr:            EnvString("OASPICK_ADDR", DefaultAddr),
		ShutdownGrace:   EnvDuration("OASPICK_SHUTDOWN_GRACE", DefaultShutdownGrace),
		MaxDocumentSize: EnvInt64("OASPICK_MAX_DOCUMENT_SIZE", DefaultMaxDocumentSize),
		Debounce:        EnvDuration("OASPICK_DEBOUNCE", DefaultDebounce),
		Unmatched:       EnvUnmatched("OASPICK_UNMATCHED"),
		ViewerURL:       strings.TrimRight(EnvString("OASPICK_VIEWER_URL", DefaultViewerURL), "/"),
		LogLevel:        envLevel("OASPICK_LOG_LEVEL", slog.LevelInfo),
		LogFormat:       envLogFormat("OASPICK_LOG_FORMAT"),
	}
}

// NewLogger builds the process logger described by the configuration.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// EnvString returns the variable's value, or fallback when it is unset.
func EnvString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// EnvBool parses a boolean variable.
func EnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

// EnvInt parses a positive integer variable.
func EnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

// EnvInt64 parses a positive 64-bit integer variable.
func EnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

// EnvDuration parses a positive duration variable such as "500ms".
func EnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}

// EnvUnmatched parses an unmatched selector policy variable.
func EnvUnmatched(key string) extractor.UnmatchedPolicy {
	v := os.Getenv(key)
	p, err := extractor.ParseUnmatchedPolicy(v)
	if err != nil {
		slog.Warn("invalid unmatched policy env var, using default", "key", key, "value", v, "default", p.String()) //nolint:gosec // G706: values are structured log fields, not format strings
	}
	return p
}

func envLevel(key string, fallback slog.Level) slog.Level {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		slog.Warn("invalid log level env var, using default", "key", key, "value", v, "default", fallback.String()) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return level
}

func envLogFormat(key string) string {
	v := strings.ToLower(os.Getenv(key))
	switch v {
	case "":
		return "text"
	case "text", "json":
		return v
	default:
		slog.Warn("invalid log format env var, using default", "key", key, "value", v, "default", "text") //nolint:gosec // G706: values are structured log fields, not format strings
		return "text"
	}
}
