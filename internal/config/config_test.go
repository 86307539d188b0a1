package config

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/oaspick/extractor"
)

// clearOASPICKEnv clears all OASPICK_* env vars to isolate tests from the ambient environment.
func clearOASPICKEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OASPICK_ADDR", "OASPICK_SHUTDOWN_GRACE", "OASPICK_MAX_DOCUMENT_SIZE",
		"OASPICK_DEBOUNCE", "OASPICK_UNMATCHED", "OASPICK_VIEWER_URL",
		"OASPICK_LOG_LEVEL", "OASPICK_LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearOASPICKEnv(t)

	c := Load()

	assert.Equal(t, ":8080", c.Addr)
	assert.Equal(t, 5*time.Second, c.ShutdownGrace)
	assert.Equal(t, int64(10485760), c.MaxDocumentSize)
	assert.Equal(t, 500*time.Millisecond, c.Debounce)
	assert.Equal(t, extractor.UnmatchedIgnore, c.Unmatched)
	assert.Equal(t, DefaultViewerURL, c.ViewerURL)
	assert.Equal(t, slog.LevelInfo, c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearOASPICKEnv(t)
	t.Setenv("OASPICK_ADDR", "127.0.0.1:9000")
	t.Setenv("OASPICK_SHUTDOWN_GRACE", "1s")
	t.Setenv("OASPICK_MAX_DOCUMENT_SIZE", "2048")
	t.Setenv("OASPICK_DEBOUNCE", "250ms")
	t.Setenv("OASPICK_UNMATCHED", "warn")
	t.Setenv("OASPICK_VIEWER_URL", "https://cdn.example.com/swagger-ui/")
	t.Setenv("OASPICK_LOG_LEVEL", "debug")
	t.Setenv("OASPICK_LOG_FORMAT", "JSON")

	c := Load()

	assert.Equal(t, "127.0.0.1:9000", c.Addr)
	assert.Equal(t, time.Second, c.ShutdownGrace)
	assert.Equal(t, int64(2048), c.MaxDocumentSize)
	assert.Equal(t, 250*time.Millisecond, c.Debounce)
	assert.Equal(t, extractor.UnmatchedWarn, c.Unmatched)
	assert.Equal(t, "https://cdn.example.com/swagger-ui", c.ViewerURL, "trailing slash is trimmed")
	assert.Equal(t, slog.LevelDebug, c.LogLevel)
	assert.Equal(t, "json", c.LogFormat)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearOASPICKEnv(t)
	t.Setenv("OASPICK_SHUTDOWN_GRACE", "soon")
	t.Setenv("OASPICK_MAX_DOCUMENT_SIZE", "-1")
	t.Setenv("OASPICK_DEBOUNCE", "0s")
	t.Setenv("OASPICK_UNMATCHED", "explode")
	t.Setenv("OASPICK_LOG_LEVEL", "chatty")
	t.Setenv("OASPICK_LOG_FORMAT", "xml")

	c := Load()

	assert.Equal(t, DefaultShutdownGrace, c.ShutdownGrace)
	assert.Equal(t, DefaultMaxDocumentSize, c.MaxDocumentSize)
	assert.Equal(t, DefaultDebounce, c.Debounce)
	assert.Equal(t, extractor.UnmatchedIgnore, c.Unmatched)
	assert.Equal(t, slog.LevelInfo, c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("OASPICK_TEST_BOOL", "true")
	t.Setenv("OASPICK_TEST_BAD_BOOL", "maybe")
	t.Setenv("OASPICK_TEST_INT", "7")
	t.Setenv("OASPICK_TEST_BAD_INT", "seven")
	t.Setenv("OASPICK_TEST_BLANK", "   ")

	assert.True(t, EnvBool("OASPICK_TEST_BOOL", false))
	assert.True(t, EnvBool("OASPICK_TEST_BAD_BOOL", true))
	assert.False(t, EnvBool("OASPICK_TEST_UNSET", false))
	assert.Equal(t, 7, EnvInt("OASPICK_TEST_INT", 1))
	assert.Equal(t, 1, EnvInt("OASPICK_TEST_BAD_INT", 1))
	assert.Equal(t, "fallback", EnvString("OASPICK_TEST_BLANK", "fallback"))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	c := &Config{LogLevel: slog.LevelWarn, LogFormat: "json"}
	logger := c.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"k":"v"`)

	buf.Reset()
	c.LogFormat = "text"
	c.NewLogger(&buf).Warn("plain")
	assert.Contains(t, buf.String(), "msg=plain")
}
