package mcpserver

import (
	"time"

	"github.com/erraggy/oaspick/extractor"
	"github.com/erraggy/oaspick/internal/config"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheURLTTL        time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// list_operations pagination.
	ListLimit int
	MaxLimit  int

	// Input limits.
	MaxDocumentSize int64
	AllowPrivateIPs bool

	// extract tool default.
	Unmatched extractor.UnmatchedPolicy
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASPICK_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       config.EnvBool("OASPICK_CACHE_ENABLED", true),
		CacheMaxSize:       config.EnvInt("OASPICK_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       config.EnvDuration("OASPICK_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:        config.EnvDuration("OASPICK_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL:    config.EnvDuration("OASPICK_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: config.EnvDuration("OASPICK_CACHE_SWEEP_INTERVAL", 60*time.Second),
		ListLimit:          config.EnvInt("OASPICK_LIST_LIMIT", 100),
		MaxLimit:           config.EnvInt("OASPICK_MAX_LIMIT", 1000),
		MaxDocumentSize:    config.EnvInt64("OASPICK_MAX_DOCUMENT_SIZE", config.DefaultMaxDocumentSize),
		AllowPrivateIPs:    config.EnvBool("OASPICK_ALLOW_PRIVATE_IPS", false),
		Unmatched:          config.EnvUnmatched("OASPICK_UNMATCHED"),
	}
}
