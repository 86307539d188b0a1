package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/oaspick"
	"github.com/erraggy/oaspick/document"
	"github.com/erraggy/oaspick/internal/options"
	"github.com/erraggy/oaspick/oaserrors"
)

// specInput represents the three ways a document can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenAPI/Swagger file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch an OpenAPI/Swagger document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content"`
	Format  string `json:"format,omitempty"  jsonschema:"Document format: json\\, yaml or auto (default auto)"`
}

// resolvedSpec is a parsed document plus where it came from.
type resolvedSpec struct {
	Document document.Value
	Format   document.Format
	Source   string
}

// cacheEntry holds a cached document with LRU ordering and TTL expiry.
type cacheEntry struct {
	spec      *resolvedSpec
	insertAt  time.Time
	expiresAt time.Time
}

// specCacheStore provides a session-scoped cache for parsed documents.
// File inputs are keyed by (absolutePath, modTime). Content inputs are keyed
// by a SHA-256 hash. URL inputs are keyed by URL string.
// Entries have per-type TTLs and a background sweeper removes expired entries.
type specCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var specCache = &specCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached document or nil. Expired entries are lazily removed.
func (c *specCacheStore) get(key string) *resolvedSpec {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		// Touch entry for LRU.
		e.insertAt = time.Now()
		return e.spec
	}
	return nil
}

// putWithTTL stores a document with a specific TTL, evicting the least
// recently used entry if at capacity.
func (c *specCacheStore) putWithTTL(key string, spec *resolvedSpec, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{spec: spec, insertAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *specCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes expired entries.
// It is safe to call multiple times; only the first call spawns a sweeper.
// It stops when ctx is cancelled.
func (c *specCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *specCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *specCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey creates a cache key for the given spec input and format.
// Returns the empty string when the input cannot be keyed.
func makeCacheKey(s specInput, format document.Format) string {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "" // Can't stat, don't cache.
		}
		return fmt.Sprintf("file:%s:%d:%s", absPath, info.ModTime().UnixNano(), format)
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return fmt.Sprintf("content:%s:%s", hex.EncodeToString(h[:]), format)
	case s.URL != "":
		return fmt.Sprintf("url:%s:%s", s.URL, format)
	default:
		return ""
	}
}

// resolve parses the document from whichever input was provided, using the
// cache for file, URL, and content inputs. Parse failures are not cached.
func (s specInput) resolve(ctx context.Context) (*resolvedSpec, error) {
	if err := options.ValidateSingleInputSource(
		options.Source{Name: "file", Set: s.File != ""},
		options.Source{Name: "url", Set: s.URL != ""},
		options.Source{Name: "content", Set: s.Content != ""},
	); err != nil {
		return nil, err
	}

	format := document.FormatAuto
	if s.Format != "" {
		f, err := document.ParseFormat(s.Format)
		if err != nil {
			return nil, err
		}
		format = f
	}

	if s.Content != "" && int64(len(s.Content)) > cfg.MaxDocumentSize {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "document_size",
			Limit:        cfg.MaxDocumentSize,
			Actual:       int64(len(s.Content)),
			Message:      "use file input instead, or set OASPICK_MAX_DOCUMENT_SIZE to increase",
		}
	}

	// Determine cache key and TTL (skip when caching is disabled).
	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key = makeCacheKey(s, format)
		switch {
		case s.File != "":
			ttl = cfg.CacheFileTTL
		case s.URL != "":
			ttl = cfg.CacheURLTTL
		default:
			ttl = cfg.CacheContentTTL
		}
	}

	if key != "" {
		if cached := specCache.get(key); cached != nil {
			return cached, nil
		}
	}

	var (
		doc    document.Value
		err    error
		source string
	)
	switch {
	case s.File != "":
		source = s.File
		doc, err = document.ParseFile(s.File, format)
	case s.URL != "":
		source = s.URL
		doc, err = fetchDocument(ctx, s.URL, format)
	default:
		source = "<content>"
		doc, err = document.Parse([]byte(s.Content), format)
	}
	if err != nil {
		return nil, err
	}

	spec := &resolvedSpec{Document: doc, Format: format, Source: source}
	if key != "" {
		specCache.putWithTTL(key, spec, ttl)
	}
	return spec, nil
}

// fetchDocument downloads and parses a document. Private and loopback
// addresses are refused unless OASPICK_ALLOW_PRIVATE_IPS is set.
func fetchDocument(ctx context.Context, url string, format document.Format) (document.Value, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return document.Value{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", oaspick.UserAgent())
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")

	resp, err := fetchClient().Do(req) //nolint:gosec // G107: fetching a user-supplied URL is the purpose; SSRF is guarded by the safe client
	if err != nil {
		return document.Value{}, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return document.Value{}, fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}
	return document.ParseReader(resp.Body, format, cfg.MaxDocumentSize)
}
