// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oaspick capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oaspick"
)

const serverInstructions = `oaspick MCP server: validates OpenAPI/Swagger documents and extracts selected operations into a smaller document.

Selectors: "*" keeps every operation; otherwise a comma-separated list of method:path pairs, e.g. "put:/pet,get:/user/{username}". Methods are case-insensitive; paths must match a key of the document's paths object exactly. Call list_operations first to see the available pairs.

Configuration: All defaults are configurable via OASPICK_* environment variables set in your MCP client config.

Key settings:
- OASPICK_UNMATCHED (default: ignore): default policy for pairs that match nothing (ignore, warn, fail)
- OASPICK_MAX_DOCUMENT_SIZE (default: 10485760): largest inline or fetched document in bytes
- OASPICK_LIST_LIMIT (default: 100): default result limit for list_operations
- OASPICK_CACHE_ENABLED (default: true): disable document caching entirely
- OASPICK_CACHE_FILE_TTL (default: 15m): cache TTL for local files
- OASPICK_CACHE_URL_TTL (default: 5m): cache TTL for fetched URLs
- OASPICK_ALLOW_PRIVATE_IPS (default: false): allow fetching from private addresses

Caching: Parsed documents are cached per session. File entries use path+mtime as key (auto-invalidated on change). A background sweeper removes expired entries.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := newServer()
	return server.Run(ctx, &mcp.StdioTransport{})
}

func newServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oaspick", Version: oaspick.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Check whether a document looks like an OpenAPI/Swagger document. Returns a verdict (valid, invalid_json, warning), the parser message with line/column for unparsable input, the detected version, and path/operation counts. Warnings do not prevent extraction.",
	}, handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "extract",
		Description: "Build a copy of a document that keeps only the selected operations. The selector is \"*\" or comma-separated method:path pairs. All other top-level fields are kept unchanged. Returns the filtered document (json or yaml) plus matched and unmatched pairs. Use output to write to a file instead of returning inline. The unmatched policy (ignore, warn, fail) defaults to OASPICK_UNMATCHED.",
	}, handleExtract)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_operations",
		Description: "List the operations in a document in document order as method:path selector keys with operationId and summary. Filter by method or path prefix, or by deprecated status. Use offset/limit to paginate; default limit is configurable via OASPICK_LIST_LIMIT (default 100).",
	}, handleListOperations)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "info",
		Description: "Return static information about this oaspick build: name, version, build, status and the HTTP endpoints served by oaspick serve.",
	}, handleInfo)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
