// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes reachmeta capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/reachmeta"
)

const serverInstructions = `reachmeta MCP server: parses, merges and compares GraalVM reachability metadata (jni, reflect, proxy and resource configs).

Configuration: defaults are configurable via REACHMETA_* environment variables set in your MCP client config.

Key settings:
- REACHMETA_CACHE_ENABLED (default: true): cache parsed documents for the session
- REACHMETA_CACHE_MAX_SIZE (default: 32): number of cached documents
- REACHMETA_MAX_JOIN_DOCS (default: 64): maximum documents per join call
- REACHMETA_MAX_INLINE_SIZE (default: 10MiB): maximum inline content size
- REACHMETA_CANONICAL_TYPES (default: false): rewrite JVM descriptor type names by default

Caching: file entries use path+mtime as key and are invalidated when the file changes. Least recently used entries are evicted first.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	// the environment may have changed since package init, e.g. by a .env file
	cfg = loadConfig()
	docCache = newDocCache(cfg.CacheMaxSize)

	server := mcp.NewServer(
		&mcp.Implementation{Name: "reachmeta", Version: reachmeta.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse",
		Description: "Parse a reachability metadata document (jni-config, reflect-config, proxy-config or resource-config). Returns the kind, format and entry counts. The kind is taken from the file name or guessed from content; set kind to override. Use full=true to get the normalized document.",
	}, handleParse)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "join",
		Description: "Merge reachability metadata documents of one kind, e.g. the outputs of several tracing agent runs. Records with the same key are combined: methods and fields are unioned and blanket flags are OR'd. The result is normalized and independent of input order. Use output to write to a file instead of returning inline.",
	}, handleJoin)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "diff",
		Description: "Compare two reachability metadata documents of the same kind. Reports removed access (breaking), cleared blanket flags (warning) and added access (info). Use no_info=true to focus on breaking changes.",
	}, handleDiff)
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

func formatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
