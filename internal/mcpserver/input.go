package mcpserver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/erraggy/reachmeta/metadata"
	"github.com/erraggy/reachmeta/parser"
)

// docInput represents the two ways a metadata document can be provided to a
// tool. Exactly one of File or Content must be set.
type docInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path or URL of a metadata document, e.g. build/agent/jni-config.json"`
	Content string `json:"content,omitempty" jsonschema:"Inline metadata document content (JSON or YAML)"`
	Name    string `json:"name,omitempty"    jsonschema:"Name used for inline content in warnings and errors"`
}

// docCache holds parse results for the session. File inputs are keyed by
// (absolutePath, modTime), content inputs by a SHA-256 hash. Both keys include
// the requested kind and type name canonicalization.
var docCache = newDocCache(cfg.CacheMaxSize)

func newDocCache(size int) *lru.Cache[string, *parser.ParseResult] {
	c, err := lru.New[string, *parser.ParseResult](size)
	if err != nil {
		// only reachable with a non-positive size, which loadConfig rejects
		c, _ = lru.New[string, *parser.ParseResult](1)
	}
	return c
}

// makeCacheKey returns the cache key for the input, or "" when the input
// cannot be cached (e.g. a file that cannot be stat'ed or a URL).
func makeCacheKey(d docInput, kind metadata.Kind, canonical bool) string {
	suffix := fmt.Sprintf(":%s:%t", kind, canonical)
	switch {
	case d.File != "":
		if strings.Contains(d.File, "://") {
			return ""
		}
		absPath, err := filepath.Abs(d.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano()) + suffix
	case d.Content != "":
		h := sha256.Sum256([]byte(d.Content))
		return "content:" + hex.EncodeToString(h[:]) + ":" + d.Name + suffix
	default:
		return ""
	}
}

// resolve parses the document from whichever input was provided, using the
// cache when enabled.
func (d docInput) resolve(kind metadata.Kind, canonical bool) (*parser.ParseResult, error) {
	if (d.File == "") == (d.Content == "") {
		return nil, fmt.Errorf("exactly one of file or content must be provided")
	}
	if d.Content != "" && int64(len(d.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set REACHMETA_MAX_INLINE_SIZE to increase",
			len(d.Content), cfg.MaxInlineSize)
	}

	var key string
	if cfg.CacheEnabled {
		key = makeCacheKey(d, kind, canonical)
	}
	if key != "" {
		if cached, ok := docCache.Get(key); ok {
			return cached, nil
		}
	}

	opts := []parser.Option{parser.WithCanonicalTypeNames(canonical)}
	if kind != "" {
		opts = append(opts, parser.WithKind(kind))
	}
	switch {
	case d.File != "":
		opts = append(opts, parser.WithFilePath(d.File))
	default:
		opts = append(opts, parser.WithReader(strings.NewReader(d.Content)))
		if d.Name != "" {
			opts = append(opts, parser.WithSourceName(d.Name))
		}
	}

	result, err := parser.ParseWithOptions(opts...)
	if err != nil {
		return nil, err
	}
	if key != "" {
		docCache.Add(key, result)
	}
	return result, nil
}

// parseKind converts an optional kind argument.
func parseKind(s string) (metadata.Kind, error) {
	if s == "" {
		return "", nil
	}
	return metadata.ParseKind(s)
}
