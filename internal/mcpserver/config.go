package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled bool
	CacheMaxSize int

	// Input limits.
	MaxJoinDocs   int
	MaxInlineSize int64

	// Parse defaults.
	CanonicalTypes bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from REACHMETA_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:   envBool("REACHMETA_CACHE_ENABLED", true),
		CacheMaxSize:   envInt("REACHMETA_CACHE_MAX_SIZE", 32),
		MaxJoinDocs:    envInt("REACHMETA_MAX_JOIN_DOCS", 64),
		MaxInlineSize:  int64(envInt("REACHMETA_MAX_INLINE_SIZE", 10<<20)),
		CanonicalTypes: envBool("REACHMETA_CANONICAL_TYPES", false),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}
