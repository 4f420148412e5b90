package commands

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/reachmeta/internal/cliutil"
	"github.com/erraggy/reachmeta/internal/mcpserver"
)

// SetupMCPFlags creates the FlagSet for the mcp command. It has no flags;
// the server is configured through REACHMETA_* environment variables.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: reachmeta mcp\n\n")
		cliutil.Writef(fs.Output(), "Run an MCP server over stdio exposing the parse, join and diff tools.\n\n")
		cliutil.Writef(fs.Output(), "Environment:\n")
		cliutil.Writef(fs.Output(), "  REACHMETA_CACHE_ENABLED     cache parsed documents (default: true)\n")
		cliutil.Writef(fs.Output(), "  REACHMETA_CACHE_MAX_SIZE    number of cached documents (default: 32)\n")
		cliutil.Writef(fs.Output(), "  REACHMETA_MAX_JOIN_DOCS     maximum documents per join (default: 64)\n")
		cliutil.Writef(fs.Output(), "  REACHMETA_MAX_INLINE_SIZE   maximum inline content in bytes (default: 10485760)\n")
		cliutil.Writef(fs.Output(), "  REACHMETA_CANONICAL_TYPES   rewrite JVM descriptor type names (default: false)\n")
		cliutil.Writef(fs.Output(), "\nVariables may also be set in a .env file in the working directory.\n")
	}
	return fs
}

// HandleMCP executes the mcp command
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
