package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/erraggy/reachmeta"
	"github.com/erraggy/reachmeta/cmd/reachmeta/commands"
)

// commandNames lists every top-level command, used for typo suggestions.
var commandNames = []string{"join", "merge-dir", "parse", "diff", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// A .env file is optional; it only supplies REACHMETA_* defaults.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: ignoring .env: %v\n", err)
	}

	command := os.Args[1]
	var handler func([]string) error

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("reachmeta v%s\n", reachmeta.Version())
		fmt.Println(reachmeta.BuildInfo())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "join":
		handler = commands.HandleJoin
	case "merge-dir":
		handler = commands.HandleMergeDir
	case "parse":
		handler = commands.HandleParse
	case "diff":
		handler = commands.HandleDiff
	case "mcp":
		handler = commands.HandleMCP
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			fmt.Fprintf(os.Stderr, "Did you mean: %s?\n", s)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}

	if err := handler(os.Args[2:]); err != nil {
		if !errors.Is(err, commands.ErrBreakingChanges) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// suggestCommand returns the closest command within edit distance 2, or "".
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Println(`reachmeta - merge and compare GraalVM reachability metadata

Usage:
  reachmeta <command> [flags] [args]

Commands:
  join        Merge metadata documents of one kind into one document
  merge-dir   Find metadata documents under directories and merge them per kind
  parse       Parse a metadata document and report what it contains
  diff        Compare two metadata documents of the same kind
  mcp         Run an MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  reachmeta join -o jni-config.json run-1/jni-config.json run-2/jni-config.json
  reachmeta merge-dir -o src/main/resources/META-INF/native-image build/agent-output
  reachmeta diff old/reflect-config.json new/reflect-config.json

Run 'reachmeta <command> --help' for more information on a command.`)
}
