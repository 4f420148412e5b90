package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/erraggy/reachmeta/internal/cliutil"
	"github.com/erraggy/reachmeta/metadata"
	"github.com/erraggy/reachmeta/parser"
)

// ParseFlags contains flags for the parse command
type ParseFlags struct {
	Kind           string
	CanonicalTypes bool
	Format         string
	Document       bool
	Quiet          bool
}

// SetupParseFlags creates and configures a FlagSet for the parse command.
// Returns the FlagSet and a ParseFlags struct with bound flag variables.
func SetupParseFlags() (*flag.FlagSet, *ParseFlags) {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	flags := &ParseFlags{}

	fs.StringVar(&flags.Kind, "kind", "", "document kind: jni, reflect, proxy or resource (default: from file name, then content)")
	fs.BoolVar(&flags.CanonicalTypes, "canonical-types", false, "rewrite JVM descriptor type names such as [Ljava.lang.String; to source form")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Document, "d", false, "print the normalized document instead of the summary")
	fs.BoolVar(&flags.Document, "document", false, "print the normalized document instead of the summary")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: with -d, suppress the summary on stderr")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: with -d, suppress the summary on stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: reachmeta parse [flags] <file|url|->\n\n")
		cliutil.Writef(fs.Output(), "Parse a reachability metadata document and report what it contains.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  reachmeta parse build/agent/jni-config.json\n")
		cliutil.Writef(fs.Output(), "  reachmeta parse --format json reflect-config.json\n")
		cliutil.Writef(fs.Output(), "  reachmeta parse -d --canonical-types reflect-config.json > normalized.json\n")
		cliutil.Writef(fs.Output(), "  cat agent.yaml | reachmeta parse --kind reflect -\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Entries sharing a key are merged while normalizing\n")
		cliutil.Writef(fs.Output(), "  - With -d, --format json or yaml selects the document encoding\n")
	}

	return fs, flags
}

// parseSummary is the structured form of the parse command output.
type parseSummary struct {
	Source           string         `json:"source" yaml:"source"`
	Kind             metadata.Kind  `json:"kind" yaml:"kind"`
	KindInferred     bool           `json:"kindInferred,omitempty" yaml:"kindInferred,omitempty"`
	Format           string         `json:"format" yaml:"format"`
	SourceSize       int64          `json:"sourceSize" yaml:"sourceSize"`
	Stats            metadata.Stats `json:"stats" yaml:"stats"`
	DuplicatesFolded int            `json:"duplicatesFolded,omitempty" yaml:"duplicatesFolded,omitempty"`
}

// HandleParse executes the parse command
func HandleParse(args []string) error {
	fs, flags := SetupParseFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("parse command requires exactly one file path, URL or '-'")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	kind, err := ParseKindFlag(flags.Kind)
	if err != nil {
		return err
	}

	path := fs.Arg(0)
	opts := []parser.Option{parser.WithCanonicalTypeNames(flags.CanonicalTypes)}
	if kind != "" {
		opts = append(opts, parser.WithKind(kind))
	}
	if path == StdinFilePath {
		opts = append(opts, parser.WithReader(os.Stdin), parser.WithSourceName("stdin"))
	} else {
		opts = append(opts, parser.WithFilePath(path))
	}

	result, err := parser.ParseWithOptions(opts...)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", FormatSourcePath(path), err)
	}

	if flags.Document {
		if !flags.Quiet {
			outputHeader("Reachability Metadata Parser")
			writeParseSummary(os.Stderr, path, result)
		}
		format := result.SourceFormat
		switch flags.Format {
		case FormatJSON:
			format = parser.SourceFormatJSON
		case FormatYAML:
			format = parser.SourceFormatYAML
		}
		data, err := parser.Marshal(result.Document, format)
		if err != nil {
			return err
		}
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("writing document to stdout: %w", err)
		}
		return nil
	}

	if flags.Format != FormatText {
		return OutputStructured(parseSummary{
			Source:           FormatSourcePath(path),
			Kind:             result.Kind,
			KindInferred:     result.KindInferred,
			Format:           string(result.SourceFormat),
			SourceSize:       result.SourceSize,
			Stats:            result.Stats,
			DuplicatesFolded: result.DuplicatesFolded(),
		}, flags.Format)
	}

	outputHeader("Reachability Metadata Parser")
	writeParseSummary(os.Stdout, path, result)
	cliutil.Writef(os.Stdout, "\n✓ Parsing completed successfully!\n")
	return nil
}

func writeParseSummary(w io.Writer, path string, result *parser.ParseResult) {
	cliutil.Writef(w, "Source: %s\n", FormatSourcePath(path))
	if result.KindInferred {
		cliutil.Writef(w, "Kind: %s (inferred from content)\n", result.Kind)
	} else {
		cliutil.Writef(w, "Kind: %s\n", result.Kind)
	}
	cliutil.Writef(w, "Format: %s\n", result.SourceFormat)
	cliutil.Writef(w, "Source Size: %s\n", parser.FormatBytes(result.SourceSize))
	cliutil.WriteStats(w, "", result.Stats)
	if n := result.DuplicatesFolded(); n > 0 {
		cliutil.Writef(w, "Duplicates folded: %d\n", n)
	}
	cliutil.Writef(w, "Load Time: %v\n", result.LoadTime)
}
