package commands

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/erraggy/reachmeta/internal/cliutil"
	"github.com/erraggy/reachmeta/joiner"
	"github.com/erraggy/reachmeta/parser"
)

// JoinFlags contains flags for the join command
type JoinFlags struct {
	Output         string
	Kind           string
	CanonicalTypes bool
	StrictKinds    bool
	Parallelism    int
	Verbose        bool
	Quiet          bool
}

// SetupJoinFlags creates and configures a FlagSet for the join command.
// Returns the FlagSet and a JoinFlags struct with bound flag variables.
func SetupJoinFlags() (*flag.FlagSet, *JoinFlags) {
	fs := flag.NewFlagSet("join", flag.ContinueOnError)
	flags := &JoinFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Kind, "kind", "", "force the kind of every input: jni, reflect, proxy or resource")
	fs.BoolVar(&flags.CanonicalTypes, "canonical-types", false, "rewrite JVM descriptor type names before merging")
	fs.BoolVar(&flags.StrictKinds, "strict-kinds", false, "reject inputs whose kind can only be guessed from content")
	fs.IntVar(&flags.Parallelism, "j", runtime.GOMAXPROCS(0), "number of inputs read at once")
	fs.BoolVar(&flags.Verbose, "v", false, "log each input as it is parsed")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: suppress diagnostic messages (for pipelining)")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: suppress diagnostic messages (for pipelining)")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: reachmeta join [flags] <file1> [file2...]\n\n")
		cliutil.Writef(fs.Output(), "Merge reachability metadata documents of one kind into a single document.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nMerge Rules:\n")
		cliutil.Writef(fs.Output(), "  Classes      merged by name; methods and fields are unioned\n")
		cliutil.Writef(fs.Output(), "  Flags        allDeclared*/allPublic*/queryAll* flags are OR'd\n")
		cliutil.Writef(fs.Output(), "  Proxies      merged by interface list\n")
		cliutil.Writef(fs.Output(), "  Resources    patterns merged by pattern, bundles by name\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  reachmeta join -o jni-config.json run-1/jni-config.json run-2/jni-config.json\n")
		cliutil.Writef(fs.Output(), "  reachmeta join --kind reflect -o reflect-config.json a.json b.yaml\n")
		cliutil.Writef(fs.Output(), "  reachmeta join -q run-*/proxy-config.json | reachmeta parse --kind proxy -\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - All inputs must be the same kind\n")
		cliutil.Writef(fs.Output(), "  - The output is independent of input order\n")
		cliutil.Writef(fs.Output(), "  - The output uses the format of the first input\n")
		cliutil.Writef(fs.Output(), "  - When -o is specified, file is written with restrictive permissions (0600)\n")
	}

	return fs, flags
}

// HandleJoin executes the join command
func HandleJoin(args []string) error {
	fs, flags := SetupJoinFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("join command requires at least 1 input file")
	}
	filePaths := fs.Args()

	kind, err := ParseKindFlag(flags.Kind)
	if err != nil {
		return err
	}
	if flags.Output != "" {
		if err := ValidateOutputPath(flags.Output, filePaths); err != nil {
			return err
		}
	}

	opts := []joiner.Option{
		joiner.WithFilePaths(filePaths...),
		joiner.WithParallelism(flags.Parallelism),
		joiner.WithCanonicalTypeNames(flags.CanonicalTypes),
		joiner.WithStrictKinds(flags.StrictKinds),
	}
	if kind != "" {
		opts = append(opts, joiner.WithKind(kind))
	}
	if flags.Verbose {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, joiner.WithLogger(parser.NewSlogAdapter(slog.New(handler))))
	}

	startTime := time.Now()
	result, err := joiner.JoinWithOptions(opts...)
	if err != nil {
		return fmt.Errorf("joining metadata: %w", err)
	}
	totalTime := time.Since(startTime)

	// Diagnostics go to stderr to keep stdout clean for pipelining
	if !flags.Quiet {
		digest, err := result.Digest()
		if err != nil {
			return err
		}
		outputHeader("Reachability Metadata Joiner")
		cliutil.Writef(os.Stderr, "Successfully joined %d %s documents\n", len(filePaths), result.Kind)
		if flags.Output != "" {
			cliutil.Writef(os.Stderr, "Output: %s\n", flags.Output)
		} else {
			cliutil.Writef(os.Stderr, "Output: <stdout>\n")
		}
		cliutil.WriteStats(os.Stderr, "", result.Stats)
		cliutil.Writef(os.Stderr, "Digest: %s\n", digest)
		cliutil.Writef(os.Stderr, "Total Time: %v\n\n", totalTime)
		cliutil.WriteList(os.Stderr, "Warnings", result.Warnings)
		cliutil.Writef(os.Stderr, "✓ Join completed successfully!\n")
	}

	if flags.Output != "" {
		if err := joiner.WriteResult(result, flags.Output); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		if !flags.Quiet {
			cliutil.Writef(os.Stderr, "\nOutput written to: %s\n", flags.Output)
		}
		return nil
	}

	data, err := parser.Marshal(result.Document, result.SourceFormat)
	if err != nil {
		return fmt.Errorf("marshaling joined document: %w", err)
	}
	if _, err := os.Stdout.Write(data); err != nil {
		return fmt.Errorf("writing joined document to stdout: %w", err)
	}
	return nil
}
