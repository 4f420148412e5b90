package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/erraggy/reachmeta/internal/cliutil"
	"github.com/erraggy/reachmeta/internal/discover"
	"github.com/erraggy/reachmeta/joiner"
)

// MergeDirFlags contains flags for the merge-dir command
type MergeDirFlags struct {
	Output         string
	CanonicalTypes bool
	Parallelism    int
	Quiet          bool
}

// SetupMergeDirFlags creates and configures a FlagSet for the merge-dir command.
// Returns the FlagSet and a MergeDirFlags struct with bound flag variables.
func SetupMergeDirFlags() (*flag.FlagSet, *MergeDirFlags) {
	fs := flag.NewFlagSet("merge-dir", flag.ContinueOnError)
	flags := &MergeDirFlags{}

	fs.StringVar(&flags.Output, "o", "", "output directory (required)")
	fs.StringVar(&flags.Output, "output", "", "output directory (required)")
	fs.BoolVar(&flags.CanonicalTypes, "canonical-types", false, "rewrite JVM descriptor type names before merging")
	fs.IntVar(&flags.Parallelism, "j", runtime.GOMAXPROCS(0), "number of inputs read at once")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: suppress diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: suppress diagnostic messages")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: reachmeta merge-dir [flags] -o <out-dir> <dir1> [dir2...]\n\n")
		cliutil.Writef(fs.Output(), "Find every metadata document under the given directories and merge them per kind.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nDiscovery:\n")
		cliutil.Writef(fs.Output(), "  Files named jni-config, reflect-config, proxy-config or resource-config\n")
		cliutil.Writef(fs.Output(), "  (e.g. .json or .yaml) are merged. Hidden directories and symlinks are\n")
		cliutil.Writef(fs.Output(), "  skipped, as is anything matched by a %s file in a scanned directory.\n", discover.IgnoreFile)
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  reachmeta merge-dir -o src/main/resources/META-INF/native-image build/agent-output\n")
		cliutil.Writef(fs.Output(), "  reachmeta merge-dir -o merged run-1 run-2 run-3\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - One <kind>-config.json is written per kind found\n")
		cliutil.Writef(fs.Output(), "  - Files are written with restrictive permissions (0600)\n")
	}

	return fs, flags
}

// HandleMergeDir executes the merge-dir command
func HandleMergeDir(args []string) error {
	fs, flags := SetupMergeDirFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("merge-dir command requires at least 1 directory")
	}
	if flags.Output == "" {
		fs.Usage()
		return fmt.Errorf("merge-dir command requires an output directory (-o)")
	}
	if flags.Parallelism < 1 {
		return fmt.Errorf("invalid -j %d: must be at least 1", flags.Parallelism)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := joiner.DefaultConfig()
	cfg.CanonicalTypeNames = flags.CanonicalTypes
	cfg.Parallelism = flags.Parallelism

	startTime := time.Now()
	result, err := joiner.New(cfg).JoinDirsContext(ctx, fs.Args())
	if err != nil {
		return fmt.Errorf("merging directories: %w", err)
	}
	written, err := joiner.WriteDirResult(result, flags.Output)
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	totalTime := time.Since(startTime)

	if flags.Quiet {
		return nil
	}
	outputHeader("Reachability Metadata Directory Merge")
	cliutil.Writef(os.Stderr, "Merged %d documents from %d directories\n\n", len(result.Sources()), fs.NArg())
	for i, kind := range result.Kinds {
		jr := result.Results[kind]
		cliutil.Writef(os.Stderr, "%s (%d sources) -> %s\n", kind, len(jr.Sources), written[i])
		cliutil.WriteStats(os.Stderr, "  ", jr.Stats)
	}
	cliutil.Writef(os.Stderr, "\nTotal Time: %v\n\n", totalTime)
	cliutil.WriteList(os.Stderr, "Warnings", result.Warnings().Strings())
	cliutil.Writef(os.Stderr, "✓ Merge completed successfully!\n")
	return nil
}
