package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/erraggy/reachmeta/differ"
	"github.com/erraggy/reachmeta/internal/cliutil"
	"github.com/erraggy/reachmeta/metadata"
	"github.com/erraggy/reachmeta/parser"
)

// ruleFlag collects "group:type" selectors. It can be specified multiple
// times, e.g. --ignore flag:modified --ignore class:added.
type ruleFlag []string

var (
	ruleGroups = []string{"class", "member", "flag", "proxy", "resource"}
	ruleTypes  = []string{"added", "removed", "modified"}
)

// String returns the string representation of the flag value
func (r *ruleFlag) String() string {
	if r == nil {
		return ""
	}
	return strings.Join(*r, ",")
}

// Set validates a "group:type" value and appends it
func (r *ruleFlag) Set(value string) error {
	group, typ, ok := strings.Cut(value, ":")
	if !ok {
		return fmt.Errorf("invalid rule %q (expected group:type, e.g. flag:modified)", value)
	}
	if !slices.Contains(ruleGroups, group) {
		return fmt.Errorf("invalid rule group %q. Valid groups: %s", group, strings.Join(ruleGroups, ", "))
	}
	if !slices.Contains(ruleTypes, typ) {
		return fmt.Errorf("invalid rule type %q. Valid types: %s", typ, strings.Join(ruleTypes, ", "))
	}
	*r = append(*r, value)
	return nil
}

// DiffFlags contains flags for the diff command
type DiffFlags struct {
	Kind   string
	NoInfo bool
	Format string
	Ignore ruleFlag
	Warn   ruleFlag
}

// SetupDiffFlags creates and configures a FlagSet for the diff command.
// Returns the FlagSet and a DiffFlags struct with bound flag variables.
func SetupDiffFlags() (*flag.FlagSet, *DiffFlags) {
	fs := flag.NewFlagSet("diff", flag.ContinueOnError)
	flags := &DiffFlags{}

	fs.StringVar(&flags.Kind, "kind", "", "force the kind of both documents: jni, reflect, proxy or resource")
	fs.BoolVar(&flags.NoInfo, "no-info", false, "exclude informational changes from output")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.Var(&flags.Ignore, "ignore", "drop changes matching group:type (can be repeated)")
	fs.Var(&flags.Warn, "warn", "report changes matching group:type as warnings (can be repeated)")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: reachmeta diff [flags] <base> <revision>\n\n")
		cliutil.Writef(fs.Output(), "Compare two reachability metadata documents of the same kind.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nSeverities:\n")
		cliutil.Writef(fs.Output(), "  Error:    Removed classes, members, proxies, includes or bundles\n")
		cliutil.Writef(fs.Output(), "  Warning:  Cleared blanket flags, added resource excludes\n")
		cliutil.Writef(fs.Output(), "  Info:     Added access\n")
		cliutil.Writef(fs.Output(), "\nRule groups: %s\n", strings.Join(ruleGroups, ", "))
		cliutil.Writef(fs.Output(), "Rule types:  %s\n", strings.Join(ruleTypes, ", "))
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  reachmeta diff old/reflect-config.json new/reflect-config.json\n")
		cliutil.Writef(fs.Output(), "  reachmeta diff --no-info --warn class:removed old/jni-config.json new/jni-config.json\n")
		cliutil.Writef(fs.Output(), "  reachmeta diff --format json a.json b.json | jq '.HasBreakingChanges'\n")
		cliutil.Writef(fs.Output(), "\nExit Status:\n")
		cliutil.Writef(fs.Output(), "  0    No breaking changes\n")
		cliutil.Writef(fs.Output(), "  1    Breaking changes found, or an error occurred\n")
	}

	return fs, flags
}

// BuildRules turns --ignore and --warn selectors into a rules config.
// It returns nil when no selector is given.
func BuildRules(ignore, warn []string) *differ.BreakingRulesConfig {
	if len(ignore) == 0 && len(warn) == 0 {
		return nil
	}
	cfg := &differ.BreakingRulesConfig{}
	set := func(sel string, rule *differ.BreakingChangeRule) {
		group, typ, _ := strings.Cut(sel, ":")
		var rules **differ.ChangeRules
		switch group {
		case "class":
			rules = &cfg.Class
		case "member":
			rules = &cfg.Member
		case "flag":
			rules = &cfg.Flag
		case "proxy":
			rules = &cfg.Proxy
		case "resource":
			rules = &cfg.Resource
		default:
			return
		}
		if *rules == nil {
			*rules = &differ.ChangeRules{}
		}
		switch typ {
		case "added":
			(*rules).Added = rule
		case "removed":
			(*rules).Removed = rule
		case "modified":
			(*rules).Modified = rule
		}
	}
	for _, sel := range warn {
		set(sel, &differ.BreakingChangeRule{Severity: differ.SeverityPtr(differ.SeverityWarning)})
	}
	// ignore wins over warn
	for _, sel := range ignore {
		set(sel, &differ.BreakingChangeRule{Ignore: true})
	}
	return cfg
}

// HandleDiff executes the diff command
func HandleDiff(args []string) error {
	fs, flags := SetupDiffFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("diff command requires exactly two file paths or URLs")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	kind, err := ParseKindFlag(flags.Kind)
	if err != nil {
		return err
	}

	basePath, revisionPath := fs.Arg(0), fs.Arg(1)
	startTime := time.Now()
	base, err := parseForDiff(basePath, kind)
	if err != nil {
		return fmt.Errorf("parsing base: %w", err)
	}
	if kind == "" {
		// the revision may not carry a conventional name
		kind = base.Kind
	}
	revision, err := parseForDiff(revisionPath, kind)
	if err != nil {
		return fmt.Errorf("parsing revision: %w", err)
	}

	result, err := differ.DiffWithOptions(
		differ.WithSourceParsed(*base),
		differ.WithTargetParsed(*revision),
		differ.WithIncludeInfo(!flags.NoInfo),
		differ.WithBreakingRules(BuildRules(flags.Ignore, flags.Warn)),
	)
	if err != nil {
		return fmt.Errorf("comparing metadata: %w", err)
	}
	totalTime := time.Since(startTime)

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		if err := OutputStructured(result, flags.Format); err != nil {
			return err
		}
		if result.HasBreakingChanges {
			return ErrBreakingChanges
		}
		return nil
	}

	outputHeader("Reachability Metadata Diff")
	fmt.Printf("Kind: %s\n\n", result.Kind)
	fmt.Printf("Base: %s\n", basePath)
	cliutil.WriteStats(os.Stdout, "  ", result.SourceStats)
	fmt.Printf("Revision: %s\n", revisionPath)
	cliutil.WriteStats(os.Stdout, "  ", result.TargetStats)
	fmt.Printf("\nTotal Time: %v\n\n", totalTime)

	if len(result.Changes) == 0 {
		fmt.Println("✓ No differences found")
		return nil
	}

	fmt.Printf("Changes (%d):\n", len(result.Changes))
	for _, change := range result.Changes {
		fmt.Printf("  %s\n", change.String())
	}
	fmt.Printf("\nSummary:\n")
	if result.HasBreakingChanges {
		fmt.Printf("  ⚠️  Breaking changes: %d\n", result.BreakingCount)
	} else {
		fmt.Printf("  ✓ Breaking changes: 0\n")
	}
	fmt.Printf("  Warnings: %d\n", result.WarningCount)
	if !flags.NoInfo {
		fmt.Printf("  Info: %d\n", result.InfoCount)
	}

	if result.HasBreakingChanges {
		return ErrBreakingChanges
	}
	return nil
}

func parseForDiff(path string, kind metadata.Kind) (*parser.ParseResult, error) {
	opts := []parser.Option{parser.WithFilePath(path)}
	if kind != "" {
		opts = append(opts, parser.WithKind(kind))
	}
	return parser.ParseWithOptions(opts...)
}
