package joiner

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"

	"github.com/minio/highwayhash"
	"golang.org/x/sync/errgroup"

	"github.com/erraggy/reachmeta/internal/fileutil"
	"github.com/erraggy/reachmeta/metadata"
	"github.com/erraggy/reachmeta/metaerrors"
	"github.com/erraggy/reachmeta/parser"
)

// joinerLogger is used for warnings in joiner functions.
// Tests can replace this with a discard logger to suppress expected warnings.
var joinerLogger = slog.Default()

// digestKey is the fixed highwayhash key. Digests are only compared with
// each other, so the key does not need to be secret.
var digestKey = []byte("0123456789ABCDEF0123456789ABCDEF")

// JoinerConfig configures how documents are joined
type JoinerConfig struct {
	// Kind forces the kind of every input. When empty, each input's kind is
	// detected and all inputs must agree.
	Kind metadata.Kind
	// Parallelism bounds how many files Join reads at once.
	// Values below 1 mean runtime.GOMAXPROCS(0).
	Parallelism int
	// CanonicalTypeNames rewrites JVM descriptor spellings before merging
	CanonicalTypeNames bool
	// StrictKinds rejects inputs whose kind could only be guessed from content
	StrictKinds bool
	// Logger receives debug output from parsing. Nil disables it.
	Logger parser.Logger
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() JoinerConfig {
	return JoinerConfig{
		Parallelism: runtime.GOMAXPROCS(0),
	}
}

// Joiner merges metadata documents of one kind.
//
// A Joiner holds only its configuration and is safe for concurrent use.
type Joiner struct {
	config JoinerConfig
}

// New creates a new Joiner instance with the provided configuration
func New(config JoinerConfig) *Joiner {
	return &Joiner{
		config: config,
	}
}

// JoinResult contains the merged document and information about its sources
type JoinResult struct {
	// Kind is the kind shared by every input
	Kind metadata.Kind
	// Document is the merged, normalized document
	Document metadata.Document
	// SourceFormat is the format of the first source (JSON or YAML).
	// WriteResult encodes in this format.
	SourceFormat parser.SourceFormat
	// Sources lists the inputs in merge order
	Sources []string
	// Stats summarizes the merged document
	Stats metadata.Stats
	// Warnings contains the messages of StructuredWarnings
	Warnings []string
	// StructuredWarnings contains detailed warning information with context
	StructuredWarnings JoinWarnings
}

// AddWarning adds a structured warning and populates the Warnings slice.
func (r *JoinResult) AddWarning(w *JoinWarning) {
	r.StructuredWarnings = append(r.StructuredWarnings, w)
	r.Warnings = append(r.Warnings, w.String())
}

// Digest returns a 64-bit highwayhash of the canonical JSON encoding as 16
// hex digits. Merging the same inputs in any order yields the same digest.
func (r *JoinResult) Digest() (string, error) {
	data, err := parser.Marshal(r.Document, parser.SourceFormatJSON)
	if err != nil {
		return "", fmt.Errorf("joiner: %w", err)
	}
	h, err := highwayhash.New64(digestKey)
	if err != nil {
		return "", fmt.Errorf("joiner: %w", err)
	}
	_, _ = h.Write(data)
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// ToParseResult converts the JoinResult to a ParseResult so a merged
// document can be passed where a parsed one is expected, e.g. to a later join.
func (r *JoinResult) ToParseResult() *parser.ParseResult {
	sourcePath := "joiner"
	if len(r.Sources) > 0 {
		sourcePath = r.Sources[0]
	}
	return &parser.ParseResult{
		SourcePath:   sourcePath,
		SourceFormat: r.SourceFormat,
		Kind:         r.Kind,
		Document:     r.Document,
		Stats:        r.Stats,
		RawEntries:   -1,
	}
}

// JoinParsed merges already parsed documents in order. At least one
// document is required and all must share a kind.
func (j *Joiner) JoinParsed(parsedDocs []parser.ParseResult) (*JoinResult, error) {
	if len(parsedDocs) == 0 {
		return nil, &metaerrors.ConfigError{
			Option:  "documents",
			Value:   0,
			Message: "at least 1 document is required for joining",
		}
	}

	result := &JoinResult{
		SourceFormat: parsedDocs[0].SourceFormat,
		Sources:      make([]string, len(parsedDocs)),
	}

	expected := j.config.Kind
	docs := make([]metadata.Document, len(parsedDocs))
	for i, pr := range parsedDocs {
		if pr.Document == nil {
			return nil, fmt.Errorf("joiner: parsedDocs[%d].Document is nil", i)
		}
		source := pr.SourcePath
		if source == "" {
			source = "document " + strconv.Itoa(i)
		}
		if expected == "" {
			expected = pr.Document.Kind()
		}
		if kind := pr.Document.Kind(); kind != expected {
			return nil, &metaerrors.KindMismatchError{
				Expected: string(expected),
				Actual:   string(kind),
				Source:   source,
			}
		}
		if pr.KindInferred && j.config.StrictKinds {
			return nil, &metaerrors.ConfigError{
				Option:  "StrictKinds",
				Value:   source,
				Message: fmt.Sprintf("kind %s was inferred from content; name the file %s or set a kind", pr.Kind, pr.Kind.FileName()),
			}
		}

		result.Sources[i] = pr.SourcePath
		docs[i] = pr.Document

		if IsGenericSourceName(pr.SourcePath) {
			result.AddWarning(NewGenericSourceNameWarning(pr.SourcePath, i))
		}
		if pr.KindInferred {
			result.AddWarning(NewKindInferredWarning(pr.SourcePath, pr.Kind))
		}
		if n := pr.DuplicatesFolded(); n > 0 {
			result.AddWarning(NewDuplicatesFoldedWarning(pr.SourcePath, n))
		}
	}
	if len(parsedDocs) == 1 {
		result.AddWarning(NewSingleDocumentWarning(result.Sources[0]))
	}

	merged, err := metadata.Merge(docs...)
	if err != nil {
		return nil, fmt.Errorf("joiner: %w", err)
	}
	for _, w := range flagWidenedWarnings(merged, parsedDocs) {
		result.AddWarning(w)
	}

	result.Kind = expected
	result.Document = merged
	result.Stats = metadata.StatsOf(merged)
	return result, nil
}

// flagWidenedWarnings reports classes whose merged blanket flags are wider
// than in at least one source that mentions them.
func flagWidenedWarnings(merged metadata.Document, parsedDocs []parser.ParseResult) JoinWarnings {
	out, ok := merged.(metadata.ClassConfig)
	if !ok {
		return nil
	}
	narrower := make(map[string][]string)
	for _, pr := range parsedDocs {
		in, ok := pr.Document.(metadata.ClassConfig)
		if !ok {
			continue
		}
		for c := range in.All() {
			m, _ := out.Get(c.Name)
			if m.Flags() != c.Flags() {
				narrower[c.Name] = append(narrower[c.Name], pr.SourcePath)
			}
		}
	}
	var warnings JoinWarnings
	for c := range out.All() {
		if sources, ok := narrower[c.Name]; ok {
			warnings = append(warnings, NewFlagWidenedWarning(c.Name, c.Flags(), sources))
		}
	}
	return warnings
}

// Join reads and merges the documents at paths, which may be local paths or
// URLs supported by afs.
func (j *Joiner) Join(paths []string) (*JoinResult, error) {
	return j.JoinContext(context.Background(), paths)
}

// JoinContext is Join with a caller supplied context. Files are read
// concurrently, up to Parallelism at a time, and merged in the given order.
func (j *Joiner) JoinContext(ctx context.Context, paths []string) (*JoinResult, error) {
	if len(paths) == 0 {
		return nil, &metaerrors.ConfigError{
			Option:  "paths",
			Value:   0,
			Message: "at least 1 file is required for joining",
		}
	}

	parsedDocs := make([]parser.ParseResult, len(paths))
	n := len(paths)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.parallelism())
	for i, path := range paths {
		g.Go(func() error {
			p := &parser.Parser{
				Kind:               j.config.Kind,
				CanonicalTypeNames: j.config.CanonicalTypeNames,
				Logger:             j.config.Logger,
			}
			result, err := p.ParseContext(gctx, path)
			if err != nil {
				return fmt.Errorf("joiner: failed to parse %s (%d of %d): %w", path, i+1, n, err)
			}
			parsedDocs[i] = *result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return j.JoinParsed(parsedDocs)
}

func (j *Joiner) parallelism() int {
	if j.config.Parallelism < 1 {
		return runtime.GOMAXPROCS(0)
	}
	return j.config.Parallelism
}

// WriteResult writes a join result to a file in YAML or JSON format (matching the source format)
//
// The output file is written with restrictive permissions (0600 - owner read/write only).
// If the file already exists, its permissions are set to 0600 after writing.
func (j *Joiner) WriteResult(result *JoinResult, outputPath string) error {
	return WriteResult(result, outputPath)
}

// WriteResult writes result to outputPath in its source format with
// owner-only permissions.
func WriteResult(result *JoinResult, outputPath string) error {
	if result == nil || result.Document == nil {
		return fmt.Errorf("joiner: nothing to write")
	}
	path, err := fileutil.SanitizeOutputPath(outputPath)
	if err != nil {
		return fmt.Errorf("joiner: invalid output path: %w", err)
	}
	data, err := parser.Marshal(result.Document, result.SourceFormat)
	if err != nil {
		return fmt.Errorf("joiner: failed to marshal joined document: %w", err)
	}
	if err := fileutil.WriteOwnerOnly(path, data); err != nil {
		return fmt.Errorf("joiner: %w", err)
	}
	return nil
}
