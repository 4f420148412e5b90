package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/viant/afs"

	"github.com/erraggy/reachmeta/metadata"
	"github.com/erraggy/reachmeta/metaerrors"
)

// Parser reads reachability metadata documents.
type Parser struct {
	// Kind forces the document kind. When empty, the kind is taken from the
	// file name (e.g. reflect-config.json) and then from the content.
	Kind metadata.Kind
	// CanonicalTypeNames rewrites JVM descriptor spellings such as
	// "[Ljava.lang.String;" to source spellings before records are merged.
	CanonicalTypeNames bool
	// Logger is the structured logger for debug output.
	// If nil, logging is disabled (default).
	Logger Logger
	// FS reads sources. If nil, afs.New() is used, which accepts local paths
	// and any URL scheme registered with afs.
	FS afs.Service
}

// New creates a new Parser instance with default settings.
func New() *Parser {
	return &Parser{}
}

func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

func (p *Parser) fs() afs.Service {
	if p.FS != nil {
		return p.FS
	}
	return afs.New()
}

// SourceFormat represents the format of a source document.
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseResult holds a decoded document and information about its source.
// Callers should treat it as read-only; the Document itself is immutable.
type ParseResult struct {
	// SourcePath is the path or URL the document was read from. For bytes and
	// readers it is "ParseBytes.json", "ParseReader.yaml" and so on.
	SourcePath string
	// SourceFormat is the format of the source (JSON or YAML)
	SourceFormat SourceFormat
	// Kind is the document kind
	Kind metadata.Kind
	// KindInferred is true when the kind was guessed from the content because
	// neither an explicit kind nor a conventional file name was available
	KindInferred bool
	// Document is the normalized document
	Document metadata.Document
	// Stats summarizes the normalized document
	Stats metadata.Stats
	// RawEntries is the number of top-level entries before records sharing a
	// key were merged, or -1 for object-shaped documents
	RawEntries int
	// SourceSize is the size of the source in bytes
	SourceSize int64
	// LoadTime is the time taken to read the source
	LoadTime time.Duration
}

// DuplicatesFolded returns how many top-level entries were merged into
// another entry with the same key while normalizing the document.
func (pr *ParseResult) DuplicatesFolded() int {
	if pr.RawEntries < 0 || pr.Document == nil {
		return 0
	}
	return max(pr.RawEntries-pr.Document.Len(), 0)
}

// Parse reads and decodes the document at path, which may be a local path or
// a URL supported by afs.
func (p *Parser) Parse(path string) (*ParseResult, error) {
	return p.ParseContext(context.Background(), path)
}

// ParseContext is Parse with a caller supplied context for the read.
func (p *Parser) ParseContext(ctx context.Context, path string) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := p.fs().DownloadWithURL(ctx, location(path))
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read %s: %w", path, err)
	}

	fileKind, _ := metadata.KindFromFileName(path)
	res, err := p.parse(data, detectFormatFromPath(path), fileKind, path)
	if err != nil {
		return nil, err
	}
	res.SourcePath = path
	res.LoadTime = loadTime
	return res, nil
}

// location turns a local path into an absolute path for afs; URLs are
// returned unchanged.
func location(path string) string {
	if strings.Contains(path, "://") {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// ParseReader decodes a document from r.
// The SourcePath is set to ParseReader.json or ParseReader.yaml.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := io.ReadAll(r)
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read data: %w", err)
	}
	res, err := p.parse(data, SourceFormatUnknown, "", "ParseReader")
	if err != nil {
		return nil, err
	}
	res.SourcePath = "ParseReader." + string(res.SourceFormat)
	res.LoadTime = loadTime
	return res, nil
}

// ParseBytes decodes a document from data.
// The SourcePath is set to ParseBytes.json or ParseBytes.yaml.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	res, err := p.parse(data, SourceFormatUnknown, "", "ParseBytes")
	if err != nil {
		return nil, err
	}
	res.SourcePath = "ParseBytes." + string(res.SourceFormat)
	return res, nil
}

func (p *Parser) parse(data []byte, format SourceFormat, fileKind metadata.Kind, source string) (*ParseResult, error) {
	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}
	if format == SourceFormatUnknown {
		// empty input; encode it back as JSON
		format = SourceFormatJSON
	}

	jsonData := data
	if format == SourceFormatYAML {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, &metaerrors.ParseError{Path: source, Format: string(format), Message: "invalid YAML", Cause: err}
		}
		jsonData = converted
	}

	result := &ParseResult{
		SourceFormat: format,
		SourceSize:   int64(len(data)),
	}
	switch {
	case p.Kind != "":
		result.Kind = p.Kind
	case fileKind != "":
		result.Kind = fileKind
	default:
		kind, ok := sniffKind(jsonData)
		if !ok {
			kind = metadata.KindReflect
		}
		result.Kind = kind
		result.KindInferred = true
	}

	var doc metadata.Document
	var err error
	if len(bytes.TrimSpace(jsonData)) == 0 || bytes.Equal(bytes.TrimSpace(jsonData), []byte("null")) {
		doc, err = metadata.NewDocument(result.Kind)
	} else {
		doc, err = metadata.DecodeDocument(result.Kind, jsonData)
	}
	if err != nil {
		if errors.Is(err, metaerrors.ErrValidation) || errors.Is(err, metaerrors.ErrConfig) || errors.Is(err, metaerrors.ErrNameMismatch) {
			return nil, fmt.Errorf("parser: %s: %w", source, err)
		}
		return nil, &metaerrors.ParseError{
			Path:    source,
			Format:  string(format),
			Message: fmt.Sprintf("invalid %s document", result.Kind),
			Cause:   err,
		}
	}

	if p.CanonicalTypeNames {
		doc, err = metadata.CanonicalizeTypeNames(doc)
		if err != nil {
			return nil, fmt.Errorf("parser: %s: %w", source, err)
		}
	}

	result.Document = doc
	result.Stats = metadata.StatsOf(doc)
	result.RawEntries = countEntries(jsonData)

	p.log().Debug("parsed metadata document",
		"source", source,
		"format", format,
		"kind", result.Kind,
		"kindInferred", result.KindInferred,
		"entries", doc.Len(),
		"duplicatesFolded", result.DuplicatesFolded(),
	)
	return result, nil
}
