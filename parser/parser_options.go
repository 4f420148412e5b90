package parser

import (
	"context"
	"fmt"
	"io"

	"github.com/viant/afs"

	"github.com/erraggy/reachmeta/internal/options"
	"github.com/erraggy/reachmeta/metadata"
)

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation
type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	ctx                context.Context
	kind               metadata.Kind
	canonicalTypeNames bool
	logger             Logger
	fs                 afs.Service

	// Override SourcePath in the result
	sourceName *string
}

// ParseWithOptions parses a metadata document using functional options.
//
// Example:
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("build/agent/run-1/jni-config.json"),
//	    parser.WithCanonicalTypeNames(true),
//	)
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	p := &Parser{
		Kind:               cfg.kind,
		CanonicalTypeNames: cfg.canonicalTypeNames,
		Logger:             cfg.logger,
		FS:                 cfg.fs,
	}

	var result *ParseResult
	switch {
	case cfg.filePath != nil:
		result, err = p.ParseContext(cfg.ctx, *cfg.filePath)
	case cfg.reader != nil:
		result, err = p.ParseReader(cfg.reader)
	default:
		result, err = p.ParseBytes(cfg.bytes)
	}
	if err != nil {
		return nil, err
	}

	if cfg.sourceName != nil {
		result.SourcePath = *cfg.sourceName
	}
	return result, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{ctx: context.Background()}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.SingleInputSource(
		options.Source{Name: "WithFilePath", Set: cfg.filePath != nil},
		options.Source{Name: "WithReader", Set: cfg.reader != nil},
		options.Source{Name: "WithBytes", Set: cfg.bytes != nil},
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithFilePath specifies a file path or URL as the input source
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return fmt.Errorf("parser: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			return fmt.Errorf("parser: bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithKind forces the document kind instead of detecting it.
func WithKind(kind metadata.Kind) Option {
	return func(cfg *parseConfig) error {
		if _, err := metadata.ParseKind(string(kind)); err != nil {
			return err
		}
		cfg.kind = kind
		return nil
	}
}

// WithCanonicalTypeNames enables rewriting JVM descriptor type spellings.
// Default: false
func WithCanonicalTypeNames(enabled bool) Option {
	return func(cfg *parseConfig) error {
		cfg.canonicalTypeNames = enabled
		return nil
	}
}

// WithLogger sets a structured logger for debug output during parsing.
// By default, no logging is performed.
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithFileSystem sets the afs service used to read WithFilePath sources.
func WithFileSystem(fs afs.Service) Option {
	return func(cfg *parseConfig) error {
		cfg.fs = fs
		return nil
	}
}

// WithContext sets the context used when reading WithFilePath sources.
func WithContext(ctx context.Context) Option {
	return func(cfg *parseConfig) error {
		if ctx == nil {
			return fmt.Errorf("parser: context cannot be nil")
		}
		cfg.ctx = ctx
		return nil
	}
}

// WithSourceName specifies a meaningful name for the source document.
// This is useful when parsing from bytes or a reader, where the default names
// ("ParseBytes.json", "ParseReader.json") say nothing about where the
// document came from. The name appears in join warnings and errors.
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		if name == "" {
			return fmt.Errorf("parser: source name cannot be empty")
		}
		cfg.sourceName = &name
		return nil
	}
}
