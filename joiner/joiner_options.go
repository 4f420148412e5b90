package joiner

import (
	"context"
	"fmt"

	"github.com/erraggy/reachmeta/internal/options"
	"github.com/erraggy/reachmeta/metadata"
	"github.com/erraggy/reachmeta/metaerrors"
	"github.com/erraggy/reachmeta/parser"
)

// Option is a function that configures a join operation
type Option func(*joinConfig) error

// joinConfig holds configuration for a join operation
type joinConfig struct {
	// Input sources (exactly one kind of source, at least 1 document)
	filePaths  []string
	parsedDocs []parser.ParseResult

	// Configuration options (nil means use default from DefaultConfig)
	kind               *metadata.Kind
	parallelism        *int
	canonicalTypeNames *bool
	strictKinds        *bool
	logger             parser.Logger

	ctx context.Context
}

// JoinWithOptions merges metadata documents using functional options.
//
// Example:
//
//	result, err := joiner.JoinWithOptions(
//	    joiner.WithFilePaths("run-1/jni-config.json", "run-2/jni-config.json"),
//	    joiner.WithCanonicalTypeNames(true),
//	)
func JoinWithOptions(opts ...Option) (*JoinResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("joiner: invalid options: %w", err)
	}

	defaults := DefaultConfig()
	j := New(JoinerConfig{
		Kind:               valueOrDefault(cfg.kind, defaults.Kind),
		Parallelism:        valueOrDefault(cfg.parallelism, defaults.Parallelism),
		CanonicalTypeNames: valueOrDefault(cfg.canonicalTypeNames, defaults.CanonicalTypeNames),
		StrictKinds:        valueOrDefault(cfg.strictKinds, defaults.StrictKinds),
		Logger:             cfg.logger,
	})

	if len(cfg.filePaths) > 0 {
		return j.JoinContext(cfg.ctx, cfg.filePaths)
	}
	return j.JoinParsed(cfg.parsedDocs)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*joinConfig, error) {
	cfg := &joinConfig{ctx: context.Background()}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.SingleInputSource(
		options.Source{Name: "WithFilePaths", Set: len(cfg.filePaths) > 0},
		options.Source{Name: "WithParsed", Set: len(cfg.parsedDocs) > 0},
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

func valueOrDefault[T any](ptr *T, defaultVal T) T {
	if ptr == nil {
		return defaultVal
	}
	return *ptr
}

// WithFilePaths specifies file paths or URLs as input sources
func WithFilePaths(paths ...string) Option {
	return func(cfg *joinConfig) error {
		cfg.filePaths = append(cfg.filePaths, paths...)
		return nil
	}
}

// WithParsed specifies parsed ParseResults as input sources
func WithParsed(docs ...parser.ParseResult) Option {
	return func(cfg *joinConfig) error {
		cfg.parsedDocs = append(cfg.parsedDocs, docs...)
		return nil
	}
}

// WithConfig applies an entire JoinerConfig struct
func WithConfig(config JoinerConfig) Option {
	return func(cfg *joinConfig) error {
		cfg.kind = &config.Kind
		cfg.parallelism = &config.Parallelism
		cfg.canonicalTypeNames = &config.CanonicalTypeNames
		cfg.strictKinds = &config.StrictKinds
		cfg.logger = config.Logger
		return nil
	}
}

// WithKind forces the kind of every input.
func WithKind(kind metadata.Kind) Option {
	return func(cfg *joinConfig) error {
		if _, err := metadata.ParseKind(string(kind)); err != nil {
			return err
		}
		cfg.kind = &kind
		return nil
	}
}

// WithParallelism bounds how many files are read at once.
// Default: runtime.GOMAXPROCS(0)
func WithParallelism(n int) Option {
	return func(cfg *joinConfig) error {
		if n < 1 {
			return &metaerrors.ConfigError{Option: "parallelism", Value: n, Message: "must be at least 1"}
		}
		cfg.parallelism = &n
		return nil
	}
}

// WithCanonicalTypeNames enables rewriting JVM descriptor type spellings.
// Default: false
func WithCanonicalTypeNames(enabled bool) Option {
	return func(cfg *joinConfig) error {
		cfg.canonicalTypeNames = &enabled
		return nil
	}
}

// WithStrictKinds rejects inputs whose kind can only be inferred from content.
// Default: false
func WithStrictKinds(enabled bool) Option {
	return func(cfg *joinConfig) error {
		cfg.strictKinds = &enabled
		return nil
	}
}

// WithLogger sets a structured logger for debug output while parsing inputs.
func WithLogger(l parser.Logger) Option {
	return func(cfg *joinConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithContext sets the context used while reading WithFilePaths inputs.
func WithContext(ctx context.Context) Option {
	return func(cfg *joinConfig) error {
		if ctx == nil {
			return fmt.Errorf("joiner: context cannot be nil")
		}
		cfg.ctx = ctx
		return nil
	}
}
