package differ

import (
	"fmt"

	"github.com/erraggy/reachmeta/internal/options"
	"github.com/erraggy/reachmeta/parser"
)

// Option is a function that configures a diff operation
type Option func(*diffConfig) error

// diffConfig holds configuration for a diff operation
type diffConfig struct {
	// Input sources (exactly one source and one target must be set)
	sourceFilePath *string
	sourceParsed   *parser.ParseResult
	targetFilePath *string
	targetParsed   *parser.ParseResult

	includeInfo   bool
	breakingRules *BreakingRulesConfig
}

// DiffWithOptions compares two metadata documents using functional options.
//
// Example:
//
//	result, err := differ.DiffWithOptions(
//	    differ.WithSourceFilePath("main/reflect-config.json"),
//	    differ.WithTargetFilePath("branch/reflect-config.json"),
//	    differ.WithIncludeInfo(false),
//	)
func DiffWithOptions(opts ...Option) (*DiffResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("differ: invalid options: %w", err)
	}

	d := &Differ{
		IncludeInfo:   cfg.includeInfo,
		BreakingRules: cfg.breakingRules,
	}

	var source parser.ParseResult
	if cfg.sourceFilePath != nil {
		res, err := parser.New().Parse(*cfg.sourceFilePath)
		if err != nil {
			return nil, fmt.Errorf("differ: failed to parse source: %w", err)
		}
		source = *res
	} else {
		source = *cfg.sourceParsed
	}

	var target parser.ParseResult
	if cfg.targetFilePath != nil {
		res, err := parser.New().Parse(*cfg.targetFilePath)
		if err != nil {
			return nil, fmt.Errorf("differ: failed to parse target: %w", err)
		}
		target = *res
	} else {
		target = *cfg.targetParsed
	}

	return d.DiffParsed(source, target)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*diffConfig, error) {
	cfg := &diffConfig{
		includeInfo: true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.SingleInputSource(
		options.Source{Name: "WithSourceFilePath", Set: cfg.sourceFilePath != nil},
		options.Source{Name: "WithSourceParsed", Set: cfg.sourceParsed != nil},
	); err != nil {
		return nil, err
	}
	if err := options.SingleInputSource(
		options.Source{Name: "WithTargetFilePath", Set: cfg.targetFilePath != nil},
		options.Source{Name: "WithTargetParsed", Set: cfg.targetParsed != nil},
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithSourceFilePath specifies a file path or URL as the source document
func WithSourceFilePath(path string) Option {
	return func(cfg *diffConfig) error {
		cfg.sourceFilePath = &path
		return nil
	}
}

// WithSourceParsed specifies a parsed ParseResult as the source document
func WithSourceParsed(result parser.ParseResult) Option {
	return func(cfg *diffConfig) error {
		cfg.sourceParsed = &result
		return nil
	}
}

// WithTargetFilePath specifies a file path or URL as the target document
func WithTargetFilePath(path string) Option {
	return func(cfg *diffConfig) error {
		cfg.targetFilePath = &path
		return nil
	}
}

// WithTargetParsed specifies a parsed ParseResult as the target document
func WithTargetParsed(result parser.ParseResult) Option {
	return func(cfg *diffConfig) error {
		cfg.targetParsed = &result
		return nil
	}
}

// WithIncludeInfo enables or disables informational changes
// Default: true
func WithIncludeInfo(enabled bool) Option {
	return func(cfg *diffConfig) error {
		cfg.includeInfo = enabled
		return nil
	}
}

// WithBreakingRules overrides default change severities.
func WithBreakingRules(rules *BreakingRulesConfig) Option {
	return func(cfg *diffConfig) error {
		cfg.breakingRules = rules
		return nil
	}
}
