package differ

import (
	"fmt"

	"github.com/erraggy/reachmeta/internal/severity"
	"github.com/erraggy/reachmeta/metadata"
	"github.com/erraggy/reachmeta/metaerrors"
	"github.com/erraggy/reachmeta/parser"
)

// ChangeType indicates whether a change is an addition, removal, or modification
type ChangeType string

const (
	// ChangeTypeAdded indicates a new element was added
	ChangeTypeAdded ChangeType = "added"
	// ChangeTypeRemoved indicates an element was removed
	ChangeTypeRemoved ChangeType = "removed"
	// ChangeTypeModified indicates an existing element was changed
	ChangeTypeModified ChangeType = "modified"
)

// ChangeCategory indicates which part of the document was changed
type ChangeCategory string

const (
	// CategoryClass indicates a class entry change
	CategoryClass ChangeCategory = "class"
	// CategoryMethod indicates a method of a class changed
	CategoryMethod ChangeCategory = "method"
	// CategoryField indicates a field of a class changed
	CategoryField ChangeCategory = "field"
	// CategoryFlag indicates a blanket access flag of a class changed
	CategoryFlag ChangeCategory = "flag"
	// CategoryProxy indicates a proxy interface list change
	CategoryProxy ChangeCategory = "proxy"
	// CategoryResource indicates a resource include or exclude pattern change
	CategoryResource ChangeCategory = "resource"
	// CategoryBundle indicates a resource bundle change
	CategoryBundle ChangeCategory = "bundle"
)

// Severity indicates the severity level of a change
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational changes (added access)
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates potentially problematic changes (cleared flags)
	SeverityWarning = severity.SeverityWarning
	// SeverityError indicates breaking changes (removed access)
	SeverityError = severity.SeverityError
	// SeverityCritical is only produced by BreakingRulesConfig overrides
	SeverityCritical = severity.SeverityCritical
)

// Change represents a single difference between two metadata documents
type Change struct {
	// Path locates the changed element, e.g. "com.example.App#run()"
	Path string
	// Type indicates if this is an addition, removal, or modification
	Type ChangeType
	// Category indicates which part of the document was changed
	Category ChangeCategory
	// Severity indicates the impact level
	Severity Severity
	// OldValue is the value in the source document (nil for additions)
	OldValue any
	// NewValue is the value in the target document (nil for removals)
	NewValue any
	// Message is a human-readable description of the change
	Message string
}

// String returns a formatted string representation of the change
func (c Change) String() string {
	var symbol string
	switch c.Severity {
	case SeverityError, SeverityCritical:
		symbol = "✗"
	case SeverityWarning:
		symbol = "⚠"
	case SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "·"
	}
	return fmt.Sprintf("%s %s [%s] %s: %s", symbol, c.Path, c.Type, c.Category, c.Message)
}

// DiffResult contains the results of comparing two metadata documents
type DiffResult struct {
	// Kind is the kind shared by both documents
	Kind metadata.Kind
	// SourceStats summarizes the source document
	SourceStats metadata.Stats
	// TargetStats summarizes the target document
	TargetStats metadata.Stats
	// Changes contains all detected changes, sorted by path
	Changes []Change
	// BreakingCount is the number of breaking changes (Critical + Error severity)
	BreakingCount int
	// WarningCount is the number of warnings
	WarningCount int
	// InfoCount is the number of informational changes
	InfoCount int
	// HasBreakingChanges is true if the target grants less access than the source
	HasBreakingChanges bool
}

// Differ compares metadata documents
type Differ struct {
	// IncludeInfo determines whether to include informational changes
	IncludeInfo bool
	// BreakingRules overrides default severities. When nil, defaults are used.
	BreakingRules *BreakingRulesConfig
}

// New creates a new Differ instance with default settings
func New() *Differ {
	return &Differ{
		IncludeInfo: true,
	}
}

// Diff compares source with target using default settings. Both documents
// must have the same kind.
func Diff(source, target metadata.Document) (*DiffResult, error) {
	return New().DiffDocuments(source, target)
}

// DiffFiles compares two metadata files
func (d *Differ) DiffFiles(sourcePath, targetPath string) (*DiffResult, error) {
	sourceResult, err := parser.New().Parse(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("differ: failed to parse source: %w", err)
	}
	// a target without a conventional name is read as the source's kind
	p := parser.New()
	if _, named := metadata.KindFromFileName(targetPath); !named {
		p.Kind = sourceResult.Kind
	}
	targetResult, err := p.Parse(targetPath)
	if err != nil {
		return nil, fmt.Errorf("differ: failed to parse target: %w", err)
	}
	return d.DiffParsed(*sourceResult, *targetResult)
}

// DiffParsed compares two already parsed documents
func (d *Differ) DiffParsed(source, target parser.ParseResult) (*DiffResult, error) {
	if source.Document == nil || target.Document == nil {
		return nil, fmt.Errorf("differ: source and target documents are required")
	}
	if source.Document.Kind() != target.Document.Kind() {
		return nil, &metaerrors.KindMismatchError{
			Expected: string(source.Document.Kind()),
			Actual:   string(target.Document.Kind()),
			Source:   target.SourcePath,
		}
	}
	return d.DiffDocuments(source.Document, target.Document)
}

// DiffDocuments compares source with target. Both documents must have the
// same kind.
func (d *Differ) DiffDocuments(source, target metadata.Document) (*DiffResult, error) {
	if source == nil || target == nil {
		return nil, fmt.Errorf("differ: source and target documents are required")
	}
	if source.Kind() != target.Kind() {
		return nil, &metaerrors.KindMismatchError{
			Expected: string(source.Kind()),
			Actual:   string(target.Kind()),
			Source:   "target",
		}
	}

	result := &DiffResult{
		Kind:        source.Kind(),
		SourceStats: metadata.StatsOf(source),
		TargetStats: metadata.StatsOf(target),
	}

	var changes []Change
	switch s := source.(type) {
	case metadata.ClassConfig:
		changes = diffClasses(s, target.(metadata.ClassConfig))
	case metadata.ProxyConfig:
		changes = diffProxies(s, target.(metadata.ProxyConfig))
	case metadata.ResourceConfig:
		changes = diffResources(s, target.(metadata.ResourceConfig))
	default:
		return nil, fmt.Errorf("differ: unsupported document type %T", source)
	}

	result.Changes = make([]Change, 0, len(changes))
	for _, change := range changes {
		change, keep := d.BreakingRules.apply(change)
		if !keep {
			continue
		}
		if !d.IncludeInfo && change.Severity == SeverityInfo {
			continue
		}
		result.Changes = append(result.Changes, change)
	}
	sortChanges(result.Changes)

	for _, change := range result.Changes {
		switch change.Severity {
		case SeverityCritical, SeverityError:
			result.BreakingCount++
		case SeverityWarning:
			result.WarningCount++
		case SeverityInfo:
			result.InfoCount++
		}
	}
	result.HasBreakingChanges = result.BreakingCount > 0
	return result, nil
}
