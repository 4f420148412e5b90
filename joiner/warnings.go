package joiner

import (
	"fmt"
	"strings"

	"github.com/erraggy/reachmeta/internal/severity"
	"github.com/erraggy/reachmeta/metadata"
)

// WarningCategory identifies the type of warning.
type WarningCategory string

const (
	// WarnGenericSourceName indicates a document has a generic or empty source name.
	// This makes warnings and errors less useful for identifying the document.
	WarnGenericSourceName WarningCategory = "generic_source_name"
	// WarnSingleDocument indicates only one document was joined.
	WarnSingleDocument WarningCategory = "single_document"
	// WarnDuplicatesFolded indicates a source listed the same key more than once.
	WarnDuplicatesFolded WarningCategory = "duplicates_folded"
	// WarnKindInferred indicates a source's kind was guessed from its content.
	WarnKindInferred WarningCategory = "kind_inferred"
	// WarnFlagWidened indicates a class gained blanket flags that one of its
	// sources did not set.
	WarnFlagWidened WarningCategory = "flag_widened"
)

// JoinWarning represents a structured warning from the joiner package.
type JoinWarning struct {
	// Category identifies the type of warning.
	Category WarningCategory
	// Path locates the affected entry, e.g. a class name. Empty for
	// document-level warnings.
	Path string
	// Message is a human-readable description.
	Message string
	// SourceFile is the file that triggered the warning.
	SourceFile string
	// Severity indicates warning severity.
	Severity severity.Severity
	// Context provides additional details.
	Context map[string]any
}

// String returns the warning message.
func (w *JoinWarning) String() string {
	return w.Message
}

// Location returns the entry path, or the source file for document-level
// warnings.
func (w *JoinWarning) Location() string {
	if w.Path != "" {
		return w.Path
	}
	return w.SourceFile
}

// IsGenericSourceName returns true if the source path appears to be a generic
// parser-generated name rather than a meaningful identifier.
// Generic names include empty strings and default names like "ParseBytes.json".
func IsGenericSourceName(sourcePath string) bool {
	if sourcePath == "" {
		return true
	}
	for _, prefix := range []string{"ParseBytes.", "ParseReader."} {
		if strings.HasPrefix(sourcePath, prefix) {
			return true
		}
	}
	return false
}

// NewGenericSourceNameWarning creates a warning when a document has a generic source name.
func NewGenericSourceNameWarning(sourcePath string, docIndex int) *JoinWarning {
	var msg string
	if sourcePath == "" {
		msg = fmt.Sprintf("document %d has empty source name. "+
			"Set ParseResult.SourcePath to a meaningful identifier before joining", docIndex)
	} else {
		msg = fmt.Sprintf("document %d has generic source name '%s'. "+
			"Set ParseResult.SourcePath to a meaningful identifier (e.g., the agent run) before joining", docIndex, sourcePath)
	}
	return &JoinWarning{
		Category:   WarnGenericSourceName,
		Message:    msg,
		SourceFile: sourcePath,
		Severity:   severity.SeverityInfo,
		Context: map[string]any{
			"doc_index":   docIndex,
			"source_path": sourcePath,
		},
	}
}

// NewSingleDocumentWarning creates a warning when only one document was
// joined. The result is that document in normalized form.
func NewSingleDocumentWarning(sourcePath string) *JoinWarning {
	return &JoinWarning{
		Category:   WarnSingleDocument,
		Message:    fmt.Sprintf("only one document (%s) was joined; output is its normalized form", sourcePath),
		SourceFile: sourcePath,
		Severity:   severity.SeverityInfo,
	}
}

// NewDuplicatesFoldedWarning creates a warning when a source listed the same
// key in several entries that were merged while normalizing.
func NewDuplicatesFoldedWarning(sourcePath string, count int) *JoinWarning {
	return &JoinWarning{
		Category:   WarnDuplicatesFolded,
		Message:    fmt.Sprintf("%s: merged %d duplicate entr%s", sourcePath, count, plural(count, "y", "ies")),
		SourceFile: sourcePath,
		Severity:   severity.SeverityInfo,
		Context: map[string]any{
			"count": count,
		},
	}
}

// NewKindInferredWarning creates a warning when a source's kind could only be
// guessed from its content.
func NewKindInferredWarning(sourcePath string, kind metadata.Kind) *JoinWarning {
	return &JoinWarning{
		Category: WarnKindInferred,
		Message: fmt.Sprintf("%s: kind %s inferred from content; name the file %s to make it explicit",
			sourcePath, kind, kind.FileName()),
		SourceFile: sourcePath,
		Severity:   severity.SeverityWarning,
		Context: map[string]any{
			"kind": string(kind),
		},
	}
}

// NewFlagWidenedWarning creates a warning for a class whose merged blanket
// flags are wider than in the listed sources.
func NewFlagWidenedWarning(className string, flags metadata.Flag, sources []string) *JoinWarning {
	return &JoinWarning{
		Category: WarnFlagWidened,
		Path:     className,
		Message: fmt.Sprintf("class %s: blanket access widened to %s (narrower in %s)",
			className, flags, strings.Join(sources, ", ")),
		Severity: severity.SeverityInfo,
		Context: map[string]any{
			"flags":   flags.String(),
			"sources": sources,
		},
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// JoinWarnings is a collection of JoinWarning.
type JoinWarnings []*JoinWarning

// Strings returns the warning messages.
func (ws JoinWarnings) Strings() []string {
	result := make([]string, len(ws))
	for i, w := range ws {
		if w == nil {
			continue
		}
		result[i] = w.String()
	}
	return result
}

// ByCategory filters warnings by category.
func (ws JoinWarnings) ByCategory(cat WarningCategory) JoinWarnings {
	var result JoinWarnings
	for _, w := range ws {
		if w.Category == cat {
			result = append(result, w)
		}
	}
	return result
}

// BySeverity filters warnings by severity.
func (ws JoinWarnings) BySeverity(sev severity.Severity) JoinWarnings {
	var result JoinWarnings
	for _, w := range ws {
		if w.Severity == sev {
			result = append(result, w)
		}
	}
	return result
}

// Summary returns a formatted summary of warnings.
func (ws JoinWarnings) Summary() string {
	if len(ws) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d warning(s):\n", len(ws))
	for _, w := range ws {
		sb.WriteString("  - ")
		sb.WriteString(w.String())
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
