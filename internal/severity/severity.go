// Package severity provides the severity levels attached to join warnings
// and document differences.
//
// Levels in increasing order of importance:
//   - SeverityInfo: informational notes about how inputs were combined
//   - SeverityWarning: results that are valid but worth a second look
//   - SeverityError: changes that can make a native image fail at runtime
//   - SeverityCritical: reserved for problems that lose metadata
package severity

import "fmt"

// Severity indicates how important a warning or change is.
type Severity int

const (
	// SeverityError indicates a change that can make a native image fail at
	// runtime, such as a removed class or method.
	SeverityError Severity = iota

	// SeverityWarning indicates a valid result that deserves review, such as a
	// document kind guessed from its content.
	SeverityWarning

	// SeverityInfo indicates an informational note.
	SeverityInfo

	// SeverityCritical indicates metadata was lost.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Rank orders severities from least (0) to most (3) important.
func (s Severity) Rank() int {
	switch s {
	case SeverityInfo:
		return 0
	case SeverityWarning:
		return 1
	case SeverityError:
		return 2
	case SeverityCritical:
		return 3
	default:
		return -1
	}
}

// MarshalText encodes the severity by name for JSON and YAML output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	for _, candidate := range []Severity{SeverityInfo, SeverityWarning, SeverityError, SeverityCritical} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("severity: unknown level %q", text)
}
