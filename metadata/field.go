package metadata

import "strings"

// FieldUsage records that a single field of a class is accessed at runtime.
type FieldUsage struct {
	Name string `json:"name"`
}

// NewFieldUsage returns a FieldUsage for the named field.
func NewFieldUsage(name string) FieldUsage {
	return FieldUsage{Name: name}
}

// Compare orders fields lexicographically by name.
func (f FieldUsage) Compare(other FieldUsage) int {
	return strings.Compare(f.Name, other.Name)
}

// Equal reports whether both fields have the same name.
func (f FieldUsage) Equal(other FieldUsage) bool {
	return f.Name == other.Name
}

// String returns the field name.
func (f FieldUsage) String() string {
	return f.Name
}

func compareFields(a, b FieldUsage) int { return a.Compare(b) }
