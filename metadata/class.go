package metadata

import (
	"strings"

	"github.com/erraggy/reachmeta/merge"
	"github.com/erraggy/reachmeta/metaerrors"
)

// ClassUsage aggregates everything accessed at runtime on one class: explicit
// methods and fields plus eight blanket access flags. The fully qualified
// class name is the merge key.
//
// ClassUsage is a value type. Use NewClassUsage or Normalize to obtain the
// canonical form, in which Methods and Fields are sorted and deduplicated.
// Operations never modify their receiver or arguments.
type ClassUsage struct {
	Name    string        `json:"name"`
	Methods []MethodUsage `json:"methods,omitempty"`
	Fields  []FieldUsage  `json:"fields,omitempty"`

	AllDeclaredFields       bool `json:"allDeclaredFields"`
	AllPublicFields         bool `json:"allPublicFields"`
	AllDeclaredMethods      bool `json:"allDeclaredMethods"`
	AllPublicMethods        bool `json:"allPublicMethods"`
	AllDeclaredConstructors bool `json:"allDeclaredConstructors"`
	AllPublicConstructors   bool `json:"allPublicConstructors"`
	AllDeclaredClasses      bool `json:"allDeclaredClasses"`
	AllPublicClasses        bool `json:"allPublicClasses"`
}

// ClassOption configures a ClassUsage built by NewClassUsage.
type ClassOption func(*ClassUsage)

// NewClassUsage returns a normalized ClassUsage for the named class.
func NewClassUsage(name string, opts ...ClassOption) ClassUsage {
	c := ClassUsage{Name: name}
	for _, opt := range opts {
		opt(&c)
	}
	return c.Normalize()
}

// WithMethods adds methods to the class.
func WithMethods(methods ...MethodUsage) ClassOption {
	return func(c *ClassUsage) {
		c.Methods = append(c.Methods, methods...)
	}
}

// WithFields adds fields to the class.
func WithFields(fields ...FieldUsage) ClassOption {
	return func(c *ClassUsage) {
		c.Fields = append(c.Fields, fields...)
	}
}

// WithFieldNames adds fields by name.
func WithFieldNames(names ...string) ClassOption {
	return func(c *ClassUsage) {
		for _, n := range names {
			c.Fields = append(c.Fields, FieldUsage{Name: n})
		}
	}
}

// WithFlags sets every flag in f.
func WithFlags(f Flag) ClassOption {
	return func(c *ClassUsage) {
		c.setFlags(c.Flags() | f)
	}
}

// WithAllDeclaredFields sets allDeclaredFields.
func WithAllDeclaredFields() ClassOption { return WithFlags(FlagAllDeclaredFields) }

// WithAllPublicFields sets allPublicFields.
func WithAllPublicFields() ClassOption { return WithFlags(FlagAllPublicFields) }

// WithAllDeclaredMethods sets allDeclaredMethods.
func WithAllDeclaredMethods() ClassOption { return WithFlags(FlagAllDeclaredMethods) }

// WithAllPublicMethods sets allPublicMethods.
func WithAllPublicMethods() ClassOption { return WithFlags(FlagAllPublicMethods) }

// WithAllDeclaredConstructors sets allDeclaredConstructors.
func WithAllDeclaredConstructors() ClassOption { return WithFlags(FlagAllDeclaredConstructors) }

// WithAllPublicConstructors sets allPublicConstructors.
func WithAllPublicConstructors() ClassOption { return WithFlags(FlagAllPublicConstructors) }

// WithAllDeclaredClasses sets allDeclaredClasses.
func WithAllDeclaredClasses() ClassOption { return WithFlags(FlagAllDeclaredClasses) }

// WithAllPublicClasses sets allPublicClasses.
func WithAllPublicClasses() ClassOption { return WithFlags(FlagAllPublicClasses) }

// Flags returns the blanket access flags as a set.
func (c ClassUsage) Flags() Flag {
	var f Flag
	for i, set := range c.flagValues() {
		if set {
			f |= 1 << i
		}
	}
	return f
}

func (c ClassUsage) flagValues() [8]bool {
	return [8]bool{
		c.AllDeclaredFields,
		c.AllPublicFields,
		c.AllDeclaredMethods,
		c.AllPublicMethods,
		c.AllDeclaredConstructors,
		c.AllPublicConstructors,
		c.AllDeclaredClasses,
		c.AllPublicClasses,
	}
}

func (c *ClassUsage) setFlags(f Flag) {
	c.AllDeclaredFields = f.Has(FlagAllDeclaredFields)
	c.AllPublicFields = f.Has(FlagAllPublicFields)
	c.AllDeclaredMethods = f.Has(FlagAllDeclaredMethods)
	c.AllPublicMethods = f.Has(FlagAllPublicMethods)
	c.AllDeclaredConstructors = f.Has(FlagAllDeclaredConstructors)
	c.AllPublicConstructors = f.Has(FlagAllPublicConstructors)
	c.AllDeclaredClasses = f.Has(FlagAllDeclaredClasses)
	c.AllPublicClasses = f.Has(FlagAllPublicClasses)
}

// Key returns the merge key, the class name.
func (c ClassUsage) Key() string {
	return c.Name
}

// Compare orders classes by name only.
func (c ClassUsage) Compare(other ClassUsage) int {
	return strings.Compare(c.Name, other.Name)
}

// Normalize returns a deep copy of c with methods and fields sorted into
// canonical order and deduplicated.
func (c ClassUsage) Normalize() ClassUsage {
	n := ClassUsage{
		Name:    c.Name,
		Methods: unionMethods(c.Methods),
		Fields:  merge.Union(compareFields, c.Fields),
	}
	n.setFlags(c.Flags())
	return n
}

// Equal reports structural equality: same name, same flags and the same
// method and field sets. Member order is ignored; parameter order is not.
func (c ClassUsage) Equal(other ClassUsage) bool {
	if c.Name != other.Name || c.Flags() != other.Flags() {
		return false
	}
	a, b := c.Normalize(), other.Normalize()
	if len(a.Methods) != len(b.Methods) || len(a.Fields) != len(b.Fields) {
		return false
	}
	for i := range a.Methods {
		if !a.Methods[i].Equal(b.Methods[i]) {
			return false
		}
	}
	for i := range a.Fields {
		if !a.Fields[i].Equal(b.Fields[i]) {
			return false
		}
	}
	return true
}

// MergeWith combines two usages of the same class. Each flag is the logical OR
// of both sides and the method and field sets are unioned. Merging classes
// with different names fails with a *metaerrors.NameMismatchError.
func (c ClassUsage) MergeWith(other ClassUsage) (ClassUsage, error) {
	if c.Name != other.Name {
		return ClassUsage{}, &metaerrors.NameMismatchError{Kind: "class", Left: c.Name, Right: other.Name}
	}
	merged := ClassUsage{
		Name:    c.Name,
		Methods: unionMethods(c.Methods, other.Methods),
		Fields:  merge.Union(compareFields, c.Fields, other.Fields),
	}
	merged.setFlags(c.Flags() | other.Flags())
	return merged, nil
}

// HasMethod reports whether the method with the given signature is listed.
func (c ClassUsage) HasMethod(name string, parameterTypes ...string) bool {
	want := MethodUsage{Name: name, ParameterTypes: parameterTypes}
	for _, m := range c.Methods {
		if m.Equal(want) {
			return true
		}
	}
	return false
}

// HasField reports whether the named field is listed.
func (c ClassUsage) HasField(name string) bool {
	for _, f := range c.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

func unionMethods(sets ...[]MethodUsage) []MethodUsage {
	out := merge.Union(compareMethods, sets...)
	for i := range out {
		out[i] = out[i].clone()
	}
	return out
}
