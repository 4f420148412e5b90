package metadata

import (
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/erraggy/reachmeta/merge"
	"github.com/erraggy/reachmeta/metaerrors"
)

// ClassConfig is a JNI or reflection metadata document: a list of ClassUsage
// records sorted by class name with at most one record per name.
//
// A ClassConfig is immutable. MergeWith returns a new document and the
// accessors return copies.
type ClassConfig struct {
	kind    Kind
	classes []ClassUsage
}

// NewClassConfig returns a JNI document holding classes. Records sharing a
// name are merged.
func NewClassConfig(classes ...ClassUsage) (ClassConfig, error) {
	return newClassConfig(KindJNI, classes)
}

// NewReflectConfig returns a reflection document holding classes. Records
// sharing a name are merged.
func NewReflectConfig(classes ...ClassUsage) (ClassConfig, error) {
	return newClassConfig(KindReflect, classes)
}

func newClassConfig(kind Kind, classes []ClassUsage) (ClassConfig, error) {
	normalized := make([]ClassUsage, len(classes))
	for i, c := range classes {
		normalized[i] = c.Normalize()
	}
	folded, err := merge.Keyed(normalized, ClassUsage.Key, ClassUsage.MergeWith)
	if err != nil {
		return ClassConfig{}, err
	}
	return ClassConfig{kind: kind, classes: folded}, nil
}

// Kind returns KindJNI or KindReflect. The zero value is a JNI document.
func (c ClassConfig) Kind() Kind {
	if c.kind == "" {
		return KindJNI
	}
	return c.kind
}

// AsKind returns a copy of the document labelled with another class-list
// kind.
func (c ClassConfig) AsKind(kind Kind) (ClassConfig, error) {
	if !kind.isClassKind() {
		return ClassConfig{}, &metaerrors.ConfigError{
			Option:  "kind",
			Value:   string(kind),
			Message: "class documents are jni or reflect",
		}
	}
	return ClassConfig{kind: kind, classes: c.classes}, nil
}

// Len returns the number of classes.
func (c ClassConfig) Len() int {
	return len(c.classes)
}

// Classes returns a copy of the classes in canonical order.
func (c ClassConfig) Classes() []ClassUsage {
	out := make([]ClassUsage, len(c.classes))
	for i, cls := range c.classes {
		out[i] = cls.Normalize()
	}
	return out
}

// Names returns the class names in canonical order.
func (c ClassConfig) Names() []string {
	names := make([]string, len(c.classes))
	for i, cls := range c.classes {
		names[i] = cls.Name
	}
	return names
}

// All yields a copy of each class in canonical order.
func (c ClassConfig) All() iter.Seq[ClassUsage] {
	return func(yield func(ClassUsage) bool) {
		for _, cls := range c.classes {
			if !yield(cls.Normalize()) {
				return
			}
		}
	}
}

// Get returns the class with the given name.
func (c ClassConfig) Get(name string) (ClassUsage, bool) {
	i, found := slices.BinarySearchFunc(c.classes, name, func(cls ClassUsage, n string) int {
		return strings.Compare(cls.Name, n)
	})
	if !found {
		return ClassUsage{}, false
	}
	return c.classes[i].Normalize(), true
}

// Contains reports whether every expected class is present with exactly the
// same content. It is a membership test, not document equality.
func (c ClassConfig) Contains(expected ...ClassUsage) bool {
	for _, want := range expected {
		got, ok := c.Get(want.Name)
		if !ok || !got.Equal(want) {
			return false
		}
	}
	return true
}

// Equal reports whether both documents hold structurally equal classes.
// The kind label is not compared.
func (c ClassConfig) Equal(other ClassConfig) bool {
	return slices.EqualFunc(c.classes, other.classes, ClassUsage.Equal)
}

// MergeWith merges two documents by class name. Classes present on one side
// only are carried over unchanged; classes present on both are merged with
// ClassUsage.MergeWith.
func (c ClassConfig) MergeWith(other ClassConfig) (ClassConfig, error) {
	if c.Kind() != other.Kind() {
		return ClassConfig{}, &metaerrors.KindMismatchError{
			Expected: string(c.Kind()),
			Actual:   string(other.Kind()),
		}
	}
	all := make([]ClassUsage, 0, len(c.classes)+len(other.classes))
	all = append(all, c.classes...)
	all = append(all, other.classes...)
	return newClassConfig(c.Kind(), all)
}

// MarshalJSON encodes the document as an array of class entries.
func (c ClassConfig) MarshalJSON() ([]byte, error) {
	if c.classes == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.classes)
}

// UnmarshalJSON decodes an array of class entries. Entries without a name, or
// with empty method, field or parameter type names, are rejected with a
// *metaerrors.ValidationError. So are methods without a parameterTypes list:
// "run" with unknown parameters is not the same record as "run()".
func (c *ClassConfig) UnmarshalJSON(data []byte) error {
	var raw []ClassUsage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var shapes []classShape
	if err := json.Unmarshal(data, &shapes); err != nil {
		return err
	}
	for i, cls := range raw {
		if err := validateClass(i, cls, shapes[i]); err != nil {
			return err
		}
	}
	decoded, err := newClassConfig(c.Kind(), raw)
	if err != nil {
		return err
	}
	*c = decoded
	return nil
}

// classShape records which optional keys a decoded class entry spelled out.
type classShape struct {
	Methods []struct {
		ParameterTypes *[]string `json:"parameterTypes"`
	} `json:"methods"`
}

func validateClass(i int, c ClassUsage, shape classShape) error {
	at := fmt.Sprintf("[%d]", i)
	if strings.TrimSpace(c.Name) == "" {
		return &metaerrors.ValidationError{Path: at, Field: "name", Index: i, Message: "class entry requires a name"}
	}
	for j, m := range c.Methods {
		mat := fmt.Sprintf("%s.methods[%d]", at, j)
		if strings.TrimSpace(m.Name) == "" {
			return &metaerrors.ValidationError{Path: mat, Field: "name", Index: i, Message: "method entry requires a name"}
		}
		if j < len(shape.Methods) && shape.Methods[j].ParameterTypes == nil {
			return &metaerrors.ValidationError{
				Path:    mat,
				Field:   "parameterTypes",
				Index:   i,
				Message: "method entry requires a parameterTypes list",
			}
		}
		for k, p := range m.ParameterTypes {
			if strings.TrimSpace(p) == "" {
				return &metaerrors.ValidationError{
					Path:    mat,
					Field:   fmt.Sprintf("parameterTypes[%d]", k),
					Index:   i,
					Message: "parameter type must not be empty",
				}
			}
		}
	}
	for j, f := range c.Fields {
		if strings.TrimSpace(f.Name) == "" {
			return &metaerrors.ValidationError{
				Path:    fmt.Sprintf("%s.fields[%d]", at, j),
				Field:   "name",
				Index:   i,
				Message: "field entry requires a name",
			}
		}
	}
	return nil
}
