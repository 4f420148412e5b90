package metadata

import (
	"encoding/json"
	"slices"
	"strings"
)

// MethodUsage records that a method or constructor with a specific signature
// is accessed at runtime. Constructors are named "<init>".
//
// Overloads are distinct records: two MethodUsage values are equal only when
// the name and the ordered parameter type list are identical.
type MethodUsage struct {
	Name           string   `json:"name"`
	ParameterTypes []string `json:"parameterTypes"`
}

// NewMethodUsage returns a MethodUsage with a copy of parameterTypes.
func NewMethodUsage(name string, parameterTypes ...string) MethodUsage {
	return MethodUsage{Name: name, ParameterTypes: parameterTypes}.clone()
}

// Compare orders methods by name, then element-wise by parameter types.
// A parameter list that is a proper prefix of another sorts first.
func (m MethodUsage) Compare(other MethodUsage) int {
	if c := strings.Compare(m.Name, other.Name); c != 0 {
		return c
	}
	return slices.Compare(m.ParameterTypes, other.ParameterTypes)
}

// Equal reports whether both methods have the same name and signature.
func (m MethodUsage) Equal(other MethodUsage) bool {
	return m.Name == other.Name && slices.Equal(m.ParameterTypes, other.ParameterTypes)
}

// String renders the method as name(T1,T2).
func (m MethodUsage) String() string {
	return m.Name + "(" + strings.Join(m.ParameterTypes, ",") + ")"
}

// MarshalJSON always emits parameterTypes, as an empty list for methods
// without parameters.
func (m MethodUsage) MarshalJSON() ([]byte, error) {
	type Alias MethodUsage
	a := Alias(m)
	if a.ParameterTypes == nil {
		a.ParameterTypes = []string{}
	}
	return json.Marshal(a)
}

// clone deep-copies m. An empty parameter list becomes nil so decoded and
// constructed records compare identical.
func (m MethodUsage) clone() MethodUsage {
	c := MethodUsage{Name: m.Name}
	if len(m.ParameterTypes) > 0 {
		c.ParameterTypes = slices.Clone(m.ParameterTypes)
	}
	return c
}

func compareMethods(a, b MethodUsage) int { return a.Compare(b) }
