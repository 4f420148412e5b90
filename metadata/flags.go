package metadata

import "strings"

// Flag is a set of blanket access flags. Each bit means "every member of this
// category is required", on top of any explicitly listed members.
type Flag uint8

// Blanket access flags, one per member category and visibility.
const (
	FlagAllDeclaredFields Flag = 1 << iota
	FlagAllPublicFields
	FlagAllDeclaredMethods
	FlagAllPublicMethods
	FlagAllDeclaredConstructors
	FlagAllPublicConstructors
	FlagAllDeclaredClasses
	FlagAllPublicClasses
)

var flagNames = [...]string{
	"allDeclaredFields",
	"allPublicFields",
	"allDeclaredMethods",
	"allPublicMethods",
	"allDeclaredConstructors",
	"allPublicConstructors",
	"allDeclaredClasses",
	"allPublicClasses",
}

// AllFlags returns every single-bit flag in serialization order.
func AllFlags() []Flag {
	flags := make([]Flag, len(flagNames))
	for i := range flagNames {
		flags[i] = 1 << i
	}
	return flags
}

// Has reports whether every bit of other is set in f.
func (f Flag) Has(other Flag) bool {
	return f&other == other
}

// Count returns the number of flags set.
func (f Flag) Count() int {
	n := 0
	for ; f != 0; f &= f - 1 {
		n++
	}
	return n
}

// String renders the set as the JSON key names joined with "|".
func (f Flag) String() string {
	if f == 0 {
		return "none"
	}
	var names []string
	for i, name := range flagNames {
		if f&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}
