package metadata

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/reachmeta/merge"
	"github.com/erraggy/reachmeta/metaerrors"
)

// ResourcePattern is a regular expression matching resource paths.
type ResourcePattern struct {
	Pattern string `json:"pattern"`
}

func compareResourcePatterns(a, b ResourcePattern) int {
	return strings.Compare(a.Pattern, b.Pattern)
}

// ResourceBundle names a resource bundle and, optionally, the locales it is
// loaded for.
type ResourceBundle struct {
	Name    string   `json:"name"`
	Locales []string `json:"locales,omitempty"`
}

// Key returns the bundle name.
func (b ResourceBundle) Key() string { return b.Name }

// MergeWith unions the locales of two entries for the same bundle.
func (b ResourceBundle) MergeWith(other ResourceBundle) (ResourceBundle, error) {
	if b.Name != other.Name {
		return ResourceBundle{}, &metaerrors.NameMismatchError{Kind: "bundle", Left: b.Name, Right: other.Name}
	}
	return ResourceBundle{Name: b.Name, Locales: merge.Union(strings.Compare, b.Locales, other.Locales)}, nil
}

// Equal reports whether both bundles have the same name and locale set.
func (b ResourceBundle) Equal(other ResourceBundle) bool {
	return b.Name == other.Name &&
		slices.Equal(merge.Normalize(strings.Compare, b.Locales), merge.Normalize(strings.Compare, other.Locales))
}

// ResourceConfig is a resource metadata document: include and exclude
// patterns plus resource bundles.
type ResourceConfig struct {
	includes []ResourcePattern
	excludes []ResourcePattern
	bundles  []ResourceBundle
}

// NewResourceConfig returns a normalized resource document.
func NewResourceConfig(includes, excludes []ResourcePattern, bundles []ResourceBundle) (ResourceConfig, error) {
	return mergeResources(ResourceConfig{includes: includes, excludes: excludes, bundles: bundles})
}

func mergeResources(docs ...ResourceConfig) (ResourceConfig, error) {
	var includes, excludes [][]ResourcePattern
	var bundles []ResourceBundle
	for _, d := range docs {
		includes = append(includes, d.includes)
		excludes = append(excludes, d.excludes)
		for _, b := range d.bundles {
			bundles = append(bundles, ResourceBundle{Name: b.Name, Locales: merge.Normalize(strings.Compare, b.Locales)})
		}
	}
	folded, err := merge.Keyed(bundles, ResourceBundle.Key, ResourceBundle.MergeWith)
	if err != nil {
		return ResourceConfig{}, err
	}
	return ResourceConfig{
		includes: merge.Union(compareResourcePatterns, includes...),
		excludes: merge.Union(compareResourcePatterns, excludes...),
		bundles:  folded,
	}, nil
}

// Kind returns KindResource.
func (c ResourceConfig) Kind() Kind { return KindResource }

// Len returns the total number of patterns and bundles.
func (c ResourceConfig) Len() int {
	return len(c.includes) + len(c.excludes) + len(c.bundles)
}

// Includes returns a copy of the include patterns in canonical order.
func (c ResourceConfig) Includes() []ResourcePattern { return slices.Clone(c.includes) }

// Excludes returns a copy of the exclude patterns in canonical order.
func (c ResourceConfig) Excludes() []ResourcePattern { return slices.Clone(c.excludes) }

// Bundles returns a copy of the bundles in canonical order.
func (c ResourceConfig) Bundles() []ResourceBundle {
	out := make([]ResourceBundle, len(c.bundles))
	for i, b := range c.bundles {
		out[i] = ResourceBundle{Name: b.Name, Locales: slices.Clone(b.Locales)}
	}
	return out
}

// Equal reports whether both documents hold the same patterns and bundles.
func (c ResourceConfig) Equal(other ResourceConfig) bool {
	return slices.Equal(c.includes, other.includes) &&
		slices.Equal(c.excludes, other.excludes) &&
		slices.EqualFunc(c.bundles, other.bundles, ResourceBundle.Equal)
}

// MergeWith unions patterns and merges bundles by name.
func (c ResourceConfig) MergeWith(other ResourceConfig) (ResourceConfig, error) {
	return mergeResources(c, other)
}

type resourceSection struct {
	Includes []ResourcePattern `json:"includes,omitempty"`
	Excludes []ResourcePattern `json:"excludes,omitempty"`
}

type resourceDocument struct {
	Resources resourceSection  `json:"resources"`
	Bundles   []ResourceBundle `json:"bundles,omitempty"`
}

// MarshalJSON encodes the document as
// {"resources":{"includes":[...],"excludes":[...]},"bundles":[...]}.
func (c ResourceConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(resourceDocument{
		Resources: resourceSection{Includes: c.includes, Excludes: c.excludes},
		Bundles:   c.bundles,
	})
}

// UnmarshalJSON decodes the object form and also accepts the legacy form in
// which "resources" is a bare array of include patterns.
func (c *ResourceConfig) UnmarshalJSON(data []byte) error {
	var raw struct {
		Resources json.RawMessage  `json:"resources"`
		Bundles   []ResourceBundle `json:"bundles"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var section resourceSection
	if len(raw.Resources) > 0 && raw.Resources[0] == '[' {
		if err := json.Unmarshal(raw.Resources, &section.Includes); err != nil {
			return err
		}
	} else if len(raw.Resources) > 0 && string(raw.Resources) != "null" {
		if err := json.Unmarshal(raw.Resources, &section); err != nil {
			return err
		}
	}

	if err := validatePatterns("resources.includes", section.Includes); err != nil {
		return err
	}
	if err := validatePatterns("resources.excludes", section.Excludes); err != nil {
		return err
	}
	for i, b := range raw.Bundles {
		if strings.TrimSpace(b.Name) == "" {
			return &metaerrors.ValidationError{
				Path:    fmt.Sprintf("bundles[%d]", i),
				Field:   "name",
				Index:   i,
				Message: "bundle entry requires a name",
			}
		}
	}

	decoded, err := NewResourceConfig(section.Includes, section.Excludes, raw.Bundles)
	if err != nil {
		return err
	}
	*c = decoded
	return nil
}

func validatePatterns(at string, patterns []ResourcePattern) error {
	for i, p := range patterns {
		if p.Pattern == "" {
			return &metaerrors.ValidationError{
				Path:    fmt.Sprintf("%s[%d]", at, i),
				Field:   "pattern",
				Index:   i,
				Message: "resource entry requires a pattern",
			}
		}
	}
	return nil
}
