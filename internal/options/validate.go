// Package options provides shared utilities for option validation across packages.
package options

import (
	"strings"

	"github.com/erraggy/reachmeta/metaerrors"
)

// Source names an input option and whether it was supplied.
type Source struct {
	Name string
	Set  bool
}

// SingleInputSource ensures exactly one of sources is set. The returned
// error lists the option names so callers can tell which ones to use.
func SingleInputSource(sources ...Source) error {
	names := make([]string, 0, len(sources))
	var set []string
	for _, s := range sources {
		names = append(names, s.Name)
		if s.Set {
			set = append(set, s.Name)
		}
	}

	switch len(set) {
	case 1:
		return nil
	case 0:
		return &metaerrors.ConfigError{
			Option:  "input",
			Message: "must specify an input source (use " + joinOr(names) + ")",
		}
	default:
		return &metaerrors.ConfigError{
			Option:  "input",
			Message: "must specify exactly one input source, got " + strings.Join(set, " and "),
		}
	}
}

// NonNegative rejects negative values for a numeric option.
func NonNegative(option string, v int) error {
	if v < 0 {
		return &metaerrors.ConfigError{Option: option, Value: v, Message: "cannot be negative"}
	}
	return nil
}

func joinOr(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}
