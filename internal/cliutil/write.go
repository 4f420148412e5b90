// Package cliutil provides utilities for CLI operations.
package cliutil

import (
	"fmt"
	"io"
	"os"

	"github.com/erraggy/reachmeta/metadata"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// WriteStats writes one "label: count" line per populated statistic, indented
// by prefix. Entries is always written.
func WriteStats(w io.Writer, prefix string, s metadata.Stats) {
	Writef(w, "%sEntries: %d\n", prefix, s.Entries)
	lines := []struct {
		label string
		n     int
	}{
		{"Classes", s.Classes},
		{"Methods", s.Methods},
		{"Fields", s.Fields},
		{"Blanket flags", s.BlanketFlags},
		{"Proxies", s.Proxies},
		{"Proxy interfaces", s.ProxyInterfaces},
		{"Resource includes", s.ResourceIncludes},
		{"Resource excludes", s.ResourceExcludes},
		{"Bundles", s.Bundles},
	}
	for _, l := range lines {
		if l.n > 0 {
			Writef(w, "%s%s: %d\n", prefix, l.label, l.n)
		}
	}
}

// WriteList writes a "title (n):" header followed by one bullet per item.
// Nothing is written for an empty list.
func WriteList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	Writef(w, "%s (%d):\n", title, len(items))
	for _, item := range items {
		Writef(w, "  - %s\n", item)
	}
}
