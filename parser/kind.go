package parser

import (
	"bytes"
	"encoding/json"

	"github.com/erraggy/reachmeta/metadata"
)

// sniffKind guesses a document kind from decoded JSON. Objects are resource
// documents; arrays whose first entry is an interface list are proxy
// documents. JNI and reflection documents share a layout, so any other array
// is reported as reflect. ok is false when data carries no signal at all.
func sniffKind(data []byte) (kind metadata.Kind, ok bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", false
	}
	if trimmed[0] == '{' {
		return metadata.KindResource, true
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(trimmed, &entries); err != nil || len(entries) == 0 {
		return "", false
	}
	first := bytes.TrimSpace(entries[0])
	if len(first) > 0 && first[0] == '[' {
		return metadata.KindProxy, true
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(first, &probe); err == nil {
		_, hasInterfaces := probe["interfaces"]
		_, hasName := probe["name"]
		if hasInterfaces && !hasName {
			return metadata.KindProxy, true
		}
	}
	return metadata.KindReflect, true
}

// countEntries returns the number of top-level array entries in data, or -1
// when data is not an array.
func countEntries(data []byte) int {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return -1
	}
	return len(entries)
}
