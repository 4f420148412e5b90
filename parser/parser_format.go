package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/reachmeta/metadata"
)

// FormatBytes formats a byte count using binary units (KiB, MiB, ...).
func FormatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

// detectFormatFromPath detects the source format from a file path or URL.
func detectFormatFromPath(path string) SourceFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent treats input starting with '{' or '[' as JSON and
// anything else as YAML.
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// yamlToJSON converts a YAML document to JSON so every format shares one
// decoder.
func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// Marshal encodes doc in its canonical form. JSON output is indented by two
// spaces and ends with a newline. YAML output keeps the JSON key order.
func Marshal(doc metadata.Document, format SourceFormat) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("parser: failed to encode %s document: %w", doc.Kind(), err)
	}
	if format != SourceFormatYAML {
		return append(data, '\n'), nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	node, err := jsonToNode(dec)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to convert %s document to YAML: %w", doc.Kind(), err)
	}
	out, err := yaml.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to encode %s document as YAML: %w", doc.Kind(), err)
	}
	return out, nil
}

// jsonToNode builds a yaml.Node from a JSON token stream, keeping object keys
// in their encoded order.
func jsonToNode(dec *json.Decoder) (*yaml.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if t == '{' {
			node = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		}
		for dec.More() {
			if node.Kind == yaml.MappingNode {
				key, err := dec.Token()
				if err != nil {
					return nil, err
				}
				node.Content = append(node.Content, scalar("!!str", fmt.Sprint(key)))
			}
			child, err := jsonToNode(dec)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		if node.Kind == yaml.SequenceNode && len(node.Content) == 0 {
			node.Style = yaml.FlowStyle
		}
		return node, nil
	case string:
		return scalar("!!str", t), nil
	case bool:
		return scalar("!!bool", strconv.FormatBool(t)), nil
	case json.Number:
		return scalar("!!int", t.String()), nil
	case nil:
		return scalar("!!null", "null"), nil
	default:
		return nil, fmt.Errorf("unexpected JSON token %v", tok)
	}
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
