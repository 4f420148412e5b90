package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/reachmeta/metadata"
	"github.com/erraggy/reachmeta/parser"
)

type parseInput struct {
	Doc            docInput `json:"doc"                       jsonschema:"The metadata document to parse"`
	Kind           string   `json:"kind,omitempty"            jsonschema:"Document kind: jni or reflect or proxy or resource. Detected when omitted."`
	CanonicalTypes *bool    `json:"canonical_types,omitempty" jsonschema:"Rewrite JVM descriptor type names such as [Ljava.lang.String; to source form"`
	Full           bool     `json:"full,omitempty"            jsonschema:"Return the normalized document in addition to the summary"`
}

type parseOutput struct {
	Source           string         `json:"source"`
	Kind             string         `json:"kind"`
	KindInferred     bool           `json:"kind_inferred,omitempty"`
	Format           string         `json:"format"`
	Stats            metadata.Stats `json:"stats"`
	DuplicatesFolded int            `json:"duplicates_folded,omitempty"`
	FullDocument     string         `json:"full_document,omitempty"`
	Summary          string         `json:"summary"`
}

func canonicalOrDefault(v *bool) bool {
	if v == nil {
		return cfg.CanonicalTypes
	}
	return *v
}

func handleParse(_ context.Context, _ *mcp.CallToolRequest, input parseInput) (*mcp.CallToolResult, parseOutput, error) {
	kind, err := parseKind(input.Kind)
	if err != nil {
		return errResult(err), parseOutput{}, nil
	}
	result, err := input.Doc.resolve(kind, canonicalOrDefault(input.CanonicalTypes))
	if err != nil {
		return errResult(err), parseOutput{}, nil
	}

	output := parseOutput{
		Source:           result.SourcePath,
		Kind:             string(result.Kind),
		KindInferred:     result.KindInferred,
		Format:           string(result.SourceFormat),
		Stats:            result.Stats,
		DuplicatesFolded: result.DuplicatesFolded(),
	}
	output.Summary = fmt.Sprintf("Parsed %s document with %s.", result.Kind, formatCount(result.Stats.Entries, "record"))
	if output.DuplicatesFolded > 0 {
		output.Summary += " " + formatCount(output.DuplicatesFolded, "duplicate record") + " merged."
	}

	if input.Full {
		data, err := parser.Marshal(result.Document, result.SourceFormat)
		if err != nil {
			return errResult(err), parseOutput{}, nil
		}
		output.FullDocument = string(data)
	}

	return nil, output, nil
}
