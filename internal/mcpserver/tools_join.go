package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/reachmeta/internal/fileutil"
	"github.com/erraggy/reachmeta/joiner"
	"github.com/erraggy/reachmeta/metadata"
	"github.com/erraggy/reachmeta/parser"
)

type joinInput struct {
	Docs           []docInput `json:"docs"                      jsonschema:"Metadata documents to merge, all of the same kind (minimum 1)"`
	Kind           string     `json:"kind,omitempty"            jsonschema:"Force the kind of every document: jni or reflect or proxy or resource"`
	CanonicalTypes *bool      `json:"canonical_types,omitempty" jsonschema:"Rewrite JVM descriptor type names before merging"`
	Output         string     `json:"output,omitempty"          jsonschema:"File path to write the merged document. If omitted the result is returned inline."`
}

type joinWarning struct {
	Category string `json:"category"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type joinOutput struct {
	DocCount     int            `json:"doc_count"`
	Kind         string         `json:"kind"`
	Stats        metadata.Stats `json:"stats"`
	Digest       string         `json:"digest"`
	WarningCount int            `json:"warning_count"`
	Warnings     []joinWarning  `json:"warnings,omitempty"`
	WrittenTo    string         `json:"written_to,omitempty"`
	Document     string         `json:"document,omitempty"`
	Summary      string         `json:"summary"`
}

func handleJoin(ctx context.Context, _ *mcp.CallToolRequest, input joinInput) (*mcp.CallToolResult, joinOutput, error) {
	if len(input.Docs) == 0 {
		return errResult(fmt.Errorf("at least 1 document is required for joining")), joinOutput{}, nil
	}
	if len(input.Docs) > cfg.MaxJoinDocs {
		return errResult(fmt.Errorf("too many documents: got %d, maximum is %d; set REACHMETA_MAX_JOIN_DOCS to increase",
			len(input.Docs), cfg.MaxJoinDocs)), joinOutput{}, nil
	}
	kind, err := parseKind(input.Kind)
	if err != nil {
		return errResult(err), joinOutput{}, nil
	}
	canonical := canonicalOrDefault(input.CanonicalTypes)

	parsed := make([]parser.ParseResult, 0, len(input.Docs))
	for i, doc := range input.Docs {
		result, err := doc.resolve(kind, canonical)
		if err != nil {
			return errResult(fmt.Errorf("docs[%d]: %w", i, err)), joinOutput{}, nil
		}
		parsed = append(parsed, *result)
	}

	opts := []joiner.Option{joiner.WithParsed(parsed...), joiner.WithContext(ctx)}
	if kind != "" {
		opts = append(opts, joiner.WithKind(kind))
	}
	result, err := joiner.JoinWithOptions(opts...)
	if err != nil {
		return errResult(err), joinOutput{}, nil
	}

	digest, err := result.Digest()
	if err != nil {
		return errResult(err), joinOutput{}, nil
	}
	output := joinOutput{
		DocCount:     len(input.Docs),
		Kind:         string(result.Kind),
		Stats:        result.Stats,
		Digest:       digest,
		WarningCount: len(result.StructuredWarnings),
	}
	output.Warnings = makeSlice[joinWarning](len(result.StructuredWarnings))
	for _, w := range result.StructuredWarnings {
		output.Warnings = append(output.Warnings, joinWarning{
			Category: string(w.Category),
			Severity: w.Severity.String(),
			Message:  w.Message,
		})
	}
	output.Summary = buildJoinSummary(output)

	data, err := parser.Marshal(result.Document, result.SourceFormat)
	if err != nil {
		return errResult(err), joinOutput{}, nil
	}

	if input.Output != "" {
		cleanPath, pathErr := fileutil.SanitizeOutputPath(input.Output)
		if pathErr != nil {
			return errResult(fmt.Errorf("invalid output path: %w", pathErr)), joinOutput{}, nil
		}
		if err := fileutil.WriteOwnerOnly(cleanPath, data); err != nil {
			return errResult(err), joinOutput{}, nil
		}
		output.WrittenTo = cleanPath
	} else {
		output.Document = string(data)
	}

	return nil, output, nil
}

func buildJoinSummary(output joinOutput) string {
	summary := "Merged " + formatCount(output.DocCount, "document") + " into a " + output.Kind +
		" document with " + formatCount(output.Stats.Entries, "record") + "."
	if output.WarningCount > 0 {
		summary += " " + formatCount(output.WarningCount, "warning") + "."
	}
	return summary
}
