package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/reachmeta/differ"
)

type diffInput struct {
	Base     docInput `json:"base"              jsonschema:"The base metadata document"`
	Revision docInput `json:"revision"          jsonschema:"The revised metadata document to compare against the base"`
	Kind     string   `json:"kind,omitempty"    jsonschema:"Force the kind of both documents: jni or reflect or proxy or resource"`
	NoInfo   bool     `json:"no_info,omitempty" jsonschema:"Suppress informational changes (added access)"`
}

type diffChange struct {
	Severity string `json:"severity"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Path     string `json:"path"`
	Message  string `json:"message"`
}

type diffOutput struct {
	Kind          string       `json:"kind"`
	TotalChanges  int          `json:"total_changes"`
	BreakingCount int          `json:"breaking_count"`
	WarningCount  int          `json:"warning_count"`
	InfoCount     int          `json:"info_count"`
	Changes       []diffChange `json:"changes,omitempty"`
	Summary       string       `json:"summary"`
}

func handleDiff(_ context.Context, _ *mcp.CallToolRequest, input diffInput) (*mcp.CallToolResult, diffOutput, error) {
	kind, err := parseKind(input.Kind)
	if err != nil {
		return errResult(err), diffOutput{}, nil
	}
	base, err := input.Base.resolve(kind, cfg.CanonicalTypes)
	if err != nil {
		return errResult(fmt.Errorf("base: %w", err)), diffOutput{}, nil
	}
	revision, err := input.Revision.resolve(kind, cfg.CanonicalTypes)
	if err != nil {
		return errResult(fmt.Errorf("revision: %w", err)), diffOutput{}, nil
	}

	result, err := differ.DiffWithOptions(
		differ.WithSourceParsed(*base),
		differ.WithTargetParsed(*revision),
		differ.WithIncludeInfo(!input.NoInfo),
	)
	if err != nil {
		return errResult(err), diffOutput{}, nil
	}

	output := diffOutput{
		Kind:          string(result.Kind),
		TotalChanges:  len(result.Changes),
		BreakingCount: result.BreakingCount,
		WarningCount:  result.WarningCount,
		InfoCount:     result.InfoCount,
	}
	output.Changes = makeSlice[diffChange](len(result.Changes))
	for _, c := range result.Changes {
		output.Changes = append(output.Changes, diffChange{
			Severity: c.Severity.String(),
			Type:     string(c.Type),
			Category: string(c.Category),
			Path:     c.Path,
			Message:  c.Message,
		})
	}
	output.Summary = buildDiffSummary(output)
	return nil, output, nil
}

func buildDiffSummary(output diffOutput) string {
	if output.TotalChanges == 0 {
		return "No differences found."
	}
	summary := "Found " + formatCount(output.TotalChanges, "change") + ": " +
		formatCount(output.BreakingCount, "breaking change") + ", " +
		formatCount(output.WarningCount, "warning") + ", " +
		formatCount(output.InfoCount, "informational change") + "."
	return summary
}
