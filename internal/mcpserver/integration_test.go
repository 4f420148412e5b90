package mcpserver

import (
	"context"
	"encoding/json"
	"slices"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startTestSession creates an in-process MCP server/client pair and returns
// the connected client session. The server is shut down when the test ends.
func startTestSession(t *testing.T) *mcp.ClientSession {
	t.Helper()

	server := mcp.NewServer(
		&mcp.Implementation{Name: "reachmeta-test", Version: "test"},
		nil,
	)
	registerAllTools(server)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(
		&mcp.Implementation{Name: "test-client", Version: "test"},
		nil,
	)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		<-done
	})

	return session
}

func unmarshalStructured(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()

	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}

	text := textOf(t, result)
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &m), "failed to parse text content as JSON")
	return m
}

func TestIntegration_ListTools(t *testing.T) {
	session := startTestSession(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)
	require.Len(t, result.Tools, 3)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, "tool %q has empty description", tool.Name)
	}
	for _, name := range []string{"parse", "join", "diff"} {
		assert.True(t, slices.Contains(names, name), "missing tool: %s", name)
	}
}

func TestIntegration_CallTool_Join(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "join",
		Arguments: map[string]any{
			"docs": []any{
				map[string]any{"file": run1JNI},
				map[string]any{"file": run2JNI},
			},
		},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	assert.Equal(t, "jni", structured["kind"])
	assert.Equal(t, float64(2), structured["doc_count"])
	stats, ok := structured["stats"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), stats["classes"])
}

func TestIntegration_CallTool_ParseError(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "parse",
		Arguments: map[string]any{
			"doc":  map[string]any{"file": "../../testdata/malformed.json"},
			"kind": "jni",
		},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
