package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/eacdiff/mcp"
)

func TestRegisterTools(t *testing.T) {
	s := server.NewMCPServer("eacdiff-test", "0.0.0", server.WithToolCapabilities(true))
	mcp.RegisterTools(s)

	message := s.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	raw, err := json.Marshal(message)
	require.NoError(t, err)

	var response struct {
		Result struct {
			Tools []struct {
				Name        string `json:"name"`
				InputSchema struct {
					Required   []string               `json:"required"`
					Properties map[string]interface{} `json:"properties"`
				} `json:"inputSchema"`
			} `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(raw, &response))

	tools := make(map[string][]string)
	for _, tool := range response.Result.Tools {
		tools[tool.Name] = tool.InputSchema.Required
		if tool.Name != mcp.ToolListMembers {
			assert.Contains(t, tool.InputSchema.Properties, "distance_levels", tool.Name)
			assert.Contains(t, tool.InputSchema.Properties, "output_mode", tool.Name)
		}
	}

	require.Len(t, tools, 3)
	assert.ElementsMatch(t, []string{"old_source", "new_source"}, tools[mcp.ToolCompareSources])
	assert.ElementsMatch(t, []string{"old_path", "new_path"}, tools[mcp.ToolCompareFiles])
	assert.Empty(t, tools[mcp.ToolListMembers])
}
