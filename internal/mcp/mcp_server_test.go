package mcp_test

import (
	"context"
	"testing"

	"github.com/fcuny/git-stats/internal/contract"
	mcp_internal "github.com/fcuny/git-stats/internal/mcp"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{
		RepoPath:      ".",
		RecencyMonths: contract.DefaultRecencyMonths,
		TopN:          contract.DefaultTopN,
	}

	// Validation failures happen before the git client is touched
	var client contract.GitClient
	s := mcp_internal.NewMCPServer(baseCfg, client)

	ctx := context.Background()

	t.Run("get_contributor_stats unknown language", func(t *testing.T) {
		tool := s.GetTool("get_contributor_stats")
		require.NotNil(t, tool, "Tool get_contributor_stats should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_contributor_stats",
				Arguments: map[string]any{
					"language": "cobol",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "unknown language")
	})

	t.Run("get_contributor_stats invalid date", func(t *testing.T) {
		tool := s.GetTool("get_contributor_stats")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_contributor_stats",
				Arguments: map[string]any{
					"since": "not-a-date",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid since date")
	})

	t.Run("get_contributor_stats inverted range", func(t *testing.T) {
		tool := s.GetTool("get_contributor_stats")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_contributor_stats",
				Arguments: map[string]any{
					"since": "2024-06-01",
					"until": "2024-01-01",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "cannot precede")
	})

	t.Run("get_file_experts empty file list", func(t *testing.T) {
		tool := s.GetTool("get_file_experts")
		require.NotNil(t, tool, "Tool get_file_experts should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_file_experts",
				Arguments: map[string]any{
					"files": "",
					"top":   0.0, // Invalid
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "top must be at least 1")
	})
}
