// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/fcuny/git-stats/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the git-stats MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, client contract.GitClient) *server.MCPServer {
	s := server.NewMCPServer(
		"Git Contributor Stats Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		client:  client,
	}

	// --- 1. Tool: get_contributor_stats ---
	s.AddTool(mcp.NewTool("get_contributor_stats",
		mcp.WithDescription("Analyze git history to rank contributors by expertise across the repository."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to the server's working repository).")),
		mcp.WithString("path", mcp.Description("Only count changes to files whose path contains this substring.")),
		mcp.WithString("language", mcp.Description("Only count changes to files of this language (e.g. 'go', 'python').")),
		mcp.WithString("since", mcp.Description("Only count commits authored on or after this date (YYYY-MM-DD).")),
		mcp.WithString("until", mcp.Description("Only count commits authored on or before this date (YYYY-MM-DD).")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of contributors returned.")),
	), h.handleGetContributorStats)

	// --- 2. Tool: get_file_experts ---
	s.AddTool(mcp.NewTool("get_file_experts",
		mcp.WithDescription("Find the top experts for specific files, plus an overall ranking across those files."),
		mcp.WithString("files", mcp.Description("Comma-separated list of file paths to find experts for."), mcp.Required()),
		mcp.WithNumber("top", mcp.Description("Number of experts to return per file. Defaults to 3.")),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
	), h.handleGetFileExperts)

	return s
}

// StartMCPServer starts the git-stats MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, client contract.GitClient) error {
	s := NewMCPServer(baseCfg, client)
	return server.ServeStdio(s)
}
