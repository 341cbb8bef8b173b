package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fcuny/git-stats/core"
	"github.com/fcuny/git-stats/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	client  contract.GitClient
}

func (h *toolHandler) handleGetContributorStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}

	err := contract.RevalidateStatsScope(cfg,
		request.GetString("path", ""),
		request.GetString("language", ""),
		request.GetString("since", ""),
		request.GetString("until", ""),
		request.GetInt("limit", 0))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid stats parameters: %v", err)), nil
	}

	board, malformed, err := core.GetStatsResults(ctx, cfg, h.client)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	if malformed > 0 {
		contract.LogWarn("parse", fmt.Errorf("skipped %d malformed commit blocks", malformed))
	}

	jsonData, _ := json.MarshalIndent(board, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetFileExperts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}

	err := contract.RevalidateFiles(cfg,
		request.GetString("files", ""),
		request.GetInt("top", contract.DefaultTopN))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid expert parameters: %v", err)), nil
	}

	ranking, malformed, err := core.GetDRIsResults(ctx, cfg, h.client)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("expert lookup failed: %v", err)), nil
	}
	if malformed > 0 {
		contract.LogWarn("parse", fmt.Errorf("skipped %d malformed commit blocks", malformed))
	}

	jsonData, _ := json.MarshalIndent(ranking, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
