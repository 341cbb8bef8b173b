package core

import (
	"context"
	"fmt"
	"time"

	"github.com/fcuny/git-stats/internal/contract"
	"github.com/fcuny/git-stats/internal/outwriter"
	"github.com/fcuny/git-stats/schema"
)

// ExecutorFunc defines the function signature for executing a subcommand.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, client contract.GitClient, store contract.HistoryStore) error

// ExecuteStats runs the leaderboard analysis and prints results.
// It serves as the main entry point for the 'stats' subcommand.
func ExecuteStats(ctx context.Context, cfg *contract.Config, client contract.GitClient, store contract.HistoryStore) error {
	start := time.Now()
	params := withRepoHash(ctx, client, store, cfg.RepoPath, map[string]any{
		"repo_path":      cfg.RepoPath,
		"path_filter":    cfg.PathFilter,
		"language":       cfg.Language,
		"recency_months": cfg.RecencyMonths,
		"workers":        cfg.Workers,
		"result_limit":   cfg.ResultLimit,
	})
	runID := beginRun(store, "stats", start, params)

	board, malformed, err := GetStatsResults(ctx, cfg, client)
	if err != nil {
		return err
	}
	warnMalformed(malformed)

	recordScores(store, runID, "repository", board)
	endRun(store, runID, len(board))

	duration := time.Since(start)
	return outwriter.PrintLeaderboard(board, cfg, duration)
}

// ExecuteDRIs runs the per-file expert analysis and prints results.
// It serves as the main entry point for the 'dris' subcommand.
func ExecuteDRIs(ctx context.Context, cfg *contract.Config, client contract.GitClient, store contract.HistoryStore) error {
	start := time.Now()
	params := withRepoHash(ctx, client, store, cfg.RepoPath, map[string]any{
		"repo_path":      cfg.RepoPath,
		"files":          len(cfg.Files),
		"top_n":          cfg.TopN,
		"recency_months": cfg.RecencyMonths,
		"workers":        cfg.Workers,
	})
	runID := beginRun(store, "dris", start, params)

	ranking, malformed, err := GetDRIsResults(ctx, cfg, client)
	if err != nil {
		return err
	}
	warnMalformed(malformed)

	for _, fe := range ranking.Files {
		recordScores(store, runID, fe.Path, fe.Experts)
	}
	recordScores(store, runID, "overall", ranking.Overall)
	endRun(store, runID, len(ranking.Overall))

	duration := time.Since(start)
	return outwriter.PrintExpertRanking(ranking, cfg, duration)
}

// warnMalformed surfaces skipped commit blocks. Malformed history degrades to
// a partial result, never a failure.
func warnMalformed(count int) {
	if count > 0 {
		contract.LogWarn("Commit parsing", fmt.Errorf("skipped %d malformed commit block(s)", count))
	}
}

// withRepoHash stamps the run parameters with the analyzed HEAD commit so a
// stored run can be traced back to the exact repository state. The lookup is
// skipped without a store and tolerated on failure; the run is recorded
// without it.
func withRepoHash(ctx context.Context, client contract.GitClient, store contract.HistoryStore, repoPath string, params map[string]any) map[string]any {
	if store == nil {
		return params
	}
	if hash, err := client.GetRepoHash(ctx, repoPath); err == nil {
		params["repo_hash"] = hash
	}
	return params
}

// beginRun starts run tracking if a store is configured. Tracking failures
// are warnings only; they never block the analysis.
func beginRun(store contract.HistoryStore, command string, startTime time.Time, params map[string]any) int64 {
	if store == nil {
		return 0
	}
	runID, err := store.BeginRun(command, startTime, params)
	if err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
		return 0
	}
	return runID
}

// recordScores persists one scope's scored entries under the active run.
func recordScores(store contract.HistoryStore, runID int64, scope string, entries []schema.ScoredContributor) {
	if store == nil || runID <= 0 || len(entries) == 0 {
		return
	}
	if err := store.RecordScores(runID, scope, entries); err != nil {
		contract.LogWarn("Failed to record scores", err)
	}
}

// endRun finalizes run tracking.
func endRun(store contract.HistoryStore, runID int64, totalContributors int) {
	if store == nil || runID <= 0 {
		return
	}
	if err := store.EndRun(runID, time.Now(), totalContributors); err != nil {
		contract.LogWarn("Failed to finalize run tracking", err)
	}
}
