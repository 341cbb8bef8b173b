// Package core wires the analysis pipeline: history retrieval, parsing,
// aggregation, scoring and ranking.
package core

import (
	"context"
	"errors"
	"time"

	"github.com/fcuny/git-stats/core/agg"
	"github.com/fcuny/git-stats/core/algo"
	"github.com/fcuny/git-stats/core/parse"
	"github.com/fcuny/git-stats/internal/contract"
	"github.com/fcuny/git-stats/schema"
)

// ErrNoFilesRequested is returned when a dris query carries an empty file set.
var ErrNoFilesRequested = errors.New("no files requested for expert ranking")

// aggOptions builds the aggregation options from the validated config.
func aggOptions(cfg *contract.Config) agg.Options {
	return agg.Options{
		Now:           cfg.Now,
		RecencyMonths: cfg.RecencyMonths,
	}
}

// GetStatsResults runs the full pipeline for the contribution leaderboard and
// returns the ranked contributors plus the count of malformed commit blocks
// skipped along the way. No I/O beyond the git client happens here; callers
// own presentation and run tracking.
func GetStatsResults(ctx context.Context, cfg *contract.Config, client contract.GitClient) ([]schema.ScoredContributor, int, error) {
	out, err := client.GetCommitHistory(ctx, cfg.RepoPath, cfg.Since, cfg.Until)
	if err != nil {
		return nil, 0, err
	}

	// The date range is passed to git as an optimization, but the commit-level
	// check in the scope is authoritative.
	scope := agg.StatsScope{
		PathFilter: cfg.PathFilter,
		Extensions: cfg.Extensions,
		Since:      cfg.Since,
		Until:      cfg.Until,
	}

	stream := parse.NewStream(out)
	stats, malformed := agg.AggregateBlocks(stream.Blocks(), scope, aggOptions(cfg), cfg.Workers)
	board := algo.BuildLeaderboard(stats, cfg.Weights, cfg.ResultLimit)
	return board, malformed, nil
}

// GetDRIsResults runs the full pipeline for per-file expert rankings. The
// whole branch history is consumed; scoping to the requested files happens
// during aggregation.
func GetDRIsResults(ctx context.Context, cfg *contract.Config, client contract.GitClient) (schema.ExpertRanking, int, error) {
	if len(cfg.Files) == 0 {
		return schema.ExpertRanking{}, 0, ErrNoFilesRequested
	}

	out, err := client.GetCommitHistory(ctx, cfg.RepoPath, time.Time{}, time.Time{})
	if err != nil {
		return schema.ExpertRanking{}, 0, err
	}

	scope := agg.NewFileSetScope(cfg.Files)
	stream := parse.NewStream(out)
	stats, malformed := agg.AggregateBlocks(stream.Blocks(), scope, aggOptions(cfg), cfg.Workers)
	ranking := algo.BuildExpertRanking(stats, cfg.Files, cfg.Weights, cfg.TopN)
	return ranking, malformed, nil
}
