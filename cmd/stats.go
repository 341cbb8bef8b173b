package cmd

import (
	"github.com/fcuny/git-stats/core"
	"github.com/fcuny/git-stats/internal/contract"
	"github.com/spf13/cobra"
)

// statsCmd ranks contributors across the repository.
var statsCmd = &cobra.Command{
	Use:   "stats [repo-path]",
	Short: "Show contributors ranked by expertise score.",
	Long: `Read Git history and rank contributors by a weighted expertise score.

The score blends four signals per contributor:
- Longevity: how long they have been active in the scope
- Lines: how much code they have added and removed
- Commits: how many commits they have authored
- Recency: what share of their commits fall in the recent window

Scores are normalized within the filtered scope, so a narrow filter ranks
expertise for that slice of the codebase rather than the whole repository.

Examples:
  # Rank everyone who ever touched the repository
  git-stats stats

  # Top 10 contributors to the api/ subtree
  git-stats stats --path api/ --limit 10

  # Who knows the Go code best?
  git-stats stats --language go

  # Activity in a date range, exported to CSV
  git-stats stats --since 2024-01-01 --until 2024-06-30 --output csv --output-file stats.csv

  # Include raw and normalized sub-scores
  git-stats stats --detail`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStats(rootCtx, cfg, gitClient, historyStore); err != nil {
			contract.LogFatal("Cannot run stats analysis", err)
		}
	},
}
