// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"golang.org/x/term"

	"github.com/fcuny/git-stats/internal/contract"
	"github.com/fcuny/git-stats/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the
// core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteLeaderboard prints the contribution leaderboard using the configured
// output format.
func (ow *OutWriter) WriteLeaderboard(entries []schema.ScoredContributor, cfg *contract.Config, duration time.Duration) error {
	return PrintLeaderboard(entries, cfg, duration)
}

// WriteExpertRanking prints the per-file expert ranking using the configured
// output format.
func (ow *OutWriter) WriteExpertRanking(ranking schema.ExpertRanking, cfg *contract.Config, duration time.Duration) error {
	return PrintExpertRanking(ranking, cfg, duration)
}

// getMaxTableNameWidth calculates the maximum width for contributor names and
// file paths in table output based on terminal width and table configuration.
func getMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for fixed columns with table formatting
	baseWidth := 25 // Rank + Score + Band with borders/padding

	if cfg.Detail {
		baseWidth += 60 // All raw and normalized sub-score columns
	}

	// Table borders, separators, padding
	baseWidth += 15

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}
