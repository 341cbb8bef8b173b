// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/fcuny/git-stats/schema"
)

// GitClient defines the history-supplier operations. The analysis core never
// talks to git directly; it consumes the raw log this interface yields, which
// lets the pipeline be tested without a git executable.
type GitClient interface {
	// Run executes a git command and returns its stdout.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// GetRepoHash returns the current HEAD commit hash of the repository.
	GetRepoHash(ctx context.Context, repoPath string) (string, error)

	// GetCurrentBranch returns the name of the currently checked-out branch.
	GetCurrentBranch(ctx context.Context, repoPath string) (string, error)

	// GetCommitHistory returns the raw commit log for the current branch with
	// per-file numstat lines, merge commits excluded. A zero since/until leaves
	// that end of the range unbounded.
	GetCommitHistory(ctx context.Context, repoPath string, since, until time.Time) ([]byte, error)
}

// HistoryStore records analysis runs and their resulting scores. It is
// write-only from the pipeline's point of view: results are never read back to
// short-circuit an analysis.
type HistoryStore interface {
	// BeginRun creates a new run row and returns its unique ID.
	BeginRun(command string, startTime time.Time, params map[string]any) (int64, error)

	// EndRun updates the run with completion data.
	EndRun(runID int64, endTime time.Time, totalContributors int) error

	// RecordScores stores the scored contributors for one scope of a run.
	RecordScores(runID int64, scope string, entries []schema.ScoredContributor) error

	// GetStatus returns status information about the store.
	GetStatus() (HistoryStatus, error)

	// Clear removes all recorded runs and scores.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}

// HistoryStatus summarizes the run-tracking store for the status command.
type HistoryStatus struct {
	Backend    schema.DatabaseBackend `json:"backend"`
	Location   string                 `json:"location"`
	RunCount   int64                  `json:"run_count"`
	ScoreCount int64                  `json:"score_count"`
	LastRun    time.Time              `json:"last_run,omitzero"`
}
