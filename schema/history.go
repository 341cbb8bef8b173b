package schema

import "time"

// RunRecord mirrors one row of the gitstats_runs table.
type RunRecord struct {
	RunID             int64      `json:"run_id"`
	Command           string     `json:"command"`
	StartTime         time.Time  `json:"start_time"`
	EndTime           *time.Time `json:"end_time,omitempty"`
	RunDurationMs     *int32     `json:"run_duration_ms,omitempty"`
	TotalContributors int32      `json:"total_contributors"`
	ConfigParams      *string    `json:"config_params,omitempty"`
}

// ScoreRecord mirrors one row of the gitstats_contributor_scores table. Scope
// is the population the score was computed against: "repository", "overall",
// or a file path.
type ScoreRecord struct {
	RunID         int64     `json:"run_id"`
	Scope         string    `json:"scope"`
	Contributor   string    `json:"contributor"`
	Score         float64   `json:"score"`
	Band          string    `json:"band"`
	LongevityDays float64   `json:"longevity_days"`
	Lines         int32     `json:"lines"`
	Commits       int32     `json:"commits"`
	RecentCommits int32     `json:"recent_commits"`
	RecordedAt    time.Time `json:"recorded_at"`
}
