// Package parquet provides data structures and functions for exporting
// contributor expertise data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/fcuny/git-stats/schema"
)

// ContributorScore is one ranked contributor entry in Parquet form, produced
// by the stats and dris subcommands. Scope identifies the population the
// score was computed against: "repository", "overall", or a file path.
type ContributorScore struct {
	Scope string `parquet:"scope,snappy"`

	Rank int32 `parquet:"rank,snappy"`

	// Contributor is the canonical "Name <email>" identity string
	Contributor string `parquet:"contributor,snappy"`

	Score float64 `parquet:"score,snappy"`
	Band  string  `parquet:"band,snappy"`

	// Raw metrics backing the score
	LongevityDays float64 `parquet:"longevity_days,snappy"`
	Lines         int32   `parquet:"lines,snappy"`
	Commits       int32   `parquet:"commits,snappy"`
	RecentCommits int32   `parquet:"recent_commits,snappy"`

	// Normalized sub-scores in [0,1]
	NormLongevity float64 `parquet:"norm_longevity,snappy"`
	NormLines     float64 `parquet:"norm_lines,snappy"`
	NormCommits   float64 `parquet:"norm_commits,snappy"`
	NormRecency   float64 `parquet:"norm_recency,snappy"`
}

// Run represents a single analysis run with metadata.
// This struct maps to the gitstats_runs database table.
type Run struct {
	RunID int64 `parquet:"run_id,snappy"`

	Command string `parquet:"command,snappy"`

	// StartTime is when the run began (TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	TotalContributors int32 `parquet:"total_contributors,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// StoredScore represents one persisted contributor score row.
// This struct maps to the gitstats_contributor_scores database table.
type StoredScore struct {
	RunID         int64     `parquet:"run_id,snappy"`
	Scope         string    `parquet:"scope,snappy"`
	Contributor   string    `parquet:"contributor,snappy"`
	Score         float64   `parquet:"score,snappy"`
	Band          string    `parquet:"band,snappy"`
	LongevityDays float64   `parquet:"longevity_days,snappy"`
	Lines         int32     `parquet:"lines,snappy"`
	Commits       int32     `parquet:"commits,snappy"`
	RecentCommits int32     `parquet:"recent_commits,snappy"`
	RecordedAt    time.Time `parquet:"recorded_at,snappy"`
}

// ConvertScoredContributors flattens ranked entries into Parquet rows for one
// scope. Rank is positional, starting at 1.
func ConvertScoredContributors(scope string, entries []schema.ScoredContributor) []ContributorScore {
	rows := make([]ContributorScore, len(entries))
	for i, sc := range entries {
		rows[i] = ContributorScore{
			Scope:         scope,
			Rank:          int32(i + 1),
			Contributor:   sc.Name,
			Score:         sc.Score,
			Band:          string(sc.Band),
			LongevityDays: sc.Raw.Longevity.Hours() / 24,
			Lines:         int32(sc.Raw.Lines),
			Commits:       int32(sc.Raw.Commits),
			RecentCommits: int32(sc.Raw.RecentCommits),
			NormLongevity: sc.Norm.Longevity,
			NormLines:     sc.Norm.Lines,
			NormCommits:   sc.Norm.Commits,
			NormRecency:   sc.Norm.Recency,
		}
	}
	return rows
}

// ConvertExpertRanking flattens a dris result into Parquet rows: one row per
// (file, expert) pair plus the overall scope.
func ConvertExpertRanking(ranking schema.ExpertRanking) []ContributorScore {
	var rows []ContributorScore
	for _, fe := range ranking.Files {
		rows = append(rows, ConvertScoredContributors(fe.Path, fe.Experts)...)
	}
	rows = append(rows, ConvertScoredContributors("overall", ranking.Overall)...)
	return rows
}

// ConvertRunRecords converts schema.RunRecord rows for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, r := range records {
		result[i] = Run{
			RunID:             r.RunID,
			Command:           r.Command,
			StartTime:         r.StartTime,
			EndTime:           r.EndTime,
			RunDurationMs:     r.RunDurationMs,
			TotalContributors: r.TotalContributors,
			ConfigParams:      r.ConfigParams,
		}
	}
	return result
}

// ConvertScoreRecords converts schema.ScoreRecord rows for Parquet export.
func ConvertScoreRecords(records []schema.ScoreRecord) []StoredScore {
	result := make([]StoredScore, len(records))
	for i, r := range records {
		result[i] = StoredScore{
			RunID:         r.RunID,
			Scope:         r.Scope,
			Contributor:   r.Contributor,
			Score:         r.Score,
			Band:          r.Band,
			LongevityDays: r.LongevityDays,
			Lines:         r.Lines,
			Commits:       r.Commits,
			RecentCommits: r.RecentCommits,
			RecordedAt:    r.RecordedAt,
		}
	}
	return result
}

// WriteContributorScores writes contributor score rows to w in Parquet
// format. The schema is inferred from the ContributorScore struct tags.
func WriteContributorScores(w io.Writer, rows []ContributorScore) error {
	return writeRows(w, rows)
}

// WriteRunsParquet writes run metadata rows to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeFile(outputPath, data)
}

// WriteStoredScoresParquet writes persisted score rows to a Parquet file.
func WriteStoredScoresParquet(data []StoredScore, outputPath string) error {
	return writeFile(outputPath, data)
}

func writeFile[T any](outputPath string, data []T) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return writeRows(file, data)
}

func writeRows[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
