package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/fcuny/git-stats/internal/contract"
	"github.com/fcuny/git-stats/internal/parquet"
	"github.com/fcuny/git-stats/schema"
)

// PrintLeaderboard outputs the contribution leaderboard, dispatching based on
// the output format configured.
func PrintLeaderboard(entries []schema.ScoredContributor, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLeaderboardJSON(w, entries)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoresCSV(w, "repository", entries, fmtFloat, intFmt)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteContributorScores(w, parquet.ConvertScoredContributors("repository", entries))
		}, "Wrote Parquet")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLeaderboardTable(entries, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
}

// writeLeaderboardTable generates and writes the human-readable table.
func writeLeaderboardTable(entries []schema.ScoredContributor, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Contributor", "Score", "Band"}
	if cfg.Detail {
		headers = append(headers, "Commits", "Lines", "Days", "Recent", "NLong", "NLines", "NCommits", "NRecency")
	}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, sc := range entries {
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(sc.Name, getMaxTableNameWidth(cfg)),
			fmtFloat(sc.Score),
			bandLabel(cfg.UseColors, sc.Score),
		}
		if cfg.Detail {
			row = append(row,
				fmt.Sprintf(intFmt, sc.Raw.Commits),
				fmt.Sprintf(intFmt, sc.Raw.Lines),
				fmt.Sprintf(intFmt, longevityDays(sc.Raw.Longevity)),
				fmt.Sprintf(intFmt, sc.Raw.RecentCommits),
				fmtFloat(sc.Norm.Longevity),
				fmtFloat(sc.Norm.Lines),
				fmtFloat(sc.Norm.Commits),
				fmtFloat(sc.Norm.Recency),
			)
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	totalCommits := 0
	totalLines := 0
	for _, sc := range entries {
		totalCommits += sc.Raw.Commits
		totalLines += sc.Raw.Lines
	}
	if _, err := fmt.Fprintf(writer, "Showing %d contributors (total commits: %d, total lines changed: %d)\n", len(entries), totalCommits, totalLines); err != nil {
		return err
	}
	return writeRunFooter(writer, cfg, duration)
}

// writeScoresCSV writes ranked entries in CSV format under one scope label.
func writeScoresCSV(w io.Writer, scope string, entries []schema.ScoredContributor, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"rank",
		"scope",
		"contributor",
		"score",
		"band",
		"commits",
		"lines",
		"longevity_days",
		"recent_commits",
		"norm_longevity",
		"norm_lines",
		"norm_commits",
		"norm_recency",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		return writeScoreRows(csvWriter, scope, entries, fmtFloat, intFmt)
	})
}

// writeScoreRows writes one CSV row per ranked entry, without a header.
func writeScoreRows(w *csv.Writer, scope string, entries []schema.ScoredContributor, fmtFloat func(float64) string, intFmt string) error {
	for i, sc := range entries {
		rec := []string{
			strconv.Itoa(i + 1),
			scope,
			sc.Name,
			fmtFloat(sc.Score),
			contract.GetPlainLabel(sc.Score),
			fmt.Sprintf(intFmt, sc.Raw.Commits),
			fmt.Sprintf(intFmt, sc.Raw.Lines),
			fmt.Sprintf(intFmt, longevityDays(sc.Raw.Longevity)),
			fmt.Sprintf(intFmt, sc.Raw.RecentCommits),
			fmtFloat(sc.Norm.Longevity),
			fmtFloat(sc.Norm.Lines),
			fmtFloat(sc.Norm.Commits),
			fmtFloat(sc.Norm.Recency),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeLeaderboardJSON writes the leaderboard in JSON format with rank added.
func writeLeaderboardJSON(w io.Writer, entries []schema.ScoredContributor) error {
	type JSONEntry struct {
		Rank int `json:"rank"`
		schema.ScoredContributor
	}

	output := make([]JSONEntry, len(entries))
	for i, sc := range entries {
		output[i] = JSONEntry{
			Rank:              i + 1,
			ScoredContributor: sc,
		}
	}
	return writeJSON(w, output)
}
