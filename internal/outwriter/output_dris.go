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

// PrintExpertRanking outputs the per-file expert ranking, dispatching based
// on the output format configured.
func PrintExpertRanking(ranking schema.ExpertRanking, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, ranking)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeExpertRankingCSV(w, ranking, fmtFloat, intFmt)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteContributorScores(w, parquet.ConvertExpertRanking(ranking))
		}, "Wrote Parquet")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeExpertRankingTables(ranking, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
}

// writeExpertRankingTables writes one table per requested file, then the
// overall ranking table.
func writeExpertRankingTables(ranking schema.ExpertRanking, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	for _, fe := range ranking.Files {
		title := contract.TruncatePath(fe.Path, getMaxTableNameWidth(cfg))
		if _, err := fmt.Fprintf(writer, "Experts for %s:\n", title); err != nil {
			return err
		}
		if len(fe.Experts) == 0 {
			if _, err := fmt.Fprintln(writer, "  (no contributor history)"); err != nil {
				return err
			}
			continue
		}
		if err := writeExpertTable(fe.Experts, cfg, fmtFloat, intFmt, writer); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(writer, "Overall ranking:"); err != nil {
		return err
	}
	if err := writeExpertTable(ranking.Overall, cfg, fmtFloat, intFmt, writer); err != nil {
		return err
	}

	return writeRunFooter(writer, cfg, duration)
}

// writeExpertTable renders one ranked table of experts.
func writeExpertTable(entries []schema.ScoredContributor, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Contributor", "Score", "Band"}
	if cfg.Detail {
		headers = append(headers, "Commits", "Lines", "Days", "Recent")
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
			)
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeExpertRankingCSV flattens the ranking into CSV rows: one row per
// (file, expert) pair plus the overall scope.
func writeExpertRankingCSV(w io.Writer, ranking schema.ExpertRanking, fmtFloat func(float64) string, intFmt string) error {
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
		for _, fe := range ranking.Files {
			if err := writeScoreRows(csvWriter, fe.Path, fe.Experts, fmtFloat, intFmt); err != nil {
				return err
			}
		}
		return writeScoreRows(csvWriter, "overall", ranking.Overall, fmtFloat, intFmt)
	})
}
