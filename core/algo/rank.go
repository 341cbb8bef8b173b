package algo

import (
	"sort"

	"github.com/fcuny/git-stats/core/agg"
	"github.com/fcuny/git-stats/schema"
)

// Rank sorts scored contributors into the deterministic display order: score
// descending, then commit count descending, then "name <email>" ascending.
// A positive limit truncates the result; limit <= 0 keeps everything.
func Rank(entries []schema.ScoredContributor, limit int) []schema.ScoredContributor {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		if entries[i].Raw.Commits != entries[j].Raw.Commits {
			return entries[i].Raw.Commits > entries[j].Raw.Commits
		}
		return entries[i].Name < entries[j].Name
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// BuildLeaderboard collapses, scores and ranks a whole-scope population for
// the stats leaderboard.
func BuildLeaderboard(stats agg.StatsMap, weights schema.Weights, limit int) []schema.ScoredContributor {
	return Rank(ScorePopulation(CollapseByAuthor(stats), weights), limit)
}

// BuildExpertRanking produces the dris result: top-N experts per requested
// file, each scored within that file's own population, plus an overall
// ranking computed as a fresh normalization over the union population of all
// requested files. The overall list is never an average of per-file scores;
// averaging numbers normalized against different denominators would not be
// self-consistent.
func BuildExpertRanking(stats agg.StatsMap, files []string, weights schema.Weights, topN int) schema.ExpertRanking {
	ranking := schema.ExpertRanking{
		Files: make([]schema.FileExperts, 0, len(files)),
	}
	for _, f := range files {
		pop := CollapseByAuthor(stats, f)
		ranking.Files = append(ranking.Files, schema.FileExperts{
			Path:    f,
			Experts: Rank(ScorePopulation(pop, weights), topN),
		})
	}
	ranking.Overall = Rank(ScorePopulation(CollapseByAuthor(stats), weights), topN)
	return ranking
}
