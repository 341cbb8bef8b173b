// Package algo has the scoring and ranking logic for contributor expertise.
package algo

import (
	"time"

	"github.com/fcuny/git-stats/core/agg"
	"github.com/fcuny/git-stats/schema"
)

// Population maps each author to their merged statistics within one scope.
type Population = map[schema.Identity]*schema.ContributorFileStats

// CollapseByAuthor merges per-(author, path) stats into per-author stats.
// With no paths given the whole map collapses (the union population); with
// paths, only entries for those exact paths contribute. Input entries are
// never mutated.
func CollapseByAuthor(stats agg.StatsMap, paths ...string) Population {
	var pathSet map[string]struct{}
	if len(paths) > 0 {
		pathSet = make(map[string]struct{}, len(paths))
		for _, p := range paths {
			pathSet[p] = struct{}{}
		}
	}

	pop := make(Population)
	for key, st := range stats {
		if pathSet != nil {
			if _, ok := pathSet[key.Path]; !ok {
				continue
			}
		}
		merged := pop[key.Author]
		if merged == nil {
			clone := *st
			clone.Path = ""
			pop[key.Author] = &clone
			continue
		}
		merged.Merge(st)
	}
	return pop
}

// ScorePopulation normalizes a scope's population and applies the weighted
// formula. Normalization denominators are the population's own maxima, so the
// full population must be materialized before calling; partial input produces
// wrong denominators, not partial output. The returned slice is unsorted.
func ScorePopulation(pop Population, weights schema.Weights) []schema.ScoredContributor {
	var maxLongevity time.Duration
	var maxLines, maxCommits int
	for _, st := range pop {
		maxLongevity = max(maxLongevity, st.Longevity())
		maxLines = max(maxLines, st.TotalLinesChanged)
		maxCommits = max(maxCommits, st.CommitCount)
	}

	scored := make([]schema.ScoredContributor, 0, len(pop))
	for author, st := range pop {
		norm := schema.NormalizedMetrics{
			Longevity: safeRatio(float64(st.Longevity()), float64(maxLongevity)),
			Lines:     safeRatio(float64(st.TotalLinesChanged), float64(maxLines)),
			Commits:   safeRatio(float64(st.CommitCount), float64(maxCommits)),
			// Self-relative: the share of this author's own commits that are
			// recent, not a comparison against peers.
			Recency: safeRatio(float64(st.RecentCommitCount), float64(st.CommitCount)),
		}
		score := weights.Apply(norm)
		scored = append(scored, schema.ScoredContributor{
			Author: author,
			Name:   author.String(),
			Score:  score,
			Band:   schema.BandFor(score),
			Raw: schema.RawMetrics{
				Longevity:     st.Longevity(),
				Lines:         st.TotalLinesChanged,
				Commits:       st.CommitCount,
				RecentCommits: st.RecentCommitCount,
			},
			Norm: norm,
		})
	}
	return scored
}

// safeRatio divides with a zero-denominator guard: a scope-wide maximum of
// zero normalizes to 0, never a division fault.
func safeRatio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
