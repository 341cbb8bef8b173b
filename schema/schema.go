// Package schema has the data model, constants and scoring weights for all parts of git-stats.
package schema

import "time"

// Identity is a contributor identity as recorded in a commit's author field.
// The raw (name, email) pair is the key: two emails for the same person are
// two distinct contributors.
type Identity struct {
	Name  string
	Email string
}

// String renders the identity in the canonical "Name <email>" form used for
// display and for deterministic tie-breaking.
func (i Identity) String() string {
	return i.Name + " <" + i.Email + ">"
}

// FileChange is one numstat line of a commit. A rename line carries only the
// new path, zero line counts and the old path as a marker; the new path
// inherits no history from the old one.
type FileChange struct {
	Path    string
	Added   int
	Removed int
	OldPath string // non-empty when the line denoted a rename
}

// CommitRecord is one parsed commit block. It is created once per block and
// never mutated afterwards.
type CommitRecord struct {
	SHA       string
	Author    Identity
	Timestamp time.Time
	Files     []FileChange
}

// ContribKey keys aggregated statistics by (author identity, file path).
type ContribKey struct {
	Author Identity
	Path   string
}

// ContributorFileStats holds the running statistics for one (author, path)
// pair. All fields update through min/max/sum only, so the aggregation is
// commutative and partial aggregates merge cleanly.
type ContributorFileStats struct {
	Author            Identity
	Path              string
	FirstSeen         time.Time
	LastSeen          time.Time
	TotalLinesChanged int
	CommitCount       int
	RecentCommitCount int
}

// Observe folds one qualifying (commit, file-change) pair into the stats.
func (s *ContributorFileStats) Observe(ts time.Time, lines int, recent bool) {
	if s.CommitCount == 0 || ts.Before(s.FirstSeen) {
		s.FirstSeen = ts
	}
	if s.CommitCount == 0 || ts.After(s.LastSeen) {
		s.LastSeen = ts
	}
	s.CommitCount++
	s.TotalLinesChanged += lines
	if recent {
		s.RecentCommitCount++
	}
}

// Merge folds another partial aggregate for the same (author, path) pair into
// this one. Per-field min/max/sum keeps the reduction order-independent.
func (s *ContributorFileStats) Merge(other *ContributorFileStats) {
	if s.CommitCount == 0 {
		*s = *other
		return
	}
	if other.CommitCount == 0 {
		return
	}
	if other.FirstSeen.Before(s.FirstSeen) {
		s.FirstSeen = other.FirstSeen
	}
	if other.LastSeen.After(s.LastSeen) {
		s.LastSeen = other.LastSeen
	}
	s.TotalLinesChanged += other.TotalLinesChanged
	s.CommitCount += other.CommitCount
	s.RecentCommitCount += other.RecentCommitCount
}

// Longevity is the span between the first and last qualifying commit.
func (s *ContributorFileStats) Longevity() time.Duration {
	return s.LastSeen.Sub(s.FirstSeen)
}

// RawMetrics are the four unscaled inputs to scoring, kept for display.
type RawMetrics struct {
	Longevity     time.Duration `json:"longevity_ns"`
	Lines         int           `json:"lines"`
	Commits       int           `json:"commits"`
	RecentCommits int           `json:"recent_commits"`
}

// NormalizedMetrics are the four scoring inputs rescaled to [0,1] within one
// scope. Longevity, lines and commits are population-relative; recency is
// self-relative (share of that author's own commits inside the window).
type NormalizedMetrics struct {
	Longevity float64 `json:"longevity"`
	Lines     float64 `json:"lines"`
	Commits   float64 `json:"commits"`
	Recency   float64 `json:"recency"`
}

// ScoredContributor is one ranked entry: the final weighted score plus the raw
// and normalized sub-scores backing it. Ephemeral, recomputed per query.
type ScoredContributor struct {
	Author Identity          `json:"-"`
	Name   string            `json:"contributor"`
	Score  float64           `json:"score"`
	Band   ExpertiseBand     `json:"band"`
	Raw    RawMetrics        `json:"raw"`
	Norm   NormalizedMetrics `json:"normalized"`
}

// FileExperts pairs a requested file path with its ranked experts.
type FileExperts struct {
	Path    string              `json:"path"`
	Experts []ScoredContributor `json:"experts"`
}

// ExpertRanking is the dris result: ranked experts per requested file plus one
// overall ranking computed over the union population of all requested files.
type ExpertRanking struct {
	Files   []FileExperts       `json:"files"`
	Overall []ScoredContributor `json:"overall"`
}
