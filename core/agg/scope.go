package agg

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/fcuny/git-stats/schema"
)

// Scope decides which commits and file paths contribute to an aggregation.
// Commit-level and path-level filtering are separate: a commit rejected by
// AllowCommit contributes nothing even if some of its files would match.
type Scope interface {
	AllowCommit(rec schema.CommitRecord) bool
	AllowPath(path string) bool
}

// StatsScope filters the leaderboard population: optional path substring,
// optional extension set, optional [since, until] date range applied at the
// commit level.
type StatsScope struct {
	PathFilter string
	Extensions map[string]struct{}
	Since      time.Time
	Until      time.Time
}

// AllowCommit implements the Scope interface.
func (s StatsScope) AllowCommit(rec schema.CommitRecord) bool {
	if !s.Since.IsZero() && rec.Timestamp.Before(s.Since) {
		return false
	}
	if !s.Until.IsZero() && rec.Timestamp.After(s.Until) {
		return false
	}
	return true
}

// AllowPath implements the Scope interface.
func (s StatsScope) AllowPath(path string) bool {
	if s.PathFilter != "" && !strings.Contains(path, s.PathFilter) {
		return false
	}
	if len(s.Extensions) > 0 {
		if _, ok := s.Extensions[strings.ToLower(filepath.Ext(path))]; !ok {
			return false
		}
	}
	return true
}

// FileSetScope filters to an explicit set of file paths. Matching is exact on
// the current, post-rename path only; a renamed file's old path never matches
// its new name.
type FileSetScope struct {
	paths map[string]struct{}
}

// NewFileSetScope creates a scope matching exactly the given paths.
func NewFileSetScope(paths []string) FileSetScope {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return FileSetScope{paths: set}
}

// AllowCommit implements the Scope interface.
func (s FileSetScope) AllowCommit(schema.CommitRecord) bool {
	return true
}

// AllowPath implements the Scope interface.
func (s FileSetScope) AllowPath(path string) bool {
	_, ok := s.paths[path]
	return ok
}
