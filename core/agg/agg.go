// Package agg folds commit records into per-(contributor, file) statistics.
package agg

import (
	"iter"
	"sync"
	"time"

	"github.com/fcuny/git-stats/core/parse"
	"github.com/fcuny/git-stats/schema"
)

// Options carries the reference instant and recency window for aggregation.
// Both are plain values fixed at query time; nothing here is global state.
type Options struct {
	Now           time.Time
	RecencyMonths int
}

// recencyCutoff returns the start of the trailing recency window.
func (o Options) recencyCutoff() time.Time {
	return o.Now.AddDate(0, -o.RecencyMonths, 0)
}

// StatsMap maps (author, path) to the running statistics for that pair.
type StatsMap = map[schema.ContribKey]*schema.ContributorFileStats

// Aggregate folds a commit record sequence into fully materialized
// per-(author, path) statistics. The update is min/max/sum only, so the
// result is independent of commit processing order.
func Aggregate(records iter.Seq[schema.CommitRecord], scope Scope, opts Options) StatsMap {
	stats := make(StatsMap)
	cutoff := opts.recencyCutoff()
	for rec := range records {
		observe(stats, rec, scope, cutoff)
	}
	return stats
}

// observe applies one commit to the stats map.
func observe(stats StatsMap, rec schema.CommitRecord, scope Scope, cutoff time.Time) {
	if !scope.AllowCommit(rec) {
		return
	}
	recent := !rec.Timestamp.Before(cutoff)
	for _, fc := range rec.Files {
		if !scope.AllowPath(fc.Path) {
			continue
		}
		key := schema.ContribKey{Author: rec.Author, Path: fc.Path}
		st := stats[key]
		if st == nil {
			st = &schema.ContributorFileStats{Author: rec.Author, Path: fc.Path}
			stats[key] = st
		}
		st.Observe(rec.Timestamp, fc.Added+fc.Removed, recent)
	}
}

// Merge folds src into dst. Because the per-pair reduction is commutative and
// associative, partial maps built over disjoint chunks of history merge into
// the same result a single pass would produce.
func Merge(dst, src StatsMap) {
	for key, s := range src {
		if d, ok := dst[key]; ok {
			d.Merge(s)
		} else {
			dst[key] = s
		}
	}
}

// AggregateBlocks parses and aggregates raw commit blocks across a worker
// pool. Each worker builds a private partial map; partials are merged after
// all workers drain the channel, so no locking guards the hot path. Returns
// the merged stats and the number of malformed blocks skipped.
func AggregateBlocks(blocks iter.Seq[string], scope Scope, opts Options, workers int) (StatsMap, int) {
	if workers < 1 {
		workers = 1
	}

	blockCh := make(chan string, workers)
	partials := make([]StatsMap, workers)
	malformed := make([]int, workers)
	cutoff := opts.recencyCutoff()

	var wg sync.WaitGroup
	for i := range workers {
		wg.Go(func() {
			part := make(StatsMap)
			for block := range blockCh {
				rec, err := parse.ParseBlock(block)
				if err != nil {
					malformed[i]++
					continue
				}
				observe(part, rec, scope, cutoff)
			}
			partials[i] = part
		})
	}

	for block := range blocks {
		blockCh <- block
	}
	close(blockCh)
	wg.Wait()

	result := make(StatsMap)
	total := 0
	for i, part := range partials {
		Merge(result, part)
		total += malformed[i]
	}
	return result, total
}
