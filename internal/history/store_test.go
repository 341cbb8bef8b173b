package history

import (
	"os"
	"testing"
	"time"

	"github.com/fcuny/git-stats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleScores() []schema.ScoredContributor {
	return []schema.ScoredContributor{
		{
			Name:  "Alice <alice@example.com>",
			Score: 0.82,
			Band:  schema.HighBand,
			Raw: schema.RawMetrics{
				Longevity:     220 * 24 * time.Hour,
				Lines:         43,
				Commits:       3,
				RecentCommits: 1,
			},
		},
		{
			Name:  "Bob <bob@example.com>",
			Score: 0.55,
			Band:  schema.MediumBand,
			Raw: schema.RawMetrics{
				Longevity:     205 * 24 * time.Hour,
				Lines:         77,
				Commits:       3,
				RecentCommits: 2,
			},
		},
	}
}

func TestHistoryStore_NoneBackend(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// BeginRun should return 0 for NoneBackend
	runID, err := store.BeginRun("stats", time.Now(), map[string]any{"test": "value"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	// Other operations should not error
	err = store.EndRun(1, time.Now(), 10)
	assert.NoError(t, err)

	err = store.RecordScores(1, "repository", sampleScores())
	assert.NoError(t, err)

	err = store.Clear()
	assert.NoError(t, err)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.Equal(t, schema.NoneBackend, status.Backend)
	assert.Zero(t, status.RunCount)

	err = store.Close()
	assert.NoError(t, err)
}

func TestHistoryStore_SQLite(t *testing.T) {
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	startTime := time.Now()
	params := map[string]any{
		"recency-period": 3,
		"repo_path":      "/test/repo",
	}
	runID, err := store.BeginRun("stats", startTime, params)
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	err = store.RecordScores(runID, "repository", sampleScores())
	assert.NoError(t, err)

	err = store.EndRun(runID, startTime.Add(50*time.Millisecond), 2)
	assert.NoError(t, err)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.SQLiteBackend, status.Backend)
	assert.Equal(t, int64(1), status.RunCount)
	assert.Equal(t, int64(2), status.ScoreCount)
	assert.WithinDuration(t, startTime, status.LastRun, time.Second)
}

func TestHistoryStore_MultipleScopes(t *testing.T) {
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun("dris", time.Now(), map[string]any{"top": 3})
	require.NoError(t, err)

	// Same contributors may appear in several scopes of one run
	scopes := []string{"src/a.go", "src/b.go", "overall"}
	for _, scope := range scopes {
		err = store.RecordScores(runID, scope, sampleScores())
		assert.NoError(t, err)
	}

	err = store.EndRun(runID, time.Now(), 2)
	assert.NoError(t, err)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(6), status.ScoreCount)
}

func TestHistoryStore_GetAllRoundTrip(t *testing.T) {
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	startTime := time.Now()
	runID, err := store.BeginRun("stats", startTime, map[string]any{"limit": 10})
	require.NoError(t, err)

	require.NoError(t, store.RecordScores(runID, "repository", sampleScores()))
	require.NoError(t, store.EndRun(runID, startTime.Add(time.Second), 2))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].RunID)
	assert.Equal(t, "stats", runs[0].Command)
	assert.WithinDuration(t, startTime, runs[0].StartTime, time.Second)
	require.NotNil(t, runs[0].EndTime)
	require.NotNil(t, runs[0].RunDurationMs)
	assert.GreaterOrEqual(t, *runs[0].RunDurationMs, int32(1000))
	assert.Equal(t, int32(2), runs[0].TotalContributors)
	require.NotNil(t, runs[0].ConfigParams)
	assert.Contains(t, *runs[0].ConfigParams, "limit")

	scores, err := store.GetAllScores()
	require.NoError(t, err)
	require.Len(t, scores, 2)
	// Ordered by contributor within the scope
	assert.Equal(t, "Alice <alice@example.com>", scores[0].Contributor)
	assert.Equal(t, "Bob <bob@example.com>", scores[1].Contributor)
	assert.Equal(t, "repository", scores[0].Scope)
	assert.InDelta(t, 0.82, scores[0].Score, 1e-9)
	assert.Equal(t, "High", scores[0].Band)
	assert.InDelta(t, 220.0, scores[0].LongevityDays, 0.01)
	assert.Equal(t, int32(43), scores[0].Lines)
	assert.Equal(t, int32(3), scores[0].Commits)
	assert.Equal(t, int32(1), scores[0].RecentCommits)
	assert.False(t, scores[0].RecordedAt.IsZero())
}

func TestHistoryStore_Clear(t *testing.T) {
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun("stats", time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordScores(runID, "repository", sampleScores()))

	require.NoError(t, store.Clear())

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Zero(t, status.RunCount)
	assert.Zero(t, status.ScoreCount)
}

func TestHistoryStore_UnfinishedRun(t *testing.T) {
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// A run without EndRun keeps NULL completion columns
	_, err = store.BeginRun("dris", time.Now(), nil)
	require.NoError(t, err)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Nil(t, runs[0].EndTime)
	assert.Nil(t, runs[0].RunDurationMs)
	assert.Zero(t, runs[0].TotalContributors)
}

func TestHistoryStore_FileBacked(t *testing.T) {
	dbPath := t.TempDir() + "/history.db"

	store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)

	runID, err := store.BeginRun("stats", time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordScores(runID, "repository", sampleScores()))
	require.NoError(t, store.Close())

	// Reopen and verify the data survived
	store, err = NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(1), status.RunCount)
	assert.Equal(t, int64(2), status.ScoreCount)
	assert.Equal(t, dbPath, status.Location)

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestHistoryStore_InvalidBackend(t *testing.T) {
	_, err := NewHistoryStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}

func TestHistoryExport_SQLite(t *testing.T) {
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun("stats", time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordScores(runID, "repository", sampleScores()))
	require.NoError(t, store.EndRun(runID, time.Now(), 2))

	outputFile := t.TempDir() + "/export"
	require.NoError(t, ExecuteHistoryExport(store, outputFile))

	for _, suffix := range []string{".runs.parquet", ".contributor_scores.parquet"} {
		info, err := os.Stat(outputFile + suffix)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestHistoryExport_RequiresOutputFile(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)
	assert.Error(t, ExecuteHistoryExport(store, ""))
}

func TestHistoryExport_EmptyStore(t *testing.T) {
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	err = ExecuteHistoryExport(store, t.TempDir()+"/export")
	assert.Error(t, err)
}
