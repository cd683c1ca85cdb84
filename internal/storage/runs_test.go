package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/concurrentcube/internal/stress"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleReport(startedAt time.Time, seed int64) stress.Report {
	return stress.Report{
		StartedAt: startedAt,
		Duration:  1500 * time.Millisecond,
		Size:      3,
		Workload: stress.Workload{
			Workers:      8,
			OpsPerWorker: 100,
			ShowEvery:    5,
			CancelRatio:  0.25,
			Seed:         seed,
		},
		Rotations:          600,
		Shows:              150,
		Cancelled:          50,
		Violations:         stress.Violations{LayerOverlap: 1},
		MaxHandoversWaited: 3,
		Conserved:          true,
		Final:              "000000000111111111222222222333333333444444444555555555",
	}
}

func TestMigrationsApplyOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	db, err := Open(path)
	require.NoError(t, err)
	v, err := db.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, len(migrations), v)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	v, err = db.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, len(migrations), v)
	assert.Equal(t, path, db.Path())
}

func TestRunRoundTrip(t *testing.T) {
	repo := NewRunRepository(openTestDB(t))
	want := sampleReport(time.Date(2026, 3, 1, 12, 0, 0, 123456000, time.UTC), 7)

	id, err := repo.Create(want)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := repo.Get(id)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, id, got.RunID)
	assert.True(t, want.StartedAt.Equal(got.Report.StartedAt))
	assert.Equal(t, want.Duration, got.Report.Duration)
	assert.Equal(t, want.Workload, got.Report.Workload)
	assert.Equal(t, want.Violations, got.Report.Violations)
	assert.Equal(t, want.Rotations, got.Report.Rotations)
	assert.Equal(t, want.MaxHandoversWaited, got.Report.MaxHandoversWaited)
	assert.Equal(t, want.Final, got.Report.Final)
	assert.True(t, got.Report.Conserved)
}

func TestGetMissingRun(t *testing.T) {
	repo := NewRunRepository(openTestDB(t))

	got, err := repo.Get("no-such-run")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListNewestFirst(t *testing.T) {
	repo := NewRunRepository(openTestDB(t))
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, err := repo.Create(sampleReport(base.Add(time.Duration(i)*time.Minute), int64(i)))
		require.NoError(t, err)
	}

	runs, err := repo.List(3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, int64(4), runs[0].Report.Workload.Seed)
	assert.Equal(t, int64(3), runs[1].Report.Workload.Seed)
	assert.Equal(t, int64(2), runs[2].Report.Workload.Seed)

	all, err := repo.List(0)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	n, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestPruneKeepsNewest(t *testing.T) {
	repo := NewRunRepository(openTestDB(t))
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 6; i++ {
		_, err := repo.Create(sampleReport(base.Add(time.Duration(i)*time.Hour), int64(i)))
		require.NoError(t, err)
	}

	removed, err := repo.Prune(2)
	require.NoError(t, err)
	assert.Equal(t, 4, removed)

	runs, err := repo.List(0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, int64(5), runs[0].Report.Workload.Seed)
	assert.Equal(t, int64(4), runs[1].Report.Workload.Seed)

	removed, err = repo.Prune(0)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	n, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}
