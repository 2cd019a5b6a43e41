package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustOpenDB returns an open in-memory database, closed on test cleanup.
func mustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testRun() *harvest.CrawlRun {
	return &harvest.CrawlRun{
		SeedURL:    "https://example.com",
		Strategy:   "generic",
		StartedAt:  time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2026, 2, 3, 10, 0, 30, 0, time.UTC),
	}
}

func TestResultService_SaveRun(t *testing.T) {
	t.Parallel()

	t.Run("stores a run with its results", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewResultService(mustOpenDB(t))
		ctx := context.Background()

		run := testRun()
		results := []harvest.CrawlResult{
			{
				URL:        "https://example.com",
				StatusCode: 200,
				Data:       harvest.FieldMap{"title": "Home"},
				Links:      []string{"https://example.com/a"},
			},
			{
				URL:   "https://example.com/a",
				Data:  harvest.FieldMap{},
				Error: "connection refused",
			},
		}

		err := s.SaveRun(ctx, run, results)
		require.NoError(t, err)

		assert.NotEmpty(t, run.ID)
		assert.Equal(t, 2, run.Pages)
		assert.Equal(t, 1, run.Failed)
	})

	t.Run("rejects runs without a seed URL", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewResultService(mustOpenDB(t))

		run := testRun()
		run.SeedURL = ""
		err := s.SaveRun(context.Background(), run, nil)
		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})
}

func TestResultService_FindRunByID(t *testing.T) {
	t.Parallel()

	t.Run("round-trips run fields", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewResultService(mustOpenDB(t))
		ctx := context.Background()

		run := testRun()
		require.NoError(t, s.SaveRun(ctx, run, []harvest.CrawlResult{
			{URL: "https://example.com", StatusCode: 200, Data: harvest.FieldMap{}},
		}))

		found, err := s.FindRunByID(ctx, run.ID)
		require.NoError(t, err)
		assert.Equal(t, run.ID, found.ID)
		assert.Equal(t, "https://example.com", found.SeedURL)
		assert.Equal(t, "generic", found.Strategy)
		assert.Equal(t, 1, found.Pages)
		assert.Equal(t, 0, found.Failed)
		assert.True(t, found.StartedAt.Equal(run.StartedAt))
		assert.True(t, found.FinishedAt.Equal(run.FinishedAt))
	})

	t.Run("returns ENOTFOUND for unknown IDs", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewResultService(mustOpenDB(t))

		_, err := s.FindRunByID(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, harvest.ENOTFOUND, harvest.ErrorCode(err))
	})
}

func TestResultService_FindRuns(t *testing.T) {
	t.Parallel()

	t.Run("lists runs most recent first", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewResultService(mustOpenDB(t))
		ctx := context.Background()

		older := testRun()
		older.StartedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, s.SaveRun(ctx, older, nil))

		newer := testRun()
		newer.StartedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, s.SaveRun(ctx, newer, nil))

		runs, err := s.FindRuns(ctx)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, newer.ID, runs[0].ID)
		assert.Equal(t, older.ID, runs[1].ID)
	})

	t.Run("returns empty for a fresh database", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewResultService(mustOpenDB(t))

		runs, err := s.FindRuns(context.Background())
		require.NoError(t, err)
		assert.Empty(t, runs)
	})
}

func TestResultService_FindResults(t *testing.T) {
	t.Parallel()

	t.Run("round-trips results in visitation order", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewResultService(mustOpenDB(t))
		ctx := context.Background()

		run := testRun()
		saved := []harvest.CrawlResult{
			{
				URL:        "https://example.com",
				StatusCode: 200,
				Data:       harvest.FieldMap{"title": "Home", "notes": []any{"a", "b"}},
				Links:      []string{"https://example.com/a", "https://example.com/b"},
			},
			{
				URL:        "https://example.com/a",
				StatusCode: 404,
				Data:       harvest.FieldMap{"title": nil},
			},
			{
				URL:   "https://example.com/b",
				Data:  harvest.FieldMap{},
				Error: "boom",
			},
		}
		require.NoError(t, s.SaveRun(ctx, run, saved))

		results, err := s.FindResults(ctx, run.ID)
		require.NoError(t, err)
		require.Len(t, results, 3)

		assert.Equal(t, "https://example.com", results[0].URL)
		assert.Equal(t, 200, results[0].StatusCode)
		assert.Equal(t, "Home", results[0].Data["title"])
		assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, results[0].Links)

		assert.Equal(t, 404, results[1].StatusCode)
		assert.Nil(t, results[1].Data["title"])

		assert.True(t, results[2].Failed())
		assert.Equal(t, "boom", results[2].Error)
	})

	t.Run("returns ENOTFOUND for unknown run IDs", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewResultService(mustOpenDB(t))

		_, err := s.FindResults(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, harvest.ENOTFOUND, harvest.ErrorCode(err))
	})
}
