package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/harvest"
	main "github.com/fwojciec/harvest/cmd/harvest"
	"github.com/fwojciec/harvest/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists runs with ID, strategy, and seed URL", func(t *testing.T) {
		t.Parallel()

		results := &mock.ResultService{
			FindRunsFn: func(_ context.Context) ([]*harvest.CrawlRun, error) {
				return []*harvest.CrawlRun{
					{
						ID:        "run-123",
						SeedURL:   "https://example.com",
						Strategy:  "generic",
						Pages:     4,
						Failed:    1,
						StartedAt: time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC),
					},
					{
						ID:        "run-456",
						SeedURL:   "https://shop.example.com",
						Strategy:  "product",
						Pages:     2,
						StartedAt: time.Date(2026, 2, 4, 11, 0, 0, 0, time.UTC),
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Results: results,
		}

		cmd := &main.RunsCmd{}
		err := cmd.Run(deps)
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "run-123")
		assert.Contains(t, output, "generic")
		assert.Contains(t, output, "https://example.com")
		assert.Contains(t, output, "run-456")
		assert.Contains(t, output, "4 pages")
		assert.Contains(t, output, "1 failed")
		assert.Empty(t, stderr.String())
	})

	t.Run("shows hint when no runs exist", func(t *testing.T) {
		t.Parallel()

		results := &mock.ResultService{
			FindRunsFn: func(_ context.Context) ([]*harvest.CrawlRun, error) {
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Results: results,
		}

		cmd := &main.RunsCmd{}
		err := cmd.Run(deps)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No runs found")
	})

	t.Run("reports service errors to stderr", func(t *testing.T) {
		t.Parallel()

		results := &mock.ResultService{
			FindRunsFn: func(_ context.Context) ([]*harvest.CrawlRun, error) {
				return nil, harvest.Errorf(harvest.EINTERNAL, "database locked")
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Results: results,
		}

		cmd := &main.RunsCmd{}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "database locked")
		assert.Empty(t, stdout.String())
	})
}
