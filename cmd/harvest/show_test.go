package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fwojciec/harvest"
	main "github.com/fwojciec/harvest/cmd/harvest"
	"github.com/fwojciec/harvest/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints stored results as JSON", func(t *testing.T) {
		t.Parallel()

		results := &mock.ResultService{
			FindRunByIDFn: func(_ context.Context, id string) (*harvest.CrawlRun, error) {
				require.Equal(t, "run-123", id)
				return &harvest.CrawlRun{
					ID:       "run-123",
					SeedURL:  "https://example.com",
					Strategy: "generic",
					Pages:    1,
				}, nil
			},
			FindResultsFn: func(_ context.Context, runID string) ([]harvest.CrawlResult, error) {
				require.Equal(t, "run-123", runID)
				return []harvest.CrawlResult{
					{
						URL:        "https://example.com",
						StatusCode: 200,
						Data:       harvest.FieldMap{"title": "Example"},
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

		cmd := &main.ShowCmd{RunID: "run-123"}
		err := cmd.Run(deps)
		require.NoError(t, err)

		var decoded []harvest.CrawlResult
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &decoded))
		require.Len(t, decoded, 1)
		assert.Equal(t, "https://example.com", decoded[0].URL)
		assert.Equal(t, 200, decoded[0].StatusCode)
		assert.Contains(t, stderr.String(), "run-123")
	})

	t.Run("reports unknown run ID", func(t *testing.T) {
		t.Parallel()

		results := &mock.ResultService{
			FindRunByIDFn: func(_ context.Context, id string) (*harvest.CrawlRun, error) {
				return nil, harvest.Errorf(harvest.ENOTFOUND, "run %q not found", id)
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

		cmd := &main.ShowCmd{RunID: "missing"}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, harvest.ENOTFOUND, harvest.ErrorCode(err))
		assert.Contains(t, stderr.String(), "not found")
	})
}
