package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/harvest"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ harvest.ResultService = (*ResultService)(nil)

// ResultService implements harvest.ResultService using SQLite. Field maps
// and link lists are stored as JSON columns; each result also carries an
// xxHash of its field map for cheap change detection between runs.
type ResultService struct {
	db *DB
}

// NewResultService creates a new ResultService.
func NewResultService(db *DB) *ResultService {
	return &ResultService{db: db}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content []byte) string {
	h := xxhash.Sum64(content)
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

// SaveRun stores a run together with its results, preserving order.
func (s *ResultService) SaveRun(ctx context.Context, run *harvest.CrawlRun, results []harvest.CrawlResult) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.Pages = len(results)
	run.Failed = 0
	for i := range results {
		if results[i].Failed() {
			run.Failed++
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, seed_url, strategy, pages, failed, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.SeedURL, run.Strategy, run.Pages, run.Failed,
		run.StartedAt.UTC().Format(time.RFC3339), run.FinishedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for i, result := range results {
		data, err := json.Marshal(result.Data)
		if err != nil {
			return err
		}
		var links []byte
		if result.Links != nil {
			if links, err = json.Marshal(result.Links); err != nil {
				return err
			}
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO results (id, run_id, position, url, status_code, data, links, error, content_hash, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), run.ID, i, result.URL, result.StatusCode,
			string(data), string(links), result.Error, hashContent(data), now)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindRunByID retrieves a run by ID.
func (s *ResultService) FindRunByID(ctx context.Context, id string) (*harvest.CrawlRun, error) {
	var run harvest.CrawlRun
	var startedAt, finishedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, seed_url, strategy, pages, failed, started_at, finished_at
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.SeedURL, &run.Strategy, &run.Pages, &run.Failed, &startedAt, &finishedAt)

	if err == sql.ErrNoRows {
		return nil, harvest.Errorf(harvest.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	run.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	run.FinishedAt, _ = time.Parse(time.RFC3339, finishedAt)
	return &run, nil
}

// FindRuns retrieves all stored runs, most recent first.
func (s *ResultService) FindRuns(ctx context.Context) ([]*harvest.CrawlRun, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seed_url, strategy, pages, failed, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*harvest.CrawlRun
	for rows.Next() {
		var run harvest.CrawlRun
		var startedAt, finishedAt string
		if err := rows.Scan(&run.ID, &run.SeedURL, &run.Strategy, &run.Pages, &run.Failed, &startedAt, &finishedAt); err != nil {
			return nil, err
		}
		run.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		run.FinishedAt, _ = time.Parse(time.RFC3339, finishedAt)
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

// FindResults retrieves the results of a run in visitation order.
func (s *ResultService) FindResults(ctx context.Context, runID string) ([]harvest.CrawlResult, error) {
	if _, err := s.FindRunByID(ctx, runID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT url, status_code, data, links, error
		FROM results
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []harvest.CrawlResult
	for rows.Next() {
		var result harvest.CrawlResult
		var data, links string
		if err := rows.Scan(&result.URL, &result.StatusCode, &data, &links, &result.Error); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(data), &result.Data); err != nil {
			return nil, err
		}
		if links != "" {
			if err := json.Unmarshal([]byte(links), &result.Links); err != nil {
				return nil, err
			}
		}
		results = append(results, result)
	}
	return results, rows.Err()
}
