package harvest

import "context"

// ResultExporter persists crawl results as files on disk. Exports are
// atomic per run: results accumulate in a staging area and become visible
// only on Commit.
type ResultExporter interface {
	// Save stages one result.
	Save(ctx context.Context, result *CrawlResult) error

	// Commit atomically publishes every staged result.
	Commit() error

	// Abort discards the staged results.
	Abort() error
}
