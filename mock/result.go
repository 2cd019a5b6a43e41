package mock

import (
	"context"

	"github.com/fwojciec/harvest"
)

var _ harvest.ResultService = (*ResultService)(nil)

// ResultService is a mock implementation of harvest.ResultService.
type ResultService struct {
	SaveRunFn     func(ctx context.Context, run *harvest.CrawlRun, results []harvest.CrawlResult) error
	FindRunByIDFn func(ctx context.Context, id string) (*harvest.CrawlRun, error)
	FindRunsFn    func(ctx context.Context) ([]*harvest.CrawlRun, error)
	FindResultsFn func(ctx context.Context, runID string) ([]harvest.CrawlResult, error)
}

func (s *ResultService) SaveRun(ctx context.Context, run *harvest.CrawlRun, results []harvest.CrawlResult) error {
	return s.SaveRunFn(ctx, run, results)
}

func (s *ResultService) FindRunByID(ctx context.Context, id string) (*harvest.CrawlRun, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *ResultService) FindRuns(ctx context.Context) ([]*harvest.CrawlRun, error) {
	return s.FindRunsFn(ctx)
}

func (s *ResultService) FindResults(ctx context.Context, runID string) ([]harvest.CrawlResult, error) {
	return s.FindResultsFn(ctx, runID)
}
