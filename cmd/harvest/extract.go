package main

import (
	"fmt"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/crawl"
	harvesthttp "github.com/fwojciec/harvest/http"
	harvestslog "github.com/fwojciec/harvest/slog"
)

// Run executes the extract command. Extraction is a single-page crawl:
// depth zero, one page, no link following.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	strategy, err := buildStrategy(c.Strategy, c.Selectors, deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	ctrl := &crawl.Controller{
		Config: harvest.CrawlConfig{
			URL:       c.URL,
			MaxPages:  1,
			Timeout:   c.Timeout,
			UserAgent: c.UserAgent,
		},
		Strategy: strategy,
		Logger:   deps.Logger,
	}

	if c.Render {
		plan, err := buildRenderPlan(c.RenderPlan)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
			return err
		}
		ctrl.Renderer = deps.Renderer
		ctrl.Plan = plan
	} else {
		fetcher := harvesthttp.NewFetcher(
			harvesthttp.WithTimeout(c.Timeout),
			harvesthttp.WithUserAgent(c.UserAgent),
		)
		defer fetcher.Close()
		ctrl.Fetcher = harvestslog.NewLoggingFetcher(fetcher, deps.Logger)

		hardened, err := harvesthttp.NewHardened(harvesthttp.WithHardenedTimeout(c.Timeout))
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
			return err
		}
		defer hardened.Close()
		ctrl.Hardened = harvestslog.NewLoggingFetcher(hardened, deps.Logger)
	}

	results, err := ctrl.Run(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	return printResults(deps, results)
}
