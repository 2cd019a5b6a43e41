package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/crawl"
	"github.com/fwojciec/harvest/fs"
	"github.com/fwojciec/harvest/goquery"
	harvesthttp "github.com/fwojciec/harvest/http"
	harvestslog "github.com/fwojciec/harvest/slog"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	strategy, err := buildStrategy(c.Strategy, c.Selectors, deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	ctrl := &crawl.Controller{
		Config: harvest.CrawlConfig{
			URL:         c.URL,
			MaxDepth:    c.Depth,
			MaxPages:    c.Pages,
			Delay:       c.Delay,
			FollowLinks: c.Follow,
			Timeout:     c.Timeout,
			UserAgent:   c.UserAgent,
			Headers:     c.Header,
		},
		Strategy: strategy,
		Links:    goquery.NewLinkDiscoverer(),
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
			harvesthttp.WithHeaders(c.Header),
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

	startedAt := time.Now()
	results, err := ctrl.Run(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	if c.Save {
		run := &harvest.CrawlRun{
			SeedURL:    c.URL,
			Strategy:   strategy.Name(),
			StartedAt:  startedAt,
			FinishedAt: time.Now(),
		}
		if err := deps.Results.SaveRun(deps.Ctx, run, results); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "Saved run %s (%d pages, %d failed)\n", run.ID, run.Pages, run.Failed)
	}

	if c.Output != "" {
		if err := exportResults(deps, c.Output, results); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "Exported %d results to %s\n", len(results), c.Output)
	}

	return printResults(deps, results)
}

// buildStrategy constructs the named strategy, loading the selector file
// when the selector strategy is requested.
func buildStrategy(name, selectorFile string, deps *Dependencies) (harvest.Strategy, error) {
	var selectors map[string]any
	if name == harvest.StrategySelector {
		if selectorFile == "" {
			return nil, harvest.Errorf(harvest.EINVALID, "selector strategy requires --selectors")
		}
		var err error
		selectors, err = loadSelectors(selectorFile)
		if err != nil {
			return nil, err
		}
	}
	strategy, err := goquery.NewStrategy(name, selectors)
	if err != nil {
		return nil, err
	}
	return harvestslog.NewLoggingStrategy(strategy, deps.Logger), nil
}

// buildRenderPlan loads the render plan file, or returns the zero plan
// (default settling wait, no actions) when no file was given.
func buildRenderPlan(path string) (harvest.RenderPlan, error) {
	if path == "" {
		return harvest.RenderPlan{}, nil
	}
	return loadRenderPlan(path)
}

// exportResults stages every result into dir and publishes them atomically.
func exportResults(deps *Dependencies, dir string, results []harvest.CrawlResult) error {
	exporter := fs.NewExporter(dir)
	for i := range results {
		if err := exporter.Save(deps.Ctx, &results[i]); err != nil {
			_ = exporter.Abort()
			return err
		}
	}
	return exporter.Commit()
}

// printResults writes the result list as indented JSON to stdout.
func printResults(deps *Dependencies, results []harvest.CrawlResult) error {
	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	return nil
}
