// Package crawl provides the traversal controller: the loop that decides
// what to fetch next, when to stop, and how to fold partial failures into
// the run's output. It drives fetch → extract → discover-links → schedule
// under the configured depth, page and rate limits.
package crawl

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/harvest"
)

// maxLinksPerPage caps how many discovered links are scheduled per page.
// A fixed ceiling, applied uniformly regardless of remaining page allowance.
const maxLinksPerPage = 5

// Defaults for render actions that omit their tunables.
const (
	defaultScrollPause = 1 * time.Second
	defaultMaxScrolls  = 10
	defaultActionPause = 1 * time.Second
)

// Controller owns the visited set and the result list for a run. It visits
// pages depth-first in pre-order over the link-discovery tree and produces
// exactly one result per visited URL, success or failure.
//
// The controller is single-threaded: fetches happen one at a time on one
// execution path, and the configured delay is a blocking pause on that
// path. Results are appended in strict visitation order.
type Controller struct {
	Config   harvest.CrawlConfig
	Strategy harvest.Strategy

	// Fetcher performs plain HTTP fetches. Hardened, if set, is tried once
	// when the primary fetch returns 403.
	Fetcher  harvest.Fetcher
	Hardened harvest.Fetcher

	// Renderer, if set, replaces the fetch step with script-executed
	// rendering. The hardened fallback does not apply to rendered pages.
	Renderer harvest.Renderer
	Plan     harvest.RenderPlan

	Links  harvest.LinkDiscoverer
	Logger *slog.Logger
}

// frame is one unit of traversal work.
type frame struct {
	url   string
	depth int
}

// Run executes the crawl and returns the ordered result list. The error
// return is reserved for configuration problems; per-URL failures are
// folded into the results and never abort the run.
func (c *Controller) Run(ctx context.Context) ([]harvest.CrawlResult, error) {
	if err := c.Config.Validate(); err != nil {
		return nil, err
	}
	if c.Strategy == nil {
		return nil, harvest.Errorf(harvest.EINVALID, "extraction strategy required")
	}
	if c.Fetcher == nil && c.Renderer == nil {
		return nil, harvest.Errorf(harvest.EINVALID, "fetcher or renderer required")
	}
	if c.Config.FollowLinks && c.Links == nil {
		return nil, harvest.Errorf(harvest.EINVALID, "link discoverer required when following links")
	}
	if err := c.Plan.Validate(); err != nil {
		return nil, err
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	// Per-run state: nothing is shared across runs.
	visited := NewVisited()
	pacer := NewPacer(c.Config.Delay)
	results := make([]harvest.CrawlResult, 0, c.Config.MaxPages)

	// Explicit work stack instead of recursion. Children are pushed in
	// reverse so they pop in document order, preserving pre-order
	// visitation over the link-discovery tree.
	stack := []frame{{url: c.Config.URL}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// Limits are hard ceilings, checked before any side effect.
		if len(results) >= c.Config.MaxPages {
			break
		}
		if f.depth > c.Config.MaxDepth {
			continue
		}

		// A URL is fetched at most once per run, however many link paths
		// reach it.
		if !visited.Add(f.url) {
			continue
		}

		result, children := c.visit(ctx, f, visited, pacer, logger)
		results = append(results, result)

		if result.Failed() {
			logger.Warn("page visit failed", "url", f.url, "depth", f.depth, "err", result.Error)
		} else {
			logger.Debug("page visited", "url", f.url, "depth", f.depth, "status", result.StatusCode, "links", len(result.Links))
		}

		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{url: children[i], depth: f.depth + 1})
		}
	}

	return results, nil
}

// visit performs one page visit: pace, fetch or render, extract, discover
// links. Every failure along the way degrades the whole page to a Failed
// result; traversal of other branches continues unaffected. The returned
// children are the links to schedule, capped at maxLinksPerPage.
func (c *Controller) visit(ctx context.Context, f frame, visited harvest.Visited, pacer *Pacer, logger *slog.Logger) (harvest.CrawlResult, []string) {
	if err := pacer.Wait(ctx); err != nil {
		return failedResult(f.url, err), nil
	}

	var html string
	var status int
	if c.Renderer != nil {
		rendered, err := c.render(ctx, f.url, logger)
		if err != nil {
			return failedResult(f.url, err), nil
		}
		html = rendered
		// No real HTTP status exists for a rendered page.
		status = http.StatusOK
	} else {
		resp, err := c.Fetcher.Fetch(ctx, f.url)
		if err != nil {
			return failedResult(f.url, err), nil
		}
		if resp.StatusCode == http.StatusForbidden && c.Hardened != nil {
			logger.Warn("blocking response, retrying hardened", "url", f.url, "status", resp.StatusCode)
			resp, err = c.Hardened.Fetch(ctx, f.url)
			if err != nil {
				return failedResult(f.url, err), nil
			}
		}
		html = string(resp.Body)
		status = resp.StatusCode
	}

	data, err := c.Strategy.Extract(html, f.url)
	if err != nil {
		return failedResult(f.url, err), nil
	}

	var links []string
	if c.Config.FollowLinks && f.depth < c.Config.MaxDepth {
		links, err = c.Links.DiscoverLinks(html, f.url, visited)
		if err != nil {
			return failedResult(f.url, err), nil
		}
	}

	result := harvest.CrawlResult{
		URL:        f.url,
		StatusCode: status,
		Data:       data,
		Links:      links,
	}

	children := links
	if len(children) > maxLinksPerPage {
		children = children[:maxLinksPerPage]
	}
	return result, children
}

// render runs one scoped browser session for a page visit: navigate and
// wait, apply the plan's actions, grab the final DOM. The session is
// released before the controller proceeds, even on failure.
func (c *Controller) render(ctx context.Context, url string, logger *slog.Logger) (string, error) {
	sess, err := c.Renderer.NewSession(ctx)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			logger.Warn("closing render session", "url", url, "err", cerr)
		}
	}()

	html, err := sess.Render(ctx, url, c.Plan.Wait)
	if err != nil {
		return "", err
	}
	if len(c.Plan.Actions) == 0 {
		return html, nil
	}

	for _, action := range c.Plan.Actions {
		if err := applyAction(ctx, sess, action); err != nil {
			return "", err
		}
	}
	return sess.HTML(ctx)
}

// applyAction executes one render-plan action against a live session.
func applyAction(ctx context.Context, sess harvest.RenderSession, action harvest.Action) error {
	switch action.Kind {
	case harvest.ActionClick:
		return sess.Click(ctx, action.Selector)
	case harvest.ActionScroll:
		pause := action.Pause
		if pause <= 0 {
			pause = defaultScrollPause
		}
		maxScrolls := action.MaxScrolls
		if maxScrolls <= 0 {
			maxScrolls = defaultMaxScrolls
		}
		return sess.ScrollToBottom(ctx, pause, maxScrolls)
	case harvest.ActionScript:
		return sess.RunScript(ctx, action.Script)
	case harvest.ActionWait:
		pause := action.Duration
		if pause <= 0 {
			pause = defaultActionPause
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pause):
			return nil
		}
	}
	return harvest.Errorf(harvest.EINVALID, "unknown render action %q", action.Kind)
}

// failedResult folds an error into a Failed result: status 0, empty field
// map, error text.
func failedResult(url string, err error) harvest.CrawlResult {
	return harvest.CrawlResult{
		URL:   url,
		Data:  harvest.FieldMap{},
		Error: err.Error(),
	}
}
