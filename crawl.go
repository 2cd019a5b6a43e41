package harvest

import (
	"context"
	"time"
)

// Default crawl settings applied by CrawlConfig.Validate for zero values.
const (
	DefaultMaxPages  = 10
	DefaultDelay     = 1 * time.Second
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "harvest/1.0"
)

// CrawlConfig holds the immutable per-run settings for a crawl.
// MaxDepth and MaxPages are hard ceilings enforced before any fetch.
type CrawlConfig struct {
	// URL is the origin the crawl starts from. Required.
	URL string

	// MaxDepth is the maximum link-following depth. The seed page is depth 0.
	MaxDepth int

	// MaxPages caps the number of results produced by the run.
	MaxPages int

	// Delay is the blocking pause applied between requests.
	Delay time.Duration

	// FollowLinks enables link discovery and recursion into same-domain links.
	FollowLinks bool

	// Timeout bounds a single fetch. It is the only bound on fetch duration.
	Timeout time.Duration

	// UserAgent identifies the crawler to servers.
	UserAgent string

	// Headers are additional request headers sent with every fetch.
	Headers map[string]string
}

// Validate checks the configuration and fills in defaults for zero values.
func (c *CrawlConfig) Validate() error {
	if c.URL == "" {
		return Errorf(EINVALID, "crawl URL required")
	}
	if c.MaxDepth < 0 {
		return Errorf(EINVALID, "max depth must not be negative")
	}
	if c.MaxPages < 0 {
		return Errorf(EINVALID, "max pages must not be negative")
	}
	if c.MaxPages == 0 {
		c.MaxPages = DefaultMaxPages
	}
	if c.Delay == 0 {
		c.Delay = DefaultDelay
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	return nil
}

// CrawlResult records the outcome of one page visit. Exactly one result is
// produced per visited URL, success or failure, and results are appended in
// visitation order. A StatusCode of 0 means the visit failed before a real
// HTTP status existed; Error is set if and only if StatusCode is 0.
type CrawlResult struct {
	URL        string   `json:"url"`
	StatusCode int      `json:"status_code"`
	Data       FieldMap `json:"data"`
	Links      []string `json:"links,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// Failed reports whether the visit produced no usable page.
func (r *CrawlResult) Failed() bool {
	return r.StatusCode == 0
}

// CrawlRun describes one completed crawl for persistence.
type CrawlRun struct {
	ID         string    `json:"id"`
	SeedURL    string    `json:"seed_url"`
	Strategy   string    `json:"strategy"`
	Pages      int       `json:"pages"`
	Failed     int       `json:"failed"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Validate returns an error if the run contains invalid fields.
func (r *CrawlRun) Validate() error {
	if r.SeedURL == "" {
		return Errorf(EINVALID, "run seed URL required")
	}
	if r.Strategy == "" {
		return Errorf(EINVALID, "run strategy required")
	}
	return nil
}

// ResultService persists crawl runs and their ordered results.
// The crawl core has no dependency on the storage schema.
type ResultService interface {
	// SaveRun stores a run together with its results, preserving order.
	SaveRun(ctx context.Context, run *CrawlRun, results []CrawlResult) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*CrawlRun, error)

	// FindRuns retrieves all stored runs, most recent first.
	FindRuns(ctx context.Context) ([]*CrawlRun, error)

	// FindResults retrieves the results of a run in visitation order.
	// Returns ENOTFOUND if the run does not exist.
	FindResults(ctx context.Context, runID string) ([]CrawlResult, error)
}
