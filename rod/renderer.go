// Package rod provides a Chrome-based implementation of harvest.Renderer
// for pages that assemble their content with JavaScript. Each page visit
// gets its own browser page, released when the session closes.
package rod

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/fwojciec/harvest"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Defaults applied when a wait spec or session option leaves them unset.
const (
	// DefaultWaitWindow bounds element/script polling and click readiness.
	DefaultWaitWindow = 10 * time.Second
	// defaultSettle is the pause applied when no wait spec is given.
	defaultSettle = 2 * time.Second
	// defaultIdleSettle is the fixed pause for the network_idle wait kind.
	defaultIdleSettle = 1 * time.Second
	// clickSettle is the pause after a click, letting content load.
	clickSettle = 1 * time.Second
	// scriptPollInterval spaces script-predicate evaluations.
	scriptPollInterval = 250 * time.Millisecond
)

// Ensure Renderer implements harvest.Renderer at compile time.
var _ harvest.Renderer = (*Renderer)(nil)

// Renderer renders pages with a headless Chrome browser.
// Renderer is safe for concurrent use by multiple goroutines; sessions are
// not.
type Renderer struct {
	browser    *rod.Browser
	headless   bool
	waitWindow time.Duration
	logger     *slog.Logger
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithHeadless controls whether the browser runs headless. Defaults to true.
func WithHeadless(headless bool) RendererOption {
	return func(r *Renderer) {
		r.headless = headless
	}
}

// WithWaitWindow sets the bound for element/script polling and click
// readiness. Defaults to DefaultWaitWindow (10s).
func WithWaitWindow(d time.Duration) RendererOption {
	return func(r *Renderer) {
		r.waitWindow = d
	}
}

// WithLogger sets the logger used for degraded-wait and click warnings.
func WithLogger(logger *slog.Logger) RendererOption {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// NewRenderer launches a Chrome browser and connects to it.
// Close must be called when the Renderer is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	r := &Renderer{
		headless:   true,
		waitWindow: DefaultWaitWindow,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}

	l := launcher.New().Headless(r.headless)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	r.browser = browser
	return r, nil
}

// NewSession opens a fresh browser page.
func (r *Renderer) NewSession(ctx context.Context) (harvest.RenderSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}

	return &Session{
		page:       page,
		waitWindow: r.waitWindow,
		logger:     r.logger,
	}, nil
}

// Close releases browser resources.
func (r *Renderer) Close() error {
	return r.browser.Close()
}

// Ensure Session implements harvest.RenderSession at compile time.
var _ harvest.RenderSession = (*Session)(nil)

// Session is a scoped handle on one browser page.
type Session struct {
	page       *rod.Page
	waitWindow time.Duration
	logger     *slog.Logger
}

// Render navigates to url, waits per the wait spec and returns the HTML.
// Wait timeout expiry degrades to proceeding with whatever has loaded.
func (s *Session) Render(ctx context.Context, url string, wait *harvest.WaitSpec) (string, error) {
	page := s.page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	s.applyWait(ctx, page, wait)

	return page.HTML()
}

// applyWait blocks until the wait spec is satisfied or its timeout expires.
// Expiry is logged, never surfaced as an error.
func (s *Session) applyWait(ctx context.Context, page *rod.Page, wait *harvest.WaitSpec) {
	if wait == nil {
		pause(ctx, defaultSettle)
		return
	}

	switch wait.Kind {
	case harvest.WaitTime:
		d := wait.Duration
		if d <= 0 {
			d = defaultSettle
		}
		pause(ctx, d)

	case harvest.WaitIdle:
		d := wait.Duration
		if d <= 0 {
			d = defaultIdleSettle
		}
		pause(ctx, d)

	case harvest.WaitElement:
		if _, err := page.Timeout(s.timeoutFor(wait)).Element(wait.Selector); err != nil {
			s.logger.Warn("timeout waiting for element", "selector", wait.Selector, "err", err)
		}

	case harvest.WaitScript:
		deadline := time.Now().Add(s.timeoutFor(wait))
		for time.Now().Before(deadline) {
			res, err := page.Eval(wrapScript(wait.Script))
			if err == nil && res.Value.Bool() {
				return
			}
			if !pause(ctx, scriptPollInterval) {
				return
			}
		}
		s.logger.Warn("timeout waiting for script condition", "script", wait.Script)
	}
}

func (s *Session) timeoutFor(wait *harvest.WaitSpec) time.Duration {
	if wait.Timeout > 0 {
		return wait.Timeout
	}
	return s.waitWindow
}

// RunScript executes JavaScript against the page.
func (s *Session) RunScript(ctx context.Context, code string) error {
	_, err := s.page.Context(ctx).Eval(wrapScript(code))
	return err
}

// Click clicks the element matching selector. A missing or unclickable
// element within the wait window is logged and ignored.
func (s *Session) Click(ctx context.Context, selector string) error {
	page := s.page.Context(ctx)

	el, err := page.Timeout(s.waitWindow).Element(selector)
	if err != nil {
		s.logger.Warn("could not find element to click", "selector", selector, "err", err)
		return nil
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		s.logger.Warn("could not click element", "selector", selector, "err", err)
		return nil
	}

	// Let content triggered by the click load.
	pause(ctx, clickSettle)
	return nil
}

// ScrollToBottom scrolls repeatedly, stopping after maxScrolls steps or
// once the document height stabilizes between two consecutive scrolls.
func (s *Session) ScrollToBottom(ctx context.Context, pauseTime time.Duration, maxScrolls int) error {
	page := s.page.Context(ctx)

	last, err := pageHeight(page)
	if err != nil {
		return err
	}

	for i := 0; i < maxScrolls; i++ {
		if _, err := page.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`); err != nil {
			return err
		}
		if !pause(ctx, pauseTime) {
			return ctx.Err()
		}

		height, err := pageHeight(page)
		if err != nil {
			return err
		}
		if height == last {
			break
		}
		last = height
	}
	return nil
}

// HTML returns the page's current serialized DOM.
func (s *Session) HTML(ctx context.Context) (string, error) {
	return s.page.Context(ctx).HTML()
}

// Close releases the page.
func (s *Session) Close() error {
	return s.page.Close()
}

func pageHeight(page *rod.Page) (int, error) {
	res, err := page.Eval(`() => document.body.scrollHeight`)
	if err != nil {
		return 0, err
	}
	return res.Value.Int(), nil
}

// returnToken matches a return keyword, not identifiers that merely contain
// the substring (e.g. "returned").
var returnToken = regexp.MustCompile(`\breturn\b`)

// wrapScript turns a raw statement or expression into the function form
// rod's Eval expects. Scripts using an explicit return keep their body.
func wrapScript(code string) string {
	if returnToken.MatchString(code) {
		return fmt.Sprintf("() => { %s }", code)
	}
	return fmt.Sprintf("() => (%s)", code)
}

// pause sleeps for d unless the context is canceled first.
// Returns false on cancellation.
func pause(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
