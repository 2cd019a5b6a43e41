package harvest

import (
	"context"
	"time"
)

// WaitKind selects how a render session decides the page has finished
// loading before handing back HTML.
type WaitKind string

// Supported wait strategies.
const (
	// WaitTime pauses for a fixed duration.
	WaitTime WaitKind = "time"
	// WaitElement polls for an element matching a CSS selector.
	WaitElement WaitKind = "element"
	// WaitScript polls until a script predicate evaluates truthy.
	WaitScript WaitKind = "script"
	// WaitIdle applies a fixed settling pause after load.
	WaitIdle WaitKind = "network_idle"
)

// WaitSpec describes the readiness condition for a rendered page.
// Timeout expiry degrades to proceeding with whatever has loaded; it is
// never an error.
type WaitSpec struct {
	Kind     WaitKind
	Duration time.Duration // WaitTime, WaitIdle
	Selector string        // WaitElement
	Script   string        // WaitScript
	Timeout  time.Duration // poll bound for WaitElement, WaitScript
}

// ActionKind identifies a post-render browser action.
type ActionKind string

// Supported render actions.
const (
	ActionClick  ActionKind = "click"
	ActionScroll ActionKind = "scroll"
	ActionScript ActionKind = "script"
	ActionWait   ActionKind = "wait"
)

// Action is one step of a render plan, executed against the live page after
// the initial render and before the final HTML grab.
type Action struct {
	Kind       ActionKind
	Selector   string        // ActionClick
	Script     string        // ActionScript
	Pause      time.Duration // ActionScroll pause between scrolls
	MaxScrolls int           // ActionScroll step bound
	Duration   time.Duration // ActionWait
}

// Validate returns an error for an unknown wait kind or a poll wait with no
// target.
func (w *WaitSpec) Validate() error {
	switch w.Kind {
	case WaitTime, WaitIdle:
		return nil
	case WaitElement:
		if w.Selector == "" {
			return Errorf(EINVALID, "element wait requires a selector")
		}
		return nil
	case WaitScript:
		if w.Script == "" {
			return Errorf(EINVALID, "script wait requires a script")
		}
		return nil
	}
	return Errorf(EINVALID, "unknown wait kind %q", w.Kind)
}

// RenderPlan bundles the wait spec and the action sequence applied to every
// page visit when a renderer replaces the plain fetch step.
type RenderPlan struct {
	Wait    *WaitSpec
	Actions []Action
}

// Validate rejects malformed plans before any fetch occurs.
func (p *RenderPlan) Validate() error {
	if p.Wait != nil {
		if err := p.Wait.Validate(); err != nil {
			return err
		}
	}
	for i, a := range p.Actions {
		switch a.Kind {
		case ActionClick:
			if a.Selector == "" {
				return Errorf(EINVALID, "action %d: click requires a selector", i)
			}
		case ActionScript:
			if a.Script == "" {
				return Errorf(EINVALID, "action %d: script requires code", i)
			}
		case ActionScroll, ActionWait:
		default:
			return Errorf(EINVALID, "action %d: unknown kind %q", i, a.Kind)
		}
	}
	return nil
}

// Renderer provides script-executed page rendering through a live browser.
// One session is acquired per page visit and must be released before the
// next visit begins.
type Renderer interface {
	// NewSession opens a fresh browser page.
	NewSession(ctx context.Context) (RenderSession, error)

	// Close releases browser resources.
	// Must be called when the Renderer is no longer needed.
	Close() error
}

// RenderSession is a scoped handle on a live browser page.
type RenderSession interface {
	// Render navigates to url, applies the wait spec and returns the HTML.
	// A nil wait spec applies the implementation's default settling pause.
	Render(ctx context.Context, url string, wait *WaitSpec) (string, error)

	// RunScript executes JavaScript against the page.
	RunScript(ctx context.Context, code string) error

	// Click clicks the element matching selector. If the element is not
	// found or not clickable within the session's wait window, Click logs a
	// warning and returns nil.
	Click(ctx context.Context, selector string) error

	// ScrollToBottom scrolls repeatedly with pause between steps, stopping
	// after maxScrolls steps or once the document height stabilizes between
	// two consecutive scrolls.
	ScrollToBottom(ctx context.Context, pause time.Duration, maxScrolls int) error

	// HTML returns the page's current serialized DOM.
	HTML(ctx context.Context) (string, error)

	// Close releases the page. Safe to call after a failed Render.
	Close() error
}
