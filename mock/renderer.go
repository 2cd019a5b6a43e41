package mock

import (
	"context"
	"time"

	"github.com/fwojciec/harvest"
)

var (
	_ harvest.Renderer      = (*Renderer)(nil)
	_ harvest.RenderSession = (*RenderSession)(nil)
)

// Renderer is a mock implementation of harvest.Renderer.
type Renderer struct {
	NewSessionFn func(ctx context.Context) (harvest.RenderSession, error)
	CloseFn      func() error
}

func (r *Renderer) NewSession(ctx context.Context) (harvest.RenderSession, error) {
	return r.NewSessionFn(ctx)
}

func (r *Renderer) Close() error {
	if r.CloseFn == nil {
		return nil
	}
	return r.CloseFn()
}

// RenderSession is a mock implementation of harvest.RenderSession.
type RenderSession struct {
	RenderFn         func(ctx context.Context, url string, wait *harvest.WaitSpec) (string, error)
	RunScriptFn      func(ctx context.Context, code string) error
	ClickFn          func(ctx context.Context, selector string) error
	ScrollToBottomFn func(ctx context.Context, pause time.Duration, maxScrolls int) error
	HTMLFn           func(ctx context.Context) (string, error)
	CloseFn          func() error
}

func (s *RenderSession) Render(ctx context.Context, url string, wait *harvest.WaitSpec) (string, error) {
	return s.RenderFn(ctx, url, wait)
}

func (s *RenderSession) RunScript(ctx context.Context, code string) error {
	if s.RunScriptFn == nil {
		return nil
	}
	return s.RunScriptFn(ctx, code)
}

func (s *RenderSession) Click(ctx context.Context, selector string) error {
	if s.ClickFn == nil {
		return nil
	}
	return s.ClickFn(ctx, selector)
}

func (s *RenderSession) ScrollToBottom(ctx context.Context, pause time.Duration, maxScrolls int) error {
	if s.ScrollToBottomFn == nil {
		return nil
	}
	return s.ScrollToBottomFn(ctx, pause, maxScrolls)
}

func (s *RenderSession) HTML(ctx context.Context) (string, error) {
	return s.HTMLFn(ctx)
}

func (s *RenderSession) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}
