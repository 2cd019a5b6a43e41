package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/harvest"
)

// Ensure LoggingRenderer implements harvest.Renderer.
var _ harvest.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with debug logging.
type LoggingRenderer struct {
	next   harvest.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next harvest.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// NewSession opens a session on the wrapped renderer, logging its renders.
func (r *LoggingRenderer) NewSession(ctx context.Context) (harvest.RenderSession, error) {
	sess, err := r.next.NewSession(ctx)
	if err != nil {
		return nil, err
	}
	return &loggingSession{next: sess, logger: r.logger}, nil
}

// Close delegates to the wrapped renderer.
func (r *LoggingRenderer) Close() error {
	return r.next.Close()
}

type loggingSession struct {
	next   harvest.RenderSession
	logger *slog.Logger
}

// Render logs the URL being rendered and delegates to the wrapped session.
func (s *loggingSession) Render(ctx context.Context, url string, wait *harvest.WaitSpec) (html string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("render",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Render(ctx, url, wait)
}

func (s *loggingSession) RunScript(ctx context.Context, code string) error {
	return s.next.RunScript(ctx, code)
}

func (s *loggingSession) Click(ctx context.Context, selector string) error {
	return s.next.Click(ctx, selector)
}

func (s *loggingSession) ScrollToBottom(ctx context.Context, pause time.Duration, maxScrolls int) error {
	return s.next.ScrollToBottom(ctx, pause, maxScrolls)
}

func (s *loggingSession) HTML(ctx context.Context) (string, error) {
	return s.next.HTML(ctx)
}

func (s *loggingSession) Close() error {
	return s.next.Close()
}
