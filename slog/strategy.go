package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/harvest"
)

// Ensure LoggingStrategy implements harvest.Strategy.
var _ harvest.Strategy = (*LoggingStrategy)(nil)

// LoggingStrategy wraps a Strategy with debug logging for extraction.
type LoggingStrategy struct {
	next   harvest.Strategy
	logger *slog.Logger
}

// NewLoggingStrategy creates a new LoggingStrategy.
func NewLoggingStrategy(next harvest.Strategy, logger *slog.Logger) *LoggingStrategy {
	return &LoggingStrategy{next: next, logger: logger}
}

// Extract logs the extraction outcome and delegates to the wrapped strategy.
func (s *LoggingStrategy) Extract(html string, pageURL string) (data harvest.FieldMap, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("extract",
			"strategy", s.next.Name(),
			"url", pageURL,
			"fields", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Extract(html, pageURL)
}

// Name delegates to the wrapped strategy.
func (s *LoggingStrategy) Name() string {
	return s.next.Name()
}
