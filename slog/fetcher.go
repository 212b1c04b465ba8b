// Package slog provides log/slog decorators for foerder services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/Lechtr/foerder"
)

// Ensure LoggingFetcher implements foerder.Fetcher.
var _ foerder.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher and logs every fetch attempt.
type LoggingFetcher struct {
	next   foerder.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next foerder.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the URL, response
// status, size and duration. Failed attempts are logged at warn level.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		status := 200
		if err != nil {
			level = slog.LevelWarn
			status = foerder.StatusCode(err)
		}
		f.logger.Log(ctx, level, "fetch",
			"url", url,
			"status", status,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
