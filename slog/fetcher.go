// Package slog decorates scanhub services with structured logging.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/scanhub"
)

// Ensure LoggingFetcher implements scanhub.Fetcher.
var _ scanhub.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   scanhub.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next scanhub.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
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

// Ensure LoggingJSONFetcher implements scanhub.JSONFetcher.
var _ scanhub.JSONFetcher = (*LoggingJSONFetcher)(nil)

// LoggingJSONFetcher wraps a JSONFetcher with debug logging.
type LoggingJSONFetcher struct {
	next   scanhub.JSONFetcher
	logger *slog.Logger
}

// NewLoggingJSONFetcher creates a new LoggingJSONFetcher.
func NewLoggingJSONFetcher(next scanhub.JSONFetcher, logger *slog.Logger) *LoggingJSONFetcher {
	return &LoggingJSONFetcher{next: next, logger: logger}
}

// FetchJSON logs the URL and error code and delegates to the wrapped fetcher.
func (f *LoggingJSONFetcher) FetchJSON(ctx context.Context, url string, v any) (err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch json",
			"url", url,
			"duration", time.Since(begin),
			"code", scanhub.ErrorCode(err),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchJSON(ctx, url, v)
}
