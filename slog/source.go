package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/scanhub"
)

// Ensure LoggingSource implements scanhub.Source.
var _ scanhub.Source = (*LoggingSource)(nil)

// LoggingSource wraps a Source, logging every network-bound call with the
// source name attached.
type LoggingSource struct {
	next   scanhub.Source
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next scanhub.Source, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger.With("source", next.Name())}
}

// Unwrap returns the decorated source.
func (s *LoggingSource) Unwrap() scanhub.Source {
	return s.next
}

func (s *LoggingSource) Name() string {
	return s.next.Name()
}

func (s *LoggingSource) BaseURL() string {
	return s.next.BaseURL()
}

func (s *LoggingSource) Type() scanhub.SourceType {
	return s.next.Type()
}

func (s *LoggingSource) Description() string {
	return s.next.Description()
}

func (s *LoggingSource) ClientOnly() bool {
	return s.next.ClientOnly()
}

func (s *LoggingSource) CanHandle(url string) bool {
	return s.next.CanHandle(url)
}

// ExtractMangaInfo delegates to the wrapped source and logs the operation.
func (s *LoggingSource) ExtractMangaInfo(ctx context.Context, url string) (info *scanhub.MangaInfo, err error) {
	defer func(begin time.Time) {
		s.logger.Info("manga info",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ExtractMangaInfo(ctx, url)
}

// ChapterList delegates to the wrapped source and logs the operation.
func (s *LoggingSource) ChapterList(ctx context.Context, url string) (chapters []scanhub.ScrapedChapter, err error) {
	defer func(begin time.Time) {
		s.logger.Info("chapter list",
			"url", url,
			"count", len(chapters),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ChapterList(ctx, url)
}

// Search delegates to the wrapped source and logs the operation.
func (s *LoggingSource) Search(ctx context.Context, query string) (results []scanhub.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search",
			"query", query,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query)
}

// WrapSources decorates every source with a LoggingSource.
func WrapSources(sources []scanhub.Source, logger *slog.Logger) []scanhub.Source {
	wrapped := make([]scanhub.Source, len(sources))
	for i, src := range sources {
		wrapped[i] = NewLoggingSource(src, logger)
	}
	return wrapped
}
