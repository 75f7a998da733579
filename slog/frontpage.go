package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/scanhub"
)

// Ensure LoggingFrontpage implements scanhub.Frontpage.
var _ scanhub.Frontpage = (*LoggingFrontpage)(nil)

// LoggingFrontpage wraps a Frontpage with debug logging.
type LoggingFrontpage struct {
	next   scanhub.Frontpage
	logger *slog.Logger
}

// NewLoggingFrontpage creates a new LoggingFrontpage.
func NewLoggingFrontpage(next scanhub.Frontpage, logger *slog.Logger) *LoggingFrontpage {
	return &LoggingFrontpage{next: next, logger: logger}
}

func (f *LoggingFrontpage) SourceID() string {
	return f.next.SourceID()
}

func (f *LoggingFrontpage) SourceName() string {
	return f.next.SourceName()
}

func (f *LoggingFrontpage) Sections() []scanhub.SectionConfig {
	return f.next.Sections()
}

// FetchSection delegates to the wrapped frontpage and logs the operation.
func (f *LoggingFrontpage) FetchSection(ctx context.Context, id string, opts scanhub.FetchOptions) (section *scanhub.FrontpageSection, err error) {
	defer func(begin time.Time) {
		count := 0
		if section != nil {
			count = len(section.Items)
		}
		f.logger.Info("frontpage section",
			"source", f.next.SourceID(),
			"section", id,
			"page", opts.Page,
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchSection(ctx, id, opts)
}
