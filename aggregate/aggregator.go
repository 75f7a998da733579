// Package aggregate fans requests out over the registered sources.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/scanhub"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds each source's search in a fan-out.
const DefaultTimeout = 20 * time.Second

// AllSources selects the fan-out over every registered source.
const AllSources = "all"

// SourceResults is the settled outcome of one source in a fan-out. A
// failed source carries an empty result list and the error message.
type SourceResults struct {
	Source  string                 `json:"source"`
	Results []scanhub.SearchResult `json:"results"`
	Error   string                 `json:"error,omitempty"`
}

// Summary closes a streamed fan-out.
type Summary struct {
	Done             bool `json:"done"`
	TotalSources     int  `json:"totalSources"`
	CompletedSources int  `json:"completedSources"`
	FailedSources    int  `json:"failedSources"`
}

// Aggregator resolves sources and fans searches out over them.
// Aggregator is safe for concurrent use.
type Aggregator struct {
	registry scanhub.SourceRegistry
	timeout  time.Duration
	logger   *slog.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithTimeout sets the per-source search timeout of a fan-out.
func WithTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		a.timeout = d
	}
}

// WithLogger sets the logger for failed and abandoned sources.
func WithLogger(l *slog.Logger) Option {
	return func(a *Aggregator) {
		a.logger = l
	}
}

// NewAggregator creates an Aggregator over registry.
func NewAggregator(registry scanhub.SourceRegistry, opts ...Option) *Aggregator {
	a := &Aggregator{
		registry: registry,
		timeout:  DefaultTimeout,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Registry returns the source registry the aggregator serves.
func (a *Aggregator) Registry() scanhub.SourceRegistry {
	return a.registry
}

func normalizeQuery(query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", scanhub.Errorf(scanhub.EINVALID, "Search query is required")
	}
	return query, nil
}

// SourceByName returns the named source, or EUNSUPPORTED listing the valid
// names.
func (a *Aggregator) SourceByName(name string) (scanhub.Source, error) {
	if src := a.registry.SourceByName(name); src != nil {
		return src, nil
	}
	return nil, scanhub.Errorf(scanhub.EUNSUPPORTED, "Unsupported source. Available sources: %s",
		strings.Join(a.registry.Names(), ", "))
}

// SearchOne searches a single named source. The source's error is returned
// unchanged.
func (a *Aggregator) SearchOne(ctx context.Context, name, query string) (*SourceResults, error) {
	query, err := normalizeQuery(query)
	if err != nil {
		return nil, err
	}
	src, err := a.SourceByName(name)
	if err != nil {
		return nil, err
	}
	rs, err := src.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if rs == nil {
		rs = []scanhub.SearchResult{}
	}
	return &SourceResults{Source: src.Name(), Results: rs}, nil
}

// SearchAll searches every source concurrently and returns one outcome per
// source in registration order once all have settled. A failing or slow
// source never fails the call; only an empty query does.
func (a *Aggregator) SearchAll(ctx context.Context, query string) ([]SourceResults, error) {
	query, err := normalizeQuery(query)
	if err != nil {
		return nil, err
	}
	srcs := a.registry.Sources()
	out := make([]SourceResults, len(srcs))

	var g errgroup.Group
	for i, src := range srcs {
		g.Go(func() error {
			out[i] = a.searchSource(ctx, src, query)
			return nil
		})
	}
	_ = g.Wait()
	return out, nil
}

// StreamAll searches every source concurrently and passes each outcome to
// emit as soon as it settles. emit is never called concurrently. An emit
// error abandons the remaining sources and is returned.
func (a *Aggregator) StreamAll(ctx context.Context, query string, emit func(SourceResults) error) (Summary, error) {
	query, err := normalizeQuery(query)
	if err != nil {
		return Summary{}, err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srcs := a.registry.Sources()
	settled := make(chan SourceResults, len(srcs))
	for _, src := range srcs {
		go func() {
			settled <- a.searchSource(ctx, src, query)
		}()
	}

	summary := Summary{TotalSources: len(srcs)}
	for range srcs {
		r := <-settled
		if r.Error != "" {
			summary.FailedSources++
		} else {
			summary.CompletedSources++
		}
		if err := emit(r); err != nil {
			return summary, err
		}
	}
	summary.Done = true
	return summary, nil
}

type reply struct {
	results []scanhub.SearchResult
	err     error
}

// searchSource runs one source's search under the per-source timeout. A
// source that ignores cancellation is abandoned when the timeout fires;
// its late reply is discarded.
func (a *Aggregator) searchSource(ctx context.Context, src scanhub.Source, query string) SourceResults {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	name := src.Name()
	replies := make(chan reply, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				replies <- reply{err: fmt.Errorf("search panicked: %v", r)}
			}
		}()
		rs, err := src.Search(ctx, query)
		replies <- reply{results: rs, err: err}
	}()

	var r reply
	select {
	case r = <-replies:
	case <-ctx.Done():
		r.err = ctx.Err()
	}

	if r.err != nil {
		msg := scanhub.ErrorMessage(r.err)
		if errors.Is(r.err, context.DeadlineExceeded) {
			msg = fmt.Sprintf("Search timed out after %s", a.timeout)
		}
		a.logger.Warn("source search failed", "source", name, "error", msg)
		return SourceResults{Source: name, Results: []scanhub.SearchResult{}, Error: msg}
	}
	if r.results == nil {
		r.results = []scanhub.SearchResult{}
	}
	return SourceResults{Source: name, Results: r.results}
}

// Resolve picks the source for a request: by name when one is given and
// registered, otherwise by URL.
func (a *Aggregator) Resolve(rawURL, name string) (scanhub.Source, error) {
	if name = strings.TrimSpace(name); name != "" && !strings.EqualFold(name, AllSources) {
		if src := a.registry.SourceByName(name); src != nil {
			return src, nil
		}
	}
	if src := a.registry.Source(rawURL); src != nil {
		return src, nil
	}
	return nil, scanhub.Errorf(scanhub.EUNSUPPORTED, "No scraper found for this URL. Please provide a valid manga URL or source name.")
}

// Chapters lists the chapters of the title at rawURL.
func (a *Aggregator) Chapters(ctx context.Context, rawURL, name string) (scanhub.Source, []scanhub.ScrapedChapter, error) {
	src, err := a.resolveURL(rawURL, name)
	if err != nil {
		return nil, nil, err
	}
	chapters, err := src.ChapterList(ctx, strings.TrimSpace(rawURL))
	if err != nil {
		return src, nil, err
	}
	if chapters == nil {
		chapters = []scanhub.ScrapedChapter{}
	}
	return src, chapters, nil
}

// MangaInfo resolves the title and id of the title at rawURL.
func (a *Aggregator) MangaInfo(ctx context.Context, rawURL, name string) (scanhub.Source, *scanhub.MangaInfo, error) {
	src, err := a.resolveURL(rawURL, name)
	if err != nil {
		return nil, nil, err
	}
	info, err := src.ExtractMangaInfo(ctx, strings.TrimSpace(rawURL))
	if err != nil {
		return src, nil, err
	}
	return src, info, nil
}

func (a *Aggregator) resolveURL(rawURL, name string) (scanhub.Source, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, scanhub.Errorf(scanhub.EINVALID, "URL is required")
	}
	return a.Resolve(strings.TrimSpace(rawURL), name)
}
