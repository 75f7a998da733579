package mock

import (
	"context"
	"net/http"

	"github.com/fwojciec/scanhub"
)

var (
	_ scanhub.Fetcher           = (*Fetcher)(nil)
	_ scanhub.JSONFetcher       = (*JSONFetcher)(nil)
	_ scanhub.Solver            = (*Solver)(nil)
	_ scanhub.ChallengeDetector = (*ChallengeDetector)(nil)
	_ scanhub.DomainLimiter     = (*DomainLimiter)(nil)
)

// Fetcher is a mock implementation of scanhub.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

// JSONFetcher is a mock implementation of scanhub.JSONFetcher.
type JSONFetcher struct {
	FetchJSONFn func(ctx context.Context, url string, v any) error
}

func (f *JSONFetcher) FetchJSON(ctx context.Context, url string, v any) error {
	return f.FetchJSONFn(ctx, url, v)
}

// Solver is a mock implementation of scanhub.Solver.
type Solver struct {
	SolveFn func(ctx context.Context, url string) (*scanhub.Solution, error)
}

func (s *Solver) Solve(ctx context.Context, url string) (*scanhub.Solution, error) {
	return s.SolveFn(ctx, url)
}

// ChallengeDetector is a mock implementation of scanhub.ChallengeDetector.
type ChallengeDetector struct {
	DetectFn func(body string, header http.Header) bool
}

func (d *ChallengeDetector) Detect(body string, header http.Header) bool {
	return d.DetectFn(body, header)
}

// DomainLimiter is a mock implementation of scanhub.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	return d.WaitFn(ctx, host)
}
