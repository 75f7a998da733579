package sources

import (
	"context"

	"github.com/fwojciec/scanhub"
	"golang.org/x/sync/errgroup"
)

// DefaultEnrichConcurrency bounds the follow-up requests of one search.
const DefaultEnrichConcurrency = 5

// Enrich applies fn to a copy of every result concurrently and returns the
// enriched copies in input order. Enrichment is best-effort: when fn fails
// the original result is kept unchanged. Enrich never fails the search.
func Enrich(ctx context.Context, rs []scanhub.SearchResult, fn func(ctx context.Context, r *scanhub.SearchResult) error) []scanhub.SearchResult {
	out := make([]scanhub.SearchResult, len(rs))
	copy(out, rs)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultEnrichConcurrency)
	for i := range out {
		g.Go(func() error {
			r := out[i]
			if err := fn(ctx, &r); err == nil {
				out[i] = r
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}
