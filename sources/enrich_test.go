package sources_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/scanhub"
	"github.com/fwojciec/scanhub/sources"
	"github.com/stretchr/testify/assert"
)

func TestEnrich(t *testing.T) {
	t.Parallel()

	t.Run("keeps order and originals on failure", func(t *testing.T) {
		t.Parallel()

		in := []scanhub.SearchResult{{ID: "a"}, {ID: "b"}, {ID: "c"}}

		out := sources.Enrich(context.Background(), in, func(_ context.Context, r *scanhub.SearchResult) error {
			r.LatestChapter = 10
			if r.ID == "b" {
				return errors.New("boom")
			}
			return nil
		})

		assert.Equal(t, []string{"a", "b", "c"}, []string{out[0].ID, out[1].ID, out[2].ID})
		assert.InDelta(t, 10, out[0].LatestChapter, 0.001)
		assert.Zero(t, out[1].LatestChapter)
		assert.InDelta(t, 10, out[2].LatestChapter, 0.001)
	})

	t.Run("does not modify the input", func(t *testing.T) {
		t.Parallel()

		in := []scanhub.SearchResult{{ID: "a"}}

		sources.Enrich(context.Background(), in, func(_ context.Context, r *scanhub.SearchResult) error {
			r.Title = "changed"
			return nil
		})

		assert.Empty(t, in[0].Title)
	})
}
