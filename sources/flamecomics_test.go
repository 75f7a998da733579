package sources_test

import (
	"context"
	"testing"

	"github.com/fwojciec/scanhub/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const flameSeriesJSON = `[
  {"id": 2, "label": "Omniscient Reader's Viewpoint", "image": "cover.webp", "chapter_count": "250"},
  {"id": 7, "label": "The Reader", "image": "", "chapter_count": 12},
  {"id": 9, "label": "Unrelated", "image": "x.webp", "chapter_count": "99"}
]`

const flameSeriesPageHTML = `<html><body>
<h1>Omniscient Reader's Viewpoint</h1>
<div class="ChapterCard_chapterWrapper__YjOzx">
  <a href="/series/2/abc123" data-mal-sync-episode="250"><p data-size="md">Chapter 250</p><p data-size="xs" title="2020-01-02T00:00:00Z">2020</p></a>
</div>
<div class="ChapterCard_chapterWrapper__YjOzx">
  <a href="/series/2/abc122"><p data-size="md">Chapter 249.5</p></a>
</div>
<a href="/series/2">Series home</a>
</body></html>`

func TestFlameComics_Search(t *testing.T) {
	t.Parallel()

	src := sources.NewFlameComics(
		pages(t, map[string]string{"https://flamecomics.xyz/series/2": flameSeriesPageHTML}),
		jsonDocs(t, map[string]string{"https://flamecomics.xyz/api/series": flameSeriesJSON}),
	)

	results, err := src.Search(context.Background(), "  READER ")

	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "2", results[0].ID)
	assert.Equal(t, "https://flamecomics.xyz/series/2", results[0].URL)
	assert.Equal(t, "https://cdn.flamecomics.xyz/uploads/images/series/2/cover.webp", results[0].CoverImage)
	assert.InDelta(t, 250, results[0].LatestChapter, 0.001)
	assert.Regexp(t, `^\d+y ago$`, results[0].LastUpdated)
	require.NotNil(t, results[0].LastUpdatedTimestamp)

	assert.Equal(t, "7", results[1].ID)
	assert.Empty(t, results[1].CoverImage)
	assert.Empty(t, results[1].LastUpdated)
}

func TestFlameComics_ChapterList(t *testing.T) {
	t.Parallel()

	src := sources.NewFlameComics(
		pages(t, map[string]string{"https://flamecomics.xyz/series/2": flameSeriesPageHTML}),
		jsonDocs(t, nil),
	)

	chapters, err := src.ChapterList(context.Background(), "https://flamecomics.xyz/series/2")

	require.NoError(t, err)
	assert.Equal(t, []float64{249.5, 250}, numbers(chapters))
	assert.Equal(t, "Chapter 250", chapters[1].Title)
	assert.Equal(t, "https://flamecomics.xyz/series/2/abc123", chapters[1].URL)
}
