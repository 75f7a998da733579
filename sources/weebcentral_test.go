package sources_test

import (
	"context"
	"testing"

	"github.com/fwojciec/scanhub"
	"github.com/fwojciec/scanhub/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weebSearchURL = "https://weebcentral.com/search/data?adult=Any&anime=Any&author=&display_mode=Full+Display&official=Any&order=Descending&sort=Best+Match&text=solo"

const weebSearchHTML = `<html><body>
<article class="bg-base-300">
  <a href="https://weebcentral.com/series/01J76XY/Solo-Leveling">
    <img alt="Solo Leveling cover" srcset="https://temp.compsci88.com/cover/small/01J76XY.webp 1x, https://temp.compsci88.com/cover/normal/01J76XY.webp 2x">
    <div class="line-clamp-1">Solo Leveling</div>
  </a>
</article>
<article class="bg-base-300">
  <a href="/series/01BROKEN/Solo-Camping"></a>
</article>
</body></html>`

const weebChapterListHTML = `<html><body>
<a href="https://weebcentral.com/chapters/A3"><span>Chapter 200</span></a>
<a href="https://weebcentral.com/chapters/A2"><span>Chapter 2</span></a>
<a href="https://weebcentral.com/chapters/A1"><span>Episode 1</span></a>
<a href="https://weebcentral.com/chapters/A0"><span>Side Story 7</span></a>
</body></html>`

func TestWeebCentral_Search(t *testing.T) {
	t.Parallel()

	src := sources.NewWeebCentral(pages(t, map[string]string{
		weebSearchURL: weebSearchHTML,
		"https://weebcentral.com/series/01J76XY/full-chapter-list": weebChapterListHTML,
	}))

	results, err := src.Search(context.Background(), "solo")

	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "01J76XY", results[0].ID)
	assert.Equal(t, "Solo Leveling", results[0].Title)
	assert.Equal(t, "https://temp.compsci88.com/cover/small/01J76XY.webp", results[0].CoverImage)
	assert.InDelta(t, 200, results[0].LatestChapter, 0.001)

	// The second title's chapter list fails; it keeps its unenriched
	// values and its title comes from the URL slug.
	assert.Equal(t, "01BROKEN", results[1].ID)
	assert.Equal(t, "Solo Camping", results[1].Title)
	assert.Equal(t, "https://weebcentral.com/series/01BROKEN/Solo-Camping", results[1].URL)
	assert.Zero(t, results[1].LatestChapter)
}

func TestWeebCentral_ChapterList(t *testing.T) {
	t.Parallel()

	t.Run("reads the full chapter list", func(t *testing.T) {
		t.Parallel()

		src := sources.NewWeebCentral(pages(t, map[string]string{
			"https://weebcentral.com/series/01J76XY/full-chapter-list": weebChapterListHTML,
		}))

		chapters, err := src.ChapterList(context.Background(), "https://weebcentral.com/series/01J76XY/Solo-Leveling")

		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2, 7, 200}, numbers(chapters))
		assert.Equal(t, "https://weebcentral.com/chapters/A1", chapters[0].URL)
	})

	t.Run("drops merged releases", func(t *testing.T) {
		t.Parallel()

		src := sources.NewWeebCentral(pages(t, map[string]string{
			"https://weebcentral.com/series/01J76XY/full-chapter-list": `<html><body>
<a href="https://weebcentral.com/chapters/B2"><span>Chapter 12+13</span></a>
<a href="https://weebcentral.com/chapters/B1"><span>Chapter 11</span></a>
</body></html>`,
		}))

		chapters, err := src.ChapterList(context.Background(), "https://weebcentral.com/series/01J76XY/Solo-Leveling")

		require.NoError(t, err)
		require.Len(t, chapters, 1)
		assert.InDelta(t, 11, chapters[0].Number, 0.001)
		assert.Equal(t, "Chapter 11", chapters[0].Title)
	})

	t.Run("rejects URLs without a series id", func(t *testing.T) {
		t.Parallel()

		src := sources.NewWeebCentral(pages(t, nil))

		_, err := src.ChapterList(context.Background(), "https://weebcentral.com/search")

		require.Error(t, err)
		assert.Equal(t, scanhub.EINVALID, scanhub.ErrorCode(err))
	})
}
