package sources_test

import (
	"context"
	"testing"

	"github.com/fwojciec/scanhub"
	"github.com/fwojciec/scanhub/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mangaParkSearchHTML = `<html><body>
<div class="flex border-b border-b-base-200 pb-5">
  <img src="/thumb/75577.jpg">
  <h3><a class="link-hover link-pri" href="/title/75577-en-solo-leveling">Solo Leveling</a></h3>
  <a href="/title/75577-en-solo-leveling/9212466-ch-200">Chapter 200</a>
  <time data-time="1700000000000"><span>2 days ago</span></time>
  <div class="text-yellow-500"><span class="font-bold">9.5</span></div>
  <div id="comic-follow-swap-75577"><span class="ml-1">12K</span></div>
</div>
<div class="flex border-b border-b-base-200 pb-5">
  <h3><span>no link</span></h3>
</div>
</body></html>`

const mangaParkTitleHTML = `<html><head><title>Solo Leveling - MangaPark</title></head><body>
<h1>Solo Leveling</h1>
<a href="/title/75577-en-solo-leveling">Solo Leveling</a>
<a href="/title/75577-en-solo-leveling/100-ch-2">Chapter 2</a>
<a href="/title/75577-en-solo-leveling/99-ch-1">Chapter 1</a>
<a href="/title/75577-en-solo-leveling/100-ch-2">Chapter 2</a>
<a href="/title/75577-en-solo-leveling/101-ch-2-5">Chapter 2.5</a>
</body></html>`

func TestMangaPark_Search(t *testing.T) {
	t.Parallel()

	src := sources.NewMangaPark(pages(t, map[string]string{
		"https://mangapark.io/search?word=solo+leveling": mangaParkSearchHTML,
	}))

	results, err := src.Search(context.Background(), "solo leveling")

	require.NoError(t, err)
	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, "75577", r.ID)
	assert.Equal(t, "Solo Leveling", r.Title)
	assert.Equal(t, "https://mangapark.io/title/75577-en-solo-leveling", r.URL)
	assert.Equal(t, "https://mangapark.io/thumb/75577.jpg", r.CoverImage)
	assert.InDelta(t, 200, r.LatestChapter, 0.001)
	assert.Equal(t, "2 days ago", r.LastUpdated)
	require.NotNil(t, r.LastUpdatedTimestamp)
	assert.Equal(t, int64(1700000000000), *r.LastUpdatedTimestamp)
	require.NotNil(t, r.Rating)
	assert.InDelta(t, 9.5, *r.Rating, 0.001)
	assert.Equal(t, "12K", r.Followers)
}

func TestMangaPark_Search_NoMatches(t *testing.T) {
	t.Parallel()

	src := sources.NewMangaPark(pages(t, map[string]string{
		"https://mangapark.io/search?word=zzz": `<html><body></body></html>`,
	}))

	results, err := src.Search(context.Background(), "zzz")

	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestMangaPark_ChapterList(t *testing.T) {
	t.Parallel()

	src := sources.NewMangaPark(pages(t, map[string]string{
		"https://mangapark.io/title/75577-en-solo-leveling": mangaParkTitleHTML,
	}))

	chapters, err := src.ChapterList(context.Background(), "https://mangapark.io/title/75577-en-solo-leveling")

	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 2.5}, numbers(chapters))
	assert.Equal(t, "2.5", chapters[2].ID)
	assert.Equal(t, "https://mangapark.io/title/75577-en-solo-leveling/99-ch-1", chapters[0].URL)
}

func TestMangaPark_ExtractMangaInfo(t *testing.T) {
	t.Parallel()

	t.Run("resolves title and id", func(t *testing.T) {
		t.Parallel()

		src := sources.NewMangaPark(pages(t, map[string]string{
			"https://mangapark.io/title/75577-en-solo-leveling": mangaParkTitleHTML,
		}))

		info, err := src.ExtractMangaInfo(context.Background(), "https://mangapark.io/title/75577-en-solo-leveling")

		require.NoError(t, err)
		assert.Equal(t, &scanhub.MangaInfo{Title: "Solo Leveling", ID: "75577"}, info)
	})

	t.Run("returns not found without a title id", func(t *testing.T) {
		t.Parallel()

		src := sources.NewMangaPark(pages(t, nil))

		_, err := src.ExtractMangaInfo(context.Background(), "https://mangapark.io/search")

		require.Error(t, err)
		assert.Equal(t, scanhub.ENOTFOUND, scanhub.ErrorCode(err))
	})
}

func TestMangaPark_CanHandle(t *testing.T) {
	t.Parallel()

	src := sources.NewMangaPark(nil)

	assert.True(t, src.CanHandle("https://mangapark.io/title/1-en-x"))
	assert.True(t, src.CanHandle("https://mangapark.net/title/1-en-x"))
	assert.True(t, src.CanHandle("https://www.mangapark.io/"))
	assert.False(t, src.CanHandle("https://notmangapark.io/"))
	assert.False(t, src.CanHandle("not a url"))
	assert.Equal(t, "MangaPark - https://mangapark.io", src.Description())
	assert.False(t, src.ClientOnly())
}
