package scanhub_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/scanhub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeFields(t *testing.T, raw string) scanhub.Fields {
	t.Helper()
	var f scanhub.Fields
	require.NoError(t, json.Unmarshal([]byte(raw), &f))
	return f
}

func TestFields(t *testing.T) {
	t.Parallel()

	t.Run("falls back through candidate keys", func(t *testing.T) {
		t.Parallel()

		f := decodeFields(t, `{"id": "", "hash_id": "abc", "poster": {"medium": "m.jpg"}}`)

		assert.Equal(t, "abc", f.String("id", "hash_id"))
		assert.Equal(t, "m.jpg", f.String("poster.large", "poster.medium"))
		assert.Empty(t, f.String("missing"))
	})

	t.Run("formats numbers as strings", func(t *testing.T) {
		t.Parallel()

		f := decodeFields(t, `{"follows_total": 1234}`)

		assert.Equal(t, "1234", f.String("followers", "follows_total"))
	})

	t.Run("parses numeric strings", func(t *testing.T) {
		t.Parallel()

		f := decodeFields(t, `{"chapter_count": "42", "bad": "x"}`)

		n, ok := f.Float("chapter_count")
		assert.True(t, ok)
		assert.InDelta(t, 42.0, n, 1e-9)

		_, ok = f.Float("bad")
		assert.False(t, ok)
	})

	t.Run("returns nested items", func(t *testing.T) {
		t.Parallel()

		f := decodeFields(t, `{"result": {"items": [{"a": 1}, "skip", {"a": 2}]}}`)

		items := f.Items("result.items")
		require.Len(t, items, 2)
		n, _ := items[1].Float("a")
		assert.InDelta(t, 2.0, n, 1e-9)
		assert.Nil(t, f.Items("result.missing"))
	})
}

func TestMapFrontpageManga(t *testing.T) {
	t.Parallel()

	t.Run("maps snake case upstream item", func(t *testing.T) {
		t.Parallel()

		f := decodeFields(t, `{
			"hash_id": "x1y2",
			"slug": "solo-leveling",
			"title": "Solo Leveling",
			"poster": {"large": "", "medium": "https://cdn/m.jpg"},
			"latest_chapter": 200,
			"rated_avg": 8.5,
			"follows_total": 99,
			"chapter_updated_at": 1700000000,
			"type": "manhwa",
			"status": "finished",
			"synopsis": "A hunter."
		}`)

		m := scanhub.MapFrontpageManga(f, "https://comix.to/")

		assert.Equal(t, "x1y2", m.ID)
		assert.Equal(t, "Solo Leveling", m.Title)
		assert.Equal(t, "https://comix.to/solo-leveling", m.URL)
		assert.Equal(t, "https://cdn/m.jpg", m.CoverImage)
		assert.InDelta(t, 200.0, m.LatestChapter, 1e-9)
		require.NotNil(t, m.Rating)
		assert.InDelta(t, 8.5, *m.Rating, 1e-9)
		assert.Equal(t, "99", m.Followers)
		require.NotNil(t, m.LastUpdatedTimestamp)
		assert.Equal(t, int64(1700000000000), *m.LastUpdatedTimestamp)
		assert.Equal(t, "2023-11-14", m.LastUpdated)
		assert.Equal(t, "manhwa", m.Type)
		assert.Equal(t, "finished", m.Status)
		assert.Equal(t, "A hunter.", m.Synopsis)
	})

	t.Run("prefers canonical keys", func(t *testing.T) {
		t.Parallel()

		f := decodeFields(t, `{"id": "7", "hash_id": "zz", "coverImage": "c.jpg", "latestChapter": 3, "latest_chapter": 9}`)

		m := scanhub.MapFrontpageManga(f, "https://example.com")

		assert.Equal(t, "7", m.ID)
		assert.Equal(t, "c.jpg", m.CoverImage)
		assert.InDelta(t, 3.0, m.LatestChapter, 1e-9)
		assert.Nil(t, m.Rating)
		assert.Equal(t, "https://example.com/7", m.URL)
	})
}
