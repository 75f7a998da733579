package scanhub_test

import (
	"testing"

	"github.com/fwojciec/scanhub"
	"github.com/stretchr/testify/assert"
)

func TestChapterNumberFromText(t *testing.T) {
	t.Parallel()

	t.Run("parses decimal chapter", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 12.5, scanhub.ChapterNumberFromText("Chapter 12.5"), 1e-9)
	})

	t.Run("parses abbreviated and episode forms", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 7.0, scanhub.ChapterNumberFromText("Ch. 7"), 1e-9)
		assert.InDelta(t, 3.0, scanhub.ChapterNumberFromText("Episode 3"), 1e-9)
		assert.InDelta(t, 0.0, scanhub.ChapterNumberFromText("Chapter 0 - Prologue"), 1e-9)
	})

	t.Run("rejects concatenated ranges", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, scanhub.UnknownChapter, scanhub.ChapterNumberFromText("Chapter 12+13"))
		assert.Equal(t, scanhub.UnknownChapter, scanhub.ChapterNumberFromText("Chapter 12 - 13"))
	})

	t.Run("detects merged releases", func(t *testing.T) {
		t.Parallel()
		assert.True(t, scanhub.IsConcatenatedChapter("Chapter 12+13"))
		assert.True(t, scanhub.IsConcatenatedChapter("Ch. 4 - 5"))
		assert.False(t, scanhub.IsConcatenatedChapter("Chapter 12 - The Return"))
		assert.False(t, scanhub.IsConcatenatedChapter("Side Story 7"))
	})

	t.Run("keeps subtitle after dash", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 12.0, scanhub.ChapterNumberFromText("Chapter 12 - The Return"), 1e-9)
	})

	t.Run("returns unknown for unparseable text", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, scanhub.UnknownChapter, scanhub.ChapterNumberFromText("Epilogue"))
		assert.Equal(t, scanhub.UnknownChapter, scanhub.ChapterNumberFromText(""))
	})
}

func TestChapterNumberFromURL(t *testing.T) {
	t.Parallel()

	t.Run("decodes dash-encoded decimal", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 12.5, scanhub.ChapterNumberFromURL("https://example.com/manga/x/chapter-12-5"), 1e-9)
		assert.InDelta(t, 12.15, scanhub.ChapterNumberFromURL("https://example.com/manga/x/chapter-12-15/"), 1e-9)
	})

	t.Run("parses path segment forms", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 12.0, scanhub.ChapterNumberFromURL("https://asuracomic.net/series/solo-1/chapter/12"), 1e-9)
		assert.InDelta(t, 200.0, scanhub.ChapterNumberFromURL("https://mangapark.io/title/1-en-x/9212466-ch-200"), 1e-9)
		assert.InDelta(t, 4.5, scanhub.ChapterNumberFromURL("https://example.com/chapter-4.5"), 1e-9)
	})

	t.Run("ignores keyword inside words", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 3.0, scanhub.ChapterNumberFromURL("https://example.com/series/beach-5-days/chapter-3"), 1e-9)
	})

	t.Run("returns unknown without chapter segment", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, scanhub.UnknownChapter, scanhub.ChapterNumberFromURL("https://example.com/series/abc"))
	})
}

func TestParseChapterNumber(t *testing.T) {
	t.Parallel()

	t.Run("text wins over url", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 12.5, scanhub.ParseChapterNumber("Chapter 12.5", "https://example.com/chapter-99"), 1e-9)
	})

	t.Run("falls back to url", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 12.5, scanhub.ParseChapterNumber("New!", "https://example.com/chapter-12-5"), 1e-9)
	})

	t.Run("concatenated text is final", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, scanhub.UnknownChapter, scanhub.ParseChapterNumber("Chapter 12+13", "https://example.com/chapter-12"))
	})

	t.Run("unparseable input", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, scanhub.UnknownChapter, scanhub.ParseChapterNumber("", ""))
	})
}

func TestNormalizeChapters(t *testing.T) {
	t.Parallel()

	t.Run("sorts ascending and keeps first seen duplicate", func(t *testing.T) {
		t.Parallel()

		got := scanhub.NormalizeChapters([]scanhub.ScrapedChapter{
			{ID: "a", Number: 3},
			{ID: "b", Number: 1},
			{ID: "c", Number: 3},
			{ID: "d", Number: 2.5},
			{ID: "e", Number: scanhub.UnknownChapter},
			{ID: "f", Number: 0},
		})

		ids := make([]string, 0, len(got))
		for _, ch := range got {
			ids = append(ids, ch.ID)
		}
		assert.Equal(t, []string{"f", "b", "d", "a"}, ids)
	})

	t.Run("returns empty slice for nil input", func(t *testing.T) {
		t.Parallel()

		got := scanhub.NormalizeChapters(nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
