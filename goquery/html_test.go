package goquery_test

import (
	"testing"

	"github.com/fwojciec/scanhub/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrapPre(t *testing.T) {
	t.Parallel()

	t.Run("extracts and unescapes pre content", func(t *testing.T) {
		t.Parallel()

		body := `<html><head></head><body><pre style="word-wrap: break-word;">{"result":{"title":"A &amp; B"}}</pre></body></html>`

		assert.Equal(t, `{"result":{"title":"A & B"}}`, goquery.UnwrapPre(body))
	})

	t.Run("returns plain json unchanged", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, `{"a":1}`, goquery.UnwrapPre("  {\"a\":1}\n"))
	})
}

func TestAbsURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://mangapark.io/title/1-en-x", goquery.AbsURL("https://mangapark.io", "/title/1-en-x"))
	assert.Equal(t, "https://asuracomic.net/series/solo", goquery.AbsURL("https://asuracomic.net/", "series/solo"))
	assert.Equal(t, "https://cdn.example.com/a.jpg", goquery.AbsURL("https://mangapark.io", "https://cdn.example.com/a.jpg"))
	assert.Empty(t, goquery.AbsURL("https://mangapark.io", "  "))
}

func TestPageTitle(t *testing.T) {
	t.Parallel()

	t.Run("prefers heading", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewDocument(`<html><head><title>X - Site</title></head><body><h1> Omniscient Reader </h1></body></html>`)
		require.NoError(t, err)

		assert.Equal(t, "Omniscient Reader", goquery.PageTitle(doc))
	})

	t.Run("falls back to title element", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewDocument(`<html><head><title>Omniscient Reader | Asura Scans</title></head><body></body></html>`)
		require.NoError(t, err)

		assert.Equal(t, "Omniscient Reader", goquery.PageTitle(doc))
	})
}

func TestFirstText(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewDocument(`<div><span class="a"> </span><span class="b">Chapter 5</span></div>`)
	require.NoError(t, err)

	assert.Equal(t, "Chapter 5", goquery.FirstText(doc.Selection, ".a", ".b"))
	assert.Empty(t, goquery.FirstText(doc.Selection, ".missing"))
}

func TestSrcsetFirst(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/a-small.webp", goquery.SrcsetFirst("/a-small.webp 1x, /a-large.webp 2x"))
	assert.Empty(t, goquery.SrcsetFirst(""))
}
