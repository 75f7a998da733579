//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/scanhub"
	"github.com/fwojciec/scanhub/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Fetcher implements scanhub.Fetcher.
var _ scanhub.Fetcher = (*rod.Fetcher)(nil)

func newFetcher(t *testing.T, opts ...rod.Option) *rod.Fetcher {
	t.Helper()
	manager, err := rod.NewBrowserManager()
	require.NoError(t, err)
	f := rod.NewFetcher(manager, opts...)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestFetcher_Fetch_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {}
	}))
	defer srv.Close()

	fetcher := newFetcher(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetcher.Fetch(ctx, srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetcher_Fetch_ReturnsRenderedHTML(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Series</title></head>
<body>
<div id="chapters">Loading...</div>
<script>
document.getElementById('chapters').innerHTML = '<a href="/series/x/chapter/1">Chapter 1</a>';
</script>
</body>
</html>`))
	}))
	defer srv.Close()

	html, err := newFetcher(t, rod.WithIdleTime(200*time.Millisecond)).Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, "Chapter 1")
	assert.NotContains(t, html, "Loading...")
}

func TestFetcher_Fetch_SendsUserAgent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><p id="ua">` + r.UserAgent() + `</p></body></html>`))
	}))
	defer srv.Close()

	html, err := newFetcher(t, rod.WithUserAgent("scanhub-test-agent")).Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, "scanhub-test-agent")
}

func TestFetcher_Fetch_AfterClose_ReturnsError(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager()
	require.NoError(t, err)
	fetcher := rod.NewFetcher(manager)

	require.NoError(t, fetcher.Close())
	require.NoError(t, fetcher.Close())

	_, err = fetcher.Fetch(context.Background(), "http://example.com")

	require.Error(t, err)
	assert.Equal(t, scanhub.EINVALID, scanhub.ErrorCode(err))
	assert.Contains(t, scanhub.ErrorMessage(err), "closed")
}
