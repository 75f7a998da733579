package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/scanhub"
	scanhubhttp "github.com/fwojciec/scanhub/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := scanhubhttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello World</body></html>", html)
	})

	t.Run("applies redirect policy", func(t *testing.T) {
		t.Parallel()

		target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("elsewhere"))
		}))
		defer target.Close()
		origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, target.URL, http.StatusFound)
		}))
		defer origin.Close()

		fetcher := scanhubhttp.NewFetcher(scanhubhttp.WithCheckRedirect(func(*http.Request, []*http.Request) error {
			return scanhub.Errorf(scanhub.EINVALID, "redirect refused")
		}))

		_, err := fetcher.Fetch(context.Background(), origin.URL)
		require.Error(t, err)
		assert.Equal(t, scanhub.EINVALID, scanhub.ErrorCode(err))
	})

	t.Run("sends browser headers", func(t *testing.T) {
		t.Parallel()

		var got http.Header
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Clone()
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		fetcher := scanhubhttp.NewFetcher(
			scanhubhttp.WithUserAgent("test-agent"),
			scanhubhttp.WithHeader("Referer", "https://asuracomic.net/"),
		)

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "test-agent", got.Get("User-Agent"))
		assert.Equal(t, "https://asuracomic.net/", got.Get("Referer"))
		assert.Equal(t, "en-US,en;q=0.5", got.Get("Accept-Language"))
		assert.Equal(t, "1", got.Get("DNT"))
	})

	t.Run("per-call headers override defaults", func(t *testing.T) {
		t.Parallel()

		var got http.Header
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Clone()
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		fetcher := scanhubhttp.NewFetcher()

		_, err := fetcher.Get(context.Background(), server.URL, http.Header{
			"user-agent": {"solved-agent"},
			"Cookie":     {"cf_clearance=abc"},
		})
		require.NoError(t, err)
		assert.Equal(t, "solved-agent", got.Get("User-Agent"))
		assert.Equal(t, "cf_clearance=abc", got.Get("Cookie"))
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := scanhubhttp.NewFetcher(scanhubhttp.WithTimeout(10 * time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := scanhubhttp.NewFetcher()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.Fetch(ctx, server.URL)
		require.Error(t, err)
	})

	t.Run("returns response error for non-2xx status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Server", "cloudflare")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("<title>Just a moment...</title>"))
		}))
		defer server.Close()

		fetcher := scanhubhttp.NewFetcher()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, scanhub.StatusCode(err))
		assert.Contains(t, err.Error(), "403")

		var respErr *scanhub.ResponseError
		require.ErrorAs(t, err, &respErr)
		assert.Contains(t, respErr.Body, "Just a moment")
		assert.Equal(t, "cloudflare", respErr.Header.Get("Server"))
	})
}

func TestFetcher_FetchJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes json body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.Header.Get("Accept"), "application/json")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"name":"comix"}`))
		}))
		defer server.Close()

		var got struct {
			Name string `json:"name"`
		}
		err := scanhubhttp.NewFetcher().FetchJSON(context.Background(), server.URL, &got)
		require.NoError(t, err)
		assert.Equal(t, "comix", got.Name)
	})

	t.Run("returns parse error for invalid json", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>nope</html>`))
		}))
		defer server.Close()

		var got map[string]any
		err := scanhubhttp.NewFetcher().FetchJSON(context.Background(), server.URL, &got)
		require.Error(t, err)
		assert.Equal(t, scanhub.EPARSE, scanhub.ErrorCode(err))
	})
}
