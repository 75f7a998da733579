package sources_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/fwojciec/scanhub"
	"github.com/fwojciec/scanhub/mock"
)

// pages serves canned bodies by exact URL; any other URL is a 404.
func pages(t *testing.T, bodies map[string]string) *mock.Fetcher {
	t.Helper()
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			body, ok := bodies[url]
			if !ok {
				return "", &scanhub.ResponseError{URL: url, StatusCode: http.StatusNotFound}
			}
			return body, nil
		},
		CloseFn: func() error { return nil },
	}
}

// jsonDocs decodes canned JSON documents by exact URL; any other URL is a
// 404.
func jsonDocs(t *testing.T, docs map[string]string) *mock.JSONFetcher {
	t.Helper()
	return &mock.JSONFetcher{
		FetchJSONFn: func(_ context.Context, url string, v any) error {
			doc, ok := docs[url]
			if !ok {
				return &scanhub.ResponseError{URL: url, StatusCode: http.StatusNotFound}
			}
			return json.Unmarshal([]byte(doc), v)
		},
	}
}

func numbers(chapters []scanhub.ScrapedChapter) []float64 {
	out := make([]float64, len(chapters))
	for i, ch := range chapters {
		out[i] = ch.Number
	}
	return out
}
