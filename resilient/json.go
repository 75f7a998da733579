package resilient

import (
	"context"
	"encoding/json"

	"github.com/fwojciec/scanhub"
	"github.com/fwojciec/scanhub/goquery"
)

var _ scanhub.JSONFetcher = (*JSONFetcher)(nil)

// JSONFetcher decodes JSON documents retrieved through a text fetcher.
// Bodies wrapped in a <pre> element, as rendered by a browser, are
// unwrapped first.
type JSONFetcher struct {
	fetcher scanhub.Fetcher
}

// NewJSONFetcher creates a JSONFetcher reading through fetcher.
func NewJSONFetcher(fetcher scanhub.Fetcher) *JSONFetcher {
	return &JSONFetcher{fetcher: fetcher}
}

// FetchJSON retrieves url and decodes it into v.
func (j *JSONFetcher) FetchJSON(ctx context.Context, url string, v any) error {
	body, err := j.fetcher.Fetch(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(goquery.UnwrapPre(body)), v); err != nil {
		return scanhub.WrapError(scanhub.EPARSE, err, "decode json from %s", url)
	}
	return nil
}
