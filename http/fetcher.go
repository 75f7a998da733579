// Package http provides an HTTP-based implementation of scanhub.Fetcher
// that presents itself to upstreams as a desktop browser.
package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/fwojciec/scanhub"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 15 * time.Second

// maxErrorBody bounds how much of a failed response is kept for
// challenge inspection.
const maxErrorBody = 256 << 10

// Ensure Fetcher implements the scanhub interfaces at compile time.
var (
	_ scanhub.Fetcher     = (*Fetcher)(nil)
	_ scanhub.JSONFetcher = (*Fetcher)(nil)
)

// Fetcher retrieves content with plain HTTP GETs carrying a browser-like
// header set. It does not execute JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	header    http.Header
	transport http.RoundTripper
	redirect  func(req *http.Request, via []*http.Request) error
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides scanhub.DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithHeader adds a header sent with every request, e.g. a site Referer.
func WithHeader(key, value string) Option {
	return func(f *Fetcher) {
		f.header.Set(key, value)
	}
}

// WithTransport replaces the default transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(f *Fetcher) {
		f.transport = rt
	}
}

// WithCheckRedirect sets the redirect policy of the underlying client.
func WithCheckRedirect(fn func(req *http.Request, via []*http.Request) error) Option {
	return func(f *Fetcher) {
		f.redirect = fn
	}
}

// NewFetcher creates a new HTTP-based Fetcher. The default transport is
// hardened against TLS fingerprinting.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: scanhub.DefaultUserAgent,
		header:    make(http.Header),
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.transport == nil {
		f.transport = cloudflarebp.AddCloudFlareByPass(http.DefaultTransport.(*http.Transport).Clone())
	}

	f.client = &http.Client{
		Timeout:       f.timeout,
		Transport:     f.transport,
		CheckRedirect: f.redirect,
	}

	return f
}

// Fetch retrieves the body of the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.Get(ctx, url, nil)
}

// Get retrieves the body of url. Headers in header override both the
// browser defaults and the fetcher-level headers. A non-2xx reply returns
// a *scanhub.ResponseError carrying the status and the start of the body.
func (f *Fetcher) Get(ctx context.Context, url string, header http.Header) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", scanhub.WrapError(scanhub.EINVALID, err, "invalid url %q", url)
	}
	f.setHeaders(req, header)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &scanhub.ResponseError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Header:     resp.Header,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// FetchJSON retrieves url and decodes its JSON body into v.
func (f *Fetcher) FetchJSON(ctx context.Context, url string, v any) error {
	body, err := f.Get(ctx, url, http.Header{"Accept": {"application/json, text/plain, */*"}})
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return scanhub.WrapError(scanhub.EPARSE, err, "decode json from %s", url)
	}
	return nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

func (f *Fetcher) setHeaders(req *http.Request, header http.Header) {
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("DNT", "1")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	for k, vs := range f.header {
		req.Header[k] = vs
	}
	for k, vs := range header {
		req.Header[http.CanonicalHeaderKey(k)] = vs
	}
}
