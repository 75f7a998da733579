// Package rod renders pages in headless Chrome via go-rod. It is the
// in-process fallback for upstreams that answer plain HTTP requests with a
// bot-challenge page.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/scanhub"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultIdleTime is how long the network must stay quiet before a page
// counts as rendered.
const DefaultIdleTime = 500 * time.Millisecond

// Ensure Fetcher implements scanhub.Fetcher at compile time.
var _ scanhub.Fetcher = (*Fetcher)(nil)

// Fetcher renders URLs in a managed browser: open page, set user-agent,
// navigate, wait for network idle, return HTML, close page.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager   *BrowserManager
	userAgent string
	idle      time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithUserAgent overrides scanhub.DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithIdleTime sets how long the network must be idle after navigation.
func WithIdleTime(d time.Duration) Option {
	return func(f *Fetcher) {
		f.idle = d
	}
}

// NewFetcher creates a Fetcher rendering in manager's browser.
// Closing the Fetcher closes the manager.
func NewFetcher(manager *BrowserManager, opts ...Option) *Fetcher {
	f := &Fetcher{
		manager:   manager,
		userAgent: scanhub.DefaultUserAgent,
		idle:      DefaultIdleTime,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.manager.NewPage()
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
		return "", fmt.Errorf("setting user agent: %w", err)
	}

	waitIdle := page.WaitRequestIdle(f.idle, nil, nil, nil)
	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("navigating to %s: %w", url, err)
	}
	waitIdle()

	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}
