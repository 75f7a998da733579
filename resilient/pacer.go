package resilient

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/fwojciec/scanhub"
	"golang.org/x/time/rate"
)

// DefaultPageInterval is the pause between successive page fetches of one
// upstream.
const DefaultPageInterval = 500 * time.Millisecond

var _ scanhub.DomainLimiter = (*Pacer)(nil)

// Pacer spaces requests to the same host by a fixed interval using one
// token bucket per host with a burst of 1. Requests to different hosts do
// not wait on each other.
type Pacer struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	interval time.Duration
}

// NewPacer creates a Pacer allowing one request per interval and host.
func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{
		limiters: make(map[string]*rate.Limiter),
		interval: interval,
	}
}

// Wait blocks until a request to host is allowed.
// Returns an error if the context is canceled before the wait completes.
func (p *Pacer) Wait(ctx context.Context, host string) error {
	p.mu.Lock()
	limiter, ok := p.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(p.interval), 1)
		p.limiters[host] = limiter
	}
	p.mu.Unlock()

	return limiter.Wait(ctx)
}

// WaitURL is Wait keyed by the host of rawURL.
func (p *Pacer) WaitURL(ctx context.Context, rawURL string) error {
	host := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host = u.Host
	}
	return p.Wait(ctx, host)
}
