// Package health probes sources by running a canary search against them.
package health

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/scanhub"
	"golang.org/x/sync/errgroup"
)

// Defaults for probes.
const (
	DefaultTimeout = 15 * time.Second
	DefaultQuery   = "test"
)

// Probe messages.
const (
	msgHealthy    = "Source is operational"
	msgFormat     = "Unexpected response format"
	msgCloudflare = "Cloudflare protection detected"
	msgTimedOut   = "Request timed out"
)

var _ scanhub.HealthChecker = (*Prober)(nil)

// Prober classifies a source by racing its Search against a timeout.
type Prober struct {
	timeout  time.Duration
	query    string
	detector scanhub.ChallengeDetector
	now      func() time.Time
}

// Option configures a Prober.
type Option func(*Prober)

// WithTimeout sets how long a probe may take before it counts as timed out.
func WithTimeout(d time.Duration) Option {
	return func(p *Prober) {
		p.timeout = d
	}
}

// WithQuery sets the canary search query.
func WithQuery(q string) Option {
	return func(p *Prober) {
		p.query = q
	}
}

// WithChallengeDetector lets the prober inspect the bodies of failed
// upstream responses for challenge markers.
func WithChallengeDetector(d scanhub.ChallengeDetector) Option {
	return func(p *Prober) {
		p.detector = d
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Prober) {
		p.now = now
	}
}

// NewProber creates a Prober.
func NewProber(opts ...Option) *Prober {
	p := &Prober{
		timeout: DefaultTimeout,
		query:   DefaultQuery,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Check probes src once. It never returns an error; every failure is
// folded into the result's status and message.
func (p *Prober) Check(ctx context.Context, src scanhub.Source) scanhub.SourceHealthResult {
	started := p.now()
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	type reply struct {
		results []scanhub.SearchResult
		err     error
	}
	replies := make(chan reply, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				replies <- reply{err: fmt.Errorf("search panicked: %v", r)}
			}
		}()
		rs, err := src.Search(ctx, p.query)
		replies <- reply{results: rs, err: err}
	}()

	res := scanhub.SourceHealthResult{LastChecked: started.UTC().Format(time.RFC3339)}
	select {
	case r := <-replies:
		res.Status, res.Message = p.classify(r.results, r.err)
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			res.Status = scanhub.HealthTimeout
			res.Message = fmt.Sprintf("Source took longer than %s to respond", p.timeout)
		} else {
			res.Status, res.Message = scanhub.HealthError, ctx.Err().Error()
		}
	}
	res.ResponseTime = p.now().Sub(started).Milliseconds()
	return res
}

func (p *Prober) classify(rs []scanhub.SearchResult, err error) (scanhub.HealthStatus, string) {
	if err == nil {
		if rs == nil {
			return scanhub.HealthError, msgFormat
		}
		return scanhub.HealthHealthy, msgHealthy
	}

	msg := scanhub.ErrorMessage(err)
	lower := strings.ToLower(err.Error())
	switch {
	case scanhub.ErrorCode(err) == scanhub.ETIMEOUT,
		errors.Is(err, context.DeadlineExceeded),
		strings.Contains(lower, "timeout"):
		return scanhub.HealthTimeout, msgTimedOut
	case scanhub.ErrorCode(err) == scanhub.ECHALLENGE,
		strings.Contains(lower, "cloudflare"),
		strings.Contains(lower, "cf-ray"),
		strings.Contains(lower, "challenge"),
		p.detector != nil && p.detector.Detect(err.Error(), nil),
		scanhub.IsChallenge(p.detector, err):
		return scanhub.HealthCloudflare, msgCloudflare
	}
	return scanhub.HealthError, msg
}

// CheckAll probes every source concurrently. Results are keyed by
// scanhub.SourceID.
func (p *Prober) CheckAll(ctx context.Context, srcs []scanhub.Source) map[string]scanhub.SourceHealthResult {
	out := make(map[string]scanhub.SourceHealthResult, len(srcs))
	var mu sync.Mutex

	var g errgroup.Group
	for _, src := range srcs {
		g.Go(func() error {
			res := p.Check(ctx, src)
			mu.Lock()
			out[scanhub.SourceID(src.Name())] = res
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}
