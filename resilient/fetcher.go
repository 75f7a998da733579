// Package resilient wraps fetchers with retry, challenge fallback and
// per-host pacing.
package resilient

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/scanhub"
)

// Defaults for the retry budget.
const (
	DefaultRetries    = 3
	DefaultRetryDelay = time.Second
)

var _ scanhub.Fetcher = (*Fetcher)(nil)

// LinearDelays returns the backoff delays for retries attempts:
// delay, 2*delay, 3*delay, ...
func LinearDelays(retries int, delay time.Duration) []time.Duration {
	delays := make([]time.Duration, retries)
	for i := range delays {
		delays[i] = delay * time.Duration(i+1)
	}
	return delays
}

// Fetcher retries a fetcher with linear backoff. With a challenge detector
// and a renderer configured, a challenge page stops the retries and the URL
// is rendered instead; the renderer also gets one last attempt when the
// retry budget runs out.
type Fetcher struct {
	fetcher  scanhub.Fetcher
	renderer scanhub.Fetcher
	detector scanhub.ChallengeDetector
	delays   []time.Duration
	logger   *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithRetries sets the retry count and base delay of the linear backoff.
func WithRetries(retries int, delay time.Duration) Option {
	return func(f *Fetcher) {
		f.delays = LinearDelays(retries, delay)
	}
}

// WithDelays sets the exact delay before each retry. This is useful for
// testing without waiting for real delays.
func WithDelays(delays ...time.Duration) Option {
	return func(f *Fetcher) {
		f.delays = delays
	}
}

// WithChallengeDetector enables challenge detection on fetched bodies.
func WithChallengeDetector(d scanhub.ChallengeDetector) Option {
	return func(f *Fetcher) {
		f.detector = d
	}
}

// WithRenderer sets the fallback used for challenge pages and exhausted
// retries, typically a headless browser.
func WithRenderer(r scanhub.Fetcher) Option {
	return func(f *Fetcher) {
		f.renderer = r
	}
}

// WithLogger sets the logger for retries and escalations.
func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = l
	}
}

// NewFetcher wraps fetcher with DefaultRetries retries and
// DefaultRetryDelay linear backoff.
func NewFetcher(fetcher scanhub.Fetcher, opts ...Option) *Fetcher {
	f := &Fetcher{
		fetcher: fetcher,
		delays:  LinearDelays(DefaultRetries, DefaultRetryDelay),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves url. Exhausting the retry budget returns EFETCH wrapping
// the last error; a challenge that survives the fallback returns
// ECHALLENGE.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	maxAttempts := len(f.delays) + 1

	var lastErr error
	challenged := false
	for attempt := 0; attempt < maxAttempts; attempt++ {
		body, err := f.fetcher.Fetch(ctx, url)
		if err == nil {
			if f.detector != nil && f.detector.Detect(body, nil) {
				lastErr = scanhub.Errorf(scanhub.ECHALLENGE, "challenge page at %s", url)
				challenged = true
				break
			}
			return body, nil
		}
		lastErr = err

		if scanhub.IsChallenge(f.detector, err) {
			challenged = true
			break
		}
		if ctx.Err() != nil {
			return "", contextError(ctx, url)
		}
		if attempt >= maxAttempts-1 {
			break
		}

		f.logger.Debug("retry", "url", url, "attempt", attempt+2, "error", err)

		select {
		case <-ctx.Done():
			return "", contextError(ctx, url)
		case <-time.After(f.delays[attempt]):
		}
	}

	if f.renderer != nil {
		return f.render(ctx, url, challenged, lastErr)
	}
	if challenged {
		if scanhub.ErrorCode(lastErr) == scanhub.ECHALLENGE {
			return "", lastErr
		}
		return "", scanhub.WrapError(scanhub.ECHALLENGE, lastErr, "challenge page at %s", url)
	}
	return "", scanhub.WrapError(scanhub.EFETCH, lastErr, "fetch %s failed after %d attempts", url, maxAttempts)
}

func (f *Fetcher) render(ctx context.Context, url string, challenged bool, cause error) (string, error) {
	f.logger.Info("escalating to renderer", "url", url, "challenged", challenged, "error", cause)

	body, err := f.renderer.Fetch(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return "", contextError(ctx, url)
		}
		code := scanhub.EFETCH
		if challenged {
			code = scanhub.ECHALLENGE
		}
		return "", scanhub.WrapError(code, err, "render %s", url)
	}
	if f.detector != nil && f.detector.Detect(body, nil) {
		return "", scanhub.Errorf(scanhub.ECHALLENGE, "challenge persisted after render of %s", url)
	}
	return body, nil
}

// Close releases the wrapped fetcher and renderer.
func (f *Fetcher) Close() error {
	var errs []error
	if err := f.fetcher.Close(); err != nil {
		errs = append(errs, err)
	}
	if f.renderer != nil {
		if err := f.renderer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func contextError(ctx context.Context, url string) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return scanhub.WrapError(scanhub.ETIMEOUT, ctx.Err(), "fetch %s timeout", url)
	}
	return ctx.Err()
}
