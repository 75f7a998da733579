package flaresolverr

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/fwojciec/scanhub"
	"github.com/fwojciec/scanhub/goquery"
)

// Getter performs a GET with per-call header overrides.
// It is satisfied by *http.Fetcher of this module.
type Getter interface {
	Get(ctx context.Context, url string, header http.Header) (string, error)
}

var (
	_ scanhub.Fetcher     = (*BypassFetcher)(nil)
	_ scanhub.JSONFetcher = (*BypassFetcher)(nil)
)

// BypassFetcher fetches directly while it can and escalates to the solver
// when the upstream answers with a bot challenge. Credentials from each
// solve are cached so later requests skip the slow solve.
type BypassFetcher struct {
	direct   Getter
	solver   scanhub.Solver
	creds    *Credentials
	detector scanhub.ChallengeDetector
	logger   *slog.Logger
}

// Option configures a BypassFetcher.
type Option func(*BypassFetcher)

// WithCredentials shares a credential cache between fetchers.
func WithCredentials(c *Credentials) Option {
	return func(b *BypassFetcher) {
		b.creds = c
	}
}

// WithChallengeDetector sets the detector used to recognize challenge
// bodies served with a success or non-403 status.
func WithChallengeDetector(d scanhub.ChallengeDetector) Option {
	return func(b *BypassFetcher) {
		b.detector = d
	}
}

// WithLogger sets the logger for escalations.
func WithLogger(l *slog.Logger) Option {
	return func(b *BypassFetcher) {
		b.logger = l
	}
}

// NewBypassFetcher creates a BypassFetcher. Credentials default to a
// private cache with scanhub.CredentialTTL.
func NewBypassFetcher(direct Getter, solver scanhub.Solver, opts ...Option) *BypassFetcher {
	b := &BypassFetcher{
		direct: direct,
		solver: solver,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.creds == nil {
		b.creds = NewCredentials(scanhub.CredentialTTL)
	}
	return b
}

// FetchJSON retrieves url and decodes its JSON body into v.
// A body that does not decode is an EPARSE error.
func (b *BypassFetcher) FetchJSON(ctx context.Context, url string, v any) error {
	accept := http.Header{"Accept": {"application/json, text/plain, */*"}}

	body, err := b.fetch(ctx, url, accept, func(body string) bool {
		return json.Valid([]byte(body))
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(goquery.UnwrapPre(body)), v); err != nil {
		return scanhub.WrapError(scanhub.EPARSE, err, "decode json from %s", url)
	}
	return nil
}

// Fetch retrieves url as text through the same escalation path.
func (b *BypassFetcher) Fetch(ctx context.Context, url string) (string, error) {
	return b.fetch(ctx, url, nil, func(string) bool { return true })
}

// Close is a no-op; the solver holds no per-fetcher resources.
func (b *BypassFetcher) Close() error {
	return nil
}

// fetch runs the escalation path: cached credentials, then a plain direct
// request, then the solver. usable decides whether a credentialed reply
// can be returned as is.
func (b *BypassFetcher) fetch(ctx context.Context, url string, header http.Header, usable func(string) bool) (string, error) {
	if cookie, ua, ok := b.creds.Get(); ok {
		h := header.Clone()
		if h == nil {
			h = make(http.Header)
		}
		h.Set("Cookie", cookie)
		if ua != "" {
			h.Set("User-Agent", ua)
		}
		body, err := b.direct.Get(ctx, url, h)
		if err == nil && !b.challenged(body) && usable(body) {
			return body, nil
		}
		b.logger.Debug("cached credentials rejected", "url", url, "error", err)
	}

	body, err := b.direct.Get(ctx, url, header)
	switch {
	case err == nil && !b.challenged(body):
		return body, nil
	case err == nil:
		b.logger.Info("challenge page, using solver", "url", url)
	case ctx.Err() != nil:
		return "", err
	case scanhub.StatusCode(err) == http.StatusForbidden:
		b.logger.Info("got 403, using solver", "url", url)
	case scanhub.StatusCode(err) != 0 && scanhub.IsChallenge(b.detector, err):
		b.logger.Info("challenge response, using solver", "url", url, "status", scanhub.StatusCode(err))
	case scanhub.StatusCode(err) != 0:
		return "", err
	default:
		b.logger.Info("direct fetch failed, using solver", "url", url, "error", err)
	}

	sol, err := b.solver.Solve(ctx, url)
	if err != nil {
		return "", err
	}
	b.creds.Store(sol)

	if sol.Status >= 400 {
		return "", &scanhub.ResponseError{URL: url, StatusCode: sol.Status, Body: sol.Response}
	}
	return sol.Response, nil
}

func (b *BypassFetcher) challenged(body string) bool {
	return b.detector != nil && b.detector.Detect(body, nil)
}
