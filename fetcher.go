package scanhub

import (
	"context"
	"net/http"
	"time"
)

// Fetcher retrieves the body of a URL as text.
// Implementations may render JavaScript with a headless browser.
type Fetcher interface {
	// Fetch retrieves the URL and returns its body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// JSONFetcher retrieves a URL and decodes its JSON body into v.
type JSONFetcher interface {
	FetchJSON(ctx context.Context, url string, v any) error
}

// Cookie is a cookie returned by a challenge solver.
type Cookie struct {
	Name    string  `json:"name"`
	Value   string  `json:"value"`
	Domain  string  `json:"domain,omitempty"`
	Path    string  `json:"path,omitempty"`
	Expires float64 `json:"expires,omitempty"`
}

// Solution is a solved challenge: the final page plus the session
// credentials that passed the challenge.
type Solution struct {
	URL       string   `json:"url"`
	Status    int      `json:"status"`
	Cookies   []Cookie `json:"cookies"`
	UserAgent string   `json:"userAgent"`
	Response  string   `json:"response"`
}

// Solver resolves bot challenges through an external service.
// A solve is slow, typically tens of seconds.
type Solver interface {
	Solve(ctx context.Context, url string) (*Solution, error)
}

// ChallengeDetector reports whether a response is a bot-challenge page.
// Vendor headers alone never flag a response; a body marker must be present.
type ChallengeDetector interface {
	Detect(body string, header http.Header) bool
}

// DomainLimiter paces requests per host.
type DomainLimiter interface {
	// Wait blocks until a request to host is allowed or ctx is done.
	Wait(ctx context.Context, host string) error
}

// Converter converts an HTML fragment to plain Markdown text.
type Converter interface {
	Convert(html string) (string, error)
}

// CredentialTTL is how long solved session credentials are reused.
const CredentialTTL = 10 * time.Minute

// DefaultUserAgent is the desktop browser user-agent sent by default.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
