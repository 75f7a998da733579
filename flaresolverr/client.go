// Package flaresolverr implements fetch-with-bypass on top of a
// FlareSolverr-compatible challenge solving service.
package flaresolverr

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/scanhub"
)

// DefaultURL is the solver endpoint used when none is configured.
const DefaultURL = "http://localhost:8191/v1"

// DefaultMaxTimeout is how long the solver may spend on one challenge.
const DefaultMaxTimeout = 60 * time.Second

var _ scanhub.Solver = (*Client)(nil)

// Client talks to the solver service.
type Client struct {
	url        string
	maxTimeout time.Duration
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithMaxTimeout sets the solver-side time budget per challenge.
func WithMaxTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.maxTimeout = d
	}
}

// WithHTTPClient replaces the HTTP client used to reach the solver.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Client for the solver at endpoint. An empty endpoint
// selects DefaultURL.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	if endpoint == "" {
		endpoint = DefaultURL
	}
	c := &Client{
		url:        endpoint,
		maxTimeout: DefaultMaxTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.maxTimeout + 10*time.Second}
	}
	return c
}

type request struct {
	Cmd        string `json:"cmd"`
	URL        string `json:"url"`
	MaxTimeout int64  `json:"maxTimeout"`
}

type response struct {
	Status   string           `json:"status"`
	Message  string           `json:"message"`
	Solution scanhub.Solution `json:"solution"`
}

// Solve asks the solver to fetch url, passing any challenge on the way.
// An unreachable solver, a non-OK HTTP status or a non-"ok" solver status
// is an ENETWORK error.
func (c *Client) Solve(ctx context.Context, url string) (*scanhub.Solution, error) {
	payload, err := json.Marshal(request{
		Cmd:        "request.get",
		URL:        url,
		MaxTimeout: c.maxTimeout.Milliseconds(),
	})
	if err != nil {
		return nil, scanhub.WrapError(scanhub.EINTERNAL, err, "encode solver request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, scanhub.WrapError(scanhub.EINVALID, err, "invalid solver url %q", c.url)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, scanhub.WrapError(scanhub.ENETWORK, err, "solver request for %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, scanhub.Errorf(scanhub.ENETWORK, "solver returned HTTP %d for %s", resp.StatusCode, url)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, scanhub.WrapError(scanhub.ENETWORK, err, "decode solver response for %s", url)
	}
	if out.Status != "ok" {
		return nil, scanhub.Errorf(scanhub.ENETWORK, "solver failed for %s: %s", url, out.Message)
	}

	return &out.Solution, nil
}
