package flaresolverr

import (
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/scanhub"
)

// CredentialState is the lifecycle state of cached session credentials.
type CredentialState int

// Credential states. Credentials start empty, become fresh when a solve
// stores cookies and turn stale once their expiry passes. Stale
// credentials are ignored until the next solve replaces them.
const (
	CredentialsEmpty CredentialState = iota
	CredentialsFresh
	CredentialsStale
)

func (s CredentialState) String() string {
	switch s {
	case CredentialsFresh:
		return "fresh"
	case CredentialsStale:
		return "stale"
	}
	return "empty"
}

// Credentials caches the cookie header and user-agent of the last solved
// challenge for a fixed window. It is shared by every request of the
// process and safe for concurrent use; refreshes are last-writer-wins.
type Credentials struct {
	mu        sync.RWMutex
	cookie    string
	userAgent string
	expires   time.Time
	ttl       time.Duration
	now       func() time.Time
}

// CredentialsOption configures Credentials.
type CredentialsOption func(*Credentials)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) CredentialsOption {
	return func(c *Credentials) {
		c.now = now
	}
}

// NewCredentials creates empty credentials that stay fresh for ttl after
// each store.
func NewCredentials(ttl time.Duration, opts ...CredentialsOption) *Credentials {
	c := &Credentials{ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current lifecycle state.
func (c *Credentials) State() CredentialState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state()
}

func (c *Credentials) state() CredentialState {
	switch {
	case c.cookie == "":
		return CredentialsEmpty
	case c.now().Before(c.expires):
		return CredentialsFresh
	}
	return CredentialsStale
}

// Get returns the cookie header and user-agent when the credentials are
// fresh.
func (c *Credentials) Get() (cookie, userAgent string, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state() != CredentialsFresh {
		return "", "", false
	}
	return c.cookie, c.userAgent, true
}

// Store caches the cookies of sol. Solutions without cookies leave the
// credentials unchanged.
func (c *Credentials) Store(sol *scanhub.Solution) {
	if sol == nil || len(sol.Cookies) == 0 {
		return
	}
	parts := make([]string, 0, len(sol.Cookies))
	for _, ck := range sol.Cookies {
		parts = append(parts, ck.Name+"="+ck.Value)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cookie = strings.Join(parts, "; ")
	c.userAgent = sol.UserAgent
	c.expires = c.now().Add(c.ttl)
}

// Invalidate drops the cached credentials.
func (c *Credentials) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cookie = ""
	c.userAgent = ""
	c.expires = time.Time{}
}
