package scanhub

import "context"

// HealthStatus classifies the outcome of a source probe.
type HealthStatus string

// Health statuses.
const (
	HealthHealthy    HealthStatus = "healthy"
	HealthCloudflare HealthStatus = "cloudflare"
	HealthTimeout    HealthStatus = "timeout"
	HealthError      HealthStatus = "error"
)

// SourceHealthResult is a point-in-time probe outcome.
type SourceHealthResult struct {
	Status HealthStatus `json:"status"`
	// Message is a human-readable explanation of Status.
	Message string `json:"message"`
	// ResponseTime is the probe duration in milliseconds.
	ResponseTime int64 `json:"responseTime,omitempty"`
	// LastChecked is the RFC 3339 time the probe started.
	LastChecked string `json:"lastChecked"`
}

// HealthChecker probes sources.
type HealthChecker interface {
	Check(ctx context.Context, src Source) SourceHealthResult
	// CheckAll probes every source concurrently, keyed by SourceID.
	CheckAll(ctx context.Context, srcs []Source) map[string]SourceHealthResult
}
