package mock

import (
	"context"

	"github.com/fwojciec/scanhub"
)

var _ scanhub.HealthChecker = (*HealthChecker)(nil)

// HealthChecker is a mock implementation of scanhub.HealthChecker.
type HealthChecker struct {
	CheckFn    func(ctx context.Context, src scanhub.Source) scanhub.SourceHealthResult
	CheckAllFn func(ctx context.Context, srcs []scanhub.Source) map[string]scanhub.SourceHealthResult
}

func (h *HealthChecker) Check(ctx context.Context, src scanhub.Source) scanhub.SourceHealthResult {
	return h.CheckFn(ctx, src)
}

func (h *HealthChecker) CheckAll(ctx context.Context, srcs []scanhub.Source) map[string]scanhub.SourceHealthResult {
	return h.CheckAllFn(ctx, srcs)
}
