package repository

import (
	"context"

	"github.com/aimuhasebi/platform/pkg/constants"
)

// UsageCounterRepository tracks per-tenant, per-metric, per-period
// consumption. Period keys are "YYYY-MM" for monthly metrics and "total" for
// metrics that never reset; monthly counters expire on their own at the store
// level, so no explicit reset operation exists here.
type UsageCounterRepository interface {
	// Get returns the current counter value, zero when the counter does not
	// exist yet.
	Get(ctx context.Context, tenantID string, metric constants.UsageMetricType, period string) (int64, error)

	// Increment adds delta to the counter and returns the new value.
	// Check-then-increment via CheckLimit followed by Increment is not
	// atomic; two concurrent creations can both pass the check and overshoot
	// the ceiling by one unit. Use IncrementIfBelow where that matters.
	Increment(ctx context.Context, tenantID string, metric constants.UsageMetricType, period string, delta int64) (int64, error)

	// IncrementIfBelow atomically adds delta only if the resulting value
	// would not exceed limit. It returns whether the increment was applied
	// and the counter value after the call.
	IncrementIfBelow(ctx context.Context, tenantID string, metric constants.UsageMetricType, period string, delta, limit int64) (bool, int64, error)
}
