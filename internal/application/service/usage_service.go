package service

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/aimuhasebi/platform/internal/domain/models"
	"github.com/aimuhasebi/platform/internal/domain/repository"
	"github.com/aimuhasebi/platform/pkg/constants"
	"github.com/aimuhasebi/platform/pkg/errors"
	"github.com/aimuhasebi/platform/pkg/logger"
	"github.com/aimuhasebi/platform/pkg/timeutil"
)

// planCacheTTL bounds how long a stale plan tier can gate usage checks after
// an upgrade.
const planCacheTTL = 5 * time.Minute

// UsageService answers whether a tenant may consume one more unit of a
// metered resource and tracks consumption against plan ceilings.
type UsageService interface {
	// CheckLimit compares current usage against the tenant's plan ceiling
	// for the metric. Allowed means used < limit.
	CheckLimit(ctx context.Context, tenantID string, metric constants.UsageMetricType) (*models.LimitCheckResult, error)

	// IncrementUsage adds delta to the counter for the current period. Call
	// it only after the gated operation has successfully completed. The
	// CheckLimit/IncrementUsage pair is not atomic: two concurrent creations
	// can both pass the check and overshoot the ceiling by one unit.
	IncrementUsage(ctx context.Context, tenantID string, metric constants.UsageMetricType, delta int64) error

	// ConsumeForCreation atomically claims one unit for a creation flow
	// using a conditional increment, closing the check-then-increment race.
	// A denial surfaces as a validation-class plan-limit error.
	ConsumeForCreation(ctx context.Context, tenantID string, metric constants.UsageMetricType) (*models.LimitCheckResult, error)

	// GetUsageSummary reports used/limit/remaining for every metered
	// resource, for the billing screen.
	GetUsageSummary(ctx context.Context, tenantID string) ([]models.LimitCheckResult, error)
}

type usageService struct {
	subscriptions repository.SubscriptionRepository
	counters      repository.UsageCounterRepository
	planCache     *gocache.Cache
	log           logger.Logger
	now           func() time.Time
}

// NewUsageService creates a new UsageService.
func NewUsageService(
	subscriptions repository.SubscriptionRepository,
	counters repository.UsageCounterRepository,
	log logger.Logger,
) UsageService {
	return &usageService{
		subscriptions: subscriptions,
		counters:      counters,
		planCache:     gocache.New(planCacheTTL, 2*planCacheTTL),
		log:           log.WithComponent("usage_service"),
		now:           time.Now,
	}
}

func (s *usageService) CheckLimit(ctx context.Context, tenantID string, metric constants.UsageMetricType) (*models.LimitCheckResult, error) {
	if !metric.IsValid() {
		return nil, errors.ErrValidation("unknown usage metric: " + string(metric))
	}

	plan, err := s.planFor(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	used, err := s.counters.Get(ctx, tenantID, metric, s.periodFor(metric))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read usage counter")
	}

	limit := plan.LimitFor(metric)
	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}

	return &models.LimitCheckResult{
		Metric:    metric,
		Tier:      plan.Tier,
		Allowed:   used < limit,
		Used:      used,
		Limit:     limit,
		Remaining: remaining,
	}, nil
}

func (s *usageService) IncrementUsage(ctx context.Context, tenantID string, metric constants.UsageMetricType, delta int64) error {
	if !metric.IsValid() {
		return errors.ErrValidation("unknown usage metric: " + string(metric))
	}
	if delta <= 0 {
		return errors.ErrValidation("usage delta must be positive")
	}

	value, err := s.counters.Increment(ctx, tenantID, metric, s.periodFor(metric), delta)
	if err != nil {
		return errors.Wrap(err, "failed to increment usage counter")
	}

	s.log.Debug(ctx, "Usage incremented",
		logger.String("tenant_id", tenantID),
		logger.String("metric", string(metric)),
		logger.Int64("delta", delta),
		logger.Int64("value", value),
	)
	return nil
}

func (s *usageService) ConsumeForCreation(ctx context.Context, tenantID string, metric constants.UsageMetricType) (*models.LimitCheckResult, error) {
	if !metric.IsValid() {
		return nil, errors.ErrValidation("unknown usage metric: " + string(metric))
	}

	plan, err := s.planFor(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	limit := plan.LimitFor(metric)
	applied, value, err := s.counters.IncrementIfBelow(ctx, tenantID, metric, s.periodFor(metric), 1, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to claim usage unit")
	}
	if !applied {
		return nil, errors.ErrPlanLimitExceeded(string(metric), limit).
			WithMetadata("tenant_id", tenantID).
			WithMetadata("tier", string(plan.Tier))
	}

	remaining := limit - value
	if remaining < 0 {
		remaining = 0
	}
	return &models.LimitCheckResult{
		Metric:    metric,
		Tier:      plan.Tier,
		Allowed:   true,
		Used:      value,
		Limit:     limit,
		Remaining: remaining,
	}, nil
}

func (s *usageService) GetUsageSummary(ctx context.Context, tenantID string) ([]models.LimitCheckResult, error) {
	plan, err := s.planFor(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	summary := make([]models.LimitCheckResult, 0, len(constants.AllUsageMetrics))
	for _, metric := range constants.AllUsageMetrics {
		used, err := s.counters.Get(ctx, tenantID, metric, s.periodFor(metric))
		if err != nil {
			return nil, errors.Wrap(err, "failed to read usage counter")
		}

		limit := plan.LimitFor(metric)
		remaining := limit - used
		if remaining < 0 {
			remaining = 0
		}
		summary = append(summary, models.LimitCheckResult{
			Metric:    metric,
			Tier:      plan.Tier,
			Allowed:   used < limit,
			Used:      used,
			Limit:     limit,
			Remaining: remaining,
		})
	}
	return summary, nil
}

// planFor resolves the tenant's plan ceilings, caching the lookup briefly.
// Tenants without a subscription row are on the FREE tier.
func (s *usageService) planFor(ctx context.Context, tenantID string) (models.PlanConfig, error) {
	if cached, ok := s.planCache.Get(tenantID); ok {
		return cached.(models.PlanConfig), nil
	}

	sub, err := s.subscriptions.GetByTenant(ctx, tenantID)
	if err != nil {
		return models.PlanConfig{}, errors.Wrap(err, "failed to load tenant subscription")
	}

	tier := constants.PlanTierFree
	if sub != nil {
		tier = sub.PlanTier
	}

	plan := models.PlanConfigFor(tier)
	s.planCache.Set(tenantID, plan, gocache.DefaultExpiration)
	return plan, nil
}

// periodFor returns the counter period key for the metric: the current UTC
// month for monthly metrics, a fixed key for lifetime counts.
func (s *usageService) periodFor(metric constants.UsageMetricType) string {
	if metric.IsMonthly() {
		return timeutil.MonthKey(s.now())
	}
	return constants.UsagePeriodTotal
}
