package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/aimuhasebi/platform/internal/domain/models"
	"github.com/aimuhasebi/platform/pkg/constants"
	"github.com/aimuhasebi/platform/pkg/errors"
	"github.com/aimuhasebi/platform/pkg/logger"
)

func newUsageServiceForTest(subscriptions *MockSubscriptionRepo, counters *MockUsageCounterRepo) UsageService {
	svc := NewUsageService(subscriptions, counters, logger.NewNoopLogger())
	svc.(*usageService).now = func() time.Time { return testNow }
	return svc
}

func TestCheckLimit_FreeTierAtCeiling(t *testing.T) {
	subscriptions := new(MockSubscriptionRepo)
	counters := new(MockUsageCounterRepo)
	svc := newUsageServiceForTest(subscriptions, counters)

	// No subscription row resolves to the FREE tier.
	subscriptions.On("GetByTenant", mock.Anything, "t1").Return(nil, nil)
	counters.On("Get", mock.Anything, "t1", constants.MetricClientCompanies, constants.UsagePeriodTotal).
		Return(int64(3), nil)

	result, err := svc.CheckLimit(context.Background(), "t1", constants.MetricClientCompanies)

	assert.NoError(t, err)
	assert.Equal(t, constants.PlanTierFree, result.Tier)
	assert.False(t, result.Allowed)
	assert.Equal(t, int64(3), result.Used)
	assert.Equal(t, int64(3), result.Limit)
	assert.Equal(t, int64(0), result.Remaining)
}

func TestCheckLimit_ProTierBelowCeiling(t *testing.T) {
	subscriptions := new(MockSubscriptionRepo)
	counters := new(MockUsageCounterRepo)
	svc := newUsageServiceForTest(subscriptions, counters)

	subscriptions.On("GetByTenant", mock.Anything, "t1").
		Return(&models.TenantSubscription{TenantID: "t1", PlanTier: constants.PlanTierPro}, nil)
	counters.On("Get", mock.Anything, "t1", constants.MetricScheduledReports, constants.UsagePeriodTotal).
		Return(int64(9), nil)

	result, err := svc.CheckLimit(context.Background(), "t1", constants.MetricScheduledReports)

	assert.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, int64(1), result.Remaining)
}

func TestCheckLimit_MonthlyMetricUsesMonthPeriod(t *testing.T) {
	subscriptions := new(MockSubscriptionRepo)
	counters := new(MockUsageCounterRepo)
	svc := newUsageServiceForTest(subscriptions, counters)

	subscriptions.On("GetByTenant", mock.Anything, "t1").Return(nil, nil)
	counters.On("Get", mock.Anything, "t1", constants.MetricMonthlyDocuments, "2026-08").
		Return(int64(10), nil)

	result, err := svc.CheckLimit(context.Background(), "t1", constants.MetricMonthlyDocuments)

	assert.NoError(t, err)
	assert.True(t, result.Allowed)
	counters.AssertExpectations(t)
}

func TestCheckLimit_UnknownMetric(t *testing.T) {
	svc := newUsageServiceForTest(new(MockSubscriptionRepo), new(MockUsageCounterRepo))

	result, err := svc.CheckLimit(context.Background(), "t1", constants.UsageMetricType("STORAGE_GB"))

	assert.Nil(t, result)
	assert.True(t, errors.IsValidation(err))
}

func TestCheckLimit_PlanLookupIsCached(t *testing.T) {
	subscriptions := new(MockSubscriptionRepo)
	counters := new(MockUsageCounterRepo)
	svc := newUsageServiceForTest(subscriptions, counters)

	subscriptions.On("GetByTenant", mock.Anything, "t1").Return(nil, nil).Once()
	counters.On("Get", mock.Anything, "t1", constants.MetricUsers, constants.UsagePeriodTotal).
		Return(int64(1), nil)

	_, err := svc.CheckLimit(context.Background(), "t1", constants.MetricUsers)
	assert.NoError(t, err)
	_, err = svc.CheckLimit(context.Background(), "t1", constants.MetricUsers)
	assert.NoError(t, err)

	subscriptions.AssertExpectations(t)
}

func TestIncrementUsage(t *testing.T) {
	subscriptions := new(MockSubscriptionRepo)
	counters := new(MockUsageCounterRepo)
	svc := newUsageServiceForTest(subscriptions, counters)

	counters.On("Increment", mock.Anything, "t1", constants.MetricMonthlyAIAnalyses, "2026-08", int64(1)).
		Return(int64(5), nil)

	err := svc.IncrementUsage(context.Background(), "t1", constants.MetricMonthlyAIAnalyses, 1)

	assert.NoError(t, err)
	counters.AssertExpectations(t)
}

func TestIncrementUsage_RejectsNonPositiveDelta(t *testing.T) {
	svc := newUsageServiceForTest(new(MockSubscriptionRepo), new(MockUsageCounterRepo))

	err := svc.IncrementUsage(context.Background(), "t1", constants.MetricUsers, 0)
	assert.True(t, errors.IsValidation(err))

	err = svc.IncrementUsage(context.Background(), "t1", constants.MetricUsers, -2)
	assert.True(t, errors.IsValidation(err))
}

func TestConsumeForCreation_Claims(t *testing.T) {
	subscriptions := new(MockSubscriptionRepo)
	counters := new(MockUsageCounterRepo)
	svc := newUsageServiceForTest(subscriptions, counters)

	subscriptions.On("GetByTenant", mock.Anything, "t1").
		Return(&models.TenantSubscription{TenantID: "t1", PlanTier: constants.PlanTierPro}, nil)
	counters.On("IncrementIfBelow", mock.Anything, "t1", constants.MetricClientCompanies, constants.UsagePeriodTotal, int64(1), int64(50)).
		Return(true, int64(50), nil)

	result, err := svc.ConsumeForCreation(context.Background(), "t1", constants.MetricClientCompanies)

	assert.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, int64(50), result.Used)
	assert.Equal(t, int64(0), result.Remaining)
}

func TestConsumeForCreation_DenialIsValidationClass(t *testing.T) {
	subscriptions := new(MockSubscriptionRepo)
	counters := new(MockUsageCounterRepo)
	svc := newUsageServiceForTest(subscriptions, counters)

	subscriptions.On("GetByTenant", mock.Anything, "t1").Return(nil, nil)
	counters.On("IncrementIfBelow", mock.Anything, "t1", constants.MetricClientCompanies, constants.UsagePeriodTotal, int64(1), int64(3)).
		Return(false, int64(3), nil)

	result, err := svc.ConsumeForCreation(context.Background(), "t1", constants.MetricClientCompanies)

	assert.Nil(t, result)
	assert.True(t, errors.IsLimitExceeded(err))
	assert.True(t, errors.IsValidation(err))
	appErr, ok := errors.AsAppError(err)
	assert.True(t, ok)
	assert.Contains(t, appErr.Message, "upgrade your plan")
}

func TestGetUsageSummary_CoversAllMetrics(t *testing.T) {
	subscriptions := new(MockSubscriptionRepo)
	counters := new(MockUsageCounterRepo)
	svc := newUsageServiceForTest(subscriptions, counters)

	subscriptions.On("GetByTenant", mock.Anything, "t1").Return(nil, nil)
	counters.On("Get", mock.Anything, "t1", mock.Anything, mock.Anything).
		Return(int64(0), nil)

	summary, err := svc.GetUsageSummary(context.Background(), "t1")

	assert.NoError(t, err)
	assert.Len(t, summary, len(constants.AllUsageMetrics))
	for i, metric := range constants.AllUsageMetrics {
		assert.Equal(t, metric, summary[i].Metric)
		assert.True(t, summary[i].Allowed)
	}
}
