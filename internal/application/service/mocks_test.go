package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/aimuhasebi/platform/internal/domain/models"
	"github.com/aimuhasebi/platform/pkg/constants"
)

type MockRiskHistoryRepo struct {
	mock.Mock
}

func (m *MockRiskHistoryRepo) Append(ctx context.Context, obs *models.RiskScoreObservation) error {
	args := m.Called(ctx, obs)
	return args.Error(0)
}

func (m *MockRiskHistoryRepo) ListByEntity(ctx context.Context, tenantID string, entityType constants.EntityType, entityID string, since time.Time) ([]models.RiskScoreObservation, error) {
	args := m.Called(ctx, tenantID, entityType, entityID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RiskScoreObservation), args.Error(1)
}

func (m *MockRiskHistoryRepo) ListByTenantScope(ctx context.Context, tenantID string, entityType constants.EntityType, since time.Time) ([]models.RiskScoreObservation, error) {
	args := m.Called(ctx, tenantID, entityType, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RiskScoreObservation), args.Error(1)
}

type MockDocumentScoreRepo struct {
	mock.Mock
}

func (m *MockDocumentScoreRepo) GetByDocument(ctx context.Context, tenantID, documentID string) (*models.DocumentRiskScore, error) {
	args := m.Called(ctx, tenantID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DocumentRiskScore), args.Error(1)
}

func (m *MockDocumentScoreRepo) Upsert(ctx context.Context, score *models.DocumentRiskScore) error {
	args := m.Called(ctx, score)
	return args.Error(0)
}

type MockCompanyScoreRepo struct {
	mock.Mock
}

func (m *MockCompanyScoreRepo) GetByCompany(ctx context.Context, tenantID, clientCompanyID string) (*models.CompanyRiskScore, error) {
	args := m.Called(ctx, tenantID, clientCompanyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CompanyRiskScore), args.Error(1)
}

func (m *MockCompanyScoreRepo) Upsert(ctx context.Context, score *models.CompanyRiskScore) error {
	args := m.Called(ctx, score)
	return args.Error(0)
}

type MockRiskAlertRepo struct {
	mock.Mock
}

func (m *MockRiskAlertRepo) ListSince(ctx context.Context, tenantID string, since time.Time) ([]models.RiskAlert, error) {
	args := m.Called(ctx, tenantID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RiskAlert), args.Error(1)
}

type MockSubscriptionRepo struct {
	mock.Mock
}

func (m *MockSubscriptionRepo) GetByTenant(ctx context.Context, tenantID string) (*models.TenantSubscription, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TenantSubscription), args.Error(1)
}

func (m *MockSubscriptionRepo) Upsert(ctx context.Context, sub *models.TenantSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

type MockUsageCounterRepo struct {
	mock.Mock
}

func (m *MockUsageCounterRepo) Get(ctx context.Context, tenantID string, metric constants.UsageMetricType, period string) (int64, error) {
	args := m.Called(ctx, tenantID, metric, period)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUsageCounterRepo) Increment(ctx context.Context, tenantID string, metric constants.UsageMetricType, period string, delta int64) (int64, error) {
	args := m.Called(ctx, tenantID, metric, period, delta)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUsageCounterRepo) IncrementIfBelow(ctx context.Context, tenantID string, metric constants.UsageMetricType, period string, delta, limit int64) (bool, int64, error) {
	args := m.Called(ctx, tenantID, metric, period, delta, limit)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishObservation(ctx context.Context, obs *models.RiskScoreObservation) error {
	args := m.Called(ctx, obs)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
