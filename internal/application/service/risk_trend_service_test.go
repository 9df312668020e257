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

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func observationsAt(tenantID string, entityType constants.EntityType, entityID string, scores []float64, severities []constants.Severity) []models.RiskScoreObservation {
	observations := make([]models.RiskScoreObservation, 0, len(scores))
	for i, score := range scores {
		observations = append(observations, models.RiskScoreObservation{
			TenantID:   tenantID,
			EntityType: entityType,
			EntityID:   entityID,
			Score:      score,
			Severity:   severities[i],
			RecordedAt: testNow.AddDate(0, 0, -len(scores)+i),
		})
	}
	return observations
}

func newTrendServiceForTest(historyRepo *MockRiskHistoryRepo, documentScores *MockDocumentScoreRepo) RiskTrendService {
	svc := NewRiskTrendService(historyRepo, documentScores, 90, logger.NewNoopLogger())
	svc.(*riskTrendService).now = func() time.Time { return testNow }
	return svc
}

func TestGetDocumentRiskTrend_FullHistory(t *testing.T) {
	historyRepo := new(MockRiskHistoryRepo)
	documentScores := new(MockDocumentScoreRepo)
	svc := newTrendServiceForTest(historyRepo, documentScores)

	history := observationsAt("t1", constants.EntityTypeDocument, "doc-1",
		[]float64{50, 60, 70, 75},
		[]constants.Severity{constants.SeverityLow, constants.SeverityMedium, constants.SeverityMedium, constants.SeverityHigh},
	)

	documentScores.On("GetByDocument", mock.Anything, "t1", "doc-1").
		Return(&models.DocumentRiskScore{
			TenantID:    "t1",
			DocumentID:  "doc-1",
			Score:       75,
			Severity:    constants.SeverityHigh,
			GeneratedAt: testNow,
		}, nil)
	historyRepo.On("ListByEntity", mock.Anything, "t1", constants.EntityTypeDocument, "doc-1", mock.Anything).
		Return(history, nil)

	result, err := svc.GetDocumentRiskTrend(context.Background(), "t1", "doc-1", 90)

	assert.NoError(t, err)
	assert.Len(t, result.History, 4)
	assert.Equal(t, 75.0, result.CurrentScore)
	assert.NotNil(t, result.PreviousScore)
	assert.Equal(t, 70.0, *result.PreviousScore)
	// 75 - 70 = 5 sits exactly on the dead band, so the trend stays stable.
	assert.Equal(t, constants.TrendStable, result.Trend)
	assert.InDelta(t, 63.75, result.AverageScore, 0.001)
	assert.Equal(t, 50.0, result.MinScore)
	assert.Equal(t, 75.0, result.MaxScore)
}

func TestGetDocumentRiskTrend_IncreasingPair(t *testing.T) {
	historyRepo := new(MockRiskHistoryRepo)
	documentScores := new(MockDocumentScoreRepo)
	svc := newTrendServiceForTest(historyRepo, documentScores)

	history := observationsAt("t1", constants.EntityTypeDocument, "doc-1",
		[]float64{50, 75},
		[]constants.Severity{constants.SeverityLow, constants.SeverityHigh},
	)

	documentScores.On("GetByDocument", mock.Anything, "t1", "doc-1").
		Return(&models.DocumentRiskScore{Score: 75, Severity: constants.SeverityHigh, GeneratedAt: testNow}, nil)
	historyRepo.On("ListByEntity", mock.Anything, "t1", constants.EntityTypeDocument, "doc-1", mock.Anything).
		Return(history, nil)

	result, err := svc.GetDocumentRiskTrend(context.Background(), "t1", "doc-1", 30)

	assert.NoError(t, err)
	assert.Equal(t, constants.TrendIncreasing, result.Trend)
	assert.Equal(t, 50.0, *result.PreviousScore)
}

func TestGetDocumentRiskTrend_EmptyWindowSynthesizesPoint(t *testing.T) {
	historyRepo := new(MockRiskHistoryRepo)
	documentScores := new(MockDocumentScoreRepo)
	svc := newTrendServiceForTest(historyRepo, documentScores)

	generatedAt := testNow.AddDate(0, 0, -200)
	documentScores.On("GetByDocument", mock.Anything, "t1", "doc-1").
		Return(&models.DocumentRiskScore{Score: 42, Severity: constants.SeverityMedium, GeneratedAt: generatedAt}, nil)
	historyRepo.On("ListByEntity", mock.Anything, "t1", constants.EntityTypeDocument, "doc-1", mock.Anything).
		Return([]models.RiskScoreObservation{}, nil)

	result, err := svc.GetDocumentRiskTrend(context.Background(), "t1", "doc-1", 30)

	assert.NoError(t, err)
	assert.Len(t, result.History, 1)
	assert.Equal(t, 42.0, result.History[0].Score)
	assert.Equal(t, generatedAt, result.History[0].Date)
	assert.Nil(t, result.PreviousScore)
	assert.Equal(t, constants.TrendStable, result.Trend)
	assert.Equal(t, 42.0, result.AverageScore)
	assert.Equal(t, 42.0, result.MinScore)
	assert.Equal(t, 42.0, result.MaxScore)
}

func TestGetDocumentRiskTrend_NoScoreRecord(t *testing.T) {
	historyRepo := new(MockRiskHistoryRepo)
	documentScores := new(MockDocumentScoreRepo)
	svc := newTrendServiceForTest(historyRepo, documentScores)

	documentScores.On("GetByDocument", mock.Anything, "t1", "missing").
		Return(nil, nil)

	result, err := svc.GetDocumentRiskTrend(context.Background(), "t1", "missing", 30)

	assert.Nil(t, result)
	assert.True(t, errors.IsNotFound(err))
	historyRepo.AssertNotCalled(t, "ListByEntity", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetDocumentRiskTrend_DefaultWindow(t *testing.T) {
	historyRepo := new(MockRiskHistoryRepo)
	documentScores := new(MockDocumentScoreRepo)
	svc := newTrendServiceForTest(historyRepo, documentScores)

	documentScores.On("GetByDocument", mock.Anything, "t1", "doc-1").
		Return(&models.DocumentRiskScore{Score: 10, Severity: constants.SeverityLow, GeneratedAt: testNow}, nil)
	historyRepo.On("ListByEntity", mock.Anything, "t1", constants.EntityTypeDocument, "doc-1", testNow.AddDate(0, 0, -90)).
		Return([]models.RiskScoreObservation{}, nil)

	_, err := svc.GetDocumentRiskTrend(context.Background(), "t1", "doc-1", 0)

	assert.NoError(t, err)
	historyRepo.AssertExpectations(t)
}

func TestGetCompanyRiskTrend_UsesHistoryOnly(t *testing.T) {
	historyRepo := new(MockRiskHistoryRepo)
	documentScores := new(MockDocumentScoreRepo)
	svc := newTrendServiceForTest(historyRepo, documentScores)

	history := observationsAt("t1", constants.EntityTypeCompany, "comp-1",
		[]float64{30, 45, 60},
		[]constants.Severity{constants.SeverityLow, constants.SeverityMedium, constants.SeverityMedium},
	)
	historyRepo.On("ListByEntity", mock.Anything, "t1", constants.EntityTypeCompany, "comp-1", mock.Anything).
		Return(history, nil)

	result, err := svc.GetCompanyRiskTrend(context.Background(), "t1", "comp-1", 30)

	assert.NoError(t, err)
	// Current score comes from the last history entry, never a live record.
	assert.Equal(t, 60.0, result.CurrentScore)
	assert.Equal(t, 45.0, *result.PreviousScore)
	assert.Equal(t, constants.TrendIncreasing, result.Trend)
	assert.Equal(t, 45.0, result.AverageScore)
	documentScores.AssertNotCalled(t, "GetByDocument", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetCompanyRiskTrend_EmptyWindowIsNotFound(t *testing.T) {
	historyRepo := new(MockRiskHistoryRepo)
	documentScores := new(MockDocumentScoreRepo)
	svc := newTrendServiceForTest(historyRepo, documentScores)

	historyRepo.On("ListByEntity", mock.Anything, "t1", constants.EntityTypeCompany, "comp-1", mock.Anything).
		Return([]models.RiskScoreObservation{}, nil)

	result, err := svc.GetCompanyRiskTrend(context.Background(), "t1", "comp-1", 30)

	assert.Nil(t, result)
	assert.True(t, errors.IsNotFound(err))
}
