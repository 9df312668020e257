package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/aimuhasebi/platform/internal/domain/models"
	"github.com/aimuhasebi/platform/pkg/constants"
	"github.com/aimuhasebi/platform/pkg/errors"
	"github.com/aimuhasebi/platform/pkg/logger"
)

func newRecorderForTest(
	historyRepo *MockRiskHistoryRepo,
	documentScores *MockDocumentScoreRepo,
	companyScores *MockCompanyScoreRepo,
	publisher *MockEventPublisher,
) RiskRecorderService {
	svc := NewRiskRecorderService(historyRepo, documentScores, companyScores, publisher, logger.NewNoopLogger())
	svc.(*riskRecorderService).now = func() time.Time { return testNow }
	return svc
}

func validDocumentInput() RecordObservationInput {
	return RecordObservationInput{
		TenantID:           "t1",
		EntityType:         constants.EntityTypeDocument,
		EntityID:           "doc-1",
		Score:              72.5,
		Severity:           constants.SeverityHigh,
		TriggeredRuleCodes: []string{"VAT_MISMATCH"},
	}
}

func TestRecordObservation_Document(t *testing.T) {
	historyRepo := new(MockRiskHistoryRepo)
	documentScores := new(MockDocumentScoreRepo)
	companyScores := new(MockCompanyScoreRepo)
	publisher := new(MockEventPublisher)
	svc := newRecorderForTest(historyRepo, documentScores, companyScores, publisher)

	documentScores.On("Upsert", mock.Anything, mock.MatchedBy(func(s *models.DocumentRiskScore) bool {
		return s.TenantID == "t1" && s.DocumentID == "doc-1" && s.Score == 72.5 && s.GeneratedAt.Equal(testNow)
	})).Return(nil)
	historyRepo.On("Append", mock.Anything, mock.MatchedBy(func(o *models.RiskScoreObservation) bool {
		return o.EntityType == constants.EntityTypeDocument && o.RecordedAt.Equal(testNow)
	})).Return(nil)
	publisher.On("PublishObservation", mock.Anything, mock.Anything).Return(nil)

	err := svc.RecordObservation(context.Background(), validDocumentInput())

	assert.NoError(t, err)
	documentScores.AssertExpectations(t)
	historyRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
	companyScores.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestRecordObservation_Company(t *testing.T) {
	historyRepo := new(MockRiskHistoryRepo)
	documentScores := new(MockDocumentScoreRepo)
	companyScores := new(MockCompanyScoreRepo)
	publisher := new(MockEventPublisher)
	svc := newRecorderForTest(historyRepo, documentScores, companyScores, publisher)

	companyScores.On("Upsert", mock.Anything, mock.MatchedBy(func(s *models.CompanyRiskScore) bool {
		return s.ClientCompanyID == "comp-1"
	})).Return(nil)
	historyRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
	publisher.On("PublishObservation", mock.Anything, mock.Anything).Return(nil)

	input := validDocumentInput()
	input.EntityType = constants.EntityTypeCompany
	input.EntityID = "comp-1"

	err := svc.RecordObservation(context.Background(), input)

	assert.NoError(t, err)
	companyScores.AssertExpectations(t)
	documentScores.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestRecordObservation_PrimaryWriteFailurePropagates(t *testing.T) {
	historyRepo := new(MockRiskHistoryRepo)
	documentScores := new(MockDocumentScoreRepo)
	companyScores := new(MockCompanyScoreRepo)
	publisher := new(MockEventPublisher)
	svc := newRecorderForTest(historyRepo, documentScores, companyScores, publisher)

	documentScores.On("Upsert", mock.Anything, mock.Anything).Return(fmt.Errorf("connection reset"))

	err := svc.RecordObservation(context.Background(), validDocumentInput())

	assert.Error(t, err)
	historyRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "PublishObservation", mock.Anything, mock.Anything)
}

func TestRecordObservation_HistoryFailureIsSwallowed(t *testing.T) {
	historyRepo := new(MockRiskHistoryRepo)
	documentScores := new(MockDocumentScoreRepo)
	companyScores := new(MockCompanyScoreRepo)
	publisher := new(MockEventPublisher)
	svc := newRecorderForTest(historyRepo, documentScores, companyScores, publisher)

	documentScores.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	historyRepo.On("Append", mock.Anything, mock.Anything).Return(fmt.Errorf("disk full"))
	publisher.On("PublishObservation", mock.Anything, mock.Anything).Return(fmt.Errorf("broker down"))

	err := svc.RecordObservation(context.Background(), validDocumentInput())

	assert.NoError(t, err)
}

func TestRecordObservation_Validation(t *testing.T) {
	svc := newRecorderForTest(new(MockRiskHistoryRepo), new(MockDocumentScoreRepo), new(MockCompanyScoreRepo), new(MockEventPublisher))

	tests := []struct {
		name   string
		mutate func(*RecordObservationInput)
	}{
		{"missing tenant", func(i *RecordObservationInput) { i.TenantID = "" }},
		{"missing entity id", func(i *RecordObservationInput) { i.EntityID = "" }},
		{"unknown entity type", func(i *RecordObservationInput) { i.EntityType = "invoice" }},
		{"score below range", func(i *RecordObservationInput) { i.Score = -1 }},
		{"score above range", func(i *RecordObservationInput) { i.Score = 100.5 }},
		{"unknown severity", func(i *RecordObservationInput) { i.Severity = "critical" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validDocumentInput()
			tt.mutate(&input)
			err := svc.RecordObservation(context.Background(), input)
			assert.True(t, errors.IsValidation(err))
		})
	}
}

func TestRecordObservation_ExplicitRecordedAtPreserved(t *testing.T) {
	historyRepo := new(MockRiskHistoryRepo)
	documentScores := new(MockDocumentScoreRepo)
	companyScores := new(MockCompanyScoreRepo)
	publisher := new(MockEventPublisher)
	svc := newRecorderForTest(historyRepo, documentScores, companyScores, publisher)

	recordedAt := testNow.Add(-2 * time.Hour)
	documentScores.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	historyRepo.On("Append", mock.Anything, mock.MatchedBy(func(o *models.RiskScoreObservation) bool {
		return o.RecordedAt.Equal(recordedAt)
	})).Return(nil)
	publisher.On("PublishObservation", mock.Anything, mock.Anything).Return(nil)

	input := validDocumentInput()
	input.RecordedAt = recordedAt

	assert.NoError(t, svc.RecordObservation(context.Background(), input))
	historyRepo.AssertExpectations(t)
}
