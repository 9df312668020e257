package service

import (
	"context"
	"time"

	"github.com/aimuhasebi/platform/internal/domain/models"
	"github.com/aimuhasebi/platform/internal/domain/repository"
	domainservice "github.com/aimuhasebi/platform/internal/domain/service"
	"github.com/aimuhasebi/platform/pkg/constants"
	"github.com/aimuhasebi/platform/pkg/errors"
	"github.com/aimuhasebi/platform/pkg/logger"
)

// RecordObservationInput is one freshly computed risk score handed over by
// the risk-computation pipeline.
type RecordObservationInput struct {
	TenantID           string
	EntityType         constants.EntityType
	EntityID           string
	Score              float64
	Severity           constants.Severity
	TriggeredRuleCodes []string
	// RecordedAt defaults to now when zero. Readers order history by this
	// wall-clock field, so skewed writer clocks can reorder entries.
	RecordedAt time.Time
}

// RiskRecorderService persists freshly computed risk scores. The current-score
// record is the primary, durable write; the history append and the event
// publish are best-effort side channels whose failures are logged and
// swallowed so they never block the computation pipeline.
type RiskRecorderService interface {
	RecordObservation(ctx context.Context, input RecordObservationInput) error
}

type riskRecorderService struct {
	historyRepo    repository.RiskScoreHistoryRepository
	documentScores repository.DocumentRiskScoreRepository
	companyScores  repository.CompanyRiskScoreRepository
	publisher      domainservice.RiskEventPublisher
	log            logger.Logger
	now            func() time.Time
}

// NewRiskRecorderService creates a new RiskRecorderService.
func NewRiskRecorderService(
	historyRepo repository.RiskScoreHistoryRepository,
	documentScores repository.DocumentRiskScoreRepository,
	companyScores repository.CompanyRiskScoreRepository,
	publisher domainservice.RiskEventPublisher,
	log logger.Logger,
) RiskRecorderService {
	if publisher == nil {
		publisher = domainservice.NewNoopPublisher()
	}
	return &riskRecorderService{
		historyRepo:    historyRepo,
		documentScores: documentScores,
		companyScores:  companyScores,
		publisher:      publisher,
		log:            log.WithComponent("risk_recorder_service"),
		now:            time.Now,
	}
}

func (s *riskRecorderService) RecordObservation(ctx context.Context, input RecordObservationInput) error {
	if err := validateObservation(input); err != nil {
		return err
	}

	recordedAt := input.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = s.now().UTC()
	}

	// Primary write: the live current-score record. Failures here propagate.
	switch input.EntityType {
	case constants.EntityTypeDocument:
		err := s.documentScores.Upsert(ctx, &models.DocumentRiskScore{
			TenantID:           input.TenantID,
			DocumentID:         input.EntityID,
			Score:              input.Score,
			Severity:           input.Severity,
			TriggeredRuleCodes: input.TriggeredRuleCodes,
			GeneratedAt:        recordedAt,
		})
		if err != nil {
			return errors.Wrap(err, "failed to store document risk score")
		}
	case constants.EntityTypeCompany:
		err := s.companyScores.Upsert(ctx, &models.CompanyRiskScore{
			TenantID:           input.TenantID,
			ClientCompanyID:    input.EntityID,
			Score:              input.Score,
			Severity:           input.Severity,
			TriggeredRuleCodes: input.TriggeredRuleCodes,
			GeneratedAt:        recordedAt,
		})
		if err != nil {
			return errors.Wrap(err, "failed to store company risk score")
		}
	}

	obs := &models.RiskScoreObservation{
		TenantID:   input.TenantID,
		EntityType: input.EntityType,
		EntityID:   input.EntityID,
		Score:      input.Score,
		Severity:   input.Severity,
		RecordedAt: recordedAt,
	}

	// History append is fire-and-forget with respect to the primary write:
	// observability data must never block the business flow that produced it.
	if err := s.historyRepo.Append(ctx, obs); err != nil {
		s.log.Error(ctx, "Failed to append risk score history", err,
			logger.String("tenant_id", input.TenantID),
			logger.String("entity_type", string(input.EntityType)),
			logger.String("entity_id", input.EntityID),
			logger.Float64("score", input.Score),
			logger.String("severity", string(input.Severity)),
		)
	}

	if err := s.publisher.PublishObservation(ctx, obs); err != nil {
		s.log.Error(ctx, "Failed to publish risk observation event", err,
			logger.String("tenant_id", input.TenantID),
			logger.String("entity_type", string(input.EntityType)),
			logger.String("entity_id", input.EntityID),
		)
	}

	return nil
}

func validateObservation(input RecordObservationInput) error {
	if input.TenantID == "" {
		return errors.ErrTenantRequired()
	}
	if input.EntityID == "" {
		return errors.ErrValidation("entity id is required")
	}
	if !input.EntityType.IsValid() {
		return errors.ErrValidation("unknown entity type: " + string(input.EntityType))
	}
	if input.Score < 0 || input.Score > 100 {
		return errors.ErrValidation("score must be between 0 and 100")
	}
	if !input.Severity.IsValid() {
		return errors.ErrValidation("unknown severity: " + string(input.Severity))
	}
	return nil
}
