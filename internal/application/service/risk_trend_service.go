// Package service contains the application services implementing the risk
// trend and usage metering use cases.
package service

import (
	"context"
	"time"

	"github.com/aimuhasebi/platform/internal/domain/models"
	"github.com/aimuhasebi/platform/internal/domain/repository"
	"github.com/aimuhasebi/platform/pkg/constants"
	"github.com/aimuhasebi/platform/pkg/errors"
	"github.com/aimuhasebi/platform/pkg/logger"
)

// RiskTrendService produces the per-entity risk trend view consumed by the
// document and company detail screens.
type RiskTrendService interface {
	// GetDocumentRiskTrend derives the trend for one document over the given
	// lookback window in days (<= 0 uses the configured default).
	GetDocumentRiskTrend(ctx context.Context, tenantID, documentID string, days int) (*models.RiskTrendResult, error)

	// GetCompanyRiskTrend derives the trend for one client company.
	GetCompanyRiskTrend(ctx context.Context, tenantID, clientCompanyID string, days int) (*models.RiskTrendResult, error)
}

type riskTrendService struct {
	historyRepo       repository.RiskScoreHistoryRepository
	documentScores    repository.DocumentRiskScoreRepository
	defaultWindowDays int
	log               logger.Logger
	now               func() time.Time
}

// NewRiskTrendService creates a new RiskTrendService.
func NewRiskTrendService(
	historyRepo repository.RiskScoreHistoryRepository,
	documentScores repository.DocumentRiskScoreRepository,
	defaultWindowDays int,
	log logger.Logger,
) RiskTrendService {
	if defaultWindowDays <= 0 {
		defaultWindowDays = constants.DefaultDocumentTrendWindowDays
	}
	return &riskTrendService{
		historyRepo:       historyRepo,
		documentScores:    documentScores,
		defaultWindowDays: defaultWindowDays,
		log:               log.WithComponent("risk_trend_service"),
		now:               time.Now,
	}
}

// GetDocumentRiskTrend reads the document's live current-score record plus its
// history window. The current-score record is authoritative for CurrentScore
// and may transiently disagree with the last history entry; when the window
// holds no history at all, a single synthetic point is built from the
// current-score record so History is never empty.
func (s *riskTrendService) GetDocumentRiskTrend(ctx context.Context, tenantID, documentID string, days int) (*models.RiskTrendResult, error) {
	if days <= 0 {
		days = s.defaultWindowDays
	}
	cutoff := s.now().UTC().AddDate(0, 0, -days)

	current, err := s.documentScores.GetByDocument(ctx, tenantID, documentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load document risk score")
	}
	if current == nil {
		return nil, errors.ErrNotFound("document risk score", documentID).
			WithMetadata("tenant_id", tenantID)
	}

	observations, err := s.historyRepo.ListByEntity(ctx, tenantID, constants.EntityTypeDocument, documentID, cutoff)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load document risk history")
	}

	history := toTrendPoints(observations)
	if len(history) == 0 {
		history = []models.TrendPoint{{
			Date:     current.GeneratedAt,
			Score:    current.Score,
			Severity: current.Severity,
		}}
	}

	return buildTrendResult(history, current.Score), nil
}

// GetCompanyRiskTrend reads the company's history window only. Companies are
// scored afresh into the history ledger and have no live-pointer fallback, so
// an empty window is a hard NotFound rather than a synthesized point.
func (s *riskTrendService) GetCompanyRiskTrend(ctx context.Context, tenantID, clientCompanyID string, days int) (*models.RiskTrendResult, error) {
	if days <= 0 {
		days = s.defaultWindowDays
	}
	cutoff := s.now().UTC().AddDate(0, 0, -days)

	observations, err := s.historyRepo.ListByEntity(ctx, tenantID, constants.EntityTypeCompany, clientCompanyID, cutoff)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load company risk history")
	}
	if len(observations) == 0 {
		return nil, errors.ErrNotFound("company risk history", clientCompanyID).
			WithMetadata("tenant_id", tenantID)
	}

	history := toTrendPoints(observations)
	return buildTrendResult(history, history[len(history)-1].Score), nil
}

func toTrendPoints(observations []models.RiskScoreObservation) []models.TrendPoint {
	points := make([]models.TrendPoint, 0, len(observations))
	for _, obs := range observations {
		points = append(points, models.TrendPoint{
			Date:     obs.RecordedAt,
			Score:    obs.Score,
			Severity: obs.Severity,
		})
	}
	return points
}

// buildTrendResult derives the summary fields from a non-empty history.
// PreviousScore is the second-to-last history entry, nil when the history
// holds a single point; the trend classification then reports stable.
func buildTrendResult(history []models.TrendPoint, currentScore float64) *models.RiskTrendResult {
	var previous *float64
	if len(history) >= 2 {
		v := history[len(history)-2].Score
		previous = &v
	}

	sum := 0.0
	minScore := history[0].Score
	maxScore := history[0].Score
	for _, p := range history {
		sum += p.Score
		if p.Score < minScore {
			minScore = p.Score
		}
		if p.Score > maxScore {
			maxScore = p.Score
		}
	}

	return &models.RiskTrendResult{
		History:       history,
		CurrentScore:  currentScore,
		PreviousScore: previous,
		Trend:         models.ClassifyTrend(currentScore, previous),
		AverageScore:  sum / float64(len(history)),
		MinScore:      minScore,
		MaxScore:      maxScore,
	}
}
