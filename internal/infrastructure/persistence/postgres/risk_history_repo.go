package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/aimuhasebi/platform/internal/domain/models"
	"github.com/aimuhasebi/platform/internal/domain/repository"
	"github.com/aimuhasebi/platform/pkg/constants"
)

// riskHistoryRepo implements repository.RiskScoreHistoryRepository on
// PostgreSQL. The table is append-only; reads order by recorded_at ascending.
type riskHistoryRepo struct {
	db *gorm.DB
}

// NewRiskHistoryRepository creates the PostgreSQL risk history repository.
func NewRiskHistoryRepository(db *gorm.DB) repository.RiskScoreHistoryRepository {
	return &riskHistoryRepo{db: db}
}

func (r *riskHistoryRepo) Append(ctx context.Context, obs *models.RiskScoreObservation) error {
	return r.db.WithContext(ctx).Create(obs).Error
}

func (r *riskHistoryRepo) ListByEntity(ctx context.Context, tenantID string, entityType constants.EntityType, entityID string, since time.Time) ([]models.RiskScoreObservation, error) {
	var observations []models.RiskScoreObservation
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND entity_type = ? AND entity_id = ? AND recorded_at >= ?",
			tenantID, entityType, entityID, since).
		Order("recorded_at ASC").
		Find(&observations).Error
	if err != nil {
		return nil, err
	}
	return observations, nil
}

func (r *riskHistoryRepo) ListByTenantScope(ctx context.Context, tenantID string, entityType constants.EntityType, since time.Time) ([]models.RiskScoreObservation, error) {
	var observations []models.RiskScoreObservation
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND entity_type = ? AND recorded_at >= ?",
			tenantID, entityType, since).
		Order("recorded_at ASC").
		Find(&observations).Error
	if err != nil {
		return nil, err
	}
	return observations, nil
}
