package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/aimuhasebi/platform/internal/domain/models"
	"github.com/aimuhasebi/platform/internal/domain/repository"
)

// riskAlertRepo implements repository.RiskAlertRepository. The alert table is
// written by the rule engine; this repository only reads it.
type riskAlertRepo struct {
	db *gorm.DB
}

// NewRiskAlertRepository creates the PostgreSQL risk alert repository.
func NewRiskAlertRepository(db *gorm.DB) repository.RiskAlertRepository {
	return &riskAlertRepo{db: db}
}

func (r *riskAlertRepo) ListSince(ctx context.Context, tenantID string, since time.Time) ([]models.RiskAlert, error) {
	var alerts []models.RiskAlert
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND created_at >= ?", tenantID, since).
		Order("created_at ASC").
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}
