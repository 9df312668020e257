package repository

import (
	"context"
	"time"

	"github.com/aimuhasebi/platform/internal/domain/models"
)

// RiskAlertRepository is the read-only view over the risk alert feed owned by
// the rule engine. This core only counts alerts for dashboard aggregation.
type RiskAlertRepository interface {
	// ListSince returns all alerts for the tenant created at or after since,
	// ordered ascending by created_at.
	ListSince(ctx context.Context, tenantID string, since time.Time) ([]models.RiskAlert, error)
}
