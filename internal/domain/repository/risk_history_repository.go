// Package repository defines the data-access contracts consumed by the
// application services. Implementations live under internal/infrastructure.
package repository

import (
	"context"
	"time"

	"github.com/aimuhasebi/platform/internal/domain/models"
	"github.com/aimuhasebi/platform/pkg/constants"
)

// RiskScoreHistoryRepository is the append-only ledger of risk score
// observations. Within one entity's history, readers order by recorded_at
// ascending rather than insertion sequence; clock skew between concurrent
// writers is a known, unmitigated ordering risk.
type RiskScoreHistoryRepository interface {
	// Append inserts one observation. Callers treat this as best-effort:
	// failures are logged and swallowed at the service layer so history
	// storage never blocks the risk-computation pipeline.
	Append(ctx context.Context, obs *models.RiskScoreObservation) error

	// ListByEntity returns all observations for one entity recorded at or
	// after since, ordered ascending by recorded_at. An empty slice is not
	// an error.
	ListByEntity(ctx context.Context, tenantID string, entityType constants.EntityType, entityID string, since time.Time) ([]models.RiskScoreObservation, error)

	// ListByTenantScope returns all observations of one entity type across
	// the whole tenant since the given time, ordered ascending by
	// recorded_at. Used for tenant-wide dashboard aggregation.
	ListByTenantScope(ctx context.Context, tenantID string, entityType constants.EntityType, since time.Time) ([]models.RiskScoreObservation, error)
}
