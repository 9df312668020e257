package repository

import (
	"context"

	"github.com/aimuhasebi/platform/internal/domain/models"
)

// SubscriptionRepository resolves the active plan of a tenant.
// GetByTenant returns (nil, nil) when the tenant has no subscription row;
// the service layer treats that as the FREE tier.
type SubscriptionRepository interface {
	GetByTenant(ctx context.Context, tenantID string) (*models.TenantSubscription, error)
	Upsert(ctx context.Context, sub *models.TenantSubscription) error
}
