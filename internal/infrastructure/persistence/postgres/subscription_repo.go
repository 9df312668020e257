package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aimuhasebi/platform/internal/domain/models"
	"github.com/aimuhasebi/platform/internal/domain/repository"
)

// subscriptionRepo implements repository.SubscriptionRepository.
type subscriptionRepo struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates the PostgreSQL subscription repository.
func NewSubscriptionRepository(db *gorm.DB) repository.SubscriptionRepository {
	return &subscriptionRepo{db: db}
}

func (r *subscriptionRepo) GetByTenant(ctx context.Context, tenantID string) (*models.TenantSubscription, error) {
	var sub models.TenantSubscription
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&sub).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepo) Upsert(ctx context.Context, sub *models.TenantSubscription) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"plan_tier", "updated_at"}),
		}).
		Create(sub).Error
}
