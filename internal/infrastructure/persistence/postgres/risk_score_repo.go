package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aimuhasebi/platform/internal/domain/models"
	"github.com/aimuhasebi/platform/internal/domain/repository"
)

// documentRiskScoreRepo implements repository.DocumentRiskScoreRepository.
// One row per (tenant, document); Upsert replaces the live score in place.
type documentRiskScoreRepo struct {
	db *gorm.DB
}

// NewDocumentRiskScoreRepository creates the PostgreSQL document score repository.
func NewDocumentRiskScoreRepository(db *gorm.DB) repository.DocumentRiskScoreRepository {
	return &documentRiskScoreRepo{db: db}
}

func (r *documentRiskScoreRepo) GetByDocument(ctx context.Context, tenantID, documentID string) (*models.DocumentRiskScore, error) {
	var score models.DocumentRiskScore
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND document_id = ?", tenantID, documentID).
		First(&score).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func (r *documentRiskScoreRepo) Upsert(ctx context.Context, score *models.DocumentRiskScore) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "document_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "severity", "triggered_rule_codes", "generated_at"}),
		}).
		Create(score).Error
}

// companyRiskScoreRepo implements repository.CompanyRiskScoreRepository.
type companyRiskScoreRepo struct {
	db *gorm.DB
}

// NewCompanyRiskScoreRepository creates the PostgreSQL company score repository.
func NewCompanyRiskScoreRepository(db *gorm.DB) repository.CompanyRiskScoreRepository {
	return &companyRiskScoreRepo{db: db}
}

func (r *companyRiskScoreRepo) GetByCompany(ctx context.Context, tenantID, clientCompanyID string) (*models.CompanyRiskScore, error) {
	var score models.CompanyRiskScore
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND client_company_id = ?", tenantID, clientCompanyID).
		First(&score).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func (r *companyRiskScoreRepo) Upsert(ctx context.Context, score *models.CompanyRiskScore) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "client_company_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "severity", "triggered_rule_codes", "generated_at"}),
		}).
		Create(score).Error
}
