package repository

import (
	"context"

	"github.com/aimuhasebi/platform/internal/domain/models"
)

// DocumentRiskScoreRepository reads and writes the live current-score pointer
// for documents. GetByDocument returns (nil, nil) when no score exists so the
// service layer decides how missing scores surface.
type DocumentRiskScoreRepository interface {
	GetByDocument(ctx context.Context, tenantID, documentID string) (*models.DocumentRiskScore, error)
	Upsert(ctx context.Context, score *models.DocumentRiskScore) error
}

// CompanyRiskScoreRepository reads and writes the latest computed score for
// client companies. Company trends never fall back to this record; it serves
// detail views only.
type CompanyRiskScoreRepository interface {
	GetByCompany(ctx context.Context, tenantID, clientCompanyID string) (*models.CompanyRiskScore, error)
	Upsert(ctx context.Context, score *models.CompanyRiskScore) error
}
