// Package models defines the domain models for the AI Muhasebi platform core.
// This file contains the risk scoring models: the append-only observation
// ledger, the per-entity current-score records, the alert feed, and the
// derived trend result shapes.
package models

import (
	"time"

	"github.com/aimuhasebi/platform/pkg/constants"
)

// RiskScoreObservation is one immutable entry in the risk score history
// ledger. Observations are appended whenever a risk score is (re)computed for
// an entity and are never mutated or deleted by this core.
type RiskScoreObservation struct {
	ID         uint                 `json:"-" gorm:"primarykey"`
	TenantID   string               `json:"tenant_id" gorm:"size:64;not null;index:idx_risk_history_entity,priority:1;index:idx_risk_history_scope,priority:1"`
	EntityType constants.EntityType `json:"entity_type" gorm:"size:16;not null;index:idx_risk_history_entity,priority:2;index:idx_risk_history_scope,priority:2"`
	EntityID   string               `json:"entity_id" gorm:"size:64;not null;index:idx_risk_history_entity,priority:3"`
	Score      float64              `json:"score" gorm:"not null"`
	Severity   constants.Severity   `json:"severity" gorm:"size:16;not null"`
	RecordedAt time.Time            `json:"recorded_at" gorm:"not null;index"`
}

// TableName specifies the table name for GORM.
func (RiskScoreObservation) TableName() string {
	return "risk_score_history"
}

// DocumentRiskScore is the live current-score record for a document,
// maintained by the risk-computation pipeline. It is the authoritative
// "latest" score for the document and may transiently disagree with the last
// history entry; the history is a log, this record is the live pointer.
type DocumentRiskScore struct {
	ID                 uint               `json:"-" gorm:"primarykey"`
	TenantID           string             `json:"tenant_id" gorm:"size:64;not null;uniqueIndex:uk_document_risk_scores,priority:1"`
	DocumentID         string             `json:"document_id" gorm:"size:64;not null;uniqueIndex:uk_document_risk_scores,priority:2"`
	Score              float64            `json:"score" gorm:"not null"`
	Severity           constants.Severity `json:"severity" gorm:"size:16;not null"`
	TriggeredRuleCodes []string           `json:"triggered_rule_codes" gorm:"serializer:json"`
	GeneratedAt        time.Time          `json:"generated_at" gorm:"not null"`
}

// TableName specifies the table name for GORM.
func (DocumentRiskScore) TableName() string {
	return "document_risk_scores"
}

// CompanyRiskScore is the latest computed score for a client company.
// Companies are always scored afresh into the history ledger; this record is
// kept for detail views but is not consulted as a trend fallback.
type CompanyRiskScore struct {
	ID                 uint               `json:"-" gorm:"primarykey"`
	TenantID           string             `json:"tenant_id" gorm:"size:64;not null;uniqueIndex:uk_company_risk_scores,priority:1"`
	ClientCompanyID    string             `json:"client_company_id" gorm:"size:64;not null;uniqueIndex:uk_company_risk_scores,priority:2"`
	Score              float64            `json:"score" gorm:"not null"`
	Severity           constants.Severity `json:"severity" gorm:"size:16;not null"`
	TriggeredRuleCodes []string           `json:"triggered_rule_codes" gorm:"serializer:json"`
	GeneratedAt        time.Time          `json:"generated_at" gorm:"not null"`
}

// TableName specifies the table name for GORM.
func (CompanyRiskScore) TableName() string {
	return "company_risk_scores"
}

// RiskAlert is a read-only row from the risk alert feed, produced by the
// excluded rule engine and consumed here for dashboard aggregation only.
type RiskAlert struct {
	ID        uint                    `json:"-" gorm:"primarykey"`
	TenantID  string                  `json:"tenant_id" gorm:"size:64;not null;index:idx_risk_alerts_tenant,priority:1"`
	Severity  constants.AlertSeverity `json:"severity" gorm:"size:16;not null"`
	Title     string                  `json:"title" gorm:"size:255"`
	CreatedAt time.Time               `json:"created_at" gorm:"not null;index:idx_risk_alerts_tenant,priority:2"`
}

// TableName specifies the table name for GORM.
func (RiskAlert) TableName() string {
	return "risk_alerts"
}

// ================================================================================
// Derived Trend Results (computed on read, never persisted)
// ================================================================================

// TrendPoint is one point in an entity's score history as presented to callers.
type TrendPoint struct {
	Date     time.Time          `json:"date"`
	Score    float64            `json:"score"`
	Severity constants.Severity `json:"severity"`
}

// RiskTrendResult is the derived trend view for a single entity.
// History is always non-empty when a result is produced; PreviousScore is nil
// iff the history holds a single point.
type RiskTrendResult struct {
	History       []TrendPoint             `json:"history"`
	CurrentScore  float64                  `json:"current_score"`
	PreviousScore *float64                 `json:"previous_score"`
	Trend         constants.TrendDirection `json:"trend"`
	AverageScore  float64                  `json:"average_score"`
	MinScore      float64                  `json:"min_score"`
	MaxScore      float64                  `json:"max_score"`
}

// RiskScoreTrend is the tenant-wide daily score series for dashboard charts.
// Scores holds one entry per calendar day, zero-filled for days without
// observations. AverageScore is computed over the non-zero entries only.
type RiskScoreTrend struct {
	Dates        []string                 `json:"dates"`
	Scores       []float64                `json:"scores"`
	AverageScore float64                  `json:"average_score"`
	Trend        constants.TrendDirection `json:"trend"`
}

// AlertFrequencyTrend is the tenant-wide daily alert count series.
type AlertFrequencyTrend struct {
	Dates       []string `json:"dates"`
	Counts      []int    `json:"counts"`
	TotalAlerts int      `json:"total_alerts"`
}

// RiskDistributionTrend is the tenant-wide daily severity tally series.
type RiskDistributionTrend struct {
	Dates  []string `json:"dates"`
	Low    []int    `json:"low"`
	Medium []int    `json:"medium"`
	High   []int    `json:"high"`
}

// TenantTrendsResult bundles the three dashboard series. All date arrays are
// the same length, covering every calendar day of the requested period
// inclusive of both endpoints.
type TenantTrendsResult struct {
	RiskScoreTrend        RiskScoreTrend        `json:"risk_score_trend"`
	AlertFrequencyTrend   AlertFrequencyTrend   `json:"alert_frequency_trend"`
	RiskDistributionTrend RiskDistributionTrend `json:"risk_distribution_trend"`
}

// ClassifyTrend applies the dead-band rule to the latest score pair.
// A nil previous score means there is nothing to compare against, so the
// trend is stable by definition.
func ClassifyTrend(current float64, previous *float64) constants.TrendDirection {
	if previous == nil {
		return constants.TrendStable
	}
	diff := current - *previous
	switch {
	case diff > constants.TrendDeadBand:
		return constants.TrendIncreasing
	case diff < -constants.TrendDeadBand:
		return constants.TrendDecreasing
	default:
		return constants.TrendStable
	}
}
