// This file contains the subscription and usage metering models: plan tiers,
// static plan ceilings, per-tenant usage counters, and limit check results.
package models

import (
	"time"

	"github.com/aimuhasebi/platform/pkg/constants"
)

// TenantSubscription records the active plan for a tenant.
type TenantSubscription struct {
	ID        uint               `json:"-" gorm:"primarykey"`
	TenantID  string             `json:"tenant_id" gorm:"size:64;not null;uniqueIndex"`
	PlanTier  constants.PlanTier `json:"plan_tier" gorm:"size:16;not null;default:'FREE'"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (TenantSubscription) TableName() string {
	return "tenant_subscriptions"
}

// PlanConfig is the static set of resource ceilings for one plan tier.
// Enterprise ceilings are effectively unlimited by being very large; there is
// deliberately no "unlimited" sentinel, so callers never special-case it.
type PlanConfig struct {
	Tier                 constants.PlanTier `json:"tier"`
	MaxClientCompanies   int64              `json:"max_client_companies"`
	MaxMonthlyDocuments  int64              `json:"max_monthly_documents"`
	MaxMonthlyAIAnalyses int64              `json:"max_monthly_ai_analyses"`
	MaxUsers             int64              `json:"max_users"`
	MaxScheduledReports  int64              `json:"max_scheduled_reports"`
}

var planConfigs = map[constants.PlanTier]PlanConfig{
	constants.PlanTierFree: {
		Tier:                 constants.PlanTierFree,
		MaxClientCompanies:   3,
		MaxMonthlyDocuments:  100,
		MaxMonthlyAIAnalyses: 50,
		MaxUsers:             3,
		MaxScheduledReports:  1,
	},
	constants.PlanTierPro: {
		Tier:                 constants.PlanTierPro,
		MaxClientCompanies:   50,
		MaxMonthlyDocuments:  1000,
		MaxMonthlyAIAnalyses: 500,
		MaxUsers:             20,
		MaxScheduledReports:  10,
	},
	constants.PlanTierEnterprise: {
		Tier:                 constants.PlanTierEnterprise,
		MaxClientCompanies:   10000,
		MaxMonthlyDocuments:  100000,
		MaxMonthlyAIAnalyses: 50000,
		MaxUsers:             1000,
		MaxScheduledReports:  1000,
	},
}

// PlanConfigFor returns the ceilings for a tier. Unknown tiers resolve to the
// FREE plan so a corrupt subscription row can never unlock unlimited usage.
func PlanConfigFor(tier constants.PlanTier) PlanConfig {
	if cfg, ok := planConfigs[tier]; ok {
		return cfg
	}
	return planConfigs[constants.PlanTierFree]
}

// LimitFor resolves the ceiling for a single metric.
func (p PlanConfig) LimitFor(metric constants.UsageMetricType) int64 {
	switch metric {
	case constants.MetricClientCompanies:
		return p.MaxClientCompanies
	case constants.MetricMonthlyDocuments:
		return p.MaxMonthlyDocuments
	case constants.MetricMonthlyAIAnalyses:
		return p.MaxMonthlyAIAnalyses
	case constants.MetricUsers:
		return p.MaxUsers
	case constants.MetricScheduledReports:
		return p.MaxScheduledReports
	default:
		return 0
	}
}

// UsageCounter is the consumption tally for one tenant/metric/period triple.
type UsageCounter struct {
	TenantID string                    `json:"tenant_id"`
	Metric   constants.UsageMetricType `json:"metric"`
	Period   string                    `json:"period"`
	Value    int64                     `json:"value"`
}

// LimitCheckResult answers whether a tenant may consume one more unit of a
// metered resource.
type LimitCheckResult struct {
	Metric    constants.UsageMetricType `json:"metric"`
	Tier      constants.PlanTier        `json:"tier"`
	Allowed   bool                      `json:"allowed"`
	Used      int64                     `json:"used"`
	Limit     int64                     `json:"limit"`
	Remaining int64                     `json:"remaining"`
}
