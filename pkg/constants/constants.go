// Package constants defines system-wide constants for the AI Muhasebi platform core.
// This package provides type-safe constant definitions shared across all modules.
package constants

import "time"

// ================================================================================
// Risk Entity Constants
// ================================================================================

// EntityType identifies the kind of entity a risk score belongs to.
type EntityType string

const (
	// EntityTypeDocument represents an uploaded accounting document.
	EntityTypeDocument EntityType = "document"

	// EntityTypeCompany represents a client company managed by an accounting office.
	EntityTypeCompany EntityType = "company"
)

// IsValid reports whether the entity type is a member of the closed set.
func (e EntityType) IsValid() bool {
	return e == EntityTypeDocument || e == EntityTypeCompany
}

// ================================================================================
// Severity Constants
// ================================================================================

// Severity is the coarse risk bucket derived from a numeric score.
// Score severities are the closed set {low, medium, high}; the wider alert
// severity set lives in AlertSeverity.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// IsValid reports whether the severity is a member of the closed set.
func (s Severity) IsValid() bool {
	return s == SeverityLow || s == SeverityMedium || s == SeverityHigh
}

// AlertSeverity is the severity set used by the risk alert feed. Alerts may
// additionally carry "critical", which score severities never do.
type AlertSeverity string

const (
	AlertSeverityLow      AlertSeverity = "low"
	AlertSeverityMedium   AlertSeverity = "medium"
	AlertSeverityHigh     AlertSeverity = "high"
	AlertSeverityCritical AlertSeverity = "critical"
)

// ================================================================================
// Trend Constants
// ================================================================================

// TrendDirection classifies the movement between the two most recent scores.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// TrendDeadBand is the score delta below which a trend is reported as stable.
// The dead-band avoids noise-driven trend flapping on small score changes.
const TrendDeadBand = 5.0

// DefaultDocumentTrendWindowDays is the default lookback window for document
// risk trends when the caller does not specify one.
const DefaultDocumentTrendWindowDays = 90

// TrendPeriod is a named dashboard lookback period.
type TrendPeriod string

const (
	TrendPeriod7Days  TrendPeriod = "7d"
	TrendPeriod30Days TrendPeriod = "30d"
	TrendPeriod90Days TrendPeriod = "90d"
	TrendPeriod1Year  TrendPeriod = "1y"
)

// Days returns the number of days covered by the period. Unknown periods
// fall back to 30 days.
func (p TrendPeriod) Days() int {
	switch p {
	case TrendPeriod7Days:
		return 7
	case TrendPeriod30Days:
		return 30
	case TrendPeriod90Days:
		return 90
	case TrendPeriod1Year:
		return 365
	default:
		return 30
	}
}

// IsValid reports whether the period is a member of the closed set.
func (p TrendPeriod) IsValid() bool {
	switch p {
	case TrendPeriod7Days, TrendPeriod30Days, TrendPeriod90Days, TrendPeriod1Year:
		return true
	default:
		return false
	}
}

// ================================================================================
// Subscription Plan Constants
// ================================================================================

// PlanTier is the subscription level of a tenant.
type PlanTier string

const (
	PlanTierFree       PlanTier = "FREE"
	PlanTierPro        PlanTier = "PRO"
	PlanTierEnterprise PlanTier = "ENTERPRISE"
)

// IsValid reports whether the tier is a member of the closed set.
func (t PlanTier) IsValid() bool {
	return t == PlanTierFree || t == PlanTierPro || t == PlanTierEnterprise
}

// UsageMetricType identifies a metered resource gated by plan ceilings.
type UsageMetricType string

const (
	MetricClientCompanies   UsageMetricType = "CLIENT_COMPANIES"
	MetricMonthlyDocuments  UsageMetricType = "MONTHLY_DOCUMENTS"
	MetricMonthlyAIAnalyses UsageMetricType = "MONTHLY_AI_ANALYSES"
	MetricUsers             UsageMetricType = "USERS"
	MetricScheduledReports  UsageMetricType = "SCHEDULED_REPORTS"
)

// AllUsageMetrics lists every metered resource, in billing-screen order.
var AllUsageMetrics = []UsageMetricType{
	MetricClientCompanies,
	MetricMonthlyDocuments,
	MetricMonthlyAIAnalyses,
	MetricUsers,
	MetricScheduledReports,
}

// IsValid reports whether the metric is a member of the closed set.
func (m UsageMetricType) IsValid() bool {
	for _, known := range AllUsageMetrics {
		if m == known {
			return true
		}
	}
	return false
}

// IsMonthly reports whether the metric resets at calendar-month boundaries.
// Non-monthly metrics count live resources and never reset.
func (m UsageMetricType) IsMonthly() bool {
	return m == MetricMonthlyDocuments || m == MetricMonthlyAIAnalyses
}

// UsagePeriodTotal is the period key for metrics that never reset.
const UsagePeriodTotal = "total"

// UsagePeriodLayout is the time layout for monthly usage period keys.
const UsagePeriodLayout = "2006-01"

// MonthlyCounterTTL is how long monthly usage counter keys are retained after
// their first write. Long enough to outlive the period plus a grace window.
const MonthlyCounterTTL = 40 * 24 * time.Hour

// ================================================================================
// Context Keys
// ================================================================================

// ContextKey is the type used for request-scoped context values.
type ContextKey string

const (
	// ContextKeyRequestID carries the per-request correlation id.
	ContextKeyRequestID ContextKey = "request_id"

	// ContextKeyTenantID carries the authenticated tenant id.
	ContextKeyTenantID ContextKey = "tenant_id"

	// ContextKeyTraceID carries the distributed trace id.
	ContextKeyTraceID ContextKey = "trace_id"
)

// ================================================================================
// HTTP Header Constants
// ================================================================================

const (
	// HeaderRequestID is the correlation id header.
	HeaderRequestID = "X-Request-ID"

	// HeaderTenantID is set by the upstream gateway after authentication.
	HeaderTenantID = "X-Tenant-ID"
)
