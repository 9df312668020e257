package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics manages the Prometheus metrics.
type Metrics struct {
	TrendRequests      *prometheus.CounterVec
	TrendLatency       *prometheus.HistogramVec
	DashboardRequests  *prometheus.CounterVec
	LimitChecks        *prometheus.CounterVec
	LimitDenials       *prometheus.CounterVec
	ObservationAppends *prometheus.CounterVec
}

// NewMetrics creates and registers the Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		TrendRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aimuhasebi_risk_trend_requests_total",
				Help: "Total number of per-entity risk trend requests.",
			},
			[]string{"entity_type", "result"},
		),
		TrendLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aimuhasebi_risk_trend_latency_seconds",
				Help:    "Latency of risk trend requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"entity_type"},
		),
		DashboardRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aimuhasebi_dashboard_trend_requests_total",
				Help: "Total number of tenant dashboard trend requests.",
			},
			[]string{"period", "result"},
		),
		LimitChecks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aimuhasebi_usage_limit_checks_total",
				Help: "Total number of usage limit checks.",
			},
			[]string{"metric", "tier"},
		),
		LimitDenials: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aimuhasebi_usage_limit_denials_total",
				Help: "Total number of usage requests denied by plan ceilings.",
			},
			[]string{"metric", "tier"},
		),
		ObservationAppends: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aimuhasebi_risk_observation_appends_total",
				Help: "Total number of risk score observations recorded.",
			},
			[]string{"entity_type", "result"},
		),
	}
}

// RecordTrendRequest records one per-entity trend request outcome.
func (m *Metrics) RecordTrendRequest(entityType, result string, duration time.Duration) {
	m.TrendRequests.WithLabelValues(entityType, result).Inc()
	m.TrendLatency.WithLabelValues(entityType).Observe(duration.Seconds())
}

// RecordDashboardRequest records one dashboard trends request outcome.
func (m *Metrics) RecordDashboardRequest(period, result string) {
	m.DashboardRequests.WithLabelValues(period, result).Inc()
}

// RecordLimitCheck records one limit check, counting denials separately.
func (m *Metrics) RecordLimitCheck(metric, tier string, allowed bool) {
	m.LimitChecks.WithLabelValues(metric, tier).Inc()
	if !allowed {
		m.LimitDenials.WithLabelValues(metric, tier).Inc()
	}
}

// RecordObservationAppend records one observation recording outcome.
func (m *Metrics) RecordObservationAppend(entityType, result string) {
	m.ObservationAppends.WithLabelValues(entityType, result).Inc()
}
