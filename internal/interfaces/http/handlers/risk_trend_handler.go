package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aimuhasebi/platform/internal/application/dto"
	appservice "github.com/aimuhasebi/platform/internal/application/service"
	"github.com/aimuhasebi/platform/internal/infrastructure/monitoring"
	"github.com/aimuhasebi/platform/pkg/constants"
	"github.com/aimuhasebi/platform/pkg/errors"
	"github.com/aimuhasebi/platform/pkg/logger"
)

// RiskTrendHandler serves the per-entity trend views, the tenant dashboard
// trends, and the internal observation recording endpoint.
type RiskTrendHandler struct {
	trends    appservice.RiskTrendService
	dashboard appservice.DashboardTrendsService
	recorder  appservice.RiskRecorderService
	metrics   *monitoring.Metrics
	log       logger.Logger
}

// NewRiskTrendHandler creates a new RiskTrendHandler.
func NewRiskTrendHandler(
	trends appservice.RiskTrendService,
	dashboard appservice.DashboardTrendsService,
	recorder appservice.RiskRecorderService,
	metrics *monitoring.Metrics,
	log logger.Logger,
) *RiskTrendHandler {
	return &RiskTrendHandler{
		trends:    trends,
		dashboard: dashboard,
		recorder:  recorder,
		metrics:   metrics,
		log:       log.WithComponent("risk_trend_handler"),
	}
}

// GetDocumentTrend handles GET /api/v1/risk/documents/:document_id/trend.
func (h *RiskTrendHandler) GetDocumentTrend(c *gin.Context) {
	start := time.Now()
	days, err := parseDays(c)
	if err != nil {
		dto.SendError(c, err)
		return
	}

	result, err := h.trends.GetDocumentRiskTrend(c.Request.Context(), TenantID(c), c.Param("document_id"), days)
	if err != nil {
		h.metrics.RecordTrendRequest(string(constants.EntityTypeDocument), "error", time.Since(start))
		dto.SendError(c, err)
		return
	}

	h.metrics.RecordTrendRequest(string(constants.EntityTypeDocument), "success", time.Since(start))
	dto.SendSuccess(c, http.StatusOK, result)
}

// GetCompanyTrend handles GET /api/v1/risk/companies/:company_id/trend.
func (h *RiskTrendHandler) GetCompanyTrend(c *gin.Context) {
	start := time.Now()
	days, err := parseDays(c)
	if err != nil {
		dto.SendError(c, err)
		return
	}

	result, err := h.trends.GetCompanyRiskTrend(c.Request.Context(), TenantID(c), c.Param("company_id"), days)
	if err != nil {
		h.metrics.RecordTrendRequest(string(constants.EntityTypeCompany), "error", time.Since(start))
		dto.SendError(c, err)
		return
	}

	h.metrics.RecordTrendRequest(string(constants.EntityTypeCompany), "success", time.Since(start))
	dto.SendSuccess(c, http.StatusOK, result)
}

// GetDashboardTrends handles GET /api/v1/risk/trends.
func (h *RiskTrendHandler) GetDashboardTrends(c *gin.Context) {
	period := constants.TrendPeriod(c.DefaultQuery("period", string(constants.TrendPeriod30Days)))

	result, err := h.dashboard.GetDashboardTrends(c.Request.Context(), TenantID(c), period)
	if err != nil {
		h.metrics.RecordDashboardRequest(string(period), "error")
		dto.SendError(c, err)
		return
	}

	h.metrics.RecordDashboardRequest(string(period), "success")
	dto.SendSuccess(c, http.StatusOK, result)
}

// RecordObservation handles POST /internal/v1/risk/observations, called by
// the risk-computation pipeline after each (re)scoring.
func (h *RiskTrendHandler) RecordObservation(c *gin.Context) {
	var req dto.RecordObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrInvalidRequest("invalid observation payload").WithCause(err))
		return
	}

	input := appservice.RecordObservationInput{
		TenantID:           TenantID(c),
		EntityType:         constants.EntityType(req.EntityType),
		EntityID:           req.EntityID,
		Score:              req.Score,
		Severity:           constants.Severity(req.Severity),
		TriggeredRuleCodes: req.TriggeredRuleCodes,
		RecordedAt:         req.RecordedAt,
	}

	if err := h.recorder.RecordObservation(c.Request.Context(), input); err != nil {
		h.metrics.RecordObservationAppend(req.EntityType, "error")
		dto.SendError(c, err)
		return
	}

	h.metrics.RecordObservationAppend(req.EntityType, "success")
	dto.SendSuccess(c, http.StatusCreated, gin.H{"recorded": true})
}

// parseDays reads the optional days query parameter. Zero means the service
// default window.
func parseDays(c *gin.Context) (int, error) {
	raw := c.Query("days")
	if raw == "" {
		return 0, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 0 {
		return 0, errors.ErrValidation("days must be a non-negative integer")
	}
	return days, nil
}
