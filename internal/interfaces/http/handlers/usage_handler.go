package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aimuhasebi/platform/internal/application/dto"
	appservice "github.com/aimuhasebi/platform/internal/application/service"
	"github.com/aimuhasebi/platform/internal/infrastructure/monitoring"
	"github.com/aimuhasebi/platform/pkg/constants"
	"github.com/aimuhasebi/platform/pkg/errors"
	"github.com/aimuhasebi/platform/pkg/logger"
)

// UsageHandler serves the plan limit check, usage tracking, and billing
// summary endpoints.
type UsageHandler struct {
	usage   appservice.UsageService
	metrics *monitoring.Metrics
	log     logger.Logger
}

// NewUsageHandler creates a new UsageHandler.
func NewUsageHandler(usage appservice.UsageService, metrics *monitoring.Metrics, log logger.Logger) *UsageHandler {
	return &UsageHandler{
		usage:   usage,
		metrics: metrics,
		log:     log.WithComponent("usage_handler"),
	}
}

// CheckLimit handles GET /api/v1/usage/limits/:metric.
func (h *UsageHandler) CheckLimit(c *gin.Context) {
	metric := constants.UsageMetricType(c.Param("metric"))

	result, err := h.usage.CheckLimit(c.Request.Context(), TenantID(c), metric)
	if err != nil {
		dto.SendError(c, err)
		return
	}

	h.metrics.RecordLimitCheck(string(result.Metric), string(result.Tier), result.Allowed)
	dto.SendSuccess(c, http.StatusOK, result)
}

// IncrementUsage handles POST /api/v1/usage/increment. Callers invoke it
// after the gated operation has completed.
func (h *UsageHandler) IncrementUsage(c *gin.Context) {
	var req dto.IncrementUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrInvalidRequest("invalid usage payload").WithCause(err))
		return
	}
	if req.Delta == 0 {
		req.Delta = 1
	}

	err := h.usage.IncrementUsage(c.Request.Context(), TenantID(c), constants.UsageMetricType(req.Metric), req.Delta)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, gin.H{"incremented": true})
}

// ConsumeForCreation handles POST /api/v1/usage/consume, the atomic claim
// used by creation flows.
func (h *UsageHandler) ConsumeForCreation(c *gin.Context) {
	var req dto.ConsumeUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrInvalidRequest("invalid usage payload").WithCause(err))
		return
	}

	result, err := h.usage.ConsumeForCreation(c.Request.Context(), TenantID(c), constants.UsageMetricType(req.Metric))
	if err != nil {
		if errors.IsLimitExceeded(err) {
			if appErr, ok := errors.AsAppError(err); ok {
				tier, _ := appErr.Metadata()["tier"].(string)
				h.metrics.RecordLimitCheck(req.Metric, tier, false)
			}
		}
		dto.SendError(c, err)
		return
	}

	h.metrics.RecordLimitCheck(string(result.Metric), string(result.Tier), true)
	dto.SendSuccess(c, http.StatusOK, result)
}

// GetUsageSummary handles GET /api/v1/usage/summary for the billing screen.
func (h *UsageHandler) GetUsageSummary(c *gin.Context) {
	summary, err := h.usage.GetUsageSummary(c.Request.Context(), TenantID(c))
	if err != nil {
		dto.SendError(c, err)
		return
	}
	dto.SendSuccess(c, http.StatusOK, summary)
}
