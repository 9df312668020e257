// Package handlers contains the gin HTTP handlers and middleware.
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aimuhasebi/platform/internal/application/dto"
	"github.com/aimuhasebi/platform/pkg/constants"
	"github.com/aimuhasebi/platform/pkg/errors"
	"github.com/aimuhasebi/platform/pkg/logger"
)

// RequestIDMiddleware assigns or propagates the per-request correlation id
// and stores it in the request context for loggers and response envelopes.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(c.Request.Context(), constants.ContextKeyRequestID, requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(constants.HeaderRequestID, requestID)
		c.Next()
	}
}

// TenantMiddleware extracts the tenant id set by the upstream gateway after
// authentication and stores it in the request context. Requests without a
// tenant are rejected before reaching any handler.
func TenantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetHeader(constants.HeaderTenantID)
		if tenantID == "" {
			dto.SendError(c, errors.ErrTenantRequired())
			c.Abort()
			return
		}

		ctx := context.WithValue(c.Request.Context(), constants.ContextKeyTenantID, tenantID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// LoggingMiddleware logs one line per processed request.
func LoggingMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info(c.Request.Context(), "Request processed",
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.Int("status", c.Writer.Status()),
			logger.Int64("latency_ms", time.Since(start).Milliseconds()),
			logger.String("client_ip", c.ClientIP()),
		)
	}
}

// RecoveryMiddleware converts panics into 500 responses.
func RecoveryMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error(c.Request.Context(), "Panic recovered",
					fmt.Errorf("panic: %v", r),
					logger.String("path", c.Request.URL.Path),
				)
				dto.SendError(c, errors.ErrInternal("internal server error"))
				c.Abort()
			}
		}()
		c.Next()
	}
}

// TenantID returns the tenant id placed in the context by TenantMiddleware.
func TenantID(c *gin.Context) string {
	if id, ok := c.Request.Context().Value(constants.ContextKeyTenantID).(string); ok {
		return id
	}
	return ""
}
