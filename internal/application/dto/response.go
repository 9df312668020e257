// Package dto defines the HTTP request and response shapes and the response
// envelope helpers used by the interface layer.
package dto

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aimuhasebi/platform/pkg/constants"
	"github.com/aimuhasebi/platform/pkg/errors"
)

// APIResponse is the envelope for every JSON response.
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorDTO   `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// ErrorDTO is the client-facing error shape.
type ErrorDTO struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// SendSuccess writes a success envelope with the given status.
func SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, &APIResponse{
		Success:   true,
		Data:      data,
		RequestID: requestID(c),
		Timestamp: time.Now().Unix(),
	})
}

// SendError writes an error envelope, mapping the error to its HTTP status.
// Non-AppError values are masked as generic internal errors so backend
// details never leak to clients.
func SendError(c *gin.Context, err error) {
	envelope := &APIResponse{
		Success:   false,
		RequestID: requestID(c),
		Timestamp: time.Now().Unix(),
	}

	if appErr, ok := errors.AsAppError(err); ok {
		envelope.Error = &ErrorDTO{
			Code:    string(appErr.Code),
			Message: appErr.Message,
			Details: appErr.Metadata(),
		}
	} else {
		envelope.Error = &ErrorDTO{
			Code:    string(errors.ErrCodeInternal),
			Message: "internal server error",
		}
	}

	c.JSON(errors.HTTPStatus(err), envelope)
}

func requestID(c *gin.Context) string {
	if id, ok := c.Request.Context().Value(constants.ContextKeyRequestID).(string); ok {
		return id
	}
	return ""
}
