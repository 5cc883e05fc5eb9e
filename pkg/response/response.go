package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope of every JSON endpoint
type APIResponse[T any] struct {
	Success   bool   `json:"success"`
	Data      T      `json:"data"`
	Total     *int   `json:"total,omitempty"`
	Meta      any    `json:"meta,omitempty"`
	Error     string `json:"error,omitempty"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Success writes a successful envelope. total is omitted when nil.
func Success[T any](c *gin.Context, status int, data T, total *int, meta any) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, APIResponse[T]{
		Success:   true,
		Data:      data,
		Total:     total,
		Meta:      meta,
		RequestID: c.GetString("request_id"),
	})
}

// List writes a slice with its length as total
func List[T any](c *gin.Context, items []T, meta any) {
	n := len(items)
	Success(c, http.StatusOK, items, &n, meta)
}

// Error aborts the request with a failed envelope
func Error(c *gin.Context, status int, message string, details any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, APIResponse[any]{
		Success:   false,
		Error:     message,
		Details:   details,
		RequestID: c.GetString("request_id"),
	})
}
