package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/digital-user-report/internal/infrastructure/reportapi"
	"github.com/oksasatya/digital-user-report/pkg/response"
)

type ReportHandler struct {
	Svc ReportProxy
}

func NewReportHandler(svc ReportProxy) *ReportHandler {
	return &ReportHandler{Svc: svc}
}

// Proxy returns a handler forwarding the date range to one upstream endpoint.
func (h *ReportHandler) Proxy(endpoint reportapi.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, ok := bindRange(c)
		if !ok {
			return
		}
		env, err := h.Svc.Fetch(c.Request.Context(), endpoint, r)
		if err != nil {
			var ue *reportapi.UpstreamError
			if errors.As(err, &ue) {
				response.Error(c, http.StatusBadGateway, "upstream report service error", gin.H{
					"status":     ue.StatusCode,
					"statusText": http.StatusText(ue.StatusCode),
					"body":       ue.Body,
				})
				return
			}
			response.Error(c, http.StatusBadGateway, "upstream report service error", nil)
			return
		}
		response.Success(c, http.StatusOK, json.RawMessage(env.Data), env.Total, nil)
	}
}
