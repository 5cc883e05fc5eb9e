package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/digital-user-report/internal/infrastructure/reportapi"
	handlers "github.com/oksasatya/digital-user-report/internal/interface/http"
)

// ReportModule exposes one proxy route per upstream report endpoint
type ReportModule struct {
	Handler *handlers.ReportHandler
	Limit   gin.HandlerFunc
}

func NewReportModule(h *handlers.ReportHandler, limit gin.HandlerFunc) *ReportModule {
	return &ReportModule{Handler: h, Limit: limit}
}

func (m *ReportModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/")
	if m.Limit != nil {
		g.Use(m.Limit)
	}
	for _, ep := range reportapi.Endpoints {
		g.GET("/"+string(ep), m.Handler.Proxy(ep))
	}
}
