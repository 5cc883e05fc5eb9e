package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	handlers "github.com/oksasatya/digital-user-report/internal/interface/http"
)

type OpsModule struct {
	Health  *handlers.HealthHandler
	Metrics bool
	Limit   gin.HandlerFunc
}

func NewOpsModule(h *handlers.HealthHandler, metrics bool, limit gin.HandlerFunc) *OpsModule {
	return &OpsModule{Health: h, Metrics: metrics, Limit: limit}
}

func (m *OpsModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", m.Health.Healthz)
	if m.Metrics {
		chain := []gin.HandlerFunc{gin.WrapH(promhttp.Handler())}
		if m.Limit != nil {
			chain = append([]gin.HandlerFunc{m.Limit}, chain...)
		}
		rg.GET("/metrics", chain...)
	}
}
