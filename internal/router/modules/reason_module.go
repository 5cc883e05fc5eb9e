package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/digital-user-report/internal/interface/http"
)

type ReasonModule struct {
	Handler *handlers.ReasonHandler
	// Auth guards writes; it is a pass-through when operator auth is disabled
	Auth  gin.HandlerFunc
	Limit gin.HandlerFunc
}

func NewReasonModule(h *handlers.ReasonHandler, auth, limit gin.HandlerFunc) *ReasonModule {
	return &ReasonModule{Handler: h, Auth: auth, Limit: limit}
}

func (m *ReasonModule) Register(rg *gin.RouterGroup) {
	rg.GET("/motivos", m.Handler.List)
	rg.GET("/motivos/buscar", m.Handler.Search)

	write := rg.Group("/")
	if m.Auth != nil {
		write.Use(m.Auth)
	}
	if m.Limit != nil {
		write.Use(m.Limit)
	}
	write.POST("/motivos", m.Handler.Save)
	write.DELETE("/motivos/:id", m.Handler.Delete)
}
