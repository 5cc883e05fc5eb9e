package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/digital-user-report/internal/interface/http"
)

// UserModule serves the digital user listings and profile photos
// GET /api/clientes, /api/usuarios-digitales, /api/usuarios-digitales-basico,
// /api/usuarios-digitales/:id/foto
type UserModule struct {
	Handler *handlers.UserHandler
	Limit   gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, limit gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Limit: limit}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/")
	if m.Limit != nil {
		g.Use(m.Limit)
	}
	g.GET("/clientes", m.Handler.ListClients)
	g.GET("/usuarios-digitales", m.Handler.ListDigitalUsers)
	g.GET("/usuarios-digitales-basico", m.Handler.ListDigitalUsersBasic)
	g.GET("/usuarios-digitales/:id/foto", m.Handler.Photo)
}
