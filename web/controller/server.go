package controller

import (
	"net/http"

	"github.com/MarcosLesca/dashboard-api/web/service"

	"github.com/gin-gonic/gin"
)

// ServerController exposes the server status endpoint.
type ServerController struct {
	BaseController

	serverService service.ServerService
}

// NewServerController creates a ServerController and initializes its routes.
func NewServerController(g *gin.RouterGroup) *ServerController {
	a := &ServerController{}
	a.initRouter(g)
	return a
}

func (a *ServerController) initRouter(g *gin.RouterGroup) {
	g.Use(a.checkLogin)
	g.GET("", a.status)
}

func (a *ServerController) status(c *gin.Context) {
	c.JSON(http.StatusOK, a.serverService.GetStatus())
}
