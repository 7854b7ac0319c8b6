package controller

import (
	"net/http"
	"strconv"

	"github.com/MarcosLesca/dashboard-api/web/entity"
	"github.com/MarcosLesca/dashboard-api/web/service"

	"github.com/gin-gonic/gin"
)

// DashboardForm is the create/full-update payload. Owner and timestamps are
// server-controlled; an owner value in the request body is ignored.
type DashboardForm struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// DashboardPatchForm is the partial-update payload.
type DashboardPatchForm struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// DashboardController exposes the dashboard CRUD surface. Listing is scoped
// to the caller's active dashboards; reads by id are open to any
// authenticated caller while mutations require ownership.
type DashboardController struct {
	BaseController

	dashboardService service.DashboardService
	widgetService    service.WidgetService
}

// NewDashboardController creates a DashboardController and initializes its routes.
func NewDashboardController(g *gin.RouterGroup) *DashboardController {
	a := &DashboardController{}
	a.initRouter(g)
	return a
}

func (a *DashboardController) initRouter(g *gin.RouterGroup) {
	g.Use(a.checkLogin)

	g.GET("", a.getDashboards)
	g.POST("", a.addDashboard)
	g.GET("/:id", a.getDashboard)
	g.PUT("/:id", a.updateDashboard)
	g.PATCH("/:id", a.patchDashboard)
	g.DELETE("/:id", a.delDashboard)
	g.GET("/:id/widgets", a.getDashboardWidgets)
}

// getDashboards lists the caller's active dashboards.
func (a *DashboardController) getDashboards(c *gin.Context) {
	dashboards, err := a.dashboardService.GetDashboards(loginUser(c).Id)
	if err != nil {
		jsonServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.NewDashboards(dashboards))
}

// addDashboard creates a dashboard owned by the caller.
func (a *DashboardController) addDashboard(c *gin.Context) {
	var form DashboardForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonBindingErrors(c, form, err)
		return
	}

	dashboard, err := a.dashboardService.AddDashboard(loginUser(c).Id, form.Name, form.Description)
	if err != nil {
		jsonServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entity.NewDashboard(dashboard))
}

// getDashboard returns a dashboard by id. Reads are open to every
// authenticated caller regardless of ownership.
func (a *DashboardController) getDashboard(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}

	dashboard, err := a.dashboardService.GetDashboard(id)
	if err != nil {
		jsonServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.NewDashboard(dashboard))
}

// updateDashboard replaces the writable fields of a caller-owned dashboard.
func (a *DashboardController) updateDashboard(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}

	var form DashboardForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonBindingErrors(c, form, err)
		return
	}

	dashboard, err := a.dashboardService.UpdateDashboard(loginUser(c).Id, id, service.DashboardPatch{
		Name:        &form.Name,
		Description: &form.Description,
		IsActive:    form.IsActive,
	})
	if err != nil {
		jsonServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.NewDashboard(dashboard))
}

// patchDashboard applies a partial update to a caller-owned dashboard.
func (a *DashboardController) patchDashboard(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}

	var form DashboardPatchForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonBindingErrors(c, form, err)
		return
	}

	dashboard, err := a.dashboardService.UpdateDashboard(loginUser(c).Id, id, service.DashboardPatch{
		Name:        form.Name,
		Description: form.Description,
		IsActive:    form.IsActive,
	})
	if err != nil {
		jsonServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.NewDashboard(dashboard))
}

// delDashboard logically deletes a caller-owned dashboard.
func (a *DashboardController) delDashboard(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}

	if err := a.dashboardService.DeleteDashboard(loginUser(c).Id, id); err != nil {
		jsonServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// getDashboardWidgets lists the active widgets of a caller-owned dashboard.
func (a *DashboardController) getDashboardWidgets(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}

	widgets, err := a.widgetService.GetDashboardWidgets(loginUser(c).Id, id)
	if err != nil {
		jsonServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, widgets)
}
