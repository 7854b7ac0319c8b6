package controller

import (
	"net/http"
	"strconv"

	"github.com/MarcosLesca/dashboard-api/database/model"
	"github.com/MarcosLesca/dashboard-api/web/service"

	"github.com/gin-gonic/gin"
)

// WidgetForm is the create/full-update payload. The dashboard must belong to
// the caller; timestamps are server-controlled.
type WidgetForm struct {
	Name       string           `json:"name" binding:"required"`
	WidgetType model.WidgetType `json:"widget_type" binding:"required"`
	Dashboard  int              `json:"dashboard" binding:"required"`
	IsActive   *bool            `json:"is_active"`
}

// WidgetPatchForm is the partial-update payload.
type WidgetPatchForm struct {
	Name       *string           `json:"name"`
	WidgetType *model.WidgetType `json:"widget_type"`
	Dashboard  *int              `json:"dashboard"`
	IsActive   *bool             `json:"is_active"`
}

// WidgetController exposes the widget CRUD surface. Every path is scoped by
// dashboard ownership; there is no read-open exception for widgets.
type WidgetController struct {
	BaseController

	widgetService service.WidgetService
}

// NewWidgetController creates a WidgetController and initializes its routes.
func NewWidgetController(g *gin.RouterGroup) *WidgetController {
	a := &WidgetController{}
	a.initRouter(g)
	return a
}

func (a *WidgetController) initRouter(g *gin.RouterGroup) {
	g.Use(a.checkLogin)

	g.GET("", a.getWidgets)
	g.POST("", a.addWidget)
	g.GET("/:id", a.getWidget)
	g.PUT("/:id", a.updateWidget)
	g.PATCH("/:id", a.patchWidget)
	g.DELETE("/:id", a.delWidget)
}

// getWidgets lists active widgets on the caller's dashboards.
func (a *WidgetController) getWidgets(c *gin.Context) {
	widgets, err := a.widgetService.GetWidgets(loginUser(c).Id)
	if err != nil {
		jsonServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, widgets)
}

// addWidget creates a widget on a dashboard the caller owns.
func (a *WidgetController) addWidget(c *gin.Context) {
	var form WidgetForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonBindingErrors(c, form, err)
		return
	}

	widget, err := a.widgetService.AddWidget(loginUser(c).Id, form.Name, form.WidgetType, form.Dashboard)
	if err != nil {
		jsonServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, widget)
}

// getWidget returns a caller-owned widget by id.
func (a *WidgetController) getWidget(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}

	widget, err := a.widgetService.GetWidget(loginUser(c).Id, id)
	if err != nil {
		jsonServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, widget)
}

// updateWidget replaces the writable fields of a caller-owned widget.
func (a *WidgetController) updateWidget(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}

	var form WidgetForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonBindingErrors(c, form, err)
		return
	}

	widget, err := a.widgetService.UpdateWidget(loginUser(c).Id, id, service.WidgetPatch{
		Name:        &form.Name,
		WidgetType:  &form.WidgetType,
		DashboardId: &form.Dashboard,
		IsActive:    form.IsActive,
	})
	if err != nil {
		jsonServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, widget)
}

// patchWidget applies a partial update to a caller-owned widget.
func (a *WidgetController) patchWidget(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}

	var form WidgetPatchForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonBindingErrors(c, form, err)
		return
	}

	widget, err := a.widgetService.UpdateWidget(loginUser(c).Id, id, service.WidgetPatch{
		Name:        form.Name,
		WidgetType:  form.WidgetType,
		DashboardId: form.Dashboard,
		IsActive:    form.IsActive,
	})
	if err != nil {
		jsonServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, widget)
}

// delWidget logically deletes a caller-owned widget.
func (a *WidgetController) delWidget(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}

	if err := a.widgetService.DeleteWidget(loginUser(c).Id, id); err != nil {
		jsonServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
