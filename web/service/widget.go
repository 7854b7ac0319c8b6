package service

import (
	"github.com/MarcosLesca/dashboard-api/database"
	"github.com/MarcosLesca/dashboard-api/database/model"

	"gorm.io/gorm"
)

// WidgetService resolves every widget operation through dashboard ownership.
// Unlike dashboards there is no read-open exception: a widget on a foreign
// dashboard is invisible on all paths.
type WidgetService struct {
	dashboardService DashboardService
}

// WidgetPatch is a partial widget update; timestamps are server-controlled.
type WidgetPatch struct {
	Name        *string
	WidgetType  *model.WidgetType
	DashboardId *int
	IsActive    *bool
}

// GetWidgets lists active widgets whose dashboard belongs to the caller.
func (s *WidgetService) GetWidgets(userId int) ([]*model.Widget, error) {
	db := database.GetDB()
	widgets := make([]*model.Widget, 0)
	err := db.Model(model.Widget{}).
		Select("widgets.*").
		Joins("JOIN dashboards ON dashboards.id = widgets.dashboard_id").
		Where("dashboards.owner_id = ? AND widgets.is_active = ?", userId, true).
		Find(&widgets).
		Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	return widgets, nil
}

// GetWidget fetches an active widget owned (via its dashboard) by the
// caller. Foreign widgets surface as gorm.ErrRecordNotFound.
func (s *WidgetService) GetWidget(userId, id int) (*model.Widget, error) {
	db := database.GetDB()
	widget := &model.Widget{}
	err := db.Model(model.Widget{}).
		Select("widgets.*").
		Joins("JOIN dashboards ON dashboards.id = widgets.dashboard_id").
		Where("widgets.id = ? AND dashboards.owner_id = ? AND widgets.is_active = ?", id, userId, true).
		First(widget).
		Error
	if err != nil {
		return nil, err
	}
	return widget, nil
}

// GetDashboardWidgets lists the active widgets of a caller-owned dashboard.
func (s *WidgetService) GetDashboardWidgets(userId, dashboardId int) ([]*model.Widget, error) {
	if _, err := s.dashboardService.GetOwnedDashboard(userId, dashboardId); err != nil {
		return nil, err
	}

	db := database.GetDB()
	widgets := make([]*model.Widget, 0)
	err := db.Model(model.Widget{}).
		Where("dashboard_id = ? AND is_active = ?", dashboardId, true).
		Find(&widgets).
		Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	return widgets, nil
}

// AddWidget creates a widget on a dashboard the caller owns.
func (s *WidgetService) AddWidget(userId int, name string, widgetType model.WidgetType, dashboardId int) (*model.Widget, error) {
	if !widgetType.IsValid() {
		return nil, NewValidationError().Add("widget_type", "\""+string(widgetType)+"\" is not a valid choice.")
	}
	if _, err := s.dashboardService.GetOwnedDashboard(userId, dashboardId); err != nil {
		return nil, err
	}

	db := database.GetDB()
	widget := &model.Widget{
		Name:        name,
		WidgetType:  widgetType,
		DashboardId: dashboardId,
		IsActive:    true,
	}
	if err := db.Create(widget).Error; err != nil {
		return nil, err
	}
	return widget, nil
}

// UpdateWidget applies a partial update to a caller-owned widget. Moving a
// widget to another dashboard requires owning the target dashboard too.
func (s *WidgetService) UpdateWidget(userId, id int, patch WidgetPatch) (*model.Widget, error) {
	widget, err := s.GetWidget(userId, id)
	if err != nil {
		return nil, err
	}

	if patch.WidgetType != nil && !patch.WidgetType.IsValid() {
		return nil, NewValidationError().Add("widget_type", "\""+string(*patch.WidgetType)+"\" is not a valid choice.")
	}
	if patch.DashboardId != nil && *patch.DashboardId != widget.DashboardId {
		if _, err := s.dashboardService.GetOwnedDashboard(userId, *patch.DashboardId); err != nil {
			return nil, err
		}
		widget.DashboardId = *patch.DashboardId
	}
	if patch.Name != nil {
		widget.Name = *patch.Name
	}
	if patch.WidgetType != nil {
		widget.WidgetType = *patch.WidgetType
	}
	if patch.IsActive != nil {
		widget.IsActive = *patch.IsActive
	}

	db := database.GetDB()
	if err := db.Save(widget).Error; err != nil {
		return nil, err
	}
	return widget, nil
}

// DeleteWidget logically deletes a caller-owned widget.
func (s *WidgetService) DeleteWidget(userId, id int) error {
	widget, err := s.GetWidget(userId, id)
	if err != nil {
		return err
	}

	widget.IsActive = false
	db := database.GetDB()
	return db.Save(widget).Error
}
