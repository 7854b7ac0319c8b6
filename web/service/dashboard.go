package service

import (
	"github.com/MarcosLesca/dashboard-api/database"
	"github.com/MarcosLesca/dashboard-api/database/model"

	"gorm.io/gorm"
)

// DashboardService scopes every dashboard query by the calling identity
// before it reaches the database. List queries inject the owner predicate so
// foreign or deactivated rows are never observable; single-object mutations
// fetch read-open and apply an object-level owner check on top.
type DashboardService struct{}

// DashboardPatch is a partial dashboard update. Owner and timestamps are
// server-controlled and deliberately absent.
type DashboardPatch struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// GetDashboards lists the caller's active dashboards.
func (s *DashboardService) GetDashboards(userId int) ([]*model.Dashboard, error) {
	db := database.GetDB()
	var dashboards []*model.Dashboard
	err := db.Model(model.Dashboard{}).
		Preload("Owner").
		Where("owner_id = ? AND is_active = ?", userId, true).
		Find(&dashboards).
		Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	return dashboards, nil
}

// GetDashboard fetches an active dashboard by id regardless of ownership.
// Dashboard reads are open to every authenticated caller; only mutations
// enforce the owner check.
func (s *DashboardService) GetDashboard(id int) (*model.Dashboard, error) {
	db := database.GetDB()
	dashboard := &model.Dashboard{}
	err := db.Model(model.Dashboard{}).
		Preload("Owner").
		Where("id = ? AND is_active = ?", id, true).
		First(dashboard).
		Error
	if err != nil {
		return nil, err
	}
	return dashboard, nil
}

// GetOwnedDashboard fetches an active dashboard only when the caller owns
// it. A foreign dashboard surfaces as gorm.ErrRecordNotFound, so scoping
// failures stay indistinguishable from true absence.
func (s *DashboardService) GetOwnedDashboard(userId, id int) (*model.Dashboard, error) {
	db := database.GetDB()
	dashboard := &model.Dashboard{}
	err := db.Model(model.Dashboard{}).
		Preload("Owner").
		Where("id = ? AND owner_id = ? AND is_active = ?", id, userId, true).
		First(dashboard).
		Error
	if err != nil {
		return nil, err
	}
	return dashboard, nil
}

// AddDashboard creates a dashboard owned by the caller. Any owner value
// supplied by the client has already been discarded by the web layer.
func (s *DashboardService) AddDashboard(userId int, name, description string) (*model.Dashboard, error) {
	db := database.GetDB()
	dashboard := &model.Dashboard{
		Name:        name,
		Description: description,
		OwnerId:     userId,
		IsActive:    true,
	}
	if err := db.Create(dashboard).Error; err != nil {
		return nil, err
	}
	return s.GetDashboard(dashboard.Id)
}

// UpdateDashboard applies a partial update. Missing or inactive dashboards
// return gorm.ErrRecordNotFound; dashboards owned by someone else return
// ErrNotOwner.
func (s *DashboardService) UpdateDashboard(userId, id int, patch DashboardPatch) (*model.Dashboard, error) {
	db := database.GetDB()

	dashboard, err := s.GetDashboard(id)
	if err != nil {
		return nil, err
	}
	if dashboard.OwnerId != userId {
		return nil, ErrNotOwner
	}

	if patch.Name != nil {
		dashboard.Name = *patch.Name
	}
	if patch.Description != nil {
		dashboard.Description = *patch.Description
	}
	if patch.IsActive != nil {
		dashboard.IsActive = *patch.IsActive
	}

	if err := db.Save(dashboard).Error; err != nil {
		return nil, err
	}
	return dashboard, nil
}

// DeleteDashboard logically deletes a caller-owned dashboard by flipping
// is_active; the row is retained in storage.
func (s *DashboardService) DeleteDashboard(userId, id int) error {
	db := database.GetDB()

	dashboard, err := s.GetDashboard(id)
	if err != nil {
		return err
	}
	if dashboard.OwnerId != userId {
		return ErrNotOwner
	}

	dashboard.IsActive = false
	return db.Save(dashboard).Error
}
