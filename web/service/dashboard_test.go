package service

import (
	"testing"

	"github.com/MarcosLesca/dashboard-api/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardListScopedToOwner(t *testing.T) {
	setup(t)
	defer teardown()

	dashboardService := DashboardService{}
	alice := registerTestUser(t, "alice", "alice@example.com")
	bob := registerTestUser(t, "bob", "bob@example.com")

	_, err := dashboardService.AddDashboard(alice.Id, "Sales", "quarterly numbers")
	require.NoError(t, err)
	_, err = dashboardService.AddDashboard(alice.Id, "Marketing", "")
	require.NoError(t, err)
	_, err = dashboardService.AddDashboard(bob.Id, "Ops", "")
	require.NoError(t, err)

	aliceDashboards, err := dashboardService.GetDashboards(alice.Id)
	require.NoError(t, err)
	assert.Len(t, aliceDashboards, 2)

	bobDashboards, err := dashboardService.GetDashboards(bob.Id)
	require.NoError(t, err)
	require.Len(t, bobDashboards, 1)
	assert.Equal(t, "Ops", bobDashboards[0].Name)
}

func TestDashboardOwnerForcedToCaller(t *testing.T) {
	setup(t)
	defer teardown()

	dashboardService := DashboardService{}
	alice := registerTestUser(t, "alice", "alice@example.com")

	dashboard, err := dashboardService.AddDashboard(alice.Id, "Sales", "")
	require.NoError(t, err)
	assert.Equal(t, alice.Id, dashboard.OwnerId)
	require.NotNil(t, dashboard.Owner)
	assert.Equal(t, "Test User", dashboard.Owner.FullName())
}

func TestDashboardReadOpenWriteOwned(t *testing.T) {
	setup(t)
	defer teardown()

	dashboardService := DashboardService{}
	alice := registerTestUser(t, "alice", "alice@example.com")
	bob := registerTestUser(t, "bob", "bob@example.com")

	dashboard, err := dashboardService.AddDashboard(alice.Id, "Sales", "")
	require.NoError(t, err)

	// Any authenticated caller may read by id
	got, err := dashboardService.GetDashboard(dashboard.Id)
	require.NoError(t, err)
	assert.Equal(t, dashboard.Id, got.Id)

	// Mutations by a non-owner are forbidden
	name := "Hijacked"
	_, err = dashboardService.UpdateDashboard(bob.Id, dashboard.Id, DashboardPatch{Name: &name})
	assert.ErrorIs(t, err, ErrNotOwner)
	err = dashboardService.DeleteDashboard(bob.Id, dashboard.Id)
	assert.ErrorIs(t, err, ErrNotOwner)

	// The owner may mutate
	_, err = dashboardService.UpdateDashboard(alice.Id, dashboard.Id, DashboardPatch{Name: &name})
	require.NoError(t, err)
	require.NoError(t, dashboardService.DeleteDashboard(alice.Id, dashboard.Id))
}

func TestDashboardLogicalDelete(t *testing.T) {
	setup(t)
	defer teardown()

	dashboardService := DashboardService{}
	alice := registerTestUser(t, "alice", "alice@example.com")

	dashboard, err := dashboardService.AddDashboard(alice.Id, "Sales", "")
	require.NoError(t, err)
	require.NoError(t, dashboardService.DeleteDashboard(alice.Id, dashboard.Id))

	// Invisible to every read path, including the owner's
	dashboards, err := dashboardService.GetDashboards(alice.Id)
	require.NoError(t, err)
	assert.Empty(t, dashboards)
	_, err = dashboardService.GetDashboard(dashboard.Id)
	assert.True(t, database.IsNotFound(err))

	// But retained in storage
	var count int64
	require.NoError(t, database.GetDB().Table("dashboards").Where("id = ?", dashboard.Id).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// And creatable anew under the same name
	_, err = dashboardService.AddDashboard(alice.Id, "Sales", "")
	assert.NoError(t, err)
}

func TestDashboardDeactivateViaUpdate(t *testing.T) {
	setup(t)
	defer teardown()

	dashboardService := DashboardService{}
	alice := registerTestUser(t, "alice", "alice@example.com")

	dashboard, err := dashboardService.AddDashboard(alice.Id, "Sales", "")
	require.NoError(t, err)

	inactive := false
	_, err = dashboardService.UpdateDashboard(alice.Id, dashboard.Id, DashboardPatch{IsActive: &inactive})
	require.NoError(t, err)

	dashboards, err := dashboardService.GetDashboards(alice.Id)
	require.NoError(t, err)
	assert.Empty(t, dashboards)
}
