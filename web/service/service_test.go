package service

import (
	"os"
	"testing"

	"github.com/MarcosLesca/dashboard-api/database"
	"github.com/MarcosLesca/dashboard-api/database/model"

	"github.com/stretchr/testify/require"
)

const testDBPath = "test.db"

func setup(t *testing.T) {
	t.Helper()
	os.Remove(testDBPath)
	require.NoError(t, database.InitDB(testDBPath))
}

func teardown() {
	if database.GetDB() != nil {
		if db, err := database.GetDB().DB(); err == nil {
			db.Close()
		}
	}
	os.Remove(testDBPath)
}

func registerTestUser(t *testing.T, username, email string) *model.User {
	t.Helper()
	userService := UserService{}
	user, err := userService.Register(username, email, "Test", "User", "password123")
	require.NoError(t, err)
	return user
}
