package service

import (
	"testing"

	"github.com/MarcosLesca/dashboard-api/database"
	"github.com/MarcosLesca/dashboard-api/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserServiceRegister(t *testing.T) {
	setup(t)
	defer teardown()

	userService := UserService{}

	user, err := userService.Register("alice", "alice@example.com", "Alice", "Smith", "password123")
	require.NoError(t, err)
	assert.NotZero(t, user.Id)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "password123", user.Password, "password must be stored hashed")

	// Duplicate email
	_, err = userService.Register("alice2", "alice@example.com", "", "", "password123")
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "email")

	// Duplicate username
	_, err = userService.Register("alice", "alice2@example.com", "", "", "password123")
	ve, ok = AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "username")
}

func TestUserServiceCheckUser(t *testing.T) {
	setup(t)
	defer teardown()

	userService := UserService{}
	registered := registerTestUser(t, "alice", "alice@example.com")

	user, err := userService.CheckUser("alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.Id, user.Id)

	// Wrong password and unknown email must be indistinguishable
	_, err = userService.CheckUser("alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = userService.CheckUser("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// A disabled account with correct credentials is reported distinctly
	db := database.GetDB()
	require.NoError(t, db.Model(model.User{}).Where("id = ?", registered.Id).Update("is_active", false).Error)
	_, err = userService.CheckUser("alice@example.com", "password123")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestUserServiceUpdateProfile(t *testing.T) {
	setup(t)
	defer teardown()

	userService := UserService{}
	alice := registerTestUser(t, "alice", "alice@example.com")
	registerTestUser(t, "bob", "bob@example.com")

	firstName := "Alicia"
	updated, err := userService.UpdateProfile(alice.Id, ProfileUpdate{FirstName: &firstName})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.FirstName)
	assert.Equal(t, "alice", updated.Username, "unset fields stay untouched")

	// Taking another user's email is rejected
	takenEmail := "bob@example.com"
	_, err = userService.UpdateProfile(alice.Id, ProfileUpdate{Email: &takenEmail})
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "email")

	// Password change re-hashes and is effective on the next login
	newPassword := "betterpassword"
	_, err = userService.UpdateProfile(alice.Id, ProfileUpdate{Password: &newPassword})
	require.NoError(t, err)
	_, err = userService.CheckUser("alice@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = userService.CheckUser("alice@example.com", "betterpassword")
	assert.NoError(t, err)
}
