package service

import (
	"github.com/MarcosLesca/dashboard-api/database"
	"github.com/MarcosLesca/dashboard-api/database/model"
	"github.com/MarcosLesca/dashboard-api/logger"
	"github.com/MarcosLesca/dashboard-api/util/crypto"

	"gorm.io/gorm"
)

// UserService is the identity store: it creates accounts and verifies
// credentials. Raw passwords are bcrypt-hashed before they touch the
// database and are never logged.
type UserService struct{}

// ProfileUpdate is a partial update of the caller's own account. Nil fields
// are left untouched.
type ProfileUpdate struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Password  *string
}

// Register creates a new active account. Duplicate email or username is
// reported as a field-keyed ValidationError.
func (s *UserService) Register(username, email, firstName, lastName, rawPassword string) (*model.User, error) {
	db := database.GetDB()

	ve := NewValidationError()
	if taken, err := s.emailTaken(db, email, 0); err != nil {
		return nil, err
	} else if taken {
		ve.Add("email", "A user with this email already exists.")
	}
	if taken, err := s.usernameTaken(db, username, 0); err != nil {
		return nil, err
	} else if taken {
		ve.Add("username", "A user with this username already exists.")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	hashed, err := crypto.HashPasswordAsBcrypt(rawPassword)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:  username,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Password:  hashed,
		IsActive:  true,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CheckUser verifies the login credentials. Unknown email and wrong password
// both yield ErrInvalidCredentials; a disabled account with otherwise correct
// credentials yields ErrAccountDisabled.
func (s *UserService) CheckUser(email, rawPassword string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("email = ?", email).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, ErrInvalidCredentials
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil, err
	}

	if !crypto.CheckPasswordHash(user.Password, rawPassword) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	return user, nil
}

// GetUser resolves an active account by id.
func (s *UserService) GetUser(id int) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("id = ? AND is_active = ?", id, true).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies a partial update to the caller's account, re-checking
// email/username uniqueness and re-hashing the password when supplied.
func (s *UserService) UpdateProfile(id int, patch ProfileUpdate) (*model.User, error) {
	db := database.GetDB()

	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	ve := NewValidationError()
	if patch.Email != nil && *patch.Email != user.Email {
		if taken, err := s.emailTaken(db, *patch.Email, id); err != nil {
			return nil, err
		} else if taken {
			ve.Add("email", "A user with this email already exists.")
		}
	}
	if patch.Username != nil && *patch.Username != user.Username {
		if taken, err := s.usernameTaken(db, *patch.Username, id); err != nil {
			return nil, err
		} else if taken {
			ve.Add("username", "A user with this username already exists.")
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Password != nil {
		hashed, err := crypto.HashPasswordAsBcrypt(*patch.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) emailTaken(db *gorm.DB, email string, excludeId int) (bool, error) {
	var count int64
	err := db.Model(model.User{}).
		Where("email = ? AND id != ?", email, excludeId).
		Count(&count).
		Error
	return count > 0, err
}

func (s *UserService) usernameTaken(db *gorm.DB, username string, excludeId int) (bool, error) {
	var count int64
	err := db.Model(model.User{}).
		Where("username = ? AND id != ?", username, excludeId).
		Count(&count).
		Error
	return count > 0, err
}
