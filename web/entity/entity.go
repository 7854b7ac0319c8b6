// Package entity defines the JSON shapes returned by the web layer.
package entity

import (
	"time"

	"github.com/MarcosLesca/dashboard-api/database/model"
)

// User is the public view of an account. The password is accepted on input
// only and never echoed.
type User struct {
	Id        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUser(u *model.User) User {
	return User{
		Id:        u.Id,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
	}
}

// AuthResult wraps the public user together with a human-readable message,
// returned by register and login.
type AuthResult struct {
	User    User   `json:"user"`
	Message string `json:"message"`
}

// Dashboard is the serialized dashboard. Owner, OwnerName and the timestamps
// are server-controlled; write payloads never touch them.
type Dashboard struct {
	Id          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Owner       int       `json:"owner"`
	OwnerName   string    `json:"owner_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	IsActive    bool      `json:"is_active"`
}

func NewDashboard(d *model.Dashboard) Dashboard {
	ownerName := ""
	if d.Owner != nil {
		ownerName = d.Owner.FullName()
	}
	return Dashboard{
		Id:          d.Id,
		Name:        d.Name,
		Description: d.Description,
		Owner:       d.OwnerId,
		OwnerName:   ownerName,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		IsActive:    d.IsActive,
	}
}

func NewDashboards(ds []*model.Dashboard) []Dashboard {
	out := make([]Dashboard, 0, len(ds))
	for _, d := range ds {
		out = append(out, NewDashboard(d))
	}
	return out
}
