// Package model defines the persistent entities of the dashboard API.
package model

import (
	"strings"
	"time"
)

// WidgetType enumerates the supported widget categories.
type WidgetType string

const (
	WidgetTypeChart  WidgetType = "chart"
	WidgetTypeMetric WidgetType = "metric"
	WidgetTypeTable  WidgetType = "table"
	WidgetTypeText   WidgetType = "text"
)

// WidgetTypes lists every valid widget type, in display order.
var WidgetTypes = []WidgetType{WidgetTypeChart, WidgetTypeMetric, WidgetTypeTable, WidgetTypeText}

// IsValid reports whether t is one of the supported widget types.
func (t WidgetType) IsValid() bool {
	for _, known := range WidgetTypes {
		if t == known {
			return true
		}
	}
	return false
}

// User is an account. Email is the login key; Username must also be unique.
// Password holds the bcrypt hash and is never serialized.
type User struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Password  string    `json:"-" gorm:"not null"`
	IsActive  bool      `json:"-" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName returns "FirstName LastName" with surrounding spaces trimmed.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Dashboard belongs to exactly one user. OwnerId is assigned at creation from
// the authenticated caller and never changes afterwards.
type Dashboard struct {
	Id          int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	OwnerId     int       `json:"owner" gorm:"index;not null"`
	Owner       *User     `json:"-" gorm:"foreignKey:OwnerId"`
	IsActive    bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Widget belongs to exactly one dashboard; its effective owner is the
// dashboard's owner.
type Widget struct {
	Id          int        `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string     `json:"name" gorm:"not null"`
	WidgetType  WidgetType `json:"widget_type" gorm:"not null"`
	DashboardId int        `json:"dashboard" gorm:"index;not null"`
	Dashboard   *Dashboard `json:"-" gorm:"foreignKey:DashboardId"`
	IsActive    bool       `json:"is_active" gorm:"not null;default:true"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
