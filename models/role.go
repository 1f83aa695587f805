package models

import (
	"time"
)

// Built-in role names
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleViewer   = "viewer"
)

// Role is a named permission level assigned to users.
type Role struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:50;not null;uniqueIndex:uk_roles_name_active,where:is_deleted = false" json:"name"`
	Description *string `gorm:"type:text" json:"description,omitempty"`

	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Role) TableName() string { return "roles" }

// RoleFilter represents filter criteria for role queries
type RoleFilter struct {
	ID        *uint
	Name      *string
	IsDeleted *bool
}
