package models

import (
	"time"
)

// User is an operator account. The underlying identity (name, national id,
// address, phones) lives in the shared persons table; the user row adds
// credentials and a role on top of it.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	PersonID     uint   `gorm:"not null;index:idx_users_person_id" json:"person_id"`
	RoleID       uint   `gorm:"not null;index:idx_users_role_id" json:"role_id"`
	Username     string `gorm:"size:50;not null;uniqueIndex:uk_users_username_active,where:is_deleted = false" json:"username"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relations
	Person *Person `gorm:"foreignKey:PersonID;references:ID" json:"person,omitempty"`
	Role   *Role   `gorm:"foreignKey:RoleID;references:ID" json:"role,omitempty"`
}

func (User) TableName() string { return "users" }

// UserFilter represents filter criteria for user queries
type UserFilter struct {
	ID            *uint
	PersonID      *uint
	RoleID        *uint
	Username      *string
	IsDeleted     *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
