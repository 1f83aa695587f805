// Package models contains domain entities and business models for the weighing-station system
package models

import (
	"time"
)

// Address is a reusable street address shared by people, companies and locations.
// It has no natural key; identity is the surrogate ID only.
type Address struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Country      string  `gorm:"size:100;not null;default:Venezuela" json:"country"`
	State        string  `gorm:"size:100;not null" json:"state"`
	Municipality string  `gorm:"size:100;not null" json:"municipality"`
	Sector       string  `gorm:"size:100;not null" json:"sector"`
	Description  *string `gorm:"type:text" json:"description,omitempty"`

	IsDeleted bool      `gorm:"not null;default:false;index:idx_addresses_is_deleted" json:"is_deleted"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Address) TableName() string { return "addresses" }

// AddressFilter represents filter criteria for address queries
type AddressFilter struct {
	ID            *uint
	State         *string
	Municipality  *string
	Sector        *string
	IsDeleted     *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
