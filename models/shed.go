package models

import (
	"time"
)

// Shed is a numbered grow-out house inside a farm. The number is unique per
// farm among non-deleted rows.
type Shed struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	FarmID   uint `gorm:"not null;uniqueIndex:uk_sheds_farm_number_active,where:is_deleted = false" json:"farm_id"`
	Number   int  `gorm:"not null;uniqueIndex:uk_sheds_farm_number_active,where:is_deleted = false" json:"number"`
	Capacity *int `json:"capacity,omitempty"`

	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relations
	Farm *Farm `gorm:"foreignKey:FarmID;references:ID" json:"farm,omitempty"`
}

func (Shed) TableName() string { return "sheds" }

// ShedFilter represents filter criteria for shed queries
type ShedFilter struct {
	ID        *uint
	FarmID    *uint
	Number    *int
	IsDeleted *bool
}
