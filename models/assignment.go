package models

import (
	"time"
)

// Assignment pairs a driver with a vehicle. Tickets reference an assignment
// instead of a driver and vehicle separately; an existing active pair is
// reused rather than duplicated.
type Assignment struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	DriverID  uint `gorm:"not null;uniqueIndex:uk_assignments_pair_active,where:is_deleted = false" json:"driver_id"`
	VehicleID uint `gorm:"not null;uniqueIndex:uk_assignments_pair_active,where:is_deleted = false" json:"vehicle_id"`

	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relations
	Driver  *Driver  `gorm:"foreignKey:DriverID;references:ID" json:"driver,omitempty"`
	Vehicle *Vehicle `gorm:"foreignKey:VehicleID;references:ID" json:"vehicle,omitempty"`
}

func (Assignment) TableName() string { return "assignments" }

// AssignmentFilter represents filter criteria for assignment queries
type AssignmentFilter struct {
	ID        *uint
	DriverID  *uint
	VehicleID *uint
	IsDeleted *bool
}
