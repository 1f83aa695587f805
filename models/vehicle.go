package models

import (
	"time"
)

// Vehicle is a truck registered to a transport company. The plate is unique
// among non-deleted rows.
type Vehicle struct {
	ID                 uint    `gorm:"primaryKey" json:"id"`
	TransportCompanyID uint    `gorm:"not null;index:idx_vehicles_company_id" json:"transport_company_id"`
	Plate              string  `gorm:"size:15;not null;uniqueIndex:uk_vehicles_plate_active,where:is_deleted = false" json:"plate"`
	Model              string  `gorm:"size:100;not null" json:"model"`
	Color              *string `gorm:"size:50" json:"color,omitempty"`
	TareReference      *float64 `gorm:"type:numeric(10,2)" json:"tare_reference,omitempty"`

	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relations
	TransportCompany *TransportCompany `gorm:"foreignKey:TransportCompanyID;references:ID" json:"transport_company,omitempty"`
}

func (Vehicle) TableName() string { return "vehicles" }

// VehicleFilter represents filter criteria for vehicle queries
type VehicleFilter struct {
	ID                 *uint
	TransportCompanyID *uint
	Plate              *string
	IsDeleted          *bool
}
