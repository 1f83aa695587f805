package models

import (
	"time"
)

// Driver is a truck driver employed by a transport company. The personal
// identity is a shared person record.
type Driver struct {
	ID                 uint `gorm:"primaryKey" json:"id"`
	PersonID           uint `gorm:"not null;index:idx_drivers_person_id" json:"person_id"`
	TransportCompanyID uint `gorm:"not null;index:idx_drivers_company_id" json:"transport_company_id"`

	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relations
	Person           *Person           `gorm:"foreignKey:PersonID;references:ID" json:"person,omitempty"`
	TransportCompany *TransportCompany `gorm:"foreignKey:TransportCompanyID;references:ID" json:"transport_company,omitempty"`
}

func (Driver) TableName() string { return "drivers" }

// DriverFilter represents filter criteria for driver queries
type DriverFilter struct {
	ID                 *uint
	PersonID           *uint
	TransportCompanyID *uint
	IsDeleted          *bool
}
