package models

import (
	"time"
)

// TransportCompany is a hauling company that owns vehicles and employs drivers.
// Its fiscal identifier is a shared tax id linked through the associations table.
type TransportCompany struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	AddressID uint   `gorm:"not null;index:idx_transport_companies_address_id" json:"address_id"`
	Name      string `gorm:"size:150;not null;uniqueIndex:uk_transport_companies_name_active,where:is_deleted = false" json:"name"`

	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relations
	Address *Address `gorm:"foreignKey:AddressID;references:ID" json:"address,omitempty"`
}

func (TransportCompany) TableName() string { return "transport_companies" }

// TransportCompanyFilter represents filter criteria for transport company queries
type TransportCompanyFilter struct {
	ID        *uint
	AddressID *uint
	Name      *string
	IsDeleted *bool
}
