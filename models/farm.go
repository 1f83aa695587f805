package models

import (
	"time"
)

// Farm is a production farm with an owner person and a set of sheds.
type Farm struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	OwnerPersonID uint   `gorm:"not null;index:idx_farms_owner_person_id" json:"owner_person_id"`
	AddressID     uint   `gorm:"not null;index:idx_farms_address_id" json:"address_id"`
	Name          string `gorm:"size:150;not null;uniqueIndex:uk_farms_name_active,where:is_deleted = false" json:"name"`

	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relations
	OwnerPerson *Person  `gorm:"foreignKey:OwnerPersonID;references:ID" json:"owner_person,omitempty"`
	Address     *Address `gorm:"foreignKey:AddressID;references:ID" json:"address,omitempty"`
	Sheds       []Shed   `gorm:"foreignKey:FarmID" json:"sheds,omitempty"`
}

func (Farm) TableName() string { return "farms" }

// FarmFilter represents filter criteria for farm queries
type FarmFilter struct {
	ID            *uint
	OwnerPersonID *uint
	AddressID     *uint
	Name          *string
	IsDeleted     *bool
}
