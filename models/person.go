package models

import (
	"time"
)

// National identity document types
const (
	NationalIDTypeVenezuelan = "V"
	NationalIDTypeForeign    = "E"
)

// Person is a shared natural-person record. Natural key is
// (national_id_type, national_id), unique among non-deleted rows.
type Person struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	AddressID      uint   `gorm:"not null;index:idx_persons_address_id" json:"address_id"`
	FirstName      string `gorm:"size:100;not null" json:"first_name"`
	LastName       string `gorm:"size:100;not null" json:"last_name"`
	NationalIDType string `gorm:"size:1;not null" json:"national_id_type"`
	NationalID     string `gorm:"size:20;not null;uniqueIndex:uk_persons_national_id_active,where:is_deleted = false" json:"national_id"`

	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relations
	Address *Address `gorm:"foreignKey:AddressID;references:ID" json:"address,omitempty"`
}

func (Person) TableName() string { return "persons" }

// PersonFilter represents filter criteria for person queries
type PersonFilter struct {
	ID             *uint
	AddressID      *uint
	FirstName      *string
	LastName       *string
	NationalIDType *string
	NationalID     *string
	IsDeleted      *bool
	CreatedAfter   *time.Time
	CreatedBefore  *time.Time
}

// FullName returns the display name used on printed tickets.
func (p *Person) FullName() string {
	return p.FirstName + " " + p.LastName
}
