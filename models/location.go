package models

import (
	"time"
)

// Location kinds. Origins and destinations on tickets are both locations;
// the kind describes what the site is, not which side of a trip it plays.
const (
	LocationTypeFarm         = "farm"
	LocationTypeSlaughter    = "slaughterhouse"
	LocationTypeFeedPlant    = "feed_plant"
	LocationTypeHatchery     = "hatchery"
	LocationTypeWarehouse    = "warehouse"
	LocationTypeDistribution = "distribution_center"
	LocationTypeSupplier     = "supplier"
	LocationTypeClient       = "client"
	LocationTypeOther        = "other"
)

// Location is a named site a trip can start from or end at.
type Location struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	AddressID uint   `gorm:"not null;index:idx_locations_address_id" json:"address_id"`
	Name      string `gorm:"size:100;not null;uniqueIndex:uk_locations_name_active,where:is_deleted = false" json:"name"`
	Type      string `gorm:"size:30;not null" json:"type"`

	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relations
	Address *Address `gorm:"foreignKey:AddressID;references:ID" json:"address,omitempty"`
}

func (Location) TableName() string { return "locations" }

// LocationFilter represents filter criteria for location queries
type LocationFilter struct {
	ID        *uint
	AddressID *uint
	Name      *string
	Type      *string
	IsDeleted *bool
}

// IsValidLocationType reports whether the given type is one of the known enum values.
func IsValidLocationType(t string) bool {
	switch t {
	case LocationTypeFarm, LocationTypeSlaughter, LocationTypeFeedPlant,
		LocationTypeHatchery, LocationTypeWarehouse, LocationTypeDistribution,
		LocationTypeSupplier, LocationTypeClient, LocationTypeOther:
		return true
	}
	return false
}
