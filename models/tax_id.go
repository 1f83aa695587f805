package models

import (
	"time"
)

// Tax identifier (RIF) legal-entity categories
const (
	TaxIDTypeLegalEntity = "J"
	TaxIDTypeGovernment  = "G"
	TaxIDTypeVenezuelan  = "V"
	TaxIDTypeForeign     = "E"
)

// TaxID is a shared fiscal identifier. Natural key is (type, number),
// unique among non-deleted rows; ownership lives in the associations table.
type TaxID struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Type   string `gorm:"size:1;not null;uniqueIndex:uk_tax_ids_number_active,where:is_deleted = false" json:"type"`
	Number string `gorm:"size:20;not null;uniqueIndex:uk_tax_ids_number_active,where:is_deleted = false" json:"number"`

	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (TaxID) TableName() string { return "tax_ids" }

// TaxIDFilter represents filter criteria for tax identifier queries
type TaxIDFilter struct {
	ID            *uint
	Type          *string
	Number        *string
	IsDeleted     *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// IsValidTaxIDType reports whether the given type is one of the known enum values.
func IsValidTaxIDType(t string) bool {
	switch t {
	case TaxIDTypeLegalEntity, TaxIDTypeGovernment, TaxIDTypeVenezuelan, TaxIDTypeForeign:
		return true
	}
	return false
}
