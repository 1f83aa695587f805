package models

import (
	"time"
)

// Owner entity kinds for association links
const (
	OwnerTypePerson           = "person"
	OwnerTypeUser             = "user"
	OwnerTypeTransportCompany = "transport_company"
	OwnerTypeDriver           = "driver"
	OwnerTypeFarm             = "farm"
	OwnerTypeLocation         = "location"
)

// Shared entity kinds for association links
const (
	SharedTypeAddress = "address"
	SharedTypePhone   = "phone"
	SharedTypeTaxID   = "tax_id"
)

// Association links an owner entity to a shared entity (phone, tax id, address).
// For phones and tax ids the partial unique index enforces at most one active
// owner per shared entity across the whole system; addresses are exempt and may
// be shared by several active owners. Soft-deleted links are kept for
// reactivation instead of inserting duplicates.
type Association struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	OwnerType  string `gorm:"size:30;not null;index:idx_associations_owner" json:"owner_type"`
	OwnerID    uint   `gorm:"not null;index:idx_associations_owner" json:"owner_id"`
	SharedType string `gorm:"size:20;not null;uniqueIndex:uk_associations_active_shared,where:is_deleted = false AND shared_type <> 'address'" json:"shared_type"`
	SharedID   uint   `gorm:"not null;uniqueIndex:uk_associations_active_shared,where:is_deleted = false AND shared_type <> 'address'" json:"shared_id"`

	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Association) TableName() string { return "associations" }

// AssociationFilter represents filter criteria for association queries
type AssociationFilter struct {
	ID         *uint
	OwnerType  *string
	OwnerID    *uint
	SharedType *string
	SharedID   *uint
	IsDeleted  *bool
}

// IsExclusiveSharedType reports whether the shared entity kind is subject to the
// single-active-owner rule. Addresses are shareable and therefore exempt.
func IsExclusiveSharedType(sharedType string) bool {
	return sharedType != SharedTypeAddress
}
