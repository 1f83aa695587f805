package models

import (
	"time"
)

// Phone categories
const (
	PhoneCategoryMobile = "mobile"
	PhoneCategoryHome   = "home"
	PhoneCategoryWork   = "work"
)

// Phone is a shared phone-number record. Natural key is the number,
// unique among non-deleted rows; ownership lives in the associations table.
type Phone struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CountryCode string `gorm:"size:10;not null;default:+58" json:"country_code"`
	Carrier     string `gorm:"size:50;not null" json:"carrier"`
	Number      string `gorm:"size:20;not null;uniqueIndex:uk_phones_number_active,where:is_deleted = false" json:"number"`
	Category    string `gorm:"size:20;not null" json:"category"`

	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Phone) TableName() string { return "phones" }

// PhoneFilter represents filter criteria for phone queries
type PhoneFilter struct {
	ID            *uint
	Number        *string
	Category      *string
	IsDeleted     *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// IsValidPhoneCategory reports whether the given category is one of the known enum values.
func IsValidPhoneCategory(category string) bool {
	switch category {
	case PhoneCategoryMobile, PhoneCategoryHome, PhoneCategoryWork:
		return true
	}
	return false
}
