package models

import (
	"time"
)

// Product is a weighable good (live birds, feed, litter and so on).
type Product struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Code        string  `gorm:"size:20;not null;uniqueIndex:uk_products_code_active,where:is_deleted = false" json:"code"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	Description *string `gorm:"type:text" json:"description,omitempty"`

	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Product) TableName() string { return "products" }

// ProductFilter represents filter criteria for product queries
type ProductFilter struct {
	ID        *uint
	Code      *string
	Name      *string
	IsDeleted *bool
}
