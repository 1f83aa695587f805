package models

import (
	"time"
)

// Batch is a flock of birds placed in a shed on a given date. Age is derived
// from the placement date, never stored.
type Batch struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ShedID        uint      `gorm:"not null;index:idx_batches_shed_id" json:"shed_id"`
	Code          string    `gorm:"size:30;not null;uniqueIndex:uk_batches_code_active,where:is_deleted = false" json:"code"`
	PlacementDate time.Time `gorm:"type:date;not null" json:"placement_date"`
	BirdsPlaced   int       `gorm:"not null" json:"birds_placed"`

	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relations
	Shed *Shed `gorm:"foreignKey:ShedID;references:ID" json:"shed,omitempty"`
}

func (Batch) TableName() string { return "batches" }

// AgeInDays returns the flock age at the given instant, in whole days.
func (b *Batch) AgeInDays(at time.Time) int {
	return int(at.Sub(b.PlacementDate).Hours() / 24)
}

// BatchFilter represents filter criteria for batch queries
type BatchFilter struct {
	ID            *uint
	ShedID        *uint
	Code          *string
	IsDeleted     *bool
	PlacedAfter   *time.Time
	PlacedBefore  *time.Time
}
