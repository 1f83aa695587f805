package models

import (
	"time"
)

// Ticket types. Entry trips bring product into the plant (gross first),
// exit trips take product out (tare first). The order is a front-desk
// convention; either weight may be recorded first.
const (
	TicketTypeEntry = "entry"
	TicketTypeExit  = "exit"
)

// Ticket lifecycle states. Voiding is orthogonal and tracked by VoidedAt.
const (
	TicketStatusInProgress = "in_progress"
	TicketStatusFinished   = "finished"
)

// Weight kinds recorded against a ticket
const (
	WeightKindGross = "gross"
	WeightKindTare  = "tare"
)

// WeighingTicket is one truck trip over the scale. A ticket starts with no
// weights, collects a gross and a tare reading in either order, and finishes
// when both are present. The net weight is always derived, never entered.
type WeighingTicket struct {
	ID                    uint   `gorm:"primaryKey" json:"id"`
	TicketNumber          string `gorm:"size:40;not null;uniqueIndex:uk_tickets_number_active,where:is_deleted = false" json:"ticket_number"`
	Type                  string `gorm:"size:10;not null" json:"type"`
	Status                string `gorm:"size:15;not null;default:in_progress;index:idx_tickets_status" json:"status"`
	AssignmentID          uint   `gorm:"not null;index:idx_tickets_assignment_id" json:"assignment_id"`
	ProductID             uint   `gorm:"not null;index:idx_tickets_product_id" json:"product_id"`
	OriginLocationID      uint   `gorm:"not null" json:"origin_location_id"`
	DestinationLocationID uint   `gorm:"not null" json:"destination_location_id"`
	CreatedByUserID       uint   `gorm:"not null" json:"created_by_user_id"`

	GrossWeight           *float64   `gorm:"type:numeric(10,2)" json:"gross_weight,omitempty"`
	TareWeight            *float64   `gorm:"type:numeric(10,2)" json:"tare_weight,omitempty"`
	NetWeight             *float64   `gorm:"type:numeric(10,2)" json:"net_weight,omitempty"`
	GrossRecordedAt       *time.Time `json:"gross_recorded_at,omitempty"`
	TareRecordedAt        *time.Time `json:"tare_recorded_at,omitempty"`
	GrossRecordedByUserID *uint      `json:"gross_recorded_by_user_id,omitempty"`
	TareRecordedByUserID  *uint      `json:"tare_recorded_by_user_id,omitempty"`
	FinishedAt            *time.Time `json:"finished_at,omitempty"`

	VoidedAt   *time.Time `json:"voided_at,omitempty"`
	VoidReason *string    `gorm:"type:text" json:"void_reason,omitempty"`

	ReprintCount int     `gorm:"not null;default:0" json:"reprint_count"`
	Observations *string `gorm:"type:text" json:"observations,omitempty"`

	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index:idx_tickets_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Assignment          *Assignment `gorm:"foreignKey:AssignmentID;references:ID" json:"assignment,omitempty"`
	Product             *Product    `gorm:"foreignKey:ProductID;references:ID" json:"product,omitempty"`
	OriginLocation      *Location   `gorm:"foreignKey:OriginLocationID;references:ID" json:"origin_location,omitempty"`
	DestinationLocation *Location   `gorm:"foreignKey:DestinationLocationID;references:ID" json:"destination_location,omitempty"`
	CreatedByUser       *User       `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`
}

func (WeighingTicket) TableName() string { return "weighing_tickets" }

// IsVoided reports whether the ticket has been voided.
func (t *WeighingTicket) IsVoided() bool {
	return t.VoidedAt != nil
}

// IsFinished reports whether both weights have been recorded.
func (t *WeighingTicket) IsFinished() bool {
	return t.Status == TicketStatusFinished
}

// HasBothWeights reports whether gross and tare are both present.
func (t *WeighingTicket) HasBothWeights() bool {
	return t.GrossWeight != nil && t.TareWeight != nil
}

// IsValidTicketType reports whether the given type is one of the known enum values.
func IsValidTicketType(t string) bool {
	return t == TicketTypeEntry || t == TicketTypeExit
}

// IsValidWeightKind reports whether the given kind is gross or tare.
func IsValidWeightKind(k string) bool {
	return k == WeightKindGross || k == WeightKindTare
}

// WeighingTicketFilter represents filter criteria for ticket queries
type WeighingTicketFilter struct {
	ID            *uint
	TicketNumber  *string
	Type          *string
	Status        *string
	AssignmentID  *uint
	ProductID     *uint
	Voided        *bool
	IsDeleted     *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	OrderBy       string
	OrderDir      string
	Limit         int
	Offset        int
}
