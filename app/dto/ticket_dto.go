package dto

import "time"

// CreateTicketRequest opens a new weighing ticket
type CreateTicketRequest struct {
	Type                  string  `json:"type" validate:"required,oneof=entry exit"`
	DriverID              uint    `json:"driver_id" validate:"required,gt=0"`
	VehicleID             uint    `json:"vehicle_id" validate:"required,gt=0"`
	ProductID             uint    `json:"product_id" validate:"required,gt=0"`
	OriginLocationID      uint    `json:"origin_location_id" validate:"required,gt=0"`
	DestinationLocationID uint    `json:"destination_location_id" validate:"required,gt=0"`
	Observations          *string `json:"observations,omitempty" validate:"omitempty,max=1000"`
}

// RecordWeightRequest records one scale reading against a ticket. The kind is
// explicit; the client always states whether the reading is gross or tare.
type RecordWeightRequest struct {
	Kind   string  `json:"kind" validate:"required,oneof=gross tare"`
	Weight float64 `json:"weight" validate:"required,gt=0"`
}

// VoidTicketRequest voids a ticket with a mandatory reason
type VoidTicketRequest struct {
	Reason string `json:"reason" validate:"required,min=5,max=500"`
}

// ListTicketsRequest filters the ticket listing
type ListTicketsRequest struct {
	Type     *string `query:"type" validate:"omitempty,oneof=entry exit"`
	Status   *string `query:"status" validate:"omitempty,oneof=in_progress finished"`
	Voided   *bool   `query:"voided"`
	Page     int     `query:"page" validate:"omitempty,gte=1"`
	PageSize int     `query:"page_size" validate:"omitempty,gte=1,lte=100"`
}

// TicketDTO is the API representation of a weighing ticket
type TicketDTO struct {
	ID                    uint       `json:"id"`
	TicketNumber          string     `json:"ticket_number"`
	Type                  string     `json:"type"`
	Status                string     `json:"status"`
	AssignmentID          uint       `json:"assignment_id"`
	ProductID             uint       `json:"product_id"`
	OriginLocationID      uint       `json:"origin_location_id"`
	DestinationLocationID uint       `json:"destination_location_id"`
	GrossWeight           *float64   `json:"gross_weight,omitempty"`
	TareWeight            *float64   `json:"tare_weight,omitempty"`
	NetWeight             *float64   `json:"net_weight,omitempty"`
	GrossRecordedAt       *time.Time `json:"gross_recorded_at,omitempty"`
	TareRecordedAt        *time.Time `json:"tare_recorded_at,omitempty"`
	GrossRecordedByUserID *uint      `json:"gross_recorded_by_user_id,omitempty"`
	TareRecordedByUserID  *uint      `json:"tare_recorded_by_user_id,omitempty"`
	FinishedAt            *time.Time `json:"finished_at,omitempty"`
	Voided                bool       `json:"voided"`
	VoidedAt              *time.Time `json:"voided_at,omitempty"`
	VoidReason            *string    `json:"void_reason,omitempty"`
	ReprintCount          int        `json:"reprint_count"`
	Observations          *string    `json:"observations,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
}

// TicketListResponse carries a page of tickets
type TicketListResponse struct {
	Tickets    []TicketDTO   `json:"tickets"`
	Pagination PaginationDTO `json:"pagination"`
}

// ReprintResponse reports the state of a ticket after a reprint
type ReprintResponse struct {
	Ticket       TicketDTO `json:"ticket"`
	ReprintCount int       `json:"reprint_count"`
}
