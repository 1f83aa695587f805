package models

import (
	"time"
)

// TripTiming records the checkpoint timestamps of a live-bird trip attached to
// a ticket. Durations are derived from the stamps, never entered directly.
type TripTiming struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TicketID uint `gorm:"not null;uniqueIndex:uk_trip_timings_ticket_active,where:is_deleted = false" json:"ticket_id"`

	FarmDepartureAt  *time.Time `json:"farm_departure_at,omitempty"`
	PlantArrivalAt   *time.Time `json:"plant_arrival_at,omitempty"`
	UnloadStartAt    *time.Time `json:"unload_start_at,omitempty"`
	UnloadEndAt      *time.Time `json:"unload_end_at,omitempty"`
	PlantDepartureAt *time.Time `json:"plant_departure_at,omitempty"`

	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relations
	Ticket *WeighingTicket `gorm:"foreignKey:TicketID;references:ID" json:"ticket,omitempty"`
}

func (TripTiming) TableName() string { return "trip_timings" }

// TransitTime returns farm departure to plant arrival, when both stamps exist.
func (t *TripTiming) TransitTime() *time.Duration {
	return durationBetween(t.FarmDepartureAt, t.PlantArrivalAt)
}

// WaitTime returns plant arrival to unload start, when both stamps exist.
func (t *TripTiming) WaitTime() *time.Duration {
	return durationBetween(t.PlantArrivalAt, t.UnloadStartAt)
}

// OperationTime returns unload start to unload end, when both stamps exist.
func (t *TripTiming) OperationTime() *time.Duration {
	return durationBetween(t.UnloadStartAt, t.UnloadEndAt)
}

func durationBetween(from, to *time.Time) *time.Duration {
	if from == nil || to == nil {
		return nil
	}
	d := to.Sub(*from)
	return &d
}

// TripCount records bird counts for a live-bird trip. Missing birds are
// derived as guide minus received, never stored.
type TripCount struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TicketID uint `gorm:"not null;uniqueIndex:uk_trip_counts_ticket_active,where:is_deleted = false" json:"ticket_id"`

	BirdsOnGuide  int      `gorm:"not null" json:"birds_on_guide"`
	BirdsReceived int      `gorm:"not null" json:"birds_received"`
	BirdsDOA      int      `gorm:"not null;default:0" json:"birds_doa"`
	CageCount     *int     `json:"cage_count,omitempty"`
	BirdsPerCage  *int     `json:"birds_per_cage,omitempty"`
	AvgCageWeight *float64 `gorm:"type:numeric(10,2)" json:"avg_cage_weight,omitempty"`

	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relations
	Ticket *WeighingTicket `gorm:"foreignKey:TicketID;references:ID" json:"ticket,omitempty"`
}

func (TripCount) TableName() string { return "trip_counts" }

// BirdsMissing returns guide count minus received count.
func (c *TripCount) BirdsMissing() int {
	return c.BirdsOnGuide - c.BirdsReceived
}

// TripOrigin ties a live-bird trip to the batch it was loaded from.
type TripOrigin struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TicketID uint `gorm:"not null;uniqueIndex:uk_trip_origins_ticket_active,where:is_deleted = false" json:"ticket_id"`
	BatchID  uint `gorm:"not null;index:idx_trip_origins_batch_id" json:"batch_id"`

	IsDeleted bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relations
	Ticket *WeighingTicket `gorm:"foreignKey:TicketID;references:ID" json:"ticket,omitempty"`
	Batch  *Batch          `gorm:"foreignKey:BatchID;references:ID" json:"batch,omitempty"`
}

func (TripOrigin) TableName() string { return "trip_origins" }

// TripTimingFilter represents filter criteria for trip timing queries
type TripTimingFilter struct {
	ID        *uint
	TicketID  *uint
	IsDeleted *bool
}

// TripCountFilter represents filter criteria for trip count queries
type TripCountFilter struct {
	ID        *uint
	TicketID  *uint
	IsDeleted *bool
}

// TripOriginFilter represents filter criteria for trip origin queries
type TripOriginFilter struct {
	ID        *uint
	TicketID  *uint
	BatchID   *uint
	IsDeleted *bool
}
