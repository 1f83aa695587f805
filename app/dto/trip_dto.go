package dto

import "time"

// RecordTripTimingsRequest stores checkpoint timestamps for a live-bird trip.
// Stamps may arrive incrementally; absent fields leave existing values alone.
type RecordTripTimingsRequest struct {
	FarmDepartureAt  *time.Time `json:"farm_departure_at,omitempty"`
	PlantArrivalAt   *time.Time `json:"plant_arrival_at,omitempty"`
	UnloadStartAt    *time.Time `json:"unload_start_at,omitempty"`
	UnloadEndAt      *time.Time `json:"unload_end_at,omitempty"`
	PlantDepartureAt *time.Time `json:"plant_departure_at,omitempty"`
}

// RecordTripCountsRequest stores bird counts for a live-bird trip
type RecordTripCountsRequest struct {
	BirdsOnGuide  int      `json:"birds_on_guide" validate:"required,gte=0"`
	BirdsReceived int      `json:"birds_received" validate:"gte=0"`
	BirdsDOA      int      `json:"birds_doa" validate:"gte=0"`
	CageCount     *int     `json:"cage_count,omitempty" validate:"omitempty,gt=0"`
	BirdsPerCage  *int     `json:"birds_per_cage,omitempty" validate:"omitempty,gt=0"`
	AvgCageWeight *float64 `json:"avg_cage_weight,omitempty" validate:"omitempty,gt=0"`
}

// SetTripOriginRequest ties a trip to the batch it was loaded from
type SetTripOriginRequest struct {
	BatchID uint `json:"batch_id" validate:"required,gt=0"`
}

// TripTimingDTO is the API representation of trip timings, with derived durations in seconds
type TripTimingDTO struct {
	TicketID         uint       `json:"ticket_id"`
	FarmDepartureAt  *time.Time `json:"farm_departure_at,omitempty"`
	PlantArrivalAt   *time.Time `json:"plant_arrival_at,omitempty"`
	UnloadStartAt    *time.Time `json:"unload_start_at,omitempty"`
	UnloadEndAt      *time.Time `json:"unload_end_at,omitempty"`
	PlantDepartureAt *time.Time `json:"plant_departure_at,omitempty"`
	TransitSeconds   *int64     `json:"transit_seconds,omitempty"`
	WaitSeconds      *int64     `json:"wait_seconds,omitempty"`
	OperationSeconds *int64     `json:"operation_seconds,omitempty"`
}

// TripCountDTO is the API representation of trip counts, with derived missing birds
type TripCountDTO struct {
	TicketID      uint     `json:"ticket_id"`
	BirdsOnGuide  int      `json:"birds_on_guide"`
	BirdsReceived int      `json:"birds_received"`
	BirdsMissing  int      `json:"birds_missing"`
	BirdsDOA      int      `json:"birds_doa"`
	CageCount     *int     `json:"cage_count,omitempty"`
	BirdsPerCage  *int     `json:"birds_per_cage,omitempty"`
	AvgCageWeight *float64 `json:"avg_cage_weight,omitempty"`
}

// TripOriginDTO is the API representation of a trip origin
type TripOriginDTO struct {
	TicketID uint `json:"ticket_id"`
	BatchID  uint `json:"batch_id"`
	FlockAge int  `json:"flock_age_days"`
}

// TripStatisticsDTO carries derived per-trip statistics
type TripStatisticsDTO struct {
	TicketID         uint     `json:"ticket_id"`
	MortalityPercent *float64 `json:"mortality_percent,omitempty"`
	MissingPercent   *float64 `json:"missing_percent,omitempty"`
	AvgBirdWeight    *float64 `json:"avg_bird_weight,omitempty"`
	NetWeight        *float64 `json:"net_weight,omitempty"`
}
