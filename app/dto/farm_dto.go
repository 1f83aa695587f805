package dto

import "time"

// CreateFarmRequest registers a farm with its owner and sheds. The owner is
// resolved as a shared person.
type CreateFarmRequest struct {
	Name    string       `json:"name" validate:"required,max=150"`
	Owner   PersonInput  `json:"owner" validate:"required"`
	Address AddressInput `json:"address" validate:"required"`
	Sheds   []ShedInput  `json:"sheds" validate:"omitempty,dive"`
}

// ShedInput describes one shed at farm registration time
type ShedInput struct {
	Number   int  `json:"number" validate:"required,gt=0"`
	Capacity *int `json:"capacity,omitempty" validate:"omitempty,gt=0"`
}

// CreateBatchRequest places a flock in a shed
type CreateBatchRequest struct {
	ShedID        uint      `json:"shed_id" validate:"required,gt=0"`
	Code          string    `json:"code" validate:"required,max=30"`
	PlacementDate time.Time `json:"placement_date" validate:"required"`
	BirdsPlaced   int       `json:"birds_placed" validate:"required,gt=0"`
}

// CreateLocationRequest registers a site tickets can reference
type CreateLocationRequest struct {
	Name    string       `json:"name" validate:"required,max=100"`
	Type    string       `json:"type" validate:"required,oneof=farm slaughterhouse feed_plant hatchery warehouse distribution_center supplier client other"`
	Address AddressInput `json:"address" validate:"required"`
}

// CreateProductRequest registers a weighable good
type CreateProductRequest struct {
	Code        string  `json:"code" validate:"required,max=20"`
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// FarmDTO is the API representation of a farm
type FarmDTO struct {
	ID      uint        `json:"id"`
	Name    string      `json:"name"`
	Owner   PersonDTO   `json:"owner"`
	Address *AddressDTO `json:"address,omitempty"`
	Sheds   []ShedDTO   `json:"sheds,omitempty"`
}

// ShedDTO is the API representation of a shed
type ShedDTO struct {
	ID       uint `json:"id"`
	FarmID   uint `json:"farm_id"`
	Number   int  `json:"number"`
	Capacity *int `json:"capacity,omitempty"`
}

// BatchDTO is the API representation of a batch
type BatchDTO struct {
	ID            uint      `json:"id"`
	ShedID        uint      `json:"shed_id"`
	Code          string    `json:"code"`
	PlacementDate time.Time `json:"placement_date"`
	BirdsPlaced   int       `json:"birds_placed"`
	AgeDays       int       `json:"age_days"`
}

// LocationDTO is the API representation of a location
type LocationDTO struct {
	ID      uint        `json:"id"`
	Name    string      `json:"name"`
	Type    string      `json:"type"`
	Address *AddressDTO `json:"address,omitempty"`
}

// ProductDTO is the API representation of a product
type ProductDTO struct {
	ID          uint    `json:"id"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}
