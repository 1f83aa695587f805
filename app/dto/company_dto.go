package dto

// CreateTransportCompanyRequest registers a hauling company. The tax id and
// phones are resolved as shared entities and linked to the company.
type CreateTransportCompanyRequest struct {
	Name    string       `json:"name" validate:"required,max=150"`
	TaxID   TaxIDInput   `json:"tax_id" validate:"required"`
	Address AddressInput `json:"address" validate:"required"`
	Phones  []PhoneInput `json:"phones" validate:"omitempty,dive"`
}

// CreateVehicleRequest registers a truck under a transport company
type CreateVehicleRequest struct {
	TransportCompanyID uint     `json:"transport_company_id" validate:"required,gt=0"`
	Plate              string   `json:"plate" validate:"required,min=5,max=15"`
	Model              string   `json:"model" validate:"required,max=100"`
	Color              *string  `json:"color,omitempty" validate:"omitempty,max=50"`
	TareReference      *float64 `json:"tare_reference,omitempty" validate:"omitempty,gt=0"`
}

// CreateDriverRequest registers a driver under a transport company
type CreateDriverRequest struct {
	TransportCompanyID uint        `json:"transport_company_id" validate:"required,gt=0"`
	Person             PersonInput `json:"person" validate:"required"`
}

// TransportCompanyDTO is the API representation of a transport company
type TransportCompanyDTO struct {
	ID      uint        `json:"id"`
	Name    string      `json:"name"`
	TaxID   *TaxIDDTO   `json:"tax_id,omitempty"`
	Address *AddressDTO `json:"address,omitempty"`
	Phones  []PhoneDTO  `json:"phones,omitempty"`
}

// VehicleDTO is the API representation of a vehicle
type VehicleDTO struct {
	ID                 uint     `json:"id"`
	TransportCompanyID uint     `json:"transport_company_id"`
	Plate              string   `json:"plate"`
	Model              string   `json:"model"`
	Color              *string  `json:"color,omitempty"`
	TareReference      *float64 `json:"tare_reference,omitempty"`
}

// DriverDTO is the API representation of a driver
type DriverDTO struct {
	ID                 uint      `json:"id"`
	TransportCompanyID uint      `json:"transport_company_id"`
	Person             PersonDTO `json:"person"`
}
