package dto

// AddressInput carries the address fields used by entity resolution. A set ID
// references an existing address and makes the other fields irrelevant; the
// resolver enforces which fields an ID-less payload must carry.
type AddressInput struct {
	ID           *uint   `json:"id,omitempty" validate:"omitempty,gt=0"`
	Country      string  `json:"country" validate:"omitempty,max=100"`
	State        string  `json:"state" validate:"omitempty,max=100"`
	Municipality string  `json:"municipality" validate:"omitempty,max=100"`
	Sector       string  `json:"sector" validate:"omitempty,max=100"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// PhoneInput carries the phone fields used by entity resolution
type PhoneInput struct {
	ID          *uint  `json:"id,omitempty" validate:"omitempty,gt=0"`
	CountryCode string `json:"country_code" validate:"omitempty,max=10"`
	Carrier     string `json:"carrier" validate:"omitempty,max=50"`
	Number      string `json:"number" validate:"omitempty,min=7,max=20"`
	Category    string `json:"category" validate:"omitempty,oneof=mobile home work"`
}

// TaxIDInput carries the fiscal identifier fields used by entity resolution
type TaxIDInput struct {
	ID     *uint  `json:"id,omitempty" validate:"omitempty,gt=0"`
	Type   string `json:"type" validate:"omitempty,oneof=J G V E"`
	Number string `json:"number" validate:"omitempty,min=5,max=20"`
}

// PersonInput carries the person fields used by entity resolution. Phones are
// resolved and linked to the person; the address is resolved and referenced.
type PersonInput struct {
	ID             *uint        `json:"id,omitempty" validate:"omitempty,gt=0"`
	FirstName      string       `json:"first_name" validate:"omitempty,max=100"`
	LastName       string       `json:"last_name" validate:"omitempty,max=100"`
	NationalIDType string       `json:"national_id_type" validate:"omitempty,oneof=V E"`
	NationalID     string       `json:"national_id" validate:"omitempty,min=5,max=20"`
	Address        AddressInput `json:"address"`
	Phones         []PhoneInput `json:"phones" validate:"omitempty,dive"`
}

// AddressDTO is the API representation of an address
type AddressDTO struct {
	ID           uint    `json:"id"`
	Country      string  `json:"country"`
	State        string  `json:"state"`
	Municipality string  `json:"municipality"`
	Sector       string  `json:"sector"`
	Description  *string `json:"description,omitempty"`
}

// PhoneDTO is the API representation of a phone
type PhoneDTO struct {
	ID          uint   `json:"id"`
	CountryCode string `json:"country_code"`
	Carrier     string `json:"carrier"`
	Number      string `json:"number"`
	Category    string `json:"category"`
}

// TaxIDDTO is the API representation of a fiscal identifier
type TaxIDDTO struct {
	ID     uint   `json:"id"`
	Type   string `json:"type"`
	Number string `json:"number"`
}

// PersonDTO is the API representation of a person
type PersonDTO struct {
	ID             uint       `json:"id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	NationalIDType string     `json:"national_id_type"`
	NationalID     string     `json:"national_id"`
	Address        *AddressDTO `json:"address,omitempty"`
	Phones         []PhoneDTO  `json:"phones,omitempty"`
}
