// Package businessflow contains the core business logic for entity resolution and weighing workflows
package businessflow

import (
	"github.com/Davisit00/aviges/app/dto"
	"github.com/Davisit00/aviges/models"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds client-related information for logging and token issuance
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// ToAddressDTO converts an address model to its API representation
func ToAddressDTO(address models.Address) dto.AddressDTO {
	return dto.AddressDTO{
		ID:           address.ID,
		Country:      address.Country,
		State:        address.State,
		Municipality: address.Municipality,
		Sector:       address.Sector,
		Description:  address.Description,
	}
}

// ToPhoneDTO converts a phone model to its API representation
func ToPhoneDTO(phone models.Phone) dto.PhoneDTO {
	return dto.PhoneDTO{
		ID:          phone.ID,
		CountryCode: phone.CountryCode,
		Carrier:     phone.Carrier,
		Number:      phone.Number,
		Category:    phone.Category,
	}
}

// ToTaxIDDTO converts a tax identifier model to its API representation
func ToTaxIDDTO(taxID models.TaxID) dto.TaxIDDTO {
	return dto.TaxIDDTO{
		ID:     taxID.ID,
		Type:   taxID.Type,
		Number: taxID.Number,
	}
}

// ToPersonDTO converts a person model to its API representation
func ToPersonDTO(person models.Person, phones []*models.Phone) dto.PersonDTO {
	d := dto.PersonDTO{
		ID:             person.ID,
		FirstName:      person.FirstName,
		LastName:       person.LastName,
		NationalIDType: person.NationalIDType,
		NationalID:     person.NationalID,
	}
	if person.Address != nil {
		addr := ToAddressDTO(*person.Address)
		d.Address = &addr
	}
	for _, p := range phones {
		d.Phones = append(d.Phones, ToPhoneDTO(*p))
	}
	return d
}

// ToTicketDTO converts a weighing ticket model to its API representation
func ToTicketDTO(ticket models.WeighingTicket) dto.TicketDTO {
	return dto.TicketDTO{
		ID:                    ticket.ID,
		TicketNumber:          ticket.TicketNumber,
		Type:                  ticket.Type,
		Status:                ticket.Status,
		AssignmentID:          ticket.AssignmentID,
		ProductID:             ticket.ProductID,
		OriginLocationID:      ticket.OriginLocationID,
		DestinationLocationID: ticket.DestinationLocationID,
		GrossWeight:           ticket.GrossWeight,
		TareWeight:            ticket.TareWeight,
		NetWeight:             ticket.NetWeight,
		GrossRecordedAt:       ticket.GrossRecordedAt,
		TareRecordedAt:        ticket.TareRecordedAt,
		GrossRecordedByUserID: ticket.GrossRecordedByUserID,
		TareRecordedByUserID:  ticket.TareRecordedByUserID,
		FinishedAt:            ticket.FinishedAt,
		Voided:                ticket.IsVoided(),
		VoidedAt:              ticket.VoidedAt,
		VoidReason:            ticket.VoidReason,
		ReprintCount:          ticket.ReprintCount,
		Observations:          ticket.Observations,
		CreatedAt:             ticket.CreatedAt,
	}
}

// ToTripTimingDTO converts a trip timing model to its API representation
func ToTripTimingDTO(timing models.TripTiming) dto.TripTimingDTO {
	d := dto.TripTimingDTO{
		TicketID:         timing.TicketID,
		FarmDepartureAt:  timing.FarmDepartureAt,
		PlantArrivalAt:   timing.PlantArrivalAt,
		UnloadStartAt:    timing.UnloadStartAt,
		UnloadEndAt:      timing.UnloadEndAt,
		PlantDepartureAt: timing.PlantDepartureAt,
	}
	if t := timing.TransitTime(); t != nil {
		s := int64(t.Seconds())
		d.TransitSeconds = &s
	}
	if t := timing.WaitTime(); t != nil {
		s := int64(t.Seconds())
		d.WaitSeconds = &s
	}
	if t := timing.OperationTime(); t != nil {
		s := int64(t.Seconds())
		d.OperationSeconds = &s
	}
	return d
}

// ToTripCountDTO converts a trip count model to its API representation
func ToTripCountDTO(count models.TripCount) dto.TripCountDTO {
	return dto.TripCountDTO{
		TicketID:      count.TicketID,
		BirdsOnGuide:  count.BirdsOnGuide,
		BirdsReceived: count.BirdsReceived,
		BirdsMissing:  count.BirdsMissing(),
		BirdsDOA:      count.BirdsDOA,
		CageCount:     count.CageCount,
		BirdsPerCage:  count.BirdsPerCage,
		AvgCageWeight: count.AvgCageWeight,
	}
}

// ToVehicleDTO converts a vehicle model to its API representation
func ToVehicleDTO(vehicle models.Vehicle) dto.VehicleDTO {
	return dto.VehicleDTO{
		ID:                 vehicle.ID,
		TransportCompanyID: vehicle.TransportCompanyID,
		Plate:              vehicle.Plate,
		Model:              vehicle.Model,
		Color:              vehicle.Color,
		TareReference:      vehicle.TareReference,
	}
}

// ToBatchDTO converts a batch model to its API representation with derived age
func ToBatchDTO(batch models.Batch, ageDays int) dto.BatchDTO {
	return dto.BatchDTO{
		ID:            batch.ID,
		ShedID:        batch.ShedID,
		Code:          batch.Code,
		PlacementDate: batch.PlacementDate,
		BirdsPlaced:   batch.BirdsPlaced,
		AgeDays:       ageDays,
	}
}

// ToShedDTO converts a shed model to its API representation
func ToShedDTO(shed models.Shed) dto.ShedDTO {
	return dto.ShedDTO{
		ID:       shed.ID,
		FarmID:   shed.FarmID,
		Number:   shed.Number,
		Capacity: shed.Capacity,
	}
}

// ToLocationDTO converts a location model to its API representation
func ToLocationDTO(location models.Location) dto.LocationDTO {
	d := dto.LocationDTO{
		ID:   location.ID,
		Name: location.Name,
		Type: location.Type,
	}
	if location.Address != nil {
		addr := ToAddressDTO(*location.Address)
		d.Address = &addr
	}
	return d
}

// ToProductDTO converts a product model to its API representation
func ToProductDTO(product models.Product) dto.ProductDTO {
	return dto.ProductDTO{
		ID:          product.ID,
		Code:        product.Code,
		Name:        product.Name,
		Description: product.Description,
	}
}
