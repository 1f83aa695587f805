// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/Davisit00/aviges/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// AddressRepository defines operations for shared addresses
type AddressRepository interface {
	Repository[models.Address, models.AddressFilter]
}

// PersonRepository defines operations for shared persons
type PersonRepository interface {
	Repository[models.Person, models.PersonFilter]
	ByNationalID(ctx context.Context, nationalID string) (*models.Person, error)
}

// PhoneRepository defines operations for shared phones
type PhoneRepository interface {
	Repository[models.Phone, models.PhoneFilter]
	ByNumber(ctx context.Context, number string) (*models.Phone, error)
}

// TaxIDRepository defines operations for shared tax identifiers
type TaxIDRepository interface {
	Repository[models.TaxID, models.TaxIDFilter]
	ByTypeAndNumber(ctx context.Context, idType, number string) (*models.TaxID, error)
}

// AssociationRepository defines operations for owner-to-shared-entity links
type AssociationRepository interface {
	Repository[models.Association, models.AssociationFilter]
	FindIncludingDeleted(ctx context.Context, ownerType string, ownerID uint, sharedType string, sharedID uint) (*models.Association, error)
	ActiveBySharedEntity(ctx context.Context, sharedType string, sharedID uint) (*models.Association, error)
	ActiveByOwner(ctx context.Context, ownerType string, ownerID uint, sharedType string) ([]*models.Association, error)
}

// RoleRepository defines operations for roles
type RoleRepository interface {
	Repository[models.Role, models.RoleFilter]
	ByName(ctx context.Context, name string) (*models.Role, error)
}

// UserRepository defines operations for operator accounts
type UserRepository interface {
	Repository[models.User, models.UserFilter]
	ByUsername(ctx context.Context, username string) (*models.User, error)
}

// ProductRepository defines operations for products
type ProductRepository interface {
	Repository[models.Product, models.ProductFilter]
	ByCode(ctx context.Context, code string) (*models.Product, error)
}

// LocationRepository defines operations for locations
type LocationRepository interface {
	Repository[models.Location, models.LocationFilter]
	ByName(ctx context.Context, name string) (*models.Location, error)
}

// TransportCompanyRepository defines operations for transport companies
type TransportCompanyRepository interface {
	Repository[models.TransportCompany, models.TransportCompanyFilter]
	ByName(ctx context.Context, name string) (*models.TransportCompany, error)
}

// VehicleRepository defines operations for vehicles
type VehicleRepository interface {
	Repository[models.Vehicle, models.VehicleFilter]
	ByPlate(ctx context.Context, plate string) (*models.Vehicle, error)
}

// DriverRepository defines operations for drivers
type DriverRepository interface {
	Repository[models.Driver, models.DriverFilter]
	ByPerson(ctx context.Context, personID uint) (*models.Driver, error)
}

// FarmRepository defines operations for farms
type FarmRepository interface {
	Repository[models.Farm, models.FarmFilter]
	ByName(ctx context.Context, name string) (*models.Farm, error)
}

// ShedRepository defines operations for sheds
type ShedRepository interface {
	Repository[models.Shed, models.ShedFilter]
	ByFarmAndNumber(ctx context.Context, farmID uint, number int) (*models.Shed, error)
}

// BatchRepository defines operations for batches
type BatchRepository interface {
	Repository[models.Batch, models.BatchFilter]
	ByCode(ctx context.Context, code string) (*models.Batch, error)
}

// AssignmentRepository defines operations for driver-vehicle assignments
type AssignmentRepository interface {
	Repository[models.Assignment, models.AssignmentFilter]
	ActiveByPair(ctx context.Context, driverID, vehicleID uint) (*models.Assignment, error)
}

// WeighingTicketRepository defines operations for weighing tickets
type WeighingTicketRepository interface {
	Repository[models.WeighingTicket, models.WeighingTicketFilter]
	ByTicketNumber(ctx context.Context, ticketNumber string) (*models.WeighingTicket, error)
	ListInProgress(ctx context.Context, limit, offset int) ([]*models.WeighingTicket, error)
}

// TripTimingRepository defines operations for trip timings
type TripTimingRepository interface {
	Repository[models.TripTiming, models.TripTimingFilter]
	ByTicket(ctx context.Context, ticketID uint) (*models.TripTiming, error)
}

// TripCountRepository defines operations for trip counts
type TripCountRepository interface {
	Repository[models.TripCount, models.TripCountFilter]
	ByTicket(ctx context.Context, ticketID uint) (*models.TripCount, error)
}

// TripOriginRepository defines operations for trip origins
type TripOriginRepository interface {
	Repository[models.TripOrigin, models.TripOriginFilter]
	ByTicket(ctx context.Context, ticketID uint) (*models.TripOrigin, error)
	ListByBatch(ctx context.Context, batchID uint) ([]*models.TripOrigin, error)
}
