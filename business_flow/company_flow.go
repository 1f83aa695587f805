package businessflow

import (
	"context"

	"github.com/Davisit00/aviges/app/dto"
	"github.com/Davisit00/aviges/models"
	"github.com/Davisit00/aviges/repository"
	"github.com/Davisit00/aviges/utils"
	"gorm.io/gorm"
)

// CompanyFlow handles transport companies and their fleet
type CompanyFlow interface {
	CreateTransportCompany(ctx context.Context, req *dto.CreateTransportCompanyRequest, metadata *ClientMetadata) (*dto.TransportCompanyDTO, error)
	GetTransportCompany(ctx context.Context, companyID uint) (*dto.TransportCompanyDTO, error)
	CreateVehicle(ctx context.Context, req *dto.CreateVehicleRequest, metadata *ClientMetadata) (*dto.VehicleDTO, error)
	CreateDriver(ctx context.Context, req *dto.CreateDriverRequest, metadata *ClientMetadata) (*dto.DriverDTO, error)
}

// CompanyFlowImpl implements the transport company business flow
type CompanyFlowImpl struct {
	companyRepo repository.TransportCompanyRepository
	vehicleRepo repository.VehicleRepository
	driverRepo  repository.DriverRepository
	addressRepo repository.AddressRepository
	resolver    *EntityResolver
	clock       utils.Clock
	db          *gorm.DB
}

// NewCompanyFlow creates a new company flow instance
func NewCompanyFlow(
	companyRepo repository.TransportCompanyRepository,
	vehicleRepo repository.VehicleRepository,
	driverRepo repository.DriverRepository,
	addressRepo repository.AddressRepository,
	resolver *EntityResolver,
	clock utils.Clock,
	db *gorm.DB,
) CompanyFlow {
	return &CompanyFlowImpl{
		companyRepo: companyRepo,
		vehicleRepo: vehicleRepo,
		driverRepo:  driverRepo,
		addressRepo: addressRepo,
		resolver:    resolver,
		clock:       clock,
		db:          db,
	}
}

// CreateTransportCompany registers a hauling company. The tax id and phones go
// through the resolver and are claimed by the company; a tax id actively held
// by anyone else aborts the whole registration.
func (s *CompanyFlowImpl) CreateTransportCompany(ctx context.Context, req *dto.CreateTransportCompanyRequest, metadata *ClientMetadata) (*dto.TransportCompanyDTO, error) {
	var company *models.TransportCompany
	var taxID *models.TaxID
	var address *models.Address

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		existing, err := s.companyRepo.ByName(txCtx, req.Name)
		if err != nil {
			return NewInternalError("failed to check company name", err)
		}
		if existing != nil {
			return NewConflictError("transport company name already exists", nil)
		}

		address, err = s.resolver.ResolveAddress(txCtx, req.Address)
		if err != nil {
			return err
		}

		company = &models.TransportCompany{
			AddressID: address.ID,
			Name:      req.Name,
			CreatedAt: s.clock.Now(),
		}
		if err := s.companyRepo.Save(txCtx, company); err != nil {
			if isUniqueViolation(err) {
				return NewConflictError("transport company name was registered concurrently", nil)
			}
			return NewInternalError("failed to create transport company", err)
		}

		taxID, err = s.resolver.ResolveTaxID(txCtx, req.TaxID)
		if err != nil {
			return err
		}
		if err := s.resolver.Associate(txCtx, models.OwnerTypeTransportCompany, company.ID, models.SharedTypeTaxID, taxID.ID); err != nil {
			return err
		}

		if err := s.resolver.Associate(txCtx, models.OwnerTypeTransportCompany, company.ID, models.SharedTypeAddress, address.ID); err != nil {
			return err
		}

		for _, phoneInput := range req.Phones {
			phone, err := s.resolver.ResolvePhone(txCtx, phoneInput)
			if err != nil {
				return err
			}
			if err := s.resolver.Associate(txCtx, models.OwnerTypeTransportCompany, company.ID, models.SharedTypePhone, phone.ID); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return s.companyDTO(ctx, company, address, taxID)
}

// GetTransportCompany returns one transport company by id
func (s *CompanyFlowImpl) GetTransportCompany(ctx context.Context, companyID uint) (*dto.TransportCompanyDTO, error) {
	company, err := s.companyRepo.ByID(ctx, companyID)
	if err != nil {
		return nil, NewInternalError("failed to load transport company", err)
	}
	if company == nil || company.IsDeleted {
		return nil, NewNotFoundError("transport company not found", ErrCompanyNotFound)
	}

	address, err := s.addressRepo.ByID(ctx, company.AddressID)
	if err != nil {
		return nil, NewInternalError("failed to load address", err)
	}

	taxID, err := s.resolver.ActiveTaxID(ctx, models.OwnerTypeTransportCompany, company.ID)
	if err != nil {
		return nil, err
	}

	return s.companyDTO(ctx, company, address, taxID)
}

func (s *CompanyFlowImpl) companyDTO(ctx context.Context, company *models.TransportCompany, address *models.Address, taxID *models.TaxID) (*dto.TransportCompanyDTO, error) {
	d := &dto.TransportCompanyDTO{
		ID:   company.ID,
		Name: company.Name,
	}
	if address != nil {
		addr := ToAddressDTO(*address)
		d.Address = &addr
	}
	if taxID != nil {
		t := ToTaxIDDTO(*taxID)
		d.TaxID = &t
	}

	phones, err := s.resolver.ActivePhones(ctx, models.OwnerTypeTransportCompany, company.ID)
	if err != nil {
		return nil, err
	}
	for _, p := range phones {
		d.Phones = append(d.Phones, ToPhoneDTO(*p))
	}

	return d, nil
}

// CreateVehicle registers a truck under a transport company
func (s *CompanyFlowImpl) CreateVehicle(ctx context.Context, req *dto.CreateVehicleRequest, metadata *ClientMetadata) (*dto.VehicleDTO, error) {
	var vehicle *models.Vehicle

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		company, err := s.companyRepo.ByID(txCtx, req.TransportCompanyID)
		if err != nil {
			return NewInternalError("failed to load transport company", err)
		}
		if company == nil || company.IsDeleted {
			return NewNotFoundError("transport company not found", ErrCompanyNotFound)
		}

		existing, err := s.vehicleRepo.ByPlate(txCtx, req.Plate)
		if err != nil {
			return NewInternalError("failed to check plate", err)
		}
		if existing != nil {
			return NewConflictError("plate already registered", nil)
		}

		vehicle = &models.Vehicle{
			TransportCompanyID: company.ID,
			Plate:              req.Plate,
			Model:              req.Model,
			Color:              req.Color,
			TareReference:      req.TareReference,
			CreatedAt:          s.clock.Now(),
		}
		if err := s.vehicleRepo.Save(txCtx, vehicle); err != nil {
			if isUniqueViolation(err) {
				return NewConflictError("plate was registered concurrently", nil)
			}
			return NewInternalError("failed to create vehicle", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	result := ToVehicleDTO(*vehicle)
	return &result, nil
}

// CreateDriver registers a driver under a transport company. The identity is
// resolved as a shared person, so a known national id reuses the person row.
func (s *CompanyFlowImpl) CreateDriver(ctx context.Context, req *dto.CreateDriverRequest, metadata *ClientMetadata) (*dto.DriverDTO, error) {
	var driver *models.Driver
	var person *models.Person

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		company, err := s.companyRepo.ByID(txCtx, req.TransportCompanyID)
		if err != nil {
			return NewInternalError("failed to load transport company", err)
		}
		if company == nil || company.IsDeleted {
			return NewNotFoundError("transport company not found", ErrCompanyNotFound)
		}

		person, err = s.resolver.ResolvePerson(txCtx, req.Person)
		if err != nil {
			return err
		}

		driver, err = s.driverRepo.ByPerson(txCtx, person.ID)
		if err != nil {
			return NewInternalError("failed to check driver", err)
		}
		if driver != nil {
			// Same person driving for a new employer: move the record.
			driver.TransportCompanyID = company.ID
			if err := s.driverRepo.Update(txCtx, driver); err != nil {
				return NewInternalError("failed to update driver", err)
			}
			return nil
		}

		driver = &models.Driver{
			PersonID:           person.ID,
			TransportCompanyID: company.ID,
			CreatedAt:          s.clock.Now(),
		}
		if err := s.driverRepo.Save(txCtx, driver); err != nil {
			return NewInternalError("failed to create driver", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	phones, err := s.resolver.ActivePhones(ctx, models.OwnerTypePerson, person.ID)
	if err != nil {
		return nil, err
	}

	return &dto.DriverDTO{
		ID:                 driver.ID,
		TransportCompanyID: driver.TransportCompanyID,
		Person:             ToPersonDTO(*person, phones),
	}, nil
}
