package businessflow

import (
	"context"

	"github.com/Davisit00/aviges/app/dto"
	"github.com/Davisit00/aviges/models"
	"github.com/Davisit00/aviges/repository"
	"github.com/Davisit00/aviges/utils"
	"gorm.io/gorm"
)

// CatalogFlow handles the reference data tickets draw on: locations and products
type CatalogFlow interface {
	CreateLocation(ctx context.Context, req *dto.CreateLocationRequest, metadata *ClientMetadata) (*dto.LocationDTO, error)
	ListLocations(ctx context.Context) ([]dto.LocationDTO, error)
	CreateProduct(ctx context.Context, req *dto.CreateProductRequest, metadata *ClientMetadata) (*dto.ProductDTO, error)
	ListProducts(ctx context.Context) ([]dto.ProductDTO, error)
}

// CatalogFlowImpl implements the catalog business flow
type CatalogFlowImpl struct {
	locationRepo repository.LocationRepository
	productRepo  repository.ProductRepository
	resolver     *EntityResolver
	clock        utils.Clock
	db           *gorm.DB
}

// NewCatalogFlow creates a new catalog flow instance
func NewCatalogFlow(
	locationRepo repository.LocationRepository,
	productRepo repository.ProductRepository,
	resolver *EntityResolver,
	clock utils.Clock,
	db *gorm.DB,
) CatalogFlow {
	return &CatalogFlowImpl{
		locationRepo: locationRepo,
		productRepo:  productRepo,
		resolver:     resolver,
		clock:        clock,
		db:           db,
	}
}

// CreateLocation registers a site tickets can reference
func (s *CatalogFlowImpl) CreateLocation(ctx context.Context, req *dto.CreateLocationRequest, metadata *ClientMetadata) (*dto.LocationDTO, error) {
	if !models.IsValidLocationType(req.Type) {
		return nil, NewValidationError("unknown location type", nil)
	}

	var location *models.Location
	var address *models.Address

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		existing, err := s.locationRepo.ByName(txCtx, req.Name)
		if err != nil {
			return NewInternalError("failed to check location name", err)
		}
		if existing != nil {
			return NewConflictError("location name already exists", nil)
		}

		address, err = s.resolver.ResolveAddress(txCtx, req.Address)
		if err != nil {
			return err
		}

		location = &models.Location{
			AddressID: address.ID,
			Name:      req.Name,
			Type:      req.Type,
			CreatedAt: s.clock.Now(),
		}
		if err := s.locationRepo.Save(txCtx, location); err != nil {
			if isUniqueViolation(err) {
				return NewConflictError("location name was registered concurrently", nil)
			}
			return NewInternalError("failed to create location", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	location.Address = address
	result := ToLocationDTO(*location)
	return &result, nil
}

// ListLocations returns all active locations
func (s *CatalogFlowImpl) ListLocations(ctx context.Context) ([]dto.LocationDTO, error) {
	locations, err := s.locationRepo.ByFilter(ctx, models.LocationFilter{
		IsDeleted: utils.ToPtr(false),
	}, "name ASC", 0, 0)
	if err != nil {
		return nil, NewInternalError("failed to list locations", err)
	}

	result := make([]dto.LocationDTO, 0, len(locations))
	for _, l := range locations {
		result = append(result, ToLocationDTO(*l))
	}

	return result, nil
}

// CreateProduct registers a weighable good
func (s *CatalogFlowImpl) CreateProduct(ctx context.Context, req *dto.CreateProductRequest, metadata *ClientMetadata) (*dto.ProductDTO, error) {
	var product *models.Product

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		existing, err := s.productRepo.ByCode(txCtx, req.Code)
		if err != nil {
			return NewInternalError("failed to check product code", err)
		}
		if existing != nil {
			return NewConflictError("product code already exists", nil)
		}

		product = &models.Product{
			Code:        req.Code,
			Name:        req.Name,
			Description: req.Description,
			CreatedAt:   s.clock.Now(),
		}
		if err := s.productRepo.Save(txCtx, product); err != nil {
			if isUniqueViolation(err) {
				return NewConflictError("product code was registered concurrently", nil)
			}
			return NewInternalError("failed to create product", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	result := ToProductDTO(*product)
	return &result, nil
}

// ListProducts returns all active products
func (s *CatalogFlowImpl) ListProducts(ctx context.Context) ([]dto.ProductDTO, error) {
	products, err := s.productRepo.ByFilter(ctx, models.ProductFilter{
		IsDeleted: utils.ToPtr(false),
	}, "code ASC", 0, 0)
	if err != nil {
		return nil, NewInternalError("failed to list products", err)
	}

	result := make([]dto.ProductDTO, 0, len(products))
	for _, p := range products {
		result = append(result, ToProductDTO(*p))
	}

	return result, nil
}
