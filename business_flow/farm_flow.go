package businessflow

import (
	"context"

	"github.com/Davisit00/aviges/app/dto"
	"github.com/Davisit00/aviges/models"
	"github.com/Davisit00/aviges/repository"
	"github.com/Davisit00/aviges/utils"
	"gorm.io/gorm"
)

// FarmFlow handles farms, sheds and batches
type FarmFlow interface {
	CreateFarm(ctx context.Context, req *dto.CreateFarmRequest, metadata *ClientMetadata) (*dto.FarmDTO, error)
	GetFarm(ctx context.Context, farmID uint) (*dto.FarmDTO, error)
	CreateBatch(ctx context.Context, req *dto.CreateBatchRequest, metadata *ClientMetadata) (*dto.BatchDTO, error)
}

// FarmFlowImpl implements the farm business flow
type FarmFlowImpl struct {
	farmRepo   repository.FarmRepository
	shedRepo   repository.ShedRepository
	batchRepo  repository.BatchRepository
	personRepo repository.PersonRepository
	resolver   *EntityResolver
	clock      utils.Clock
	db         *gorm.DB
}

// NewFarmFlow creates a new farm flow instance
func NewFarmFlow(
	farmRepo repository.FarmRepository,
	shedRepo repository.ShedRepository,
	batchRepo repository.BatchRepository,
	personRepo repository.PersonRepository,
	resolver *EntityResolver,
	clock utils.Clock,
	db *gorm.DB,
) FarmFlow {
	return &FarmFlowImpl{
		farmRepo:   farmRepo,
		shedRepo:   shedRepo,
		batchRepo:  batchRepo,
		personRepo: personRepo,
		resolver:   resolver,
		clock:      clock,
		db:         db,
	}
}

// CreateFarm registers a farm with its owner and initial sheds. The owner goes
// through the person resolver; a known national id reuses and updates the
// existing person.
func (s *FarmFlowImpl) CreateFarm(ctx context.Context, req *dto.CreateFarmRequest, metadata *ClientMetadata) (*dto.FarmDTO, error) {
	var farm *models.Farm
	var owner *models.Person
	var sheds []*models.Shed

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		existing, err := s.farmRepo.ByName(txCtx, req.Name)
		if err != nil {
			return NewInternalError("failed to check farm name", err)
		}
		if existing != nil {
			return NewConflictError("farm name already exists", nil)
		}

		owner, err = s.resolver.ResolvePerson(txCtx, req.Owner)
		if err != nil {
			return err
		}

		address, err := s.resolver.ResolveAddress(txCtx, req.Address)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		farm = &models.Farm{
			OwnerPersonID: owner.ID,
			AddressID:     address.ID,
			Name:          req.Name,
			CreatedAt:     now,
		}
		if err := s.farmRepo.Save(txCtx, farm); err != nil {
			if isUniqueViolation(err) {
				return NewConflictError("farm name was registered concurrently", nil)
			}
			return NewInternalError("failed to create farm", err)
		}

		for _, shedInput := range req.Sheds {
			shed := &models.Shed{
				FarmID:    farm.ID,
				Number:    shedInput.Number,
				Capacity:  shedInput.Capacity,
				CreatedAt: now,
			}
			if err := s.shedRepo.Save(txCtx, shed); err != nil {
				if isUniqueViolation(err) {
					return NewConflictError("duplicate shed number in farm", nil)
				}
				return NewInternalError("failed to create shed", err)
			}
			sheds = append(sheds, shed)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return s.farmDTO(ctx, farm, owner, sheds)
}

// GetFarm returns one farm with its sheds
func (s *FarmFlowImpl) GetFarm(ctx context.Context, farmID uint) (*dto.FarmDTO, error) {
	farm, err := s.farmRepo.ByID(ctx, farmID)
	if err != nil {
		return nil, NewInternalError("failed to load farm", err)
	}
	if farm == nil || farm.IsDeleted {
		return nil, NewNotFoundError("farm not found", ErrFarmNotFound)
	}

	owner, err := s.personRepo.ByID(ctx, farm.OwnerPersonID)
	if err != nil {
		return nil, NewInternalError("failed to load farm owner", err)
	}
	if owner == nil {
		return nil, NewNotFoundError("person not found", ErrPersonNotFound)
	}

	sheds, err := s.shedRepo.ByFilter(ctx, models.ShedFilter{
		FarmID:    &farm.ID,
		IsDeleted: utils.ToPtr(false),
	}, "number ASC", 0, 0)
	if err != nil {
		return nil, NewInternalError("failed to list sheds", err)
	}

	return s.farmDTO(ctx, farm, owner, sheds)
}

func (s *FarmFlowImpl) farmDTO(ctx context.Context, farm *models.Farm, owner *models.Person, sheds []*models.Shed) (*dto.FarmDTO, error) {
	phones, err := s.resolver.ActivePhones(ctx, models.OwnerTypePerson, owner.ID)
	if err != nil {
		return nil, err
	}

	d := &dto.FarmDTO{
		ID:    farm.ID,
		Name:  farm.Name,
		Owner: ToPersonDTO(*owner, phones),
	}
	for _, shed := range sheds {
		d.Sheds = append(d.Sheds, ToShedDTO(*shed))
	}

	return d, nil
}

// CreateBatch places a flock in a shed
func (s *FarmFlowImpl) CreateBatch(ctx context.Context, req *dto.CreateBatchRequest, metadata *ClientMetadata) (*dto.BatchDTO, error) {
	var batch *models.Batch

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		shed, err := s.shedRepo.ByID(txCtx, req.ShedID)
		if err != nil {
			return NewInternalError("failed to load shed", err)
		}
		if shed == nil || shed.IsDeleted {
			return NewNotFoundError("shed not found", ErrShedNotFound)
		}

		existing, err := s.batchRepo.ByCode(txCtx, req.Code)
		if err != nil {
			return NewInternalError("failed to check batch code", err)
		}
		if existing != nil {
			return NewConflictError("batch code already exists", nil)
		}

		batch = &models.Batch{
			ShedID:        shed.ID,
			Code:          req.Code,
			PlacementDate: req.PlacementDate,
			BirdsPlaced:   req.BirdsPlaced,
			CreatedAt:     s.clock.Now(),
		}
		if err := s.batchRepo.Save(txCtx, batch); err != nil {
			if isUniqueViolation(err) {
				return NewConflictError("batch code was registered concurrently", nil)
			}
			return NewInternalError("failed to create batch", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	result := ToBatchDTO(*batch, batch.AgeInDays(s.clock.Now()))
	return &result, nil
}
