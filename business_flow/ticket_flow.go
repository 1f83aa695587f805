package businessflow

import (
	"context"
	"fmt"
	"math"

	"github.com/Davisit00/aviges/app/dto"
	"github.com/Davisit00/aviges/models"
	"github.com/Davisit00/aviges/repository"
	"github.com/Davisit00/aviges/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TicketFlow handles the weighing ticket lifecycle
type TicketFlow interface {
	CreateTicket(ctx context.Context, req *dto.CreateTicketRequest, createdByUserID uint, metadata *ClientMetadata) (*dto.TicketDTO, error)
	RecordWeight(ctx context.Context, ticketID uint, req *dto.RecordWeightRequest, recordedByUserID uint) (*dto.TicketDTO, error)
	ReprintTicket(ctx context.Context, ticketID uint) (*dto.ReprintResponse, error)
	VoidTicket(ctx context.Context, ticketID uint, req *dto.VoidTicketRequest) (*dto.TicketDTO, error)
	GetTicket(ctx context.Context, ticketID uint) (*dto.TicketDTO, error)
	GetTicketByNumber(ctx context.Context, ticketNumber string) (*dto.TicketDTO, error)
	ListTickets(ctx context.Context, req *dto.ListTicketsRequest) (*dto.TicketListResponse, error)
	ListPendingTickets(ctx context.Context, limit int) ([]dto.TicketDTO, error)
}

// TicketFlowImpl implements the weighing ticket business flow
type TicketFlowImpl struct {
	ticketRepo     repository.WeighingTicketRepository
	assignmentRepo repository.AssignmentRepository
	driverRepo     repository.DriverRepository
	vehicleRepo    repository.VehicleRepository
	productRepo    repository.ProductRepository
	locationRepo   repository.LocationRepository
	clock          utils.Clock
	db             *gorm.DB
}

// NewTicketFlow creates a new ticket flow instance
func NewTicketFlow(
	ticketRepo repository.WeighingTicketRepository,
	assignmentRepo repository.AssignmentRepository,
	driverRepo repository.DriverRepository,
	vehicleRepo repository.VehicleRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	clock utils.Clock,
	db *gorm.DB,
) TicketFlow {
	return &TicketFlowImpl{
		ticketRepo:     ticketRepo,
		assignmentRepo: assignmentRepo,
		driverRepo:     driverRepo,
		vehicleRepo:    vehicleRepo,
		productRepo:    productRepo,
		locationRepo:   locationRepo,
		clock:          clock,
		db:             db,
	}
}

// CreateTicket opens a new in-progress ticket. The ticket number is allocated
// in two steps inside one transaction: the row is inserted with a placeholder
// that satisfies the uniqueness index, then rewritten as the zero-padded
// primary key once the insert has assigned it.
func (s *TicketFlowImpl) CreateTicket(ctx context.Context, req *dto.CreateTicketRequest, createdByUserID uint, metadata *ClientMetadata) (*dto.TicketDTO, error) {
	if !models.IsValidTicketType(req.Type) {
		return nil, NewValidationError("unknown ticket type", nil)
	}
	if req.OriginLocationID == req.DestinationLocationID {
		return nil, NewValidationError("origin and destination must differ", ErrSameOriginDestination)
	}

	var ticket *models.WeighingTicket

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		driver, err := s.driverRepo.ByID(txCtx, req.DriverID)
		if err != nil {
			return NewInternalError("failed to load driver", err)
		}
		if driver == nil || driver.IsDeleted {
			return NewNotFoundError("driver not found", ErrDriverNotFound)
		}

		vehicle, err := s.vehicleRepo.ByID(txCtx, req.VehicleID)
		if err != nil {
			return NewInternalError("failed to load vehicle", err)
		}
		if vehicle == nil || vehicle.IsDeleted {
			return NewNotFoundError("vehicle not found", ErrVehicleNotFound)
		}

		if driver.TransportCompanyID != vehicle.TransportCompanyID {
			return NewValidationError("driver and vehicle belong to different transport companies", ErrDriverCompanyMismatch)
		}

		product, err := s.productRepo.ByID(txCtx, req.ProductID)
		if err != nil {
			return NewInternalError("failed to load product", err)
		}
		if product == nil || product.IsDeleted {
			return NewNotFoundError("product not found", ErrProductNotFound)
		}

		for _, locID := range []uint{req.OriginLocationID, req.DestinationLocationID} {
			location, err := s.locationRepo.ByID(txCtx, locID)
			if err != nil {
				return NewInternalError("failed to load location", err)
			}
			if location == nil || location.IsDeleted {
				return NewNotFoundError("location not found", ErrLocationNotFound)
			}
		}

		assignment, err := s.resolveAssignment(txCtx, driver.ID, vehicle.ID)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		ticket = &models.WeighingTicket{
			TicketNumber:          placeholderTicketNumber(),
			Type:                  req.Type,
			Status:                models.TicketStatusInProgress,
			AssignmentID:          assignment.ID,
			ProductID:             product.ID,
			OriginLocationID:      req.OriginLocationID,
			DestinationLocationID: req.DestinationLocationID,
			CreatedByUserID:       createdByUserID,
			Observations:          req.Observations,
			CreatedAt:             now,
			UpdatedAt:             now,
		}
		if err := s.ticketRepo.Save(txCtx, ticket); err != nil {
			return NewInternalError("failed to create ticket", err)
		}

		// The insert assigned the primary key; derive the final number from it.
		ticket.TicketNumber = fmt.Sprintf("%0*d", utils.TicketNumberWidth, ticket.ID)
		if err := s.ticketRepo.Update(txCtx, ticket); err != nil {
			return NewInternalError("failed to assign ticket number", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	result := ToTicketDTO(*ticket)
	return &result, nil
}

// resolveAssignment reuses the active assignment for a driver-vehicle pair or
// creates one when the pair has never ridden together.
func (s *TicketFlowImpl) resolveAssignment(ctx context.Context, driverID, vehicleID uint) (*models.Assignment, error) {
	assignment, err := s.assignmentRepo.ActiveByPair(ctx, driverID, vehicleID)
	if err != nil {
		return nil, NewInternalError("failed to look up assignment", err)
	}
	if assignment != nil {
		return assignment, nil
	}

	assignment = &models.Assignment{
		DriverID:  driverID,
		VehicleID: vehicleID,
		CreatedAt: s.clock.Now(),
	}
	if err := s.assignmentRepo.Save(ctx, assignment); err != nil {
		if isUniqueViolation(err) {
			// Lost a race with a concurrent ticket; reuse the winner's row.
			assignment, err = s.assignmentRepo.ActiveByPair(ctx, driverID, vehicleID)
			if err != nil || assignment == nil {
				return nil, NewInternalError("failed to reload assignment after conflict", err)
			}
			return assignment, nil
		}
		return nil, NewInternalError("failed to create assignment", err)
	}

	return assignment, nil
}

// RecordWeight stores one scale reading against an open ticket, stamping the
// operator who took it. Kinds may arrive in either order; re-recording a kind
// overwrites the previous reading while the ticket is still open. When both
// kinds are present the net weight is derived and the ticket transitions to
// finished.
func (s *TicketFlowImpl) RecordWeight(ctx context.Context, ticketID uint, req *dto.RecordWeightRequest, recordedByUserID uint) (*dto.TicketDTO, error) {
	if !models.IsValidWeightKind(req.Kind) {
		return nil, NewValidationError("unknown weight kind", nil)
	}
	if req.Weight <= 0 || req.Weight > utils.MaxScaleWeight {
		return nil, NewValidationError("weight is outside the scale range", ErrWeightOutOfRange)
	}

	var ticket *models.WeighingTicket

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		ticket, err = s.loadOpenTicket(txCtx, ticketID)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		switch req.Kind {
		case models.WeightKindGross:
			ticket.GrossWeight = &req.Weight
			ticket.GrossRecordedAt = &now
			ticket.GrossRecordedByUserID = &recordedByUserID
		case models.WeightKindTare:
			ticket.TareWeight = &req.Weight
			ticket.TareRecordedAt = &now
			ticket.TareRecordedByUserID = &recordedByUserID
		}

		if ticket.HasBothWeights() {
			net := math.Abs(*ticket.GrossWeight - *ticket.TareWeight)
			ticket.NetWeight = &net
			ticket.Status = models.TicketStatusFinished
			ticket.FinishedAt = &now
		}

		ticket.UpdatedAt = now
		if err := s.ticketRepo.Update(txCtx, ticket); err != nil {
			return NewInternalError("failed to record weight", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	result := ToTicketDTO(*ticket)
	return &result, nil
}

// ReprintTicket bumps the reprint counter of a non-voided ticket. The counter
// exists so a printed copy can show it is not the original; open tickets can
// be reprinted too, for the slip handed to a truck waiting on its second
// weigh.
func (s *TicketFlowImpl) ReprintTicket(ctx context.Context, ticketID uint) (*dto.ReprintResponse, error) {
	var ticket *models.WeighingTicket

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		ticket, err = s.ticketRepo.ByID(txCtx, ticketID)
		if err != nil {
			return NewInternalError("failed to load ticket", err)
		}
		if ticket == nil || ticket.IsDeleted {
			return NewNotFoundError("ticket not found", ErrTicketNotFound)
		}
		if ticket.IsVoided() {
			return NewConflictError("ticket has been voided", ErrTicketVoided)
		}

		ticket.ReprintCount++
		ticket.UpdatedAt = s.clock.Now()
		if err := s.ticketRepo.Update(txCtx, ticket); err != nil {
			return NewInternalError("failed to update reprint counter", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &dto.ReprintResponse{
		Ticket:       ToTicketDTO(*ticket),
		ReprintCount: ticket.ReprintCount,
	}, nil
}

// VoidTicket marks a ticket void with a mandatory reason. Voiding is
// orthogonal to the weighing state; both open and finished tickets can be
// voided, but never twice.
func (s *TicketFlowImpl) VoidTicket(ctx context.Context, ticketID uint, req *dto.VoidTicketRequest) (*dto.TicketDTO, error) {
	if req.Reason == "" {
		return nil, NewValidationError("void reason is required", nil)
	}

	var ticket *models.WeighingTicket

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		ticket, err = s.ticketRepo.ByID(txCtx, ticketID)
		if err != nil {
			return NewInternalError("failed to load ticket", err)
		}
		if ticket == nil || ticket.IsDeleted {
			return NewNotFoundError("ticket not found", ErrTicketNotFound)
		}
		if ticket.IsVoided() {
			return NewConflictError("ticket cannot be voided twice", ErrTicketNotVoidable)
		}

		now := s.clock.Now()
		ticket.VoidedAt = &now
		ticket.VoidReason = &req.Reason
		ticket.UpdatedAt = now
		if err := s.ticketRepo.Update(txCtx, ticket); err != nil {
			return NewInternalError("failed to void ticket", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	result := ToTicketDTO(*ticket)
	return &result, nil
}

// GetTicket returns one ticket by id
func (s *TicketFlowImpl) GetTicket(ctx context.Context, ticketID uint) (*dto.TicketDTO, error) {
	ticket, err := s.ticketRepo.ByID(ctx, ticketID)
	if err != nil {
		return nil, NewInternalError("failed to load ticket", err)
	}
	if ticket == nil || ticket.IsDeleted {
		return nil, NewNotFoundError("ticket not found", ErrTicketNotFound)
	}

	result := ToTicketDTO(*ticket)
	return &result, nil
}

// GetTicketByNumber returns one ticket by its printed number
func (s *TicketFlowImpl) GetTicketByNumber(ctx context.Context, ticketNumber string) (*dto.TicketDTO, error) {
	ticket, err := s.ticketRepo.ByTicketNumber(ctx, ticketNumber)
	if err != nil {
		return nil, NewInternalError("failed to load ticket", err)
	}
	if ticket == nil {
		return nil, NewNotFoundError("ticket not found", ErrTicketNotFound)
	}

	result := ToTicketDTO(*ticket)
	return &result, nil
}

// ListPendingTickets returns open tickets oldest first, for the front-desk
// board of trucks still waiting on a weigh
func (s *TicketFlowImpl) ListPendingTickets(ctx context.Context, limit int) ([]dto.TicketDTO, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}

	tickets, err := s.ticketRepo.ListInProgress(ctx, limit, 0)
	if err != nil {
		return nil, NewInternalError("failed to list pending tickets", err)
	}

	pending := make([]dto.TicketDTO, 0, len(tickets))
	for _, t := range tickets {
		pending = append(pending, ToTicketDTO(*t))
	}

	return pending, nil
}

// ListTickets returns a filtered page of tickets, newest first
func (s *TicketFlowImpl) ListTickets(ctx context.Context, req *dto.ListTicketsRequest) (*dto.TicketListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	filter := models.WeighingTicketFilter{
		Type:      req.Type,
		Status:    req.Status,
		Voided:    req.Voided,
		IsDeleted: utils.ToPtr(false),
	}

	total, err := s.ticketRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewInternalError("failed to count tickets", err)
	}

	tickets, err := s.ticketRepo.ByFilter(ctx, filter, "created_at DESC", pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, NewInternalError("failed to list tickets", err)
	}

	resp := &dto.TicketListResponse{
		Tickets: make([]dto.TicketDTO, 0, len(tickets)),
		Pagination: dto.PaginationDTO{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
		},
	}
	for _, t := range tickets {
		resp.Tickets = append(resp.Tickets, ToTicketDTO(*t))
	}

	return resp, nil
}

// loadOpenTicket loads a ticket that can still accept weight readings
func (s *TicketFlowImpl) loadOpenTicket(ctx context.Context, ticketID uint) (*models.WeighingTicket, error) {
	ticket, err := s.ticketRepo.ByID(ctx, ticketID)
	if err != nil {
		return nil, NewInternalError("failed to load ticket", err)
	}
	if ticket == nil || ticket.IsDeleted {
		return nil, NewNotFoundError("ticket not found", ErrTicketNotFound)
	}
	if ticket.IsVoided() {
		return nil, NewConflictError("ticket has been voided", ErrTicketVoided)
	}
	if ticket.IsFinished() {
		return nil, NewConflictError("ticket is already finished", ErrTicketAlreadyFinished)
	}
	return ticket, nil
}

// placeholderTicketNumber returns a throwaway number used between the insert
// that assigns the primary key and the update that derives the real number.
func placeholderTicketNumber() string {
	return "TMP-" + uuid.New().String()
}
