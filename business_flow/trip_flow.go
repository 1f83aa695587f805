package businessflow

import (
	"context"
	"time"

	"github.com/Davisit00/aviges/app/dto"
	"github.com/Davisit00/aviges/models"
	"github.com/Davisit00/aviges/repository"
	"github.com/Davisit00/aviges/utils"
	"gorm.io/gorm"
)

// TripFlow enriches live-bird tickets with timings, counts and batch origin
type TripFlow interface {
	RecordTripTimings(ctx context.Context, ticketID uint, req *dto.RecordTripTimingsRequest) (*dto.TripTimingDTO, error)
	RecordTripCounts(ctx context.Context, ticketID uint, req *dto.RecordTripCountsRequest) (*dto.TripCountDTO, error)
	SetTripOrigin(ctx context.Context, ticketID uint, req *dto.SetTripOriginRequest) (*dto.TripOriginDTO, error)
	ListBatchTrips(ctx context.Context, batchID uint) ([]dto.TripOriginDTO, error)
	GetTripStatistics(ctx context.Context, ticketID uint) (*dto.TripStatisticsDTO, error)
}

// TripFlowImpl implements the trip enrichment business flow
type TripFlowImpl struct {
	ticketRepo repository.WeighingTicketRepository
	timingRepo repository.TripTimingRepository
	countRepo  repository.TripCountRepository
	originRepo repository.TripOriginRepository
	batchRepo  repository.BatchRepository
	clock      utils.Clock
	db         *gorm.DB
}

// NewTripFlow creates a new trip flow instance
func NewTripFlow(
	ticketRepo repository.WeighingTicketRepository,
	timingRepo repository.TripTimingRepository,
	countRepo repository.TripCountRepository,
	originRepo repository.TripOriginRepository,
	batchRepo repository.BatchRepository,
	clock utils.Clock,
	db *gorm.DB,
) TripFlow {
	return &TripFlowImpl{
		ticketRepo: ticketRepo,
		timingRepo: timingRepo,
		countRepo:  countRepo,
		originRepo: originRepo,
		batchRepo:  batchRepo,
		clock:      clock,
		db:         db,
	}
}

// RecordTripTimings merges checkpoint stamps into the ticket's timing record.
// Stamps arrive as the trip progresses; fields absent from the request keep
// their stored values. The merged set must stay in chronological order.
func (s *TripFlowImpl) RecordTripTimings(ctx context.Context, ticketID uint, req *dto.RecordTripTimingsRequest) (*dto.TripTimingDTO, error) {
	var timing *models.TripTiming

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if _, err := s.loadTicket(txCtx, ticketID); err != nil {
			return err
		}

		var err error
		timing, err = s.timingRepo.ByTicket(txCtx, ticketID)
		if err != nil {
			return NewInternalError("failed to load trip timing", err)
		}

		created := false
		if timing == nil {
			timing = &models.TripTiming{
				TicketID:  ticketID,
				CreatedAt: s.clock.Now(),
			}
			created = true
		}

		mergeStamp(&timing.FarmDepartureAt, req.FarmDepartureAt)
		mergeStamp(&timing.PlantArrivalAt, req.PlantArrivalAt)
		mergeStamp(&timing.UnloadStartAt, req.UnloadStartAt)
		mergeStamp(&timing.UnloadEndAt, req.UnloadEndAt)
		mergeStamp(&timing.PlantDepartureAt, req.PlantDepartureAt)

		if !stampsOrdered(timing.FarmDepartureAt, timing.PlantArrivalAt, timing.UnloadStartAt, timing.UnloadEndAt, timing.PlantDepartureAt) {
			return NewValidationError("trip timestamps are out of chronological order", ErrTimingsOutOfOrder)
		}

		if created {
			if err := s.timingRepo.Save(txCtx, timing); err != nil {
				return NewInternalError("failed to create trip timing", err)
			}
		} else if err := s.timingRepo.Update(txCtx, timing); err != nil {
			return NewInternalError("failed to update trip timing", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	result := ToTripTimingDTO(*timing)
	return &result, nil
}

// RecordTripCounts stores bird counts for a ticket, replacing any previous
// record. Missing birds are always derived from guide minus received.
func (s *TripFlowImpl) RecordTripCounts(ctx context.Context, ticketID uint, req *dto.RecordTripCountsRequest) (*dto.TripCountDTO, error) {
	if req.BirdsReceived > req.BirdsOnGuide {
		return nil, NewValidationError("birds received cannot exceed birds on guide", ErrCountsInconsistent)
	}
	if req.BirdsDOA > req.BirdsReceived {
		return nil, NewValidationError("dead-on-arrival birds cannot exceed birds received", ErrCountsInconsistent)
	}

	var count *models.TripCount

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if _, err := s.loadTicket(txCtx, ticketID); err != nil {
			return err
		}

		var err error
		count, err = s.countRepo.ByTicket(txCtx, ticketID)
		if err != nil {
			return NewInternalError("failed to load trip count", err)
		}

		if count == nil {
			count = &models.TripCount{
				TicketID:  ticketID,
				CreatedAt: s.clock.Now(),
			}
			count.BirdsOnGuide = req.BirdsOnGuide
			count.BirdsReceived = req.BirdsReceived
			count.BirdsDOA = req.BirdsDOA
			count.CageCount = req.CageCount
			count.BirdsPerCage = req.BirdsPerCage
			count.AvgCageWeight = req.AvgCageWeight
			if err := s.countRepo.Save(txCtx, count); err != nil {
				return NewInternalError("failed to create trip count", err)
			}
			return nil
		}

		count.BirdsOnGuide = req.BirdsOnGuide
		count.BirdsReceived = req.BirdsReceived
		count.BirdsDOA = req.BirdsDOA
		count.CageCount = req.CageCount
		count.BirdsPerCage = req.BirdsPerCage
		count.AvgCageWeight = req.AvgCageWeight
		if err := s.countRepo.Update(txCtx, count); err != nil {
			return NewInternalError("failed to update trip count", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	result := ToTripCountDTO(*count)
	return &result, nil
}

// SetTripOrigin ties a ticket to the batch its birds were loaded from
func (s *TripFlowImpl) SetTripOrigin(ctx context.Context, ticketID uint, req *dto.SetTripOriginRequest) (*dto.TripOriginDTO, error) {
	var origin *models.TripOrigin
	var batch *models.Batch

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if _, err := s.loadTicket(txCtx, ticketID); err != nil {
			return err
		}

		var err error
		batch, err = s.batchRepo.ByID(txCtx, req.BatchID)
		if err != nil {
			return NewInternalError("failed to load batch", err)
		}
		if batch == nil || batch.IsDeleted {
			return NewNotFoundError("batch not found", ErrBatchNotFound)
		}

		origin, err = s.originRepo.ByTicket(txCtx, ticketID)
		if err != nil {
			return NewInternalError("failed to load trip origin", err)
		}

		if origin == nil {
			origin = &models.TripOrigin{
				TicketID:  ticketID,
				BatchID:   batch.ID,
				CreatedAt: s.clock.Now(),
			}
			if err := s.originRepo.Save(txCtx, origin); err != nil {
				return NewInternalError("failed to create trip origin", err)
			}
			return nil
		}

		origin.BatchID = batch.ID
		if err := s.originRepo.Update(txCtx, origin); err != nil {
			return NewInternalError("failed to update trip origin", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &dto.TripOriginDTO{
		TicketID: ticketID,
		BatchID:  batch.ID,
		FlockAge: batch.AgeInDays(s.clock.Now()),
	}, nil
}

// ListBatchTrips returns every trip loaded from one batch, with the flock age
// as of the call
func (s *TripFlowImpl) ListBatchTrips(ctx context.Context, batchID uint) ([]dto.TripOriginDTO, error) {
	batch, err := s.batchRepo.ByID(ctx, batchID)
	if err != nil {
		return nil, NewInternalError("failed to load batch", err)
	}
	if batch == nil || batch.IsDeleted {
		return nil, NewNotFoundError("batch not found", ErrBatchNotFound)
	}

	origins, err := s.originRepo.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, NewInternalError("failed to list batch trips", err)
	}

	age := batch.AgeInDays(s.clock.Now())
	trips := make([]dto.TripOriginDTO, 0, len(origins))
	for _, o := range origins {
		trips = append(trips, dto.TripOriginDTO{
			TicketID: o.TicketID,
			BatchID:  o.BatchID,
			FlockAge: age,
		})
	}

	return trips, nil
}

// GetTripStatistics derives per-trip statistics from the stored counts and
// the ticket's net weight. Nothing here is ever persisted.
func (s *TripFlowImpl) GetTripStatistics(ctx context.Context, ticketID uint) (*dto.TripStatisticsDTO, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	count, err := s.countRepo.ByTicket(ctx, ticketID)
	if err != nil {
		return nil, NewInternalError("failed to load trip count", err)
	}

	stats := &dto.TripStatisticsDTO{
		TicketID:  ticketID,
		NetWeight: ticket.NetWeight,
	}

	if count != nil {
		if count.BirdsReceived > 0 {
			mortality := float64(count.BirdsDOA) / float64(count.BirdsReceived) * 100
			stats.MortalityPercent = &mortality

			if ticket.NetWeight != nil {
				avg := *ticket.NetWeight / float64(count.BirdsReceived)
				stats.AvgBirdWeight = &avg
			}
		}
		if count.BirdsOnGuide > 0 {
			missing := float64(count.BirdsMissing()) / float64(count.BirdsOnGuide) * 100
			stats.MissingPercent = &missing
		}
	}

	return stats, nil
}

func (s *TripFlowImpl) loadTicket(ctx context.Context, ticketID uint) (*models.WeighingTicket, error) {
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
	return ticket, nil
}

func mergeStamp(dst **time.Time, src *time.Time) {
	if src != nil {
		*dst = src
	}
}

// stampsOrdered checks that the non-nil stamps are non-decreasing in the
// given order. Gaps are fine; trips report checkpoints they skipped as nil.
func stampsOrdered(stamps ...*time.Time) bool {
	var prev *time.Time
	for _, s := range stamps {
		if s == nil {
			continue
		}
		if prev != nil && s.Before(*prev) {
			return false
		}
		prev = s
	}
	return true
}
