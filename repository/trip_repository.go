package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Davisit00/aviges/models"
	"gorm.io/gorm"
)

// TripTimingRepositoryImpl implements TripTimingRepository interface
type TripTimingRepositoryImpl struct {
	*BaseRepository[models.TripTiming, models.TripTimingFilter]
}

// NewTripTimingRepository creates a new trip timing repository
func NewTripTimingRepository(db *gorm.DB) TripTimingRepository {
	return &TripTimingRepositoryImpl{
		BaseRepository: NewBaseRepository[models.TripTiming, models.TripTimingFilter](db),
	}
}

// ByTicket retrieves the active timing record attached to a ticket
func (r *TripTimingRepositoryImpl) ByTicket(ctx context.Context, ticketID uint) (*models.TripTiming, error) {
	db := r.getDB(ctx)

	var timing models.TripTiming
	err := db.Where("ticket_id = ? AND is_deleted = false", ticketID).
		Last(&timing).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find trip timing by ticket: %w", err)
	}

	return &timing, nil
}

func applyTripTimingFilter(query *gorm.DB, filter models.TripTimingFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.TicketID != nil {
		query = query.Where("ticket_id = ?", *filter.TicketID)
	}
	if filter.IsDeleted != nil {
		query = query.Where("is_deleted = ?", *filter.IsDeleted)
	}
	return query
}

// ByFilter retrieves trip timings based on filter criteria
func (r *TripTimingRepositoryImpl) ByFilter(ctx context.Context, filter models.TripTimingFilter, orderBy string, limit, offset int) ([]*models.TripTiming, error) {
	db := r.getDB(ctx)
	query := applyTripTimingFilter(db.Model(&models.TripTiming{}), filter)

	if orderBy == "" {
		orderBy = "id DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var timings []*models.TripTiming
	err := query.Find(&timings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find trip timings by filter: %w", err)
	}

	return timings, nil
}

// Count returns the number of trip timings matching the filter
func (r *TripTimingRepositoryImpl) Count(ctx context.Context, filter models.TripTimingFilter) (int64, error) {
	db := r.getDB(ctx)
	query := applyTripTimingFilter(db.Model(&models.TripTiming{}), filter)

	var count int64
	err := query.Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count trip timings: %w", err)
	}

	return count, nil
}

// Exists checks if any trip timing matching the filter exists
func (r *TripTimingRepositoryImpl) Exists(ctx context.Context, filter models.TripTimingFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// TripCountRepositoryImpl implements TripCountRepository interface
type TripCountRepositoryImpl struct {
	*BaseRepository[models.TripCount, models.TripCountFilter]
}

// NewTripCountRepository creates a new trip count repository
func NewTripCountRepository(db *gorm.DB) TripCountRepository {
	return &TripCountRepositoryImpl{
		BaseRepository: NewBaseRepository[models.TripCount, models.TripCountFilter](db),
	}
}

// ByTicket retrieves the active count record attached to a ticket
func (r *TripCountRepositoryImpl) ByTicket(ctx context.Context, ticketID uint) (*models.TripCount, error) {
	db := r.getDB(ctx)

	var count models.TripCount
	err := db.Where("ticket_id = ? AND is_deleted = false", ticketID).
		Last(&count).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find trip count by ticket: %w", err)
	}

	return &count, nil
}

func applyTripCountFilter(query *gorm.DB, filter models.TripCountFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.TicketID != nil {
		query = query.Where("ticket_id = ?", *filter.TicketID)
	}
	if filter.IsDeleted != nil {
		query = query.Where("is_deleted = ?", *filter.IsDeleted)
	}
	return query
}

// ByFilter retrieves trip counts based on filter criteria
func (r *TripCountRepositoryImpl) ByFilter(ctx context.Context, filter models.TripCountFilter, orderBy string, limit, offset int) ([]*models.TripCount, error) {
	db := r.getDB(ctx)
	query := applyTripCountFilter(db.Model(&models.TripCount{}), filter)

	if orderBy == "" {
		orderBy = "id DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var counts []*models.TripCount
	err := query.Find(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find trip counts by filter: %w", err)
	}

	return counts, nil
}

// Count returns the number of trip counts matching the filter
func (r *TripCountRepositoryImpl) Count(ctx context.Context, filter models.TripCountFilter) (int64, error) {
	db := r.getDB(ctx)
	query := applyTripCountFilter(db.Model(&models.TripCount{}), filter)

	var count int64
	err := query.Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count trip counts: %w", err)
	}

	return count, nil
}

// Exists checks if any trip count matching the filter exists
func (r *TripCountRepositoryImpl) Exists(ctx context.Context, filter models.TripCountFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// TripOriginRepositoryImpl implements TripOriginRepository interface
type TripOriginRepositoryImpl struct {
	*BaseRepository[models.TripOrigin, models.TripOriginFilter]
}

// NewTripOriginRepository creates a new trip origin repository
func NewTripOriginRepository(db *gorm.DB) TripOriginRepository {
	return &TripOriginRepositoryImpl{
		BaseRepository: NewBaseRepository[models.TripOrigin, models.TripOriginFilter](db),
	}
}

// ByTicket retrieves the active origin record attached to a ticket
func (r *TripOriginRepositoryImpl) ByTicket(ctx context.Context, ticketID uint) (*models.TripOrigin, error) {
	db := r.getDB(ctx)

	var origin models.TripOrigin
	err := db.Where("ticket_id = ? AND is_deleted = false", ticketID).
		Last(&origin).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find trip origin by ticket: %w", err)
	}

	return &origin, nil
}

// ListByBatch retrieves all active trip origins loaded from a batch
func (r *TripOriginRepositoryImpl) ListByBatch(ctx context.Context, batchID uint) ([]*models.TripOrigin, error) {
	db := r.getDB(ctx)

	var origins []*models.TripOrigin
	err := db.Where("batch_id = ? AND is_deleted = false", batchID).
		Order("id ASC").
		Find(&origins).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list trip origins by batch: %w", err)
	}

	return origins, nil
}

func applyTripOriginFilter(query *gorm.DB, filter models.TripOriginFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.TicketID != nil {
		query = query.Where("ticket_id = ?", *filter.TicketID)
	}
	if filter.BatchID != nil {
		query = query.Where("batch_id = ?", *filter.BatchID)
	}
	if filter.IsDeleted != nil {
		query = query.Where("is_deleted = ?", *filter.IsDeleted)
	}
	return query
}

// ByFilter retrieves trip origins based on filter criteria
func (r *TripOriginRepositoryImpl) ByFilter(ctx context.Context, filter models.TripOriginFilter, orderBy string, limit, offset int) ([]*models.TripOrigin, error) {
	db := r.getDB(ctx)
	query := applyTripOriginFilter(db.Model(&models.TripOrigin{}), filter)

	if orderBy == "" {
		orderBy = "id DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var origins []*models.TripOrigin
	err := query.Find(&origins).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find trip origins by filter: %w", err)
	}

	return origins, nil
}

// Count returns the number of trip origins matching the filter
func (r *TripOriginRepositoryImpl) Count(ctx context.Context, filter models.TripOriginFilter) (int64, error) {
	db := r.getDB(ctx)
	query := applyTripOriginFilter(db.Model(&models.TripOrigin{}), filter)

	var count int64
	err := query.Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count trip origins: %w", err)
	}

	return count, nil
}

// Exists checks if any trip origin matching the filter exists
func (r *TripOriginRepositoryImpl) Exists(ctx context.Context, filter models.TripOriginFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
