package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Davisit00/aviges/models"
	"gorm.io/gorm"
)

// WeighingTicketRepositoryImpl implements WeighingTicketRepository interface
type WeighingTicketRepositoryImpl struct {
	*BaseRepository[models.WeighingTicket, models.WeighingTicketFilter]
}

// NewWeighingTicketRepository creates a new weighing ticket repository
func NewWeighingTicketRepository(db *gorm.DB) WeighingTicketRepository {
	return &WeighingTicketRepositoryImpl{
		BaseRepository: NewBaseRepository[models.WeighingTicket, models.WeighingTicketFilter](db),
	}
}

// ByTicketNumber retrieves the active ticket with the given number
func (r *WeighingTicketRepositoryImpl) ByTicketNumber(ctx context.Context, ticketNumber string) (*models.WeighingTicket, error) {
	db := r.getDB(ctx)

	var ticket models.WeighingTicket
	err := db.Where("ticket_number = ? AND is_deleted = false", ticketNumber).
		Last(&ticket).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ticket by number: %w", err)
	}

	return &ticket, nil
}

// ListInProgress retrieves open tickets, oldest first, for the front-desk board
func (r *WeighingTicketRepositoryImpl) ListInProgress(ctx context.Context, limit, offset int) ([]*models.WeighingTicket, error) {
	db := r.getDB(ctx)

	query := db.Model(&models.WeighingTicket{}).
		Where("status = ? AND voided_at IS NULL AND is_deleted = false", models.TicketStatusInProgress).
		Order("created_at ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var tickets []*models.WeighingTicket
	err := query.Find(&tickets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list in-progress tickets: %w", err)
	}

	return tickets, nil
}

func applyTicketFilter(query *gorm.DB, filter models.WeighingTicketFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.TicketNumber != nil {
		query = query.Where("ticket_number = ?", *filter.TicketNumber)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.AssignmentID != nil {
		query = query.Where("assignment_id = ?", *filter.AssignmentID)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Voided != nil {
		if *filter.Voided {
			query = query.Where("voided_at IS NOT NULL")
		} else {
			query = query.Where("voided_at IS NULL")
		}
	}
	if filter.IsDeleted != nil {
		query = query.Where("is_deleted = ?", *filter.IsDeleted)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at <= ?", *filter.CreatedBefore)
	}
	return query
}

// ByFilter retrieves tickets based on filter criteria
func (r *WeighingTicketRepositoryImpl) ByFilter(ctx context.Context, filter models.WeighingTicketFilter, orderBy string, limit, offset int) ([]*models.WeighingTicket, error) {
	db := r.getDB(ctx)
	query := applyTicketFilter(db.Model(&models.WeighingTicket{}), filter)

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

	var tickets []*models.WeighingTicket
	err := query.Find(&tickets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find tickets by filter: %w", err)
	}

	return tickets, nil
}

// Count returns the number of tickets matching the filter
func (r *WeighingTicketRepositoryImpl) Count(ctx context.Context, filter models.WeighingTicketFilter) (int64, error) {
	db := r.getDB(ctx)
	query := applyTicketFilter(db.Model(&models.WeighingTicket{}), filter)

	var count int64
	err := query.Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	return count, nil
}

// Exists checks if any ticket matching the filter exists
func (r *WeighingTicketRepositoryImpl) Exists(ctx context.Context, filter models.WeighingTicketFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
