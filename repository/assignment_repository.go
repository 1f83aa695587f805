package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Davisit00/aviges/models"
	"gorm.io/gorm"
)

// AssignmentRepositoryImpl implements AssignmentRepository interface
type AssignmentRepositoryImpl struct {
	*BaseRepository[models.Assignment, models.AssignmentFilter]
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &AssignmentRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Assignment, models.AssignmentFilter](db),
	}
}

// ActiveByPair retrieves the active assignment for a driver-vehicle pair
func (r *AssignmentRepositoryImpl) ActiveByPair(ctx context.Context, driverID, vehicleID uint) (*models.Assignment, error) {
	db := r.getDB(ctx)

	var assignment models.Assignment
	err := db.Where("driver_id = ? AND vehicle_id = ? AND is_deleted = false", driverID, vehicleID).
		Last(&assignment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find assignment by pair: %w", err)
	}

	return &assignment, nil
}

func applyAssignmentFilter(query *gorm.DB, filter models.AssignmentFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.DriverID != nil {
		query = query.Where("driver_id = ?", *filter.DriverID)
	}
	if filter.VehicleID != nil {
		query = query.Where("vehicle_id = ?", *filter.VehicleID)
	}
	if filter.IsDeleted != nil {
		query = query.Where("is_deleted = ?", *filter.IsDeleted)
	}
	return query
}

// ByFilter retrieves assignments based on filter criteria
func (r *AssignmentRepositoryImpl) ByFilter(ctx context.Context, filter models.AssignmentFilter, orderBy string, limit, offset int) ([]*models.Assignment, error) {
	db := r.getDB(ctx)
	query := applyAssignmentFilter(db.Model(&models.Assignment{}), filter)

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

	var assignments []*models.Assignment
	err := query.Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find assignments by filter: %w", err)
	}

	return assignments, nil
}

// Count returns the number of assignments matching the filter
func (r *AssignmentRepositoryImpl) Count(ctx context.Context, filter models.AssignmentFilter) (int64, error) {
	db := r.getDB(ctx)
	query := applyAssignmentFilter(db.Model(&models.Assignment{}), filter)

	var count int64
	err := query.Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count assignments: %w", err)
	}

	return count, nil
}

// Exists checks if any assignment matching the filter exists
func (r *AssignmentRepositoryImpl) Exists(ctx context.Context, filter models.AssignmentFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
