package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Davisit00/aviges/models"
	"gorm.io/gorm"
)

// VehicleRepositoryImpl implements VehicleRepository interface
type VehicleRepositoryImpl struct {
	*BaseRepository[models.Vehicle, models.VehicleFilter]
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &VehicleRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Vehicle, models.VehicleFilter](db),
	}
}

// ByPlate retrieves the active vehicle with the given plate
func (r *VehicleRepositoryImpl) ByPlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	db := r.getDB(ctx)

	var vehicle models.Vehicle
	err := db.Where("plate = ? AND is_deleted = false", plate).
		Last(&vehicle).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find vehicle by plate: %w", err)
	}

	return &vehicle, nil
}

func applyVehicleFilter(query *gorm.DB, filter models.VehicleFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.TransportCompanyID != nil {
		query = query.Where("transport_company_id = ?", *filter.TransportCompanyID)
	}
	if filter.Plate != nil {
		query = query.Where("plate = ?", *filter.Plate)
	}
	if filter.IsDeleted != nil {
		query = query.Where("is_deleted = ?", *filter.IsDeleted)
	}
	return query
}

// ByFilter retrieves vehicles based on filter criteria
func (r *VehicleRepositoryImpl) ByFilter(ctx context.Context, filter models.VehicleFilter, orderBy string, limit, offset int) ([]*models.Vehicle, error) {
	db := r.getDB(ctx)
	query := applyVehicleFilter(db.Model(&models.Vehicle{}), filter)

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

	var vehicles []*models.Vehicle
	err := query.Find(&vehicles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find vehicles by filter: %w", err)
	}

	return vehicles, nil
}

// Count returns the number of vehicles matching the filter
func (r *VehicleRepositoryImpl) Count(ctx context.Context, filter models.VehicleFilter) (int64, error) {
	db := r.getDB(ctx)
	query := applyVehicleFilter(db.Model(&models.Vehicle{}), filter)

	var count int64
	err := query.Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count vehicles: %w", err)
	}

	return count, nil
}

// Exists checks if any vehicle matching the filter exists
func (r *VehicleRepositoryImpl) Exists(ctx context.Context, filter models.VehicleFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
