package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Davisit00/aviges/models"
	"gorm.io/gorm"
)

// LocationRepositoryImpl implements LocationRepository interface
type LocationRepositoryImpl struct {
	*BaseRepository[models.Location, models.LocationFilter]
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &LocationRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Location, models.LocationFilter](db),
	}
}

// ByName retrieves the active location with the given name
func (r *LocationRepositoryImpl) ByName(ctx context.Context, name string) (*models.Location, error) {
	db := r.getDB(ctx)

	var location models.Location
	err := db.Where("name = ? AND is_deleted = false", name).
		Last(&location).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find location by name: %w", err)
	}

	return &location, nil
}

func applyLocationFilter(query *gorm.DB, filter models.LocationFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.AddressID != nil {
		query = query.Where("address_id = ?", *filter.AddressID)
	}
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.IsDeleted != nil {
		query = query.Where("is_deleted = ?", *filter.IsDeleted)
	}
	return query
}

// ByFilter retrieves locations based on filter criteria
func (r *LocationRepositoryImpl) ByFilter(ctx context.Context, filter models.LocationFilter, orderBy string, limit, offset int) ([]*models.Location, error) {
	db := r.getDB(ctx)
	query := applyLocationFilter(db.Model(&models.Location{}), filter)

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

	var locations []*models.Location
	err := query.Find(&locations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find locations by filter: %w", err)
	}

	return locations, nil
}

// Count returns the number of locations matching the filter
func (r *LocationRepositoryImpl) Count(ctx context.Context, filter models.LocationFilter) (int64, error) {
	db := r.getDB(ctx)
	query := applyLocationFilter(db.Model(&models.Location{}), filter)

	var count int64
	err := query.Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count locations: %w", err)
	}

	return count, nil
}

// Exists checks if any location matching the filter exists
func (r *LocationRepositoryImpl) Exists(ctx context.Context, filter models.LocationFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
