package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Davisit00/aviges/models"
	"gorm.io/gorm"
)

// FarmRepositoryImpl implements FarmRepository interface
type FarmRepositoryImpl struct {
	*BaseRepository[models.Farm, models.FarmFilter]
}

// NewFarmRepository creates a new farm repository
func NewFarmRepository(db *gorm.DB) FarmRepository {
	return &FarmRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Farm, models.FarmFilter](db),
	}
}

// ByName retrieves the active farm with the given name
func (r *FarmRepositoryImpl) ByName(ctx context.Context, name string) (*models.Farm, error) {
	db := r.getDB(ctx)

	var farm models.Farm
	err := db.Where("name = ? AND is_deleted = false", name).
		Last(&farm).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find farm by name: %w", err)
	}

	return &farm, nil
}

func applyFarmFilter(query *gorm.DB, filter models.FarmFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.OwnerPersonID != nil {
		query = query.Where("owner_person_id = ?", *filter.OwnerPersonID)
	}
	if filter.AddressID != nil {
		query = query.Where("address_id = ?", *filter.AddressID)
	}
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if filter.IsDeleted != nil {
		query = query.Where("is_deleted = ?", *filter.IsDeleted)
	}
	return query
}

// ByFilter retrieves farms based on filter criteria
func (r *FarmRepositoryImpl) ByFilter(ctx context.Context, filter models.FarmFilter, orderBy string, limit, offset int) ([]*models.Farm, error) {
	db := r.getDB(ctx)
	query := applyFarmFilter(db.Model(&models.Farm{}), filter)

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

	var farms []*models.Farm
	err := query.Find(&farms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find farms by filter: %w", err)
	}

	return farms, nil
}

// Count returns the number of farms matching the filter
func (r *FarmRepositoryImpl) Count(ctx context.Context, filter models.FarmFilter) (int64, error) {
	db := r.getDB(ctx)
	query := applyFarmFilter(db.Model(&models.Farm{}), filter)

	var count int64
	err := query.Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count farms: %w", err)
	}

	return count, nil
}

// Exists checks if any farm matching the filter exists
func (r *FarmRepositoryImpl) Exists(ctx context.Context, filter models.FarmFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
