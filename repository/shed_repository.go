package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Davisit00/aviges/models"
	"gorm.io/gorm"
)

// ShedRepositoryImpl implements ShedRepository interface
type ShedRepositoryImpl struct {
	*BaseRepository[models.Shed, models.ShedFilter]
}

// NewShedRepository creates a new shed repository
func NewShedRepository(db *gorm.DB) ShedRepository {
	return &ShedRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Shed, models.ShedFilter](db),
	}
}

// ByFarmAndNumber retrieves the active shed with the given number inside a farm
func (r *ShedRepositoryImpl) ByFarmAndNumber(ctx context.Context, farmID uint, number int) (*models.Shed, error) {
	db := r.getDB(ctx)

	var shed models.Shed
	err := db.Where("farm_id = ? AND number = ? AND is_deleted = false", farmID, number).
		Last(&shed).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find shed by farm and number: %w", err)
	}

	return &shed, nil
}

func applyShedFilter(query *gorm.DB, filter models.ShedFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.FarmID != nil {
		query = query.Where("farm_id = ?", *filter.FarmID)
	}
	if filter.Number != nil {
		query = query.Where("number = ?", *filter.Number)
	}
	if filter.IsDeleted != nil {
		query = query.Where("is_deleted = ?", *filter.IsDeleted)
	}
	return query
}

// ByFilter retrieves sheds based on filter criteria
func (r *ShedRepositoryImpl) ByFilter(ctx context.Context, filter models.ShedFilter, orderBy string, limit, offset int) ([]*models.Shed, error) {
	db := r.getDB(ctx)
	query := applyShedFilter(db.Model(&models.Shed{}), filter)

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

	var sheds []*models.Shed
	err := query.Find(&sheds).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find sheds by filter: %w", err)
	}

	return sheds, nil
}

// Count returns the number of sheds matching the filter
func (r *ShedRepositoryImpl) Count(ctx context.Context, filter models.ShedFilter) (int64, error) {
	db := r.getDB(ctx)
	query := applyShedFilter(db.Model(&models.Shed{}), filter)

	var count int64
	err := query.Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count sheds: %w", err)
	}

	return count, nil
}

// Exists checks if any shed matching the filter exists
func (r *ShedRepositoryImpl) Exists(ctx context.Context, filter models.ShedFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
