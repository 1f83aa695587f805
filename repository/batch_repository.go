package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Davisit00/aviges/models"
	"gorm.io/gorm"
)

// BatchRepositoryImpl implements BatchRepository interface
type BatchRepositoryImpl struct {
	*BaseRepository[models.Batch, models.BatchFilter]
}

// NewBatchRepository creates a new batch repository
func NewBatchRepository(db *gorm.DB) BatchRepository {
	return &BatchRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Batch, models.BatchFilter](db),
	}
}

// ByCode retrieves the active batch with the given code
func (r *BatchRepositoryImpl) ByCode(ctx context.Context, code string) (*models.Batch, error) {
	db := r.getDB(ctx)

	var batch models.Batch
	err := db.Where("code = ? AND is_deleted = false", code).
		Last(&batch).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find batch by code: %w", err)
	}

	return &batch, nil
}

func applyBatchFilter(query *gorm.DB, filter models.BatchFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.ShedID != nil {
		query = query.Where("shed_id = ?", *filter.ShedID)
	}
	if filter.Code != nil {
		query = query.Where("code = ?", *filter.Code)
	}
	if filter.IsDeleted != nil {
		query = query.Where("is_deleted = ?", *filter.IsDeleted)
	}
	if filter.PlacedAfter != nil {
		query = query.Where("placement_date >= ?", *filter.PlacedAfter)
	}
	if filter.PlacedBefore != nil {
		query = query.Where("placement_date <= ?", *filter.PlacedBefore)
	}
	return query
}

// ByFilter retrieves batches based on filter criteria
func (r *BatchRepositoryImpl) ByFilter(ctx context.Context, filter models.BatchFilter, orderBy string, limit, offset int) ([]*models.Batch, error) {
	db := r.getDB(ctx)
	query := applyBatchFilter(db.Model(&models.Batch{}), filter)

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

	var batches []*models.Batch
	err := query.Find(&batches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find batches by filter: %w", err)
	}

	return batches, nil
}

// Count returns the number of batches matching the filter
func (r *BatchRepositoryImpl) Count(ctx context.Context, filter models.BatchFilter) (int64, error) {
	db := r.getDB(ctx)
	query := applyBatchFilter(db.Model(&models.Batch{}), filter)

	var count int64
	err := query.Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count batches: %w", err)
	}

	return count, nil
}

// Exists checks if any batch matching the filter exists
func (r *BatchRepositoryImpl) Exists(ctx context.Context, filter models.BatchFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
