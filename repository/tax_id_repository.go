package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Davisit00/aviges/models"
	"gorm.io/gorm"
)

// TaxIDRepositoryImpl implements TaxIDRepository interface
type TaxIDRepositoryImpl struct {
	*BaseRepository[models.TaxID, models.TaxIDFilter]
}

// NewTaxIDRepository creates a new tax identifier repository
func NewTaxIDRepository(db *gorm.DB) TaxIDRepository {
	return &TaxIDRepositoryImpl{
		BaseRepository: NewBaseRepository[models.TaxID, models.TaxIDFilter](db),
	}
}

// ByTypeAndNumber retrieves the active tax identifier with the given type and number
func (r *TaxIDRepositoryImpl) ByTypeAndNumber(ctx context.Context, idType, number string) (*models.TaxID, error) {
	db := r.getDB(ctx)

	var taxID models.TaxID
	err := db.Where("type = ? AND number = ? AND is_deleted = false", idType, number).
		Last(&taxID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find tax id by type and number: %w", err)
	}

	return &taxID, nil
}

func applyTaxIDFilter(query *gorm.DB, filter models.TaxIDFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Number != nil {
		query = query.Where("number = ?", *filter.Number)
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

// ByFilter retrieves tax identifiers based on filter criteria
func (r *TaxIDRepositoryImpl) ByFilter(ctx context.Context, filter models.TaxIDFilter, orderBy string, limit, offset int) ([]*models.TaxID, error) {
	db := r.getDB(ctx)
	query := applyTaxIDFilter(db.Model(&models.TaxID{}), filter)

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

	var taxIDs []*models.TaxID
	err := query.Find(&taxIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find tax ids by filter: %w", err)
	}

	return taxIDs, nil
}

// Count returns the number of tax identifiers matching the filter
func (r *TaxIDRepositoryImpl) Count(ctx context.Context, filter models.TaxIDFilter) (int64, error) {
	db := r.getDB(ctx)
	query := applyTaxIDFilter(db.Model(&models.TaxID{}), filter)

	var count int64
	err := query.Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count tax ids: %w", err)
	}

	return count, nil
}

// Exists checks if any tax identifier matching the filter exists
func (r *TaxIDRepositoryImpl) Exists(ctx context.Context, filter models.TaxIDFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
