package repository

import (
	"context"
	"fmt"

	"github.com/Davisit00/aviges/models"
	"gorm.io/gorm"
)

// AddressRepositoryImpl implements AddressRepository interface
type AddressRepositoryImpl struct {
	*BaseRepository[models.Address, models.AddressFilter]
}

// NewAddressRepository creates a new address repository
func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &AddressRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Address, models.AddressFilter](db),
	}
}

func applyAddressFilter(query *gorm.DB, filter models.AddressFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.State != nil {
		query = query.Where("state = ?", *filter.State)
	}
	if filter.Municipality != nil {
		query = query.Where("municipality = ?", *filter.Municipality)
	}
	if filter.Sector != nil {
		query = query.Where("sector = ?", *filter.Sector)
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

// ByFilter retrieves addresses based on filter criteria
func (r *AddressRepositoryImpl) ByFilter(ctx context.Context, filter models.AddressFilter, orderBy string, limit, offset int) ([]*models.Address, error) {
	db := r.getDB(ctx)
	query := applyAddressFilter(db.Model(&models.Address{}), filter)

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

	var addresses []*models.Address
	err := query.Find(&addresses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find addresses by filter: %w", err)
	}

	return addresses, nil
}

// Count returns the number of addresses matching the filter
func (r *AddressRepositoryImpl) Count(ctx context.Context, filter models.AddressFilter) (int64, error) {
	db := r.getDB(ctx)
	query := applyAddressFilter(db.Model(&models.Address{}), filter)

	var count int64
	err := query.Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count addresses: %w", err)
	}

	return count, nil
}

// Exists checks if any address matching the filter exists
func (r *AddressRepositoryImpl) Exists(ctx context.Context, filter models.AddressFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
