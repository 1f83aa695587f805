package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Davisit00/aviges/models"
	"gorm.io/gorm"
)

// DriverRepositoryImpl implements DriverRepository interface
type DriverRepositoryImpl struct {
	*BaseRepository[models.Driver, models.DriverFilter]
}

// NewDriverRepository creates a new driver repository
func NewDriverRepository(db *gorm.DB) DriverRepository {
	return &DriverRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Driver, models.DriverFilter](db),
	}
}

// ByPerson retrieves the active driver backed by the given person record
func (r *DriverRepositoryImpl) ByPerson(ctx context.Context, personID uint) (*models.Driver, error) {
	db := r.getDB(ctx)

	var driver models.Driver
	err := db.Where("person_id = ? AND is_deleted = false", personID).
		Last(&driver).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find driver by person: %w", err)
	}

	return &driver, nil
}

func applyDriverFilter(query *gorm.DB, filter models.DriverFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.PersonID != nil {
		query = query.Where("person_id = ?", *filter.PersonID)
	}
	if filter.TransportCompanyID != nil {
		query = query.Where("transport_company_id = ?", *filter.TransportCompanyID)
	}
	if filter.IsDeleted != nil {
		query = query.Where("is_deleted = ?", *filter.IsDeleted)
	}
	return query
}

// ByFilter retrieves drivers based on filter criteria
func (r *DriverRepositoryImpl) ByFilter(ctx context.Context, filter models.DriverFilter, orderBy string, limit, offset int) ([]*models.Driver, error) {
	db := r.getDB(ctx)
	query := applyDriverFilter(db.Model(&models.Driver{}), filter)

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

	var drivers []*models.Driver
	err := query.Find(&drivers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find drivers by filter: %w", err)
	}

	return drivers, nil
}

// Count returns the number of drivers matching the filter
func (r *DriverRepositoryImpl) Count(ctx context.Context, filter models.DriverFilter) (int64, error) {
	db := r.getDB(ctx)
	query := applyDriverFilter(db.Model(&models.Driver{}), filter)

	var count int64
	err := query.Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count drivers: %w", err)
	}

	return count, nil
}

// Exists checks if any driver matching the filter exists
func (r *DriverRepositoryImpl) Exists(ctx context.Context, filter models.DriverFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
