package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Davisit00/aviges/models"
	"gorm.io/gorm"
)

// TransportCompanyRepositoryImpl implements TransportCompanyRepository interface
type TransportCompanyRepositoryImpl struct {
	*BaseRepository[models.TransportCompany, models.TransportCompanyFilter]
}

// NewTransportCompanyRepository creates a new transport company repository
func NewTransportCompanyRepository(db *gorm.DB) TransportCompanyRepository {
	return &TransportCompanyRepositoryImpl{
		BaseRepository: NewBaseRepository[models.TransportCompany, models.TransportCompanyFilter](db),
	}
}

// ByName retrieves the active transport company with the given name
func (r *TransportCompanyRepositoryImpl) ByName(ctx context.Context, name string) (*models.TransportCompany, error) {
	db := r.getDB(ctx)

	var company models.TransportCompany
	err := db.Where("name = ? AND is_deleted = false", name).
		Last(&company).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find transport company by name: %w", err)
	}

	return &company, nil
}

func applyTransportCompanyFilter(query *gorm.DB, filter models.TransportCompanyFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
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

// ByFilter retrieves transport companies based on filter criteria
func (r *TransportCompanyRepositoryImpl) ByFilter(ctx context.Context, filter models.TransportCompanyFilter, orderBy string, limit, offset int) ([]*models.TransportCompany, error) {
	db := r.getDB(ctx)
	query := applyTransportCompanyFilter(db.Model(&models.TransportCompany{}), filter)

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

	var companies []*models.TransportCompany
	err := query.Find(&companies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find transport companies by filter: %w", err)
	}

	return companies, nil
}

// Count returns the number of transport companies matching the filter
func (r *TransportCompanyRepositoryImpl) Count(ctx context.Context, filter models.TransportCompanyFilter) (int64, error) {
	db := r.getDB(ctx)
	query := applyTransportCompanyFilter(db.Model(&models.TransportCompany{}), filter)

	var count int64
	err := query.Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count transport companies: %w", err)
	}

	return count, nil
}

// Exists checks if any transport company matching the filter exists
func (r *TransportCompanyRepositoryImpl) Exists(ctx context.Context, filter models.TransportCompanyFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
