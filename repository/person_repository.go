package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Davisit00/aviges/models"
	"gorm.io/gorm"
)

// PersonRepositoryImpl implements PersonRepository interface
type PersonRepositoryImpl struct {
	*BaseRepository[models.Person, models.PersonFilter]
}

// NewPersonRepository creates a new person repository
func NewPersonRepository(db *gorm.DB) PersonRepository {
	return &PersonRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Person, models.PersonFilter](db),
	}
}

// ByNationalID retrieves the active person holding the given national id
func (r *PersonRepositoryImpl) ByNationalID(ctx context.Context, nationalID string) (*models.Person, error) {
	db := r.getDB(ctx)

	var person models.Person
	err := db.Where("national_id = ? AND is_deleted = false", nationalID).
		Last(&person).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find person by national id: %w", err)
	}

	return &person, nil
}

func applyPersonFilter(query *gorm.DB, filter models.PersonFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.AddressID != nil {
		query = query.Where("address_id = ?", *filter.AddressID)
	}
	if filter.FirstName != nil {
		query = query.Where("first_name = ?", *filter.FirstName)
	}
	if filter.LastName != nil {
		query = query.Where("last_name = ?", *filter.LastName)
	}
	if filter.NationalIDType != nil {
		query = query.Where("national_id_type = ?", *filter.NationalIDType)
	}
	if filter.NationalID != nil {
		query = query.Where("national_id = ?", *filter.NationalID)
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

// ByFilter retrieves persons based on filter criteria
func (r *PersonRepositoryImpl) ByFilter(ctx context.Context, filter models.PersonFilter, orderBy string, limit, offset int) ([]*models.Person, error) {
	db := r.getDB(ctx)
	query := applyPersonFilter(db.Model(&models.Person{}), filter)

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

	var persons []*models.Person
	err := query.Find(&persons).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find persons by filter: %w", err)
	}

	return persons, nil
}

// Count returns the number of persons matching the filter
func (r *PersonRepositoryImpl) Count(ctx context.Context, filter models.PersonFilter) (int64, error) {
	db := r.getDB(ctx)
	query := applyPersonFilter(db.Model(&models.Person{}), filter)

	var count int64
	err := query.Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count persons: %w", err)
	}

	return count, nil
}

// Exists checks if any person matching the filter exists
func (r *PersonRepositoryImpl) Exists(ctx context.Context, filter models.PersonFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
