package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Davisit00/aviges/models"
	"gorm.io/gorm"
)

// PhoneRepositoryImpl implements PhoneRepository interface
type PhoneRepositoryImpl struct {
	*BaseRepository[models.Phone, models.PhoneFilter]
}

// NewPhoneRepository creates a new phone repository
func NewPhoneRepository(db *gorm.DB) PhoneRepository {
	return &PhoneRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Phone, models.PhoneFilter](db),
	}
}

// ByNumber retrieves the active phone with the given number
func (r *PhoneRepositoryImpl) ByNumber(ctx context.Context, number string) (*models.Phone, error) {
	db := r.getDB(ctx)

	var phone models.Phone
	err := db.Where("number = ? AND is_deleted = false", number).
		Last(&phone).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find phone by number: %w", err)
	}

	return &phone, nil
}

func applyPhoneFilter(query *gorm.DB, filter models.PhoneFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.Number != nil {
		query = query.Where("number = ?", *filter.Number)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
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

// ByFilter retrieves phones based on filter criteria
func (r *PhoneRepositoryImpl) ByFilter(ctx context.Context, filter models.PhoneFilter, orderBy string, limit, offset int) ([]*models.Phone, error) {
	db := r.getDB(ctx)
	query := applyPhoneFilter(db.Model(&models.Phone{}), filter)

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

	var phones []*models.Phone
	err := query.Find(&phones).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find phones by filter: %w", err)
	}

	return phones, nil
}

// Count returns the number of phones matching the filter
func (r *PhoneRepositoryImpl) Count(ctx context.Context, filter models.PhoneFilter) (int64, error) {
	db := r.getDB(ctx)
	query := applyPhoneFilter(db.Model(&models.Phone{}), filter)

	var count int64
	err := query.Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count phones: %w", err)
	}

	return count, nil
}

// Exists checks if any phone matching the filter exists
func (r *PhoneRepositoryImpl) Exists(ctx context.Context, filter models.PhoneFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
