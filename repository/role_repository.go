package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Davisit00/aviges/models"
	"gorm.io/gorm"
)

// RoleRepositoryImpl implements RoleRepository interface
type RoleRepositoryImpl struct {
	*BaseRepository[models.Role, models.RoleFilter]
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &RoleRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Role, models.RoleFilter](db),
	}
}

// ByName retrieves the active role with the given name
func (r *RoleRepositoryImpl) ByName(ctx context.Context, name string) (*models.Role, error) {
	db := r.getDB(ctx)

	var role models.Role
	err := db.Where("name = ? AND is_deleted = false", name).
		Last(&role).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find role by name: %w", err)
	}

	return &role, nil
}

func applyRoleFilter(query *gorm.DB, filter models.RoleFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if filter.IsDeleted != nil {
		query = query.Where("is_deleted = ?", *filter.IsDeleted)
	}
	return query
}

// ByFilter retrieves roles based on filter criteria
func (r *RoleRepositoryImpl) ByFilter(ctx context.Context, filter models.RoleFilter, orderBy string, limit, offset int) ([]*models.Role, error) {
	db := r.getDB(ctx)
	query := applyRoleFilter(db.Model(&models.Role{}), filter)

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

	var roles []*models.Role
	err := query.Find(&roles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find roles by filter: %w", err)
	}

	return roles, nil
}

// Count returns the number of roles matching the filter
func (r *RoleRepositoryImpl) Count(ctx context.Context, filter models.RoleFilter) (int64, error) {
	db := r.getDB(ctx)
	query := applyRoleFilter(db.Model(&models.Role{}), filter)

	var count int64
	err := query.Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count roles: %w", err)
	}

	return count, nil
}

// Exists checks if any role matching the filter exists
func (r *RoleRepositoryImpl) Exists(ctx context.Context, filter models.RoleFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
