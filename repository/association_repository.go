package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Davisit00/aviges/models"
	"gorm.io/gorm"
)

// AssociationRepositoryImpl implements AssociationRepository interface
type AssociationRepositoryImpl struct {
	*BaseRepository[models.Association, models.AssociationFilter]
}

// NewAssociationRepository creates a new association repository
func NewAssociationRepository(db *gorm.DB) AssociationRepository {
	return &AssociationRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Association, models.AssociationFilter](db),
	}
}

// FindIncludingDeleted retrieves the link between an owner and a shared entity
// whether or not it has been soft-deleted. Used by the resolver to reactivate
// old links instead of inserting duplicates.
func (r *AssociationRepositoryImpl) FindIncludingDeleted(ctx context.Context, ownerType string, ownerID uint, sharedType string, sharedID uint) (*models.Association, error) {
	db := r.getDB(ctx)

	var assoc models.Association
	err := db.Where("owner_type = ? AND owner_id = ? AND shared_type = ? AND shared_id = ?",
		ownerType, ownerID, sharedType, sharedID).
		Last(&assoc).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find association: %w", err)
	}

	return &assoc, nil
}

// ActiveBySharedEntity retrieves the active link holding a shared entity,
// regardless of which owner holds it.
func (r *AssociationRepositoryImpl) ActiveBySharedEntity(ctx context.Context, sharedType string, sharedID uint) (*models.Association, error) {
	db := r.getDB(ctx)

	var assoc models.Association
	err := db.Where("shared_type = ? AND shared_id = ? AND is_deleted = false", sharedType, sharedID).
		Last(&assoc).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active association by shared entity: %w", err)
	}

	return &assoc, nil
}

// ActiveByOwner retrieves all active links of the given shared kind held by an owner
func (r *AssociationRepositoryImpl) ActiveByOwner(ctx context.Context, ownerType string, ownerID uint, sharedType string) ([]*models.Association, error) {
	db := r.getDB(ctx)

	var assocs []*models.Association
	err := db.Where("owner_type = ? AND owner_id = ? AND shared_type = ? AND is_deleted = false",
		ownerType, ownerID, sharedType).
		Order("id ASC").
		Find(&assocs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list active associations by owner: %w", err)
	}

	return assocs, nil
}

func applyAssociationFilter(query *gorm.DB, filter models.AssociationFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.OwnerType != nil {
		query = query.Where("owner_type = ?", *filter.OwnerType)
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.SharedType != nil {
		query = query.Where("shared_type = ?", *filter.SharedType)
	}
	if filter.SharedID != nil {
		query = query.Where("shared_id = ?", *filter.SharedID)
	}
	if filter.IsDeleted != nil {
		query = query.Where("is_deleted = ?", *filter.IsDeleted)
	}
	return query
}

// ByFilter retrieves associations based on filter criteria
func (r *AssociationRepositoryImpl) ByFilter(ctx context.Context, filter models.AssociationFilter, orderBy string, limit, offset int) ([]*models.Association, error) {
	db := r.getDB(ctx)
	query := applyAssociationFilter(db.Model(&models.Association{}), filter)

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

	var assocs []*models.Association
	err := query.Find(&assocs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find associations by filter: %w", err)
	}

	return assocs, nil
}

// Count returns the number of associations matching the filter
func (r *AssociationRepositoryImpl) Count(ctx context.Context, filter models.AssociationFilter) (int64, error) {
	db := r.getDB(ctx)
	query := applyAssociationFilter(db.Model(&models.Association{}), filter)

	var count int64
	err := query.Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count associations: %w", err)
	}

	return count, nil
}

// Exists checks if any association matching the filter exists
func (r *AssociationRepositoryImpl) Exists(ctx context.Context, filter models.AssociationFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
