package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tableside/backend/internal/domain/menu"
	"github.com/tableside/backend/internal/domain/shared"
)

// GormAddonGroupRepository implements AddonGroupRepository using GORM
type GormAddonGroupRepository struct {
	db *gorm.DB
}

// NewGormAddonGroupRepository creates a new GormAddonGroupRepository
func NewGormAddonGroupRepository(db *gorm.DB) *GormAddonGroupRepository {
	return &GormAddonGroupRepository{db: db}
}

// FindByID finds an addon group with its addons
func (r *GormAddonGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*menu.AddonGroup, error) {
	var group menu.AddonGroup
	if err := r.db.WithContext(ctx).
		Preload("Addons").
		First(&group, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}

// FindByIDForRestaurant finds an addon group by ID within a restaurant
func (r *GormAddonGroupRepository) FindByIDForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) (*menu.AddonGroup, error) {
	var group menu.AddonGroup
	if err := r.db.WithContext(ctx).
		Preload("Addons").
		Where("restaurant_id = ? AND id = ?", restaurantID, id).
		First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}

// FindAll finds addon groups with filtering
func (r *GormAddonGroupRepository) FindAll(ctx context.Context, filter shared.Filter) ([]menu.AddonGroup, error) {
	var groups []menu.AddonGroup
	query := applyListFilter(r.db.WithContext(ctx).Model(&menu.AddonGroup{}), filter, MenuSortFields)
	if err := query.Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// FindAllForRestaurant finds all addon groups for a restaurant
func (r *GormAddonGroupRepository) FindAllForRestaurant(ctx context.Context, restaurantID uuid.UUID, filter shared.Filter) ([]menu.AddonGroup, error) {
	var groups []menu.AddonGroup
	query := applyListFilter(
		r.db.WithContext(ctx).Model(&menu.AddonGroup{}).
			Preload("Addons").
			Where("restaurant_id = ?", restaurantID),
		filter,
		MenuSortFields,
	)
	if err := query.Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// Save creates or updates an addon group with its addons
func (r *GormAddonGroupRepository) Save(ctx context.Context, group *menu.AddonGroup) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Addons").Save(group).Error; err != nil {
			return err
		}

		if group.ID != uuid.Nil {
			currentAddonIDs := make([]uuid.UUID, len(group.Addons))
			for i, a := range group.Addons {
				currentAddonIDs[i] = a.ID
			}

			if len(currentAddonIDs) > 0 {
				if err := tx.Where("addon_group_id = ? AND id NOT IN ?", group.ID, currentAddonIDs).
					Delete(&menu.Addon{}).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Where("addon_group_id = ?", group.ID).
					Delete(&menu.Addon{}).Error; err != nil {
					return err
				}
			}

			for i := range group.Addons {
				group.Addons[i].AddonGroupID = group.ID
				if err := tx.Save(&group.Addons[i]).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// Delete removes an addon group with its addons and item links
func (r *GormAddonGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("addon_group_id = ?", id).Delete(&menu.Addon{}).Error; err != nil {
			return err
		}
		if err := tx.Where("addon_group_id = ?", id).Delete(&itemAddonGroupLink{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&menu.AddonGroup{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts addon groups matching the filter
func (r *GormAddonGroupRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&menu.AddonGroup{})
	if restaurantID, ok := filter.Filters["restaurant_id"]; ok {
		query = query.Where("restaurant_id = ?", restaurantID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ menu.AddonGroupRepository = (*GormAddonGroupRepository)(nil)
