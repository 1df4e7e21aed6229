package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tableside/backend/internal/domain/menu"
	"github.com/tableside/backend/internal/domain/shared"
)

// itemAddonGroupLink is the join row between items and addon groups
type itemAddonGroupLink struct {
	MenuItemID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	AddonGroupID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (itemAddonGroupLink) TableName() string {
	return "item_addon_groups"
}

// GormMenuItemRepository implements MenuItemRepository using GORM
type GormMenuItemRepository struct {
	db *gorm.DB
}

// NewGormMenuItemRepository creates a new GormMenuItemRepository
func NewGormMenuItemRepository(db *gorm.DB) *GormMenuItemRepository {
	return &GormMenuItemRepository{db: db}
}

// FindByID finds a menu item by its ID with variants and addon groups
func (r *GormMenuItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*menu.MenuItem, error) {
	var item menu.MenuItem
	if err := r.db.WithContext(ctx).
		Preload("Variants").
		Preload("AddonGroups.Addons").
		First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByIDForRestaurant finds a menu item by ID within a restaurant
func (r *GormMenuItemRepository) FindByIDForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) (*menu.MenuItem, error) {
	var item menu.MenuItem
	if err := r.db.WithContext(ctx).
		Preload("Variants").
		Preload("AddonGroups.Addons").
		Where("restaurant_id = ? AND id = ?", restaurantID, id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAll finds menu items with filtering
func (r *GormMenuItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]menu.MenuItem, error) {
	var items []menu.MenuItem
	query := applyListFilter(r.db.WithContext(ctx).Model(&menu.MenuItem{}), filter, MenuSortFields)
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindAllForRestaurant finds all menu items for a restaurant
func (r *GormMenuItemRepository) FindAllForRestaurant(ctx context.Context, restaurantID uuid.UUID, filter shared.Filter) ([]menu.MenuItem, error) {
	var items []menu.MenuItem
	query := applyListFilter(
		r.db.WithContext(ctx).Model(&menu.MenuItem{}).
			Preload("Variants").
			Where("restaurant_id = ?", restaurantID),
		filter,
		MenuSortFields,
	)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ?", pattern)
	}
	if categoryID, ok := filter.Filters["category_id"]; ok {
		query = query.Where("category_id = ?", categoryID)
	}

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByCategory lists items in a category in display order
func (r *GormMenuItemRepository) FindByCategory(ctx context.Context, restaurantID, categoryID uuid.UUID) ([]menu.MenuItem, error) {
	var items []menu.MenuItem
	if err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("restaurant_id = ? AND category_id = ?", restaurantID, categoryID).
		Order("display_order ASC, created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates a menu item with its variants
func (r *GormMenuItemRepository) Save(ctx context.Context, item *menu.MenuItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Variants", "AddonGroups").Save(item).Error; err != nil {
			return err
		}

		if item.ID != uuid.Nil {
			currentVariantIDs := make([]uuid.UUID, len(item.Variants))
			for i, v := range item.Variants {
				currentVariantIDs[i] = v.ID
			}

			if len(currentVariantIDs) > 0 {
				if err := tx.Where("menu_item_id = ? AND id NOT IN ?", item.ID, currentVariantIDs).
					Delete(&menu.ItemVariant{}).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Where("menu_item_id = ?", item.ID).
					Delete(&menu.ItemVariant{}).Error; err != nil {
					return err
				}
			}

			for i := range item.Variants {
				item.Variants[i].MenuItemID = item.ID
				if err := tx.Save(&item.Variants[i]).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// LinkAddonGroup attaches an addon group to an item. Both sides must
// belong to the same restaurant.
func (r *GormMenuItemRepository) LinkAddonGroup(ctx context.Context, restaurantID, itemID, groupID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var itemCount int64
		if err := tx.Model(&menu.MenuItem{}).
			Where("restaurant_id = ? AND id = ?", restaurantID, itemID).
			Count(&itemCount).Error; err != nil {
			return err
		}
		if itemCount == 0 {
			return shared.ErrNotFound
		}

		var groupCount int64
		if err := tx.Model(&menu.AddonGroup{}).
			Where("restaurant_id = ? AND id = ?", restaurantID, groupID).
			Count(&groupCount).Error; err != nil {
			return err
		}
		if groupCount == 0 {
			return shared.ErrNotFound
		}

		link := itemAddonGroupLink{MenuItemID: itemID, AddonGroupID: groupID}
		if err := tx.Create(&link).Error; err != nil {
			if isUniqueViolation(err) {
				return shared.ErrAlreadyExists
			}
			return err
		}
		return nil
	})
}

// UnlinkAddonGroup detaches an addon group from an item
func (r *GormMenuItemRepository) UnlinkAddonGroup(ctx context.Context, restaurantID, itemID, groupID uuid.UUID) error {
	var itemCount int64
	if err := r.db.WithContext(ctx).Model(&menu.MenuItem{}).
		Where("restaurant_id = ? AND id = ?", restaurantID, itemID).
		Count(&itemCount).Error; err != nil {
		return err
	}
	if itemCount == 0 {
		return shared.ErrNotFound
	}

	result := r.db.WithContext(ctx).
		Where("menu_item_id = ? AND addon_group_id = ?", itemID, groupID).
		Delete(&itemAddonGroupLink{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a menu item with its variants and addon links
func (r *GormMenuItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_item_id = ?", id).Delete(&menu.ItemVariant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("menu_item_id = ?", id).Delete(&itemAddonGroupLink{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&menu.MenuItem{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts menu items matching the filter
func (r *GormMenuItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&menu.MenuItem{})
	if restaurantID, ok := filter.Filters["restaurant_id"]; ok {
		query = query.Where("restaurant_id = ?", restaurantID)
	}
	if categoryID, ok := filter.Filters["category_id"]; ok {
		query = query.Where("category_id = ?", categoryID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ menu.MenuItemRepository = (*GormMenuItemRepository)(nil)
