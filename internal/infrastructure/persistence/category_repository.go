package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tableside/backend/internal/domain/menu"
	"github.com/tableside/backend/internal/domain/shared"
)

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category by its ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*menu.MenuCategory, error) {
	var category menu.MenuCategory
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindByIDForRestaurant finds a category by ID within a restaurant
func (r *GormCategoryRepository) FindByIDForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) (*menu.MenuCategory, error) {
	var category menu.MenuCategory
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND id = ?", restaurantID, id).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindAll finds categories across restaurants with filtering
func (r *GormCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]menu.MenuCategory, error) {
	var categories []menu.MenuCategory
	query := applyListFilter(r.db.WithContext(ctx).Model(&menu.MenuCategory{}), filter, MenuSortFields)
	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindAllForRestaurant finds all categories for a restaurant
func (r *GormCategoryRepository) FindAllForRestaurant(ctx context.Context, restaurantID uuid.UUID, filter shared.Filter) ([]menu.MenuCategory, error) {
	var categories []menu.MenuCategory
	query := applyListFilter(
		r.db.WithContext(ctx).Model(&menu.MenuCategory{}).Where("restaurant_id = ?", restaurantID),
		filter,
		MenuSortFields,
	)
	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindMenuTree loads the customer-facing menu tree: active categories in
// display order with available items, each item carrying its variants and
// active addon groups. Display order ties are broken by creation time so
// the listing is stable.
func (r *GormCategoryRepository) FindMenuTree(ctx context.Context, restaurantID uuid.UUID) ([]menu.MenuCategory, error) {
	var categories []menu.MenuCategory
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND is_active = ?", restaurantID, true).
		Order("display_order ASC, created_at ASC").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_available = ?", true).
				Order("display_order ASC, created_at ASC")
		}).
		Preload("Items.Variants", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_available = ?", true).
				Order("display_order ASC, created_at ASC")
		}).
		Preload("Items.AddonGroups", "is_active = ?", true).
		Preload("Items.AddonGroups.Addons", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_available = ?", true).
				Order("display_order ASC, created_at ASC")
		}).
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// Save creates or updates a category. Items are persisted through their
// own repository, never as a side effect of category writes.
func (r *GormCategoryRepository) Save(ctx context.Context, category *menu.MenuCategory) error {
	return r.db.WithContext(ctx).Omit("Items").Save(category).Error
}

// Delete removes a category row
func (r *GormCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&menu.MenuCategory{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts categories matching the filter
func (r *GormCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&menu.MenuCategory{})
	if restaurantID, ok := filter.Filters["restaurant_id"]; ok {
		query = query.Where("restaurant_id = ?", restaurantID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ menu.CategoryRepository = (*GormCategoryRepository)(nil)
