package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tableside/backend/internal/domain/shared"
	"github.com/tableside/backend/internal/domain/tenant"
)

// GormRestaurantRepository implements RestaurantRepository using GORM
type GormRestaurantRepository struct {
	db *gorm.DB
}

// NewGormRestaurantRepository creates a new GormRestaurantRepository
func NewGormRestaurantRepository(db *gorm.DB) *GormRestaurantRepository {
	return &GormRestaurantRepository{db: db}
}

// FindByID finds a restaurant by its ID
func (r *GormRestaurantRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenant.Restaurant, error) {
	var restaurant tenant.Restaurant
	if err := r.db.WithContext(ctx).First(&restaurant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &restaurant, nil
}

// FindBySlug finds a restaurant by its public slug
func (r *GormRestaurantRepository) FindBySlug(ctx context.Context, slug string) (*tenant.Restaurant, error) {
	var restaurant tenant.Restaurant
	if err := r.db.WithContext(ctx).First(&restaurant, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &restaurant, nil
}

// ExistsBySlug checks whether a slug is already taken
func (r *GormRestaurantRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&tenant.Restaurant{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll finds all restaurants with filtering
func (r *GormRestaurantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tenant.Restaurant, error) {
	var restaurants []tenant.Restaurant
	query := applyListFilter(r.db.WithContext(ctx).Model(&tenant.Restaurant{}), filter, RestaurantSortFields)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR slug ILIKE ?", pattern, pattern)
	}

	if err := query.Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

// Save creates or updates a restaurant
func (r *GormRestaurantRepository) Save(ctx context.Context, restaurant *tenant.Restaurant) error {
	if err := r.db.WithContext(ctx).Save(restaurant).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete removes a restaurant row. Deactivation is the supported path,
// this exists for administrative cleanup of empty tenants only.
func (r *GormRestaurantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&tenant.Restaurant{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts restaurants matching the filter
func (r *GormRestaurantRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&tenant.Restaurant{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR slug ILIKE ?", pattern, pattern)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyListFilter applies pagination and ordering shared by all
// repositories. Sort fields are validated against the entity's whitelist
// before reaching ORDER BY.
func applyListFilter(query *gorm.DB, filter shared.Filter, sortFields map[string]bool) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	field := ValidateSortField(filter.OrderBy, sortFields, "created_at")
	return query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
}

// isUniqueViolation reports whether the error is a unique constraint
// violation from the underlying driver.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key value")
}

var _ tenant.RestaurantRepository = (*GormRestaurantRepository)(nil)
