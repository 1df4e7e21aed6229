package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tableside/backend/internal/domain/shared"
	"github.com/tableside/backend/internal/domain/tenant"
)

// GormTableRepository implements TableRepository using GORM
type GormTableRepository struct {
	db *gorm.DB
}

// NewGormTableRepository creates a new GormTableRepository
func NewGormTableRepository(db *gorm.DB) *GormTableRepository {
	return &GormTableRepository{db: db}
}

// FindByID finds a table by its ID
func (r *GormTableRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenant.DiningTable, error) {
	var table tenant.DiningTable
	if err := r.db.WithContext(ctx).First(&table, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &table, nil
}

// FindByIDForRestaurant finds a table by ID within a restaurant
func (r *GormTableRepository) FindByIDForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) (*tenant.DiningTable, error) {
	var table tenant.DiningTable
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND id = ?", restaurantID, id).
		First(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &table, nil
}

// FindByQRToken resolves a table from its QR token within a restaurant.
// The restaurant scope prevents a leaked token from one venue resolving
// inside another.
func (r *GormTableRepository) FindByQRToken(ctx context.Context, restaurantID uuid.UUID, token string) (*tenant.DiningTable, error) {
	var table tenant.DiningTable
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND qr_token = ?", restaurantID, token).
		First(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &table, nil
}

// FindByNumber resolves a table by its number within a restaurant
func (r *GormTableRepository) FindByNumber(ctx context.Context, restaurantID uuid.UUID, tableNumber string) (*tenant.DiningTable, error) {
	var table tenant.DiningTable
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND table_number = ?", restaurantID, tableNumber).
		First(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &table, nil
}

// FindAll finds tables across restaurants with filtering
func (r *GormTableRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tenant.DiningTable, error) {
	var tables []tenant.DiningTable
	query := applyListFilter(r.db.WithContext(ctx).Model(&tenant.DiningTable{}), filter, TableSortFields)
	if err := query.Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

// FindAllForRestaurant finds all tables for a restaurant
func (r *GormTableRepository) FindAllForRestaurant(ctx context.Context, restaurantID uuid.UUID, filter shared.Filter) ([]tenant.DiningTable, error) {
	var tables []tenant.DiningTable
	query := applyListFilter(
		r.db.WithContext(ctx).Model(&tenant.DiningTable{}).Where("restaurant_id = ?", restaurantID),
		filter,
		TableSortFields,
	)
	if err := query.Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

// Save creates or updates a table
func (r *GormTableRepository) Save(ctx context.Context, table *tenant.DiningTable) error {
	if err := r.db.WithContext(ctx).Save(table).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete removes a table row
func (r *GormTableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&tenant.DiningTable{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts tables matching the filter
func (r *GormTableRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&tenant.DiningTable{})
	if restaurantID, ok := filter.Filters["restaurant_id"]; ok {
		query = query.Where("restaurant_id = ?", restaurantID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ tenant.TableRepository = (*GormTableRepository)(nil)
