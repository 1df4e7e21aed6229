package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/tableside/backend/internal/domain/menu"
	"github.com/tableside/backend/internal/domain/ordering"
	"github.com/tableside/backend/internal/domain/shared"
	"github.com/tableside/backend/internal/domain/tenant"
)

// MockOrderRepository is a mock implementation of ordering.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveWithLock(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByIDForRestaurant(ctx context.Context, restaurantID, orderID uuid.UUID) (*ordering.Order, error) {
	args := m.Called(ctx, restaurantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, restaurantID uuid.UUID, orderNumber string) (*ordering.Order, error) {
	args := m.Called(ctx, restaurantID, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) ListForRestaurant(ctx context.Context, restaurantID uuid.UUID, orderFilter ordering.OrderFilter, filter shared.Filter) (shared.Paginated[ordering.Order], error) {
	args := m.Called(ctx, restaurantID, orderFilter, filter)
	return args.Get(0).(shared.Paginated[ordering.Order]), args.Error(1)
}

func (m *MockOrderRepository) GetDailyStats(ctx context.Context, restaurantID uuid.UUID, day time.Time) (*ordering.DailyStats, error) {
	args := m.Called(ctx, restaurantID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.DailyStats), args.Error(1)
}

// MockRestaurantRepository is a mock implementation of tenant.RestaurantRepository
type MockRestaurantRepository struct {
	mock.Mock
}

func (m *MockRestaurantRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenant.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Restaurant), args.Error(1)
}

func (m *MockRestaurantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tenant.Restaurant, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tenant.Restaurant), args.Error(1)
}

func (m *MockRestaurantRepository) Save(ctx context.Context, restaurant *tenant.Restaurant) error {
	args := m.Called(ctx, restaurant)
	return args.Error(0)
}

func (m *MockRestaurantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRestaurantRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRestaurantRepository) FindBySlug(ctx context.Context, slug string) (*tenant.Restaurant, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Restaurant), args.Error(1)
}

func (m *MockRestaurantRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

// MockTableRepository is a mock implementation of tenant.TableRepository
type MockTableRepository struct {
	mock.Mock
}

func (m *MockTableRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenant.DiningTable, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.DiningTable), args.Error(1)
}

func (m *MockTableRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tenant.DiningTable, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tenant.DiningTable), args.Error(1)
}

func (m *MockTableRepository) Save(ctx context.Context, table *tenant.DiningTable) error {
	args := m.Called(ctx, table)
	return args.Error(0)
}

func (m *MockTableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTableRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTableRepository) FindByIDForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) (*tenant.DiningTable, error) {
	args := m.Called(ctx, restaurantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.DiningTable), args.Error(1)
}

func (m *MockTableRepository) FindAllForRestaurant(ctx context.Context, restaurantID uuid.UUID, filter shared.Filter) ([]tenant.DiningTable, error) {
	args := m.Called(ctx, restaurantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tenant.DiningTable), args.Error(1)
}

func (m *MockTableRepository) FindByQRToken(ctx context.Context, restaurantID uuid.UUID, token string) (*tenant.DiningTable, error) {
	args := m.Called(ctx, restaurantID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.DiningTable), args.Error(1)
}

func (m *MockTableRepository) FindByNumber(ctx context.Context, restaurantID uuid.UUID, tableNumber string) (*tenant.DiningTable, error) {
	args := m.Called(ctx, restaurantID, tableNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.DiningTable), args.Error(1)
}

// MockMenuItemRepository is a mock implementation of menu.MenuItemRepository
type MockMenuItemRepository struct {
	mock.Mock
}

func (m *MockMenuItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*menu.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]menu.MenuItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]menu.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) Save(ctx context.Context, item *menu.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMenuItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMenuItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMenuItemRepository) FindByIDForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) (*menu.MenuItem, error) {
	args := m.Called(ctx, restaurantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) FindAllForRestaurant(ctx context.Context, restaurantID uuid.UUID, filter shared.Filter) ([]menu.MenuItem, error) {
	args := m.Called(ctx, restaurantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]menu.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) FindByCategory(ctx context.Context, restaurantID, categoryID uuid.UUID) ([]menu.MenuItem, error) {
	args := m.Called(ctx, restaurantID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]menu.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) LinkAddonGroup(ctx context.Context, restaurantID, itemID, groupID uuid.UUID) error {
	args := m.Called(ctx, restaurantID, itemID, groupID)
	return args.Error(0)
}

func (m *MockMenuItemRepository) UnlinkAddonGroup(ctx context.Context, restaurantID, itemID, groupID uuid.UUID) error {
	args := m.Called(ctx, restaurantID, itemID, groupID)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of menu.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*menu.MenuCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.MenuCategory), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]menu.MenuCategory, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]menu.MenuCategory), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *menu.MenuCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) FindByIDForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) (*menu.MenuCategory, error) {
	args := m.Called(ctx, restaurantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.MenuCategory), args.Error(1)
}

func (m *MockCategoryRepository) FindAllForRestaurant(ctx context.Context, restaurantID uuid.UUID, filter shared.Filter) ([]menu.MenuCategory, error) {
	args := m.Called(ctx, restaurantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]menu.MenuCategory), args.Error(1)
}

func (m *MockCategoryRepository) FindMenuTree(ctx context.Context, restaurantID uuid.UUID) ([]menu.MenuCategory, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]menu.MenuCategory), args.Error(1)
}

// MockAddonGroupRepository is a mock implementation of menu.AddonGroupRepository
type MockAddonGroupRepository struct {
	mock.Mock
}

func (m *MockAddonGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*menu.AddonGroup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.AddonGroup), args.Error(1)
}

func (m *MockAddonGroupRepository) FindAll(ctx context.Context, filter shared.Filter) ([]menu.AddonGroup, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]menu.AddonGroup), args.Error(1)
}

func (m *MockAddonGroupRepository) Save(ctx context.Context, group *menu.AddonGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockAddonGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAddonGroupRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAddonGroupRepository) FindByIDForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) (*menu.AddonGroup, error) {
	args := m.Called(ctx, restaurantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*menu.AddonGroup), args.Error(1)
}

func (m *MockAddonGroupRepository) FindAllForRestaurant(ctx context.Context, restaurantID uuid.UUID, filter shared.Filter) ([]menu.AddonGroup, error) {
	args := m.Called(ctx, restaurantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]menu.AddonGroup), args.Error(1)
}

// MockNumberGenerator is a mock implementation of ordering.NumberGenerator
type MockNumberGenerator struct {
	mock.Mock
}

func (m *MockNumberGenerator) NextOrderNumber(ctx context.Context, restaurantID uuid.UUID, day time.Time) (string, error) {
	args := m.Called(ctx, restaurantID, day)
	return args.String(0), args.Error(1)
}
