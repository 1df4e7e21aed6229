package menu

import (
	"context"

	"github.com/google/uuid"

	"github.com/tableside/backend/internal/domain/shared"
)

// CategoryRepository persists menu categories
type CategoryRepository interface {
	shared.RestaurantScopedRepository[MenuCategory]
	// FindMenuTree loads the customer-facing menu: active categories in
	// display order, each with its available items, their variants and
	// linked addon groups. Inactive ancestors hide their whole subtree.
	FindMenuTree(ctx context.Context, restaurantID uuid.UUID) ([]MenuCategory, error)
}

// MenuItemRepository persists menu items with their variants and addon links
type MenuItemRepository interface {
	shared.RestaurantScopedRepository[MenuItem]
	// FindByCategory lists items in a category in display order
	FindByCategory(ctx context.Context, restaurantID, categoryID uuid.UUID) ([]MenuItem, error)
	// LinkAddonGroup attaches an addon group to an item
	LinkAddonGroup(ctx context.Context, restaurantID, itemID, groupID uuid.UUID) error
	// UnlinkAddonGroup detaches an addon group from an item
	UnlinkAddonGroup(ctx context.Context, restaurantID, itemID, groupID uuid.UUID) error
}

// AddonGroupRepository persists addon groups and their addons
type AddonGroupRepository interface {
	shared.RestaurantScopedRepository[AddonGroup]
}
