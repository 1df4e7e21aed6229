package menu

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tableside/backend/internal/domain/menu"
)

// CreateCategoryRequest creates a menu category
type CreateCategoryRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=100"`
	Description  string `json:"description" binding:"max=1000"`
	DisplayOrder int    `json:"display_order" binding:"min=0"`
}

// UpdateCategoryRequest updates a menu category
type UpdateCategoryRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=100"`
	Description  string `json:"description" binding:"max=1000"`
	DisplayOrder int    `json:"display_order" binding:"min=0"`
}

// CreateMenuItemRequest creates a menu item
type CreateMenuItemRequest struct {
	CategoryID   uuid.UUID       `json:"category_id" binding:"required"`
	Name         string          `json:"name" binding:"required,min=1,max=150"`
	Description  string          `json:"description" binding:"max=2000"`
	BasePrice    decimal.Decimal `json:"base_price" binding:"required"`
	ImageURL     string          `json:"image_url" binding:"omitempty,url,max=500"`
	IsVegetarian bool            `json:"is_vegetarian"`
	DisplayOrder int             `json:"display_order" binding:"min=0"`
}

// UpdateMenuItemRequest updates item display attributes
type UpdateMenuItemRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=150"`
	Description  string `json:"description" binding:"max=2000"`
	ImageURL     string `json:"image_url" binding:"omitempty,url,max=500"`
	IsVegetarian bool   `json:"is_vegetarian"`
	DisplayOrder int    `json:"display_order" binding:"min=0"`
}

// SetPriceRequest changes an item's base price
type SetPriceRequest struct {
	BasePrice decimal.Decimal `json:"base_price" binding:"required"`
}

// SetAvailabilityRequest toggles item availability
type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

// SetActiveRequest toggles category visibility on the storefront
type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// AddVariantRequest attaches a variant option to an item
type AddVariantRequest struct {
	VariantGroup    string          `json:"variant_group" binding:"required,min=1,max=50"`
	OptionName      string          `json:"option_name" binding:"required,min=1,max=100"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
	DisplayOrder    int             `json:"display_order" binding:"min=0"`
}

// CreateAddonGroupRequest creates an addon group
type CreateAddonGroupRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	MinSelect int    `json:"min_select" binding:"min=0"`
	MaxSelect int    `json:"max_select" binding:"min=0"`
}

// AddAddonRequest attaches an addon to a group
type AddAddonRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=100"`
	Price        decimal.Decimal `json:"price"`
	DisplayOrder int             `json:"display_order" binding:"min=0"`
}

// VariantResponse is a variant option in API responses
type VariantResponse struct {
	ID              uuid.UUID       `json:"id"`
	VariantGroup    string          `json:"variant_group"`
	OptionName      string          `json:"option_name"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
	IsAvailable     bool            `json:"is_available"`
	DisplayOrder    int             `json:"display_order"`
}

// AddonResponse is an addon in API responses
type AddonResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	IsAvailable  bool            `json:"is_available"`
	DisplayOrder int             `json:"display_order"`
}

// AddonGroupResponse is an addon group in API responses
type AddonGroupResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	MinSelect int             `json:"min_select"`
	MaxSelect int             `json:"max_select"`
	IsActive  bool            `json:"is_active"`
	Addons    []AddonResponse `json:"addons"`
}

// MenuItemResponse is an item in API responses
type MenuItemResponse struct {
	ID           uuid.UUID            `json:"id"`
	CategoryID   uuid.UUID            `json:"category_id"`
	Name         string               `json:"name"`
	Description  string               `json:"description,omitempty"`
	BasePrice    decimal.Decimal      `json:"base_price"`
	ImageURL     string               `json:"image_url,omitempty"`
	IsVegetarian bool                 `json:"is_vegetarian"`
	IsAvailable  bool                 `json:"is_available"`
	DisplayOrder int                  `json:"display_order"`
	Variants     []VariantResponse    `json:"variants"`
	AddonGroups  []AddonGroupResponse `json:"addon_groups"`
}

// CategoryResponse is a category in API responses
type CategoryResponse struct {
	ID           uuid.UUID          `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description,omitempty"`
	DisplayOrder int                `json:"display_order"`
	IsActive     bool               `json:"is_active"`
	Items        []MenuItemResponse `json:"items,omitempty"`
}

// ToCategoryResponse maps a category and its loaded items
func ToCategoryResponse(category *menu.MenuCategory) CategoryResponse {
	items := make([]MenuItemResponse, 0, len(category.Items))
	for i := range category.Items {
		items = append(items, ToMenuItemResponse(&category.Items[i]))
	}

	return CategoryResponse{
		ID:           category.ID,
		Name:         category.Name,
		Description:  category.Description,
		DisplayOrder: category.DisplayOrder,
		IsActive:     category.IsActive,
		Items:        items,
	}
}

// ToMenuItemResponse maps an item with variants and addon groups
func ToMenuItemResponse(item *menu.MenuItem) MenuItemResponse {
	variants := make([]VariantResponse, 0, len(item.Variants))
	for _, v := range item.Variants {
		variants = append(variants, VariantResponse{
			ID:              v.ID,
			VariantGroup:    v.VariantGroup,
			OptionName:      v.OptionName,
			PriceAdjustment: v.PriceAdjustment,
			IsAvailable:     v.IsAvailable,
			DisplayOrder:    v.DisplayOrder,
		})
	}

	groups := make([]AddonGroupResponse, 0, len(item.AddonGroups))
	for i := range item.AddonGroups {
		groups = append(groups, ToAddonGroupResponse(&item.AddonGroups[i]))
	}

	return MenuItemResponse{
		ID:           item.ID,
		CategoryID:   item.CategoryID,
		Name:         item.Name,
		Description:  item.Description,
		BasePrice:    item.BasePrice,
		ImageURL:     item.ImageURL,
		IsVegetarian: item.IsVegetarian,
		IsAvailable:  item.IsAvailable,
		DisplayOrder: item.DisplayOrder,
		Variants:     variants,
		AddonGroups:  groups,
	}
}

// ToAddonGroupResponse maps an addon group with its addons
func ToAddonGroupResponse(group *menu.AddonGroup) AddonGroupResponse {
	addons := make([]AddonResponse, 0, len(group.Addons))
	for _, a := range group.Addons {
		addons = append(addons, AddonResponse{
			ID:           a.ID,
			Name:         a.Name,
			Price:        a.Price,
			IsAvailable:  a.IsAvailable,
			DisplayOrder: a.DisplayOrder,
		})
	}

	return AddonGroupResponse{
		ID:        group.ID,
		Name:      group.Name,
		MinSelect: group.MinSelect,
		MaxSelect: group.MaxSelect,
		IsActive:  group.IsActive,
		Addons:    addons,
	}
}
