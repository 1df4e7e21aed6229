package menu

import (
	"context"

	"github.com/google/uuid"

	"github.com/tableside/backend/internal/domain/menu"
	"github.com/tableside/backend/internal/domain/shared"
)

// CatalogService handles staff-side menu editing. Catalog edits run
// concurrently with order building; the builder always re-reads committed
// state so nothing here needs to coordinate with order placement.
type CatalogService struct {
	categoryRepo menu.CategoryRepository
	itemRepo     menu.MenuItemRepository
	addonRepo    menu.AddonGroupRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(categoryRepo menu.CategoryRepository, itemRepo menu.MenuItemRepository, addonRepo menu.AddonGroupRepository) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
		addonRepo:    addonRepo,
	}
}

// CreateCategory creates a menu category
func (s *CatalogService) CreateCategory(ctx context.Context, restaurantID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := menu.NewMenuCategory(restaurantID, req.Name, req.DisplayOrder)
	if err != nil {
		return nil, err
	}
	category.Description = req.Description

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// UpdateCategory updates a category's display attributes
func (s *CatalogService) UpdateCategory(ctx context.Context, restaurantID, categoryID uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByIDForRestaurant(ctx, restaurantID, categoryID)
	if err != nil {
		return nil, err
	}

	if err := category.Update(req.Name, req.Description, req.DisplayOrder); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// SetCategoryActive toggles category visibility
func (s *CatalogService) SetCategoryActive(ctx context.Context, restaurantID, categoryID uuid.UUID, active bool) error {
	category, err := s.categoryRepo.FindByIDForRestaurant(ctx, restaurantID, categoryID)
	if err != nil {
		return err
	}

	if active {
		err = category.Activate()
	} else {
		err = category.Deactivate()
	}
	if err != nil {
		return err
	}

	return s.categoryRepo.Save(ctx, category)
}

// DeleteCategory removes an empty category. A category still holding
// items cannot be deleted, empty it or deactivate it instead.
func (s *CatalogService) DeleteCategory(ctx context.Context, restaurantID, categoryID uuid.UUID) error {
	category, err := s.categoryRepo.FindByIDForRestaurant(ctx, restaurantID, categoryID)
	if err != nil {
		return err
	}

	items, err := s.itemRepo.FindByCategory(ctx, restaurantID, categoryID)
	if err != nil {
		return err
	}
	if len(items) > 0 {
		return shared.NewDomainError("CATEGORY_NOT_EMPTY", "Category still has menu items")
	}

	return s.categoryRepo.Delete(ctx, category.ID)
}

// ListCategories lists a restaurant's categories
func (s *CatalogService) ListCategories(ctx context.Context, restaurantID uuid.UUID) ([]CategoryResponse, error) {
	filter := shared.DefaultFilter()
	filter.OrderBy = "display_order"
	filter.OrderDir = "asc"
	filter.PageSize = shared.MaxPageSize

	categories, err := s.categoryRepo.FindAllForRestaurant(ctx, restaurantID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, ToCategoryResponse(&categories[i]))
	}
	return responses, nil
}

// CreateItem creates a menu item under a category
func (s *CatalogService) CreateItem(ctx context.Context, restaurantID uuid.UUID, req CreateMenuItemRequest) (*MenuItemResponse, error) {
	// category must exist and belong to this restaurant
	if _, err := s.categoryRepo.FindByIDForRestaurant(ctx, restaurantID, req.CategoryID); err != nil {
		return nil, err
	}

	item, err := menu.NewMenuItem(restaurantID, req.CategoryID, req.Name, req.BasePrice)
	if err != nil {
		return nil, err
	}
	if err := item.Update(req.Name, req.Description, req.ImageURL, req.IsVegetarian, req.DisplayOrder); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToMenuItemResponse(item)
	return &response, nil
}

// UpdateItem updates a menu item's display attributes
func (s *CatalogService) UpdateItem(ctx context.Context, restaurantID, itemID uuid.UUID, req UpdateMenuItemRequest) (*MenuItemResponse, error) {
	item, err := s.itemRepo.FindByIDForRestaurant(ctx, restaurantID, itemID)
	if err != nil {
		return nil, err
	}

	if err := item.Update(req.Name, req.Description, req.ImageURL, req.IsVegetarian, req.DisplayOrder); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToMenuItemResponse(item)
	return &response, nil
}

// SetItemPrice changes the price applied to future orders. Snapshots on
// existing orders are untouched.
func (s *CatalogService) SetItemPrice(ctx context.Context, restaurantID, itemID uuid.UUID, req SetPriceRequest) (*MenuItemResponse, error) {
	item, err := s.itemRepo.FindByIDForRestaurant(ctx, restaurantID, itemID)
	if err != nil {
		return nil, err
	}

	if err := item.SetBasePrice(req.BasePrice); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToMenuItemResponse(item)
	return &response, nil
}

// SetItemAvailability 86's an item or restores it
func (s *CatalogService) SetItemAvailability(ctx context.Context, restaurantID, itemID uuid.UUID, available bool) (*MenuItemResponse, error) {
	item, err := s.itemRepo.FindByIDForRestaurant(ctx, restaurantID, itemID)
	if err != nil {
		return nil, err
	}

	item.SetAvailability(available)
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToMenuItemResponse(item)
	return &response, nil
}

// DeleteItem removes a menu item. Lines on existing orders are
// unaffected, they carry their own name and price snapshots.
func (s *CatalogService) DeleteItem(ctx context.Context, restaurantID, itemID uuid.UUID) error {
	item, err := s.itemRepo.FindByIDForRestaurant(ctx, restaurantID, itemID)
	if err != nil {
		return err
	}

	return s.itemRepo.Delete(ctx, item.ID)
}

// AddVariant attaches a variant option to an item
func (s *CatalogService) AddVariant(ctx context.Context, restaurantID, itemID uuid.UUID, req AddVariantRequest) (*MenuItemResponse, error) {
	item, err := s.itemRepo.FindByIDForRestaurant(ctx, restaurantID, itemID)
	if err != nil {
		return nil, err
	}

	if _, err := item.AddVariant(req.VariantGroup, req.OptionName, req.PriceAdjustment, req.DisplayOrder); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToMenuItemResponse(item)
	return &response, nil
}

// CreateAddonGroup creates an addon group
func (s *CatalogService) CreateAddonGroup(ctx context.Context, restaurantID uuid.UUID, req CreateAddonGroupRequest) (*AddonGroupResponse, error) {
	group, err := menu.NewAddonGroup(restaurantID, req.Name, req.MinSelect, req.MaxSelect)
	if err != nil {
		return nil, err
	}

	if err := s.addonRepo.Save(ctx, group); err != nil {
		return nil, err
	}

	response := ToAddonGroupResponse(group)
	return &response, nil
}

// AddAddon attaches an addon to a group
func (s *CatalogService) AddAddon(ctx context.Context, restaurantID, groupID uuid.UUID, req AddAddonRequest) (*AddonGroupResponse, error) {
	group, err := s.addonRepo.FindByIDForRestaurant(ctx, restaurantID, groupID)
	if err != nil {
		return nil, err
	}

	if _, err := group.AddAddon(req.Name, req.Price, req.DisplayOrder); err != nil {
		return nil, err
	}
	if err := s.addonRepo.Save(ctx, group); err != nil {
		return nil, err
	}

	response := ToAddonGroupResponse(group)
	return &response, nil
}

// LinkAddonGroup makes a group selectable on an item
func (s *CatalogService) LinkAddonGroup(ctx context.Context, restaurantID, itemID, groupID uuid.UUID) error {
	if _, err := s.itemRepo.FindByIDForRestaurant(ctx, restaurantID, itemID); err != nil {
		return err
	}
	if _, err := s.addonRepo.FindByIDForRestaurant(ctx, restaurantID, groupID); err != nil {
		return err
	}

	return s.itemRepo.LinkAddonGroup(ctx, restaurantID, itemID, groupID)
}

// UnlinkAddonGroup detaches a group from an item
func (s *CatalogService) UnlinkAddonGroup(ctx context.Context, restaurantID, itemID, groupID uuid.UUID) error {
	if _, err := s.itemRepo.FindByIDForRestaurant(ctx, restaurantID, itemID); err != nil {
		return err
	}

	return s.itemRepo.UnlinkAddonGroup(ctx, restaurantID, itemID, groupID)
}
