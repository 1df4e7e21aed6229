package menu

import (
	"context"

	"github.com/google/uuid"

	"github.com/tableside/backend/internal/domain/menu"
	"github.com/tableside/backend/internal/domain/shared"
	"github.com/tableside/backend/internal/domain/tenant"
)

// MenuQueryService serves the customer-facing menu. Resolution starts
// from the public slug so QR codes never embed internal ids.
type MenuQueryService struct {
	restaurantRepo tenant.RestaurantRepository
	tableRepo      tenant.TableRepository
	categoryRepo   menu.CategoryRepository
}

// NewMenuQueryService creates a new MenuQueryService
func NewMenuQueryService(restaurantRepo tenant.RestaurantRepository, tableRepo tenant.TableRepository, categoryRepo menu.CategoryRepository) *MenuQueryService {
	return &MenuQueryService{
		restaurantRepo: restaurantRepo,
		tableRepo:      tableRepo,
		categoryRepo:   categoryRepo,
	}
}

// ResolveRestaurantID maps a public slug to the tenant id. Inactive
// restaurants resolve to not found.
func (s *MenuQueryService) ResolveRestaurantID(ctx context.Context, slug string) (uuid.UUID, error) {
	restaurant, err := s.restaurantRepo.FindBySlug(ctx, slug)
	if err != nil {
		return uuid.Nil, err
	}
	if !restaurant.IsActive {
		return uuid.Nil, shared.ErrNotFound
	}
	return restaurant.ID, nil
}

// MenuView is the full customer menu with resolution context
type MenuView struct {
	RestaurantID   string             `json:"restaurant_id"`
	RestaurantName string             `json:"restaurant_name"`
	Currency       string             `json:"currency"`
	TableID        string             `json:"table_id,omitempty"`
	TableNumber    string             `json:"table_number,omitempty"`
	Categories     []CategoryResponse `json:"categories"`
}

// GetMenuBySlug resolves a restaurant by slug and loads its menu tree.
// Inactive restaurants resolve to not found, indistinguishable from
// absent ones.
func (s *MenuQueryService) GetMenuBySlug(ctx context.Context, slug, qrToken string) (*MenuView, error) {
	restaurant, err := s.restaurantRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !restaurant.IsActive {
		return nil, shared.ErrNotFound
	}

	view := &MenuView{
		RestaurantID:   restaurant.ID.String(),
		RestaurantName: restaurant.Name,
		Currency:       string(restaurant.Currency),
	}

	if qrToken != "" {
		table, err := s.tableRepo.FindByQRToken(ctx, restaurant.ID, qrToken)
		if err != nil {
			return nil, err
		}
		if !table.IsActive {
			return nil, shared.ErrNotFound
		}
		view.TableID = table.ID.String()
		view.TableNumber = table.TableNumber
	}

	categories, err := s.categoryRepo.FindMenuTree(ctx, restaurant.ID)
	if err != nil {
		return nil, err
	}

	view.Categories = make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		view.Categories = append(view.Categories, ToCategoryResponse(&categories[i]))
	}

	return view, nil
}
