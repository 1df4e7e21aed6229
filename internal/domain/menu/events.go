package menu

import (
	"github.com/shopspring/decimal"

	"github.com/tableside/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeMenuItem = "MenuItem"

// Event type constants
const (
	EventTypeMenuItemCreated             = "MenuItemCreated"
	EventTypeMenuItemPriceChanged        = "MenuItemPriceChanged"
	EventTypeMenuItemAvailabilityChanged = "MenuItemAvailabilityChanged"
)

// MenuItemCreatedEvent is published when a new item is added to the menu
type MenuItemCreatedEvent struct {
	shared.BaseDomainEvent
	Name      string          `json:"name"`
	BasePrice decimal.Decimal `json:"base_price"`
}

// NewMenuItemCreatedEvent creates a new MenuItemCreatedEvent
func NewMenuItemCreatedEvent(item *MenuItem) *MenuItemCreatedEvent {
	return &MenuItemCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMenuItemCreated, AggregateTypeMenuItem, item.ID, item.RestaurantID),
		Name:            item.Name,
		BasePrice:       item.BasePrice,
	}
}

// MenuItemPriceChangedEvent is published when the base price changes.
// Orders already placed keep their snapshotted price.
type MenuItemPriceChangedEvent struct {
	shared.BaseDomainEvent
	Name     string          `json:"name"`
	NewPrice decimal.Decimal `json:"new_price"`
}

// NewMenuItemPriceChangedEvent creates a new MenuItemPriceChangedEvent
func NewMenuItemPriceChangedEvent(item *MenuItem) *MenuItemPriceChangedEvent {
	return &MenuItemPriceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMenuItemPriceChanged, AggregateTypeMenuItem, item.ID, item.RestaurantID),
		Name:            item.Name,
		NewPrice:        item.BasePrice,
	}
}

// MenuItemAvailabilityChangedEvent is published when an item is 86'd or restored
type MenuItemAvailabilityChangedEvent struct {
	shared.BaseDomainEvent
	Name        string `json:"name"`
	IsAvailable bool   `json:"is_available"`
}

// NewMenuItemAvailabilityChangedEvent creates a new MenuItemAvailabilityChangedEvent
func NewMenuItemAvailabilityChangedEvent(item *MenuItem) *MenuItemAvailabilityChangedEvent {
	return &MenuItemAvailabilityChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMenuItemAvailabilityChanged, AggregateTypeMenuItem, item.ID, item.RestaurantID),
		Name:            item.Name,
		IsAvailable:     item.IsAvailable,
	}
}
