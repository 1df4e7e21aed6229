package tenant

import (
	"github.com/google/uuid"

	"github.com/tableside/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeRestaurant = "Restaurant"
	AggregateTypeTable      = "DiningTable"
)

// Event type constants
const (
	EventTypeRestaurantCreated = "RestaurantCreated"
	EventTypeTableCreated      = "TableCreated"
	EventTypeTableTokenRotated = "TableTokenRotated"
)

// RestaurantCreatedEvent is published when a restaurant registers
type RestaurantCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// NewRestaurantCreatedEvent creates a new RestaurantCreatedEvent
func NewRestaurantCreatedEvent(restaurant *Restaurant) *RestaurantCreatedEvent {
	return &RestaurantCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRestaurantCreated, AggregateTypeRestaurant, restaurant.ID, restaurant.ID),
		Name:            restaurant.Name,
		Slug:            restaurant.Slug,
	}
}

// TableCreatedEvent is published when a dining table is added
type TableCreatedEvent struct {
	shared.BaseDomainEvent
	TableID     uuid.UUID `json:"table_id"`
	TableNumber string    `json:"table_number"`
}

// NewTableCreatedEvent creates a new TableCreatedEvent
func NewTableCreatedEvent(table *DiningTable) *TableCreatedEvent {
	return &TableCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTableCreated, AggregateTypeTable, table.ID, table.RestaurantID),
		TableID:         table.ID,
		TableNumber:     table.TableNumber,
	}
}

// TableTokenRotatedEvent is published when a table's QR token is replaced.
// The previously printed code stops resolving once this fires.
type TableTokenRotatedEvent struct {
	shared.BaseDomainEvent
	TableID     uuid.UUID `json:"table_id"`
	TableNumber string    `json:"table_number"`
}

// NewTableTokenRotatedEvent creates a new TableTokenRotatedEvent
func NewTableTokenRotatedEvent(table *DiningTable) *TableTokenRotatedEvent {
	return &TableTokenRotatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTableTokenRotated, AggregateTypeTable, table.ID, table.RestaurantID),
		TableID:         table.ID,
		TableNumber:     table.TableNumber,
	}
}
