package shared

import (
	"github.com/google/uuid"
)

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot provides common fields for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	Version      int           `gorm:"not null;default:1"`
	domainEvents []DomainEvent `gorm:"-"`
}

// GetVersion returns the aggregate version for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// AddDomainEvent adds a domain event to be published
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns all pending domain events
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents clears the pending domain events
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity:   NewBaseEntity(),
		Version:      1,
		domainEvents: make([]DomainEvent, 0),
	}
}

// RestaurantAggregateRoot extends BaseAggregateRoot with restaurant scoping.
// Every aggregate below the tenant root carries the restaurant id directly so
// queries stay tenant-scoped without joins up the ownership tree.
type RestaurantAggregateRoot struct {
	BaseAggregateRoot
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// NewRestaurantAggregateRoot creates a new restaurant-scoped aggregate root
func NewRestaurantAggregateRoot(restaurantID uuid.UUID) RestaurantAggregateRoot {
	return RestaurantAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		RestaurantID:      restaurantID,
	}
}

// BelongsTo reports whether the aggregate is owned by the given restaurant.
func (t *RestaurantAggregateRoot) BelongsTo(restaurantID uuid.UUID) bool {
	return t.RestaurantID == restaurantID
}
