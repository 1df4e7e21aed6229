package ordering

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tableside/backend/internal/domain/shared"
)

// OrderFilter narrows order listings
type OrderFilter struct {
	Status  *OrderStatus
	TableID *uuid.UUID
	From    *time.Time
	To      *time.Time
}

// DailyStats aggregates one restaurant's orders for a day
type DailyStats struct {
	Day          time.Time               `json:"day"`
	TotalOrders  int64                   `json:"total_orders"`
	TotalRevenue decimal.Decimal         `json:"total_revenue"`
	ByStatus     map[OrderStatus]int64   `json:"by_status"`
	ByPayment    map[PaymentStatus]int64 `json:"by_payment"`
}

// OrderRepository persists order aggregates. Every write of an order and
// its lines is a single atomic unit: a partially persisted aggregate must
// never be observable.
type OrderRepository interface {
	// Save persists a new order with all its items and addon snapshots in
	// one transaction.
	Save(ctx context.Context, order *Order) error
	// SaveWithLock updates an existing order guarded by its version column.
	// Returns shared.ErrConcurrencyConflict when another writer got there
	// first.
	SaveWithLock(ctx context.Context, order *Order) error
	// FindByIDForRestaurant loads an order with its lines. An id owned by a
	// different restaurant resolves to shared.ErrNotFound.
	FindByIDForRestaurant(ctx context.Context, restaurantID, orderID uuid.UUID) (*Order, error)
	// FindByOrderNumber resolves an order by its human-readable number
	FindByOrderNumber(ctx context.Context, restaurantID uuid.UUID, orderNumber string) (*Order, error)
	// ListForRestaurant pages newest-first, ties broken by id for a stable
	// order, optionally filtered.
	ListForRestaurant(ctx context.Context, restaurantID uuid.UUID, orderFilter OrderFilter, filter shared.Filter) (shared.Paginated[Order], error)
	// GetDailyStats aggregates order counts and revenue for one day
	GetDailyStats(ctx context.Context, restaurantID uuid.UUID, day time.Time) (*DailyStats, error)
}
