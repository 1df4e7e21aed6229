package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tableside/backend/internal/domain/ordering"
	"github.com/tableside/backend/internal/domain/shared"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Save persists the full aggregate in one transaction: the order row, its
// items and their addon snapshots. A unique violation on the order number
// surfaces as shared.ErrAlreadyExists so callers can retry with a fresh
// number.
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(order).Error; err != nil {
			return err
		}

		for i := range order.Items {
			order.Items[i].OrderID = order.ID
			if err := tx.Omit("Addons").Save(&order.Items[i]).Error; err != nil {
				return err
			}
			for j := range order.Items[i].Addons {
				order.Items[i].Addons[j].OrderItemID = order.Items[i].ID
				if err := tx.Save(&order.Items[i].Addons[j]).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// SaveWithLock updates an existing order guarded by its version column.
// Items are immutable after placement, only the order row is touched.
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, order *ordering.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The aggregate mutator already incremented the version; the row
		// must still hold the previous one.
		previousVersion := order.Version - 1

		result := tx.Model(&ordering.Order{}).
			Where("id = ? AND restaurant_id = ? AND version = ?", order.ID, order.RestaurantID, previousVersion).
			Updates(map[string]interface{}{
				"status":               order.Status,
				"payment_status":       order.PaymentStatus,
				"preparing_started_at": order.PreparingStartedAt,
				"ready_at":             order.ReadyAt,
				"served_at":            order.ServedAt,
				"completed_at":         order.CompletedAt,
				"cancelled_at":         order.CancelledAt,
				"cancellation_reason":  order.CancellationReason,
				"version":              order.Version,
				"updated_at":           order.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&ordering.Order{}).
				Where("id = ? AND restaurant_id = ?", order.ID, order.RestaurantID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return shared.ErrNotFound
			}
			return shared.ErrConcurrencyConflict
		}
		return nil
	})
}

// FindByIDForRestaurant loads an order with its items and addon snapshots
func (r *GormOrderRepository) FindByIDForRestaurant(ctx context.Context, restaurantID, orderID uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.db.WithContext(ctx).
		Preload("Items.Addons").
		Preload("Items").
		Where("restaurant_id = ? AND id = ?", restaurantID, orderID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByOrderNumber resolves an order by its human-readable number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, restaurantID uuid.UUID, orderNumber string) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.db.WithContext(ctx).
		Preload("Items.Addons").
		Preload("Items").
		Where("restaurant_id = ? AND order_number = ?", restaurantID, orderNumber).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ListForRestaurant pages orders newest-first with id as tiebreaker so
// pagination never skips or repeats rows placed in the same instant.
func (r *GormOrderRepository) ListForRestaurant(ctx context.Context, restaurantID uuid.UUID, orderFilter ordering.OrderFilter, filter shared.Filter) (shared.Paginated[ordering.Order], error) {
	base := r.db.WithContext(ctx).Model(&ordering.Order{}).Where("restaurant_id = ?", restaurantID)
	base = applyOrderFilter(base, orderFilter)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return shared.Paginated[ordering.Order]{}, err
	}

	query := base.Session(&gorm.Session{}).
		Preload("Items.Addons").
		Preload("Items").
		Order("placed_at DESC, id DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var orders []ordering.Order
	if err := query.Find(&orders).Error; err != nil {
		return shared.Paginated[ordering.Order]{}, err
	}

	return shared.NewPaginated(orders, total, filter.Page, filter.PageSize), nil
}

// GetDailyStats aggregates one restaurant's orders for a calendar day.
// Revenue counts completed orders only.
func (r *GormOrderRepository) GetDailyStats(ctx context.Context, restaurantID uuid.UUID, day time.Time) (*ordering.DailyStats, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	stats := &ordering.DailyStats{
		Day:          dayStart,
		TotalRevenue: decimal.Zero,
		ByStatus:     make(map[ordering.OrderStatus]int64),
		ByPayment:    make(map[ordering.PaymentStatus]int64),
	}

	type statusCount struct {
		Status string
		Count  int64
	}

	var byStatus []statusCount
	if err := r.db.WithContext(ctx).Model(&ordering.Order{}).
		Select("status, COUNT(*) AS count").
		Where("restaurant_id = ? AND placed_at >= ? AND placed_at < ?", restaurantID, dayStart, dayEnd).
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, err
	}
	for _, row := range byStatus {
		stats.ByStatus[ordering.OrderStatus(row.Status)] = row.Count
		stats.TotalOrders += row.Count
	}

	var byPayment []statusCount
	if err := r.db.WithContext(ctx).Model(&ordering.Order{}).
		Select("payment_status AS status, COUNT(*) AS count").
		Where("restaurant_id = ? AND placed_at >= ? AND placed_at < ?", restaurantID, dayStart, dayEnd).
		Group("payment_status").
		Scan(&byPayment).Error; err != nil {
		return nil, err
	}
	for _, row := range byPayment {
		stats.ByPayment[ordering.PaymentStatus(row.Status)] = row.Count
	}

	var revenue decimal.NullDecimal
	if err := r.db.WithContext(ctx).Model(&ordering.Order{}).
		Select("SUM(total_amount)").
		Where("restaurant_id = ? AND placed_at >= ? AND placed_at < ? AND status = ?",
			restaurantID, dayStart, dayEnd, ordering.OrderStatusCompleted).
		Scan(&revenue).Error; err != nil {
		return nil, err
	}
	if revenue.Valid {
		stats.TotalRevenue = revenue.Decimal
	}

	return stats, nil
}

func applyOrderFilter(query *gorm.DB, f ordering.OrderFilter) *gorm.DB {
	if f.Status != nil {
		query = query.Where("status = ?", *f.Status)
	}
	if f.TableID != nil {
		query = query.Where("table_id = ?", *f.TableID)
	}
	if f.From != nil {
		query = query.Where("placed_at >= ?", *f.From)
	}
	if f.To != nil {
		query = query.Where("placed_at < ?", *f.To)
	}
	return query
}

var _ ordering.OrderRepository = (*GormOrderRepository)(nil)

// orderNumberCounter is the per-restaurant daily sequence row
type orderNumberCounter struct {
	RestaurantID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Day          string    `gorm:"type:varchar(8);primaryKey"`
	LastSequence int64     `gorm:"not null;default:0"`
	UpdatedAt    time.Time
}

func (orderNumberCounter) TableName() string {
	return "order_number_counters"
}

// CounterNumberGenerator issues order numbers from an atomically
// incremented per-restaurant daily counter. The upsert-and-increment runs
// in a single statement so concurrent submissions never read the same
// sequence value.
type CounterNumberGenerator struct {
	db *gorm.DB
}

// NewCounterNumberGenerator creates a new CounterNumberGenerator
func NewCounterNumberGenerator(db *gorm.DB) *CounterNumberGenerator {
	return &CounterNumberGenerator{db: db}
}

// NextOrderNumber returns the next number for the restaurant and day
func (g *CounterNumberGenerator) NextOrderNumber(ctx context.Context, restaurantID uuid.UUID, day time.Time) (string, error) {
	dayKey := day.Format("20060102")

	var sequence int64
	err := g.db.WithContext(ctx).Raw(strings.TrimSpace(`
INSERT INTO order_number_counters (restaurant_id, day, last_sequence, updated_at)
VALUES (?, ?, 1, NOW())
ON CONFLICT (restaurant_id, day)
DO UPDATE SET last_sequence = order_number_counters.last_sequence + 1, updated_at = NOW()
RETURNING last_sequence`),
		restaurantID, dayKey,
	).Scan(&sequence).Error
	if err != nil {
		return "", err
	}

	return ordering.FormatOrderNumber(day, sequence), nil
}

var _ ordering.NumberGenerator = (*CounterNumberGenerator)(nil)
