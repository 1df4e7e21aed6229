package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tableside/backend/internal/domain/ordering"
)

// CartLineInput is one line of a customer cart submission. Prices are
// never taken from the client; the builder re-fetches the catalog.
type CartLineInput struct {
	MenuItemID          uuid.UUID   `json:"menu_item_id" binding:"required"`
	Quantity            int         `json:"quantity" binding:"required,min=1"`
	VariantID           *uuid.UUID  `json:"variant_id"`
	AddonIDs            []uuid.UUID `json:"addon_ids"`
	SpecialInstructions string      `json:"special_instructions" binding:"max=500"`
}

// PlaceOrderRequest is a full cart submission
type PlaceOrderRequest struct {
	TableID       *uuid.UUID       `json:"table_id"`
	Lines         []CartLineInput  `json:"lines" binding:"required,min=1,dive"`
	CustomerName  string           `json:"customer_name" binding:"max=100"`
	CustomerPhone string           `json:"customer_phone" binding:"max=30"`
	Discount      *decimal.Decimal `json:"discount"`
}

// CancelOrderRequest carries the mandatory cancellation reason
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// TransitionRequest names the target lifecycle status
type TransitionRequest struct {
	Status ordering.OrderStatus `json:"status" binding:"required"`
}

// PaymentStatusRequest mutates the orthogonal payment sub-state
type PaymentStatusRequest struct {
	PaymentStatus ordering.PaymentStatus `json:"payment_status" binding:"required"`
}

// OrderListFilter narrows and pages the staff order listing
type OrderListFilter struct {
	Status   *ordering.OrderStatus `form:"status"`
	TableID  *uuid.UUID            `form:"table_id"`
	From     *time.Time            `form:"from"`
	To       *time.Time            `form:"to"`
	Page     int                   `form:"page" binding:"omitempty,min=1"`
	PageSize int                   `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// OrderAddonResponse is an addon snapshot in API responses
type OrderAddonResponse struct {
	ID         uuid.UUID       `json:"id"`
	AddonID    uuid.UUID       `json:"addon_id"`
	AddonName  string          `json:"addon_name"`
	AddonPrice decimal.Decimal `json:"addon_price"`
}

// OrderItemResponse is an order line in API responses
type OrderItemResponse struct {
	ID                  uuid.UUID            `json:"id"`
	MenuItemID          uuid.UUID            `json:"menu_item_id"`
	ItemName            string               `json:"item_name"`
	ItemPrice           decimal.Decimal      `json:"item_price"`
	Quantity            int                  `json:"quantity"`
	VariantID           *uuid.UUID           `json:"variant_id,omitempty"`
	VariantGroup        string               `json:"variant_group,omitempty"`
	VariantName         string               `json:"variant_name,omitempty"`
	VariantPriceDelta   decimal.Decimal      `json:"variant_price_delta"`
	SpecialInstructions string               `json:"special_instructions,omitempty"`
	ItemTotal           decimal.Decimal      `json:"item_total"`
	Addons              []OrderAddonResponse `json:"addons"`
}

// OrderResponse is the full order representation for customers and staff
type OrderResponse struct {
	ID                 uuid.UUID              `json:"id"`
	RestaurantID       uuid.UUID              `json:"restaurant_id"`
	OrderNumber        string                 `json:"order_number"`
	TableID            *uuid.UUID             `json:"table_id,omitempty"`
	CustomerName       string                 `json:"customer_name,omitempty"`
	CustomerPhone      string                 `json:"customer_phone,omitempty"`
	Currency           string                 `json:"currency"`
	Subtotal           decimal.Decimal        `json:"subtotal"`
	TaxAmount          decimal.Decimal        `json:"tax_amount"`
	DiscountAmount     decimal.Decimal        `json:"discount_amount"`
	TotalAmount        decimal.Decimal        `json:"total_amount"`
	Status             ordering.OrderStatus   `json:"status"`
	PaymentStatus      ordering.PaymentStatus `json:"payment_status"`
	Items              []OrderItemResponse    `json:"items"`
	PlacedAt           time.Time              `json:"placed_at"`
	PreparingStartedAt *time.Time             `json:"preparing_started_at,omitempty"`
	ReadyAt            *time.Time             `json:"ready_at,omitempty"`
	ServedAt           *time.Time             `json:"served_at,omitempty"`
	CompletedAt        *time.Time             `json:"completed_at,omitempty"`
	CancelledAt        *time.Time             `json:"cancelled_at,omitempty"`
	CancellationReason string                 `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

// DailyStatsResponse aggregates one day of orders
type DailyStatsResponse struct {
	Day          string           `json:"day"`
	TotalOrders  int64            `json:"total_orders"`
	TotalRevenue decimal.Decimal  `json:"total_revenue"`
	ByStatus     map[string]int64 `json:"by_status"`
	ByPayment    map[string]int64 `json:"by_payment"`
}

// ToOrderResponse maps an order aggregate to its API representation
func ToOrderResponse(order *ordering.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for i := range order.Items {
		items = append(items, toOrderItemResponse(&order.Items[i]))
	}

	return OrderResponse{
		ID:                 order.ID,
		RestaurantID:       order.RestaurantID,
		OrderNumber:        order.OrderNumber,
		TableID:            order.TableID,
		CustomerName:       order.CustomerName,
		CustomerPhone:      order.CustomerPhone,
		Currency:           string(order.Currency),
		Subtotal:           order.Subtotal,
		TaxAmount:          order.TaxAmount,
		DiscountAmount:     order.DiscountAmount,
		TotalAmount:        order.TotalAmount,
		Status:             order.Status,
		PaymentStatus:      order.PaymentStatus,
		Items:              items,
		PlacedAt:           order.PlacedAt,
		PreparingStartedAt: order.PreparingStartedAt,
		ReadyAt:            order.ReadyAt,
		ServedAt:           order.ServedAt,
		CompletedAt:        order.CompletedAt,
		CancelledAt:        order.CancelledAt,
		CancellationReason: order.CancellationReason,
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
	}
}

func toOrderItemResponse(item *ordering.OrderItem) OrderItemResponse {
	addons := make([]OrderAddonResponse, 0, len(item.Addons))
	for _, a := range item.Addons {
		addons = append(addons, OrderAddonResponse{
			ID:         a.ID,
			AddonID:    a.AddonID,
			AddonName:  a.AddonName,
			AddonPrice: a.AddonPrice,
		})
	}

	return OrderItemResponse{
		ID:                  item.ID,
		MenuItemID:          item.MenuItemID,
		ItemName:            item.ItemName,
		ItemPrice:           item.ItemPrice,
		Quantity:            item.Quantity,
		VariantID:           item.VariantID,
		VariantGroup:        item.VariantGroup,
		VariantName:         item.VariantName,
		VariantPriceDelta:   item.VariantPriceDelta,
		SpecialInstructions: item.SpecialInstructions,
		ItemTotal:           item.ItemTotal,
		Addons:              addons,
	}
}

// ToDailyStatsResponse maps repository stats to the API shape
func ToDailyStatsResponse(stats *ordering.DailyStats) DailyStatsResponse {
	byStatus := make(map[string]int64, len(stats.ByStatus))
	for k, v := range stats.ByStatus {
		byStatus[string(k)] = v
	}
	byPayment := make(map[string]int64, len(stats.ByPayment))
	for k, v := range stats.ByPayment {
		byPayment[string(k)] = v
	}

	return DailyStatsResponse{
		Day:          stats.Day.Format("2006-01-02"),
		TotalOrders:  stats.TotalOrders,
		TotalRevenue: stats.TotalRevenue,
		ByStatus:     byStatus,
		ByPayment:    byPayment,
	}
}
