package ordering

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tableside/backend/internal/domain/shared"
	"github.com/tableside/backend/internal/domain/shared/valueobject"
)

// OrderStatus represents the fulfillment status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusServed    OrderStatus = "served"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady,
		OrderStatusServed, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true for states no transition can leave
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status.
// The happy path never skips a state; cancellation is reachable from any
// non-terminal state. A transition into a state already passed is invalid,
// not an idempotent no-op, so duplicate client requests surface as errors.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if target == OrderStatusCancelled {
		return !s.IsTerminal()
	}
	switch s {
	case OrderStatusPending:
		return target == OrderStatusPreparing
	case OrderStatusPreparing:
		return target == OrderStatusReady
	case OrderStatusReady:
		return target == OrderStatusServed
	case OrderStatusServed:
		return target == OrderStatusCompleted
	case OrderStatusCompleted, OrderStatusCancelled:
		return false
	}
	return false
}

// PaymentStatus is an orthogonal sub-state of an order. It never gates the
// fulfillment lifecycle: a completed order may still be unpaid at the counter.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
	PaymentStatusFailed   PaymentStatus = "failed"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusRefunded, PaymentStatusFailed:
		return true
	}
	return false
}

// OrderItemAddon is an addon snapshot attached to an order line. Name and
// price are copied at order time and never follow later catalog edits.
type OrderItemAddon struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	AddonID     uuid.UUID       `gorm:"type:uuid;not null"`
	AddonName   string          `gorm:"type:varchar(100);not null"`
	AddonPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time
}

// TableName returns the table name for GORM
func (OrderItemAddon) TableName() string {
	return "order_item_addons"
}

// OrderItem is one line of an order. It stores a snapshot of the menu
// item's name and price at order time, not a live reference, so historical
// orders render identically after any catalog change.
type OrderItem struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primaryKey"`
	OrderID             uuid.UUID        `gorm:"type:uuid;not null;index"`
	MenuItemID          uuid.UUID        `gorm:"type:uuid;not null"`
	ItemName            string           `gorm:"type:varchar(150);not null"`
	ItemPrice           decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Quantity            int              `gorm:"not null"`
	VariantID           *uuid.UUID       `gorm:"type:uuid"`
	VariantGroup        string           `gorm:"type:varchar(50)"`
	VariantName         string           `gorm:"type:varchar(100)"`
	VariantPriceDelta   decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	SpecialInstructions string           `gorm:"type:text"`
	ItemTotal           decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Addons              []OrderItemAddon `gorm:"foreignKey:OrderItemID"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates an order line from catalog snapshots.
// The line total is (item price + variant delta) * quantity plus the sum
// of addon prices.
func NewOrderItem(orderID, menuItemID uuid.UUID, itemName string, itemPrice decimal.Decimal, quantity int) (*OrderItem, error) {
	if menuItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Menu item ID cannot be empty")
	}
	if itemName == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	if itemPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Item price cannot be negative")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	now := time.Now()
	item := &OrderItem{
		ID:                uuid.New(),
		OrderID:           orderID,
		MenuItemID:        menuItemID,
		ItemName:          itemName,
		ItemPrice:         itemPrice,
		Quantity:          quantity,
		VariantPriceDelta: decimal.Zero,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	item.recalculateTotal()

	return item, nil
}

// SetVariant snapshots the selected variant onto the line
func (i *OrderItem) SetVariant(variantID uuid.UUID, variantGroup, variantName string, priceDelta decimal.Decimal) {
	id := variantID
	i.VariantID = &id
	i.VariantGroup = variantGroup
	i.VariantName = variantName
	i.VariantPriceDelta = priceDelta
	i.UpdatedAt = time.Now()
	i.recalculateTotal()
}

// AddAddon snapshots an addon onto the line
func (i *OrderItem) AddAddon(addonID uuid.UUID, addonName string, addonPrice decimal.Decimal) error {
	if addonName == "" {
		return shared.NewDomainError("INVALID_ADDON_NAME", "Addon name cannot be empty")
	}
	if addonPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Addon price cannot be negative")
	}

	i.Addons = append(i.Addons, OrderItemAddon{
		ID:          uuid.New(),
		OrderItemID: i.ID,
		AddonID:     addonID,
		AddonName:   addonName,
		AddonPrice:  addonPrice,
		CreatedAt:   time.Now(),
	})
	i.UpdatedAt = time.Now()
	i.recalculateTotal()

	return nil
}

// SetSpecialInstructions records free-text customer notes for the kitchen
func (i *OrderItem) SetSpecialInstructions(instructions string) {
	i.SpecialInstructions = instructions
	i.UpdatedAt = time.Now()
}

func (i *OrderItem) recalculateTotal() {
	unit := i.ItemPrice.Add(i.VariantPriceDelta)
	total := unit.Mul(decimal.NewFromInt(int64(i.Quantity)))
	for _, a := range i.Addons {
		total = total.Add(a.AddonPrice)
	}
	i.ItemTotal = total
}

// Order is the central transactional aggregate. It is created once per
// customer submission, mutated only through the lifecycle state machine,
// and never deleted: cancellation is a terminal status, not removal.
type Order struct {
	shared.RestaurantAggregateRoot
	OrderNumber        string               `gorm:"type:varchar(30);not null;uniqueIndex:idx_orders_restaurant_number,priority:2"`
	TableID            *uuid.UUID           `gorm:"type:uuid;index"` // nil for non-dine-in
	CustomerName       string               `gorm:"type:varchar(100)"`
	CustomerPhone      string               `gorm:"type:varchar(30)"`
	Currency           valueobject.Currency `gorm:"type:varchar(3);not null"`
	Subtotal           decimal.Decimal      `gorm:"type:decimal(12,2);not null"`
	TaxAmount          decimal.Decimal      `gorm:"type:decimal(12,2);not null"`
	DiscountAmount     decimal.Decimal      `gorm:"type:decimal(12,2);not null;default:0"`
	TotalAmount        decimal.Decimal      `gorm:"type:decimal(12,2);not null"`
	Status             OrderStatus          `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentStatus      PaymentStatus        `gorm:"type:varchar(20);not null;default:'pending'"`
	Items              []OrderItem          `gorm:"foreignKey:OrderID"`
	PlacedAt           time.Time            `gorm:"not null"`
	PreparingStartedAt *time.Time
	ReadyAt            *time.Time
	ServedAt           *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a pending order shell. Lines are attached with AddItem
// and totals settled with FinalizeTotals before first persistence.
func NewOrder(restaurantID uuid.UUID, orderNumber string, tableID *uuid.UUID, currency valueobject.Currency) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 30 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 30 characters")
	}
	if currency == "" {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency cannot be empty")
	}

	order := &Order{
		RestaurantAggregateRoot: shared.NewRestaurantAggregateRoot(restaurantID),
		OrderNumber:             orderNumber,
		TableID:                 tableID,
		Currency:                currency,
		Subtotal:                decimal.Zero,
		TaxAmount:               decimal.Zero,
		DiscountAmount:          decimal.Zero,
		TotalAmount:             decimal.Zero,
		Status:                  OrderStatusPending,
		PaymentStatus:           PaymentStatusPending,
		Items:                   make([]OrderItem, 0),
		PlacedAt:                time.Now(),
	}

	return order, nil
}

// SetCustomerInfo records optional customer contact details
func (o *Order) SetCustomerInfo(name, phone string) {
	o.CustomerName = name
	o.CustomerPhone = phone
	o.Touch()
}

// AddItem attaches a priced line. Only allowed while the order is pending.
func (o *Order) AddItem(item *OrderItem) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot add items to an order past pending")
	}
	if item == nil {
		return shared.NewDomainError("INVALID_ITEM", "Order item cannot be nil")
	}

	item.OrderID = o.ID
	for idx := range item.Addons {
		item.Addons[idx].OrderItemID = item.ID
	}
	o.Items = append(o.Items, *item)
	o.Touch()

	return nil
}

// FinalizeTotals computes subtotal from the lines, applies the tax rate
// with half-up rounding at the currency's minor unit and subtracts the
// caller-supplied discount. The invariant
// total = subtotal + tax - discount holds exactly afterwards.
func (o *Order) FinalizeTotals(taxPercentage, discount decimal.Decimal) error {
	if len(o.Items) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}
	if taxPercentage.IsNegative() {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax percentage cannot be negative")
	}
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}

	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.ItemTotal)
	}

	subtotalMoney, err := valueobject.NewMoney(subtotal, o.Currency)
	if err != nil {
		return shared.NewDomainError("INVALID_CURRENCY", err.Error())
	}
	tax := subtotalMoney.CalculatePercentage(taxPercentage).RoundToMinorUnit()

	total := subtotal.Add(tax.Amount()).Sub(discount)
	if total.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot exceed subtotal plus tax")
	}

	o.Subtotal = subtotal
	o.TaxAmount = tax.Amount()
	o.DiscountAmount = discount
	o.TotalAmount = total
	o.Touch()

	return nil
}

// RecordCreated emits the created event. It must run after the persisted
// order number is assigned so subscribers never see a placeholder number.
func (o *Order) RecordCreated() {
	o.AddDomainEvent(NewOrderCreatedEvent(o))
}

// CheckTotals verifies the monetary invariant before persistence
func (o *Order) CheckTotals() error {
	if o.Subtotal.IsNegative() || o.TaxAmount.IsNegative() || o.DiscountAmount.IsNegative() || o.TotalAmount.IsNegative() {
		return shared.NewDomainError("INVALID_TOTALS", "Monetary fields cannot be negative")
	}
	expected := o.Subtotal.Add(o.TaxAmount).Sub(o.DiscountAmount)
	if !o.TotalAmount.Equal(expected) {
		return shared.NewDomainError("INVALID_TOTALS", "Order total does not match subtotal + tax - discount")
	}
	return nil
}

// TransitionTo advances the order to the target status, stamping the
// corresponding timestamp exactly once. Cancellation must go through
// Cancel since it requires a reason.
func (o *Order) TransitionTo(target OrderStatus) error {
	if target == OrderStatusCancelled {
		return shared.NewDomainError("INVALID_TRANSITION", "Cancellation requires a reason, use Cancel")
	}
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Unknown order status %q", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}

	previous := o.Status
	now := time.Now()
	o.Status = target
	o.UpdatedAt = now

	switch target {
	case OrderStatusPreparing:
		o.PreparingStartedAt = &now
	case OrderStatusReady:
		o.ReadyAt = &now
	case OrderStatusServed:
		o.ServedAt = &now
	case OrderStatusCompleted:
		o.CompletedAt = &now
	}
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, previous))

	return nil
}

// StartPreparing moves the order into the kitchen
func (o *Order) StartPreparing() error {
	return o.TransitionTo(OrderStatusPreparing)
}

// MarkReady signals the order is ready for pickup or serving
func (o *Order) MarkReady() error {
	return o.TransitionTo(OrderStatusReady)
}

// MarkServed records delivery to the table
func (o *Order) MarkServed() error {
	return o.TransitionTo(OrderStatusServed)
}

// Complete closes out the order
func (o *Order) Complete() error {
	return o.TransitionTo(OrderStatusCompleted)
}

// Cancel terminates the order from any non-terminal state
func (o *Order) Cancel(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancellation reason is required")
	}
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}

	previous := o.Status
	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.CancellationReason = reason
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, previous))

	return nil
}

// SetPaymentStatus mutates the orthogonal payment sub-state. It never
// touches the fulfillment status.
func (o *Order) SetPaymentStatus(status PaymentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_STATUS", fmt.Sprintf("Unknown payment status %q", status))
	}
	if status == PaymentStatusRefunded && o.PaymentStatus != PaymentStatusPaid {
		return shared.NewDomainError("INVALID_PAYMENT_STATUS", "Only paid orders can be refunded")
	}

	o.PaymentStatus = status
	o.Touch()
	o.IncrementVersion()

	return nil
}

// GetSubtotalMoney returns the subtotal as Money
func (o *Order) GetSubtotalMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(o.Subtotal, o.Currency)
	return m
}

// GetTotalMoney returns the grand total as Money
func (o *Order) GetTotalMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(o.TotalAmount, o.Currency)
	return m
}

// IsTerminal returns true when no further lifecycle transition is possible
func (o *Order) IsTerminal() bool {
	return o.Status.IsTerminal()
}

// ItemCount returns the number of lines in the order
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// GetItem returns a line by its ID
func (o *Order) GetItem(itemID uuid.UUID) *OrderItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}
