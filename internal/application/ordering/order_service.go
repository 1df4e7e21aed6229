package ordering

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tableside/backend/internal/domain/menu"
	"github.com/tableside/backend/internal/domain/ordering"
	"github.com/tableside/backend/internal/domain/shared"
	"github.com/tableside/backend/internal/domain/tenant"
)

// maxOrderNumberAttempts bounds the retry loop around order number
// collisions before the failure is surfaced as transient.
const maxOrderNumberAttempts = 3

// ActorRole identifies who is driving an operation
type ActorRole string

const (
	ActorRoleStaff    ActorRole = "staff"
	ActorRoleCustomer ActorRole = "customer"
)

// Actor is the caller identity consumed from the auth layer
type Actor struct {
	Role   ActorRole
	UserID *uuid.UUID
}

// OrderService builds order aggregates from cart submissions and drives
// them through the fulfillment lifecycle
type OrderService struct {
	orderRepo      ordering.OrderRepository
	restaurantRepo tenant.RestaurantRepository
	tableRepo      tenant.TableRepository
	itemRepo       menu.MenuItemRepository
	categoryRepo   menu.CategoryRepository
	numbers        ordering.NumberGenerator
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo ordering.OrderRepository,
	restaurantRepo tenant.RestaurantRepository,
	tableRepo tenant.TableRepository,
	itemRepo menu.MenuItemRepository,
	categoryRepo menu.CategoryRepository,
	numbers ordering.NumberGenerator,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		restaurantRepo: restaurantRepo,
		tableRepo:      tableRepo,
		itemRepo:       itemRepo,
		categoryRepo:   categoryRepo,
		numbers:        numbers,
		logger:         logger,
	}
}

// SetEventPublisher sets the publisher for realtime fan-out
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// PlaceOrder validates a cart against the live catalog, prices it
// authoritatively and persists the aggregate atomically. The catalog is
// re-read at build time; client-submitted prices and names are ignored.
func (s *OrderService) PlaceOrder(ctx context.Context, restaurantID uuid.UUID, req PlaceOrderRequest) (*OrderResponse, error) {
	restaurant, err := s.restaurantRepo.FindByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if !restaurant.IsActive {
		// inactive tenants are indistinguishable from absent ones
		return nil, shared.ErrNotFound
	}

	if req.TableID != nil {
		table, err := s.tableRepo.FindByIDForRestaurant(ctx, restaurantID, *req.TableID)
		if err != nil {
			return nil, err
		}
		if !table.IsActive {
			return nil, shared.ErrNotFound
		}
	}

	discount := decimal.Zero
	if req.Discount != nil {
		discount = *req.Discount
	}

	order, err := s.buildOrder(ctx, restaurant, req, discount)
	if err != nil {
		return nil, err
	}

	if err := s.persistWithFreshNumber(ctx, restaurant.ID, order); err != nil {
		return nil, err
	}

	order.RecordCreated()
	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// buildOrder composes the aggregate from re-fetched catalog records
func (s *OrderService) buildOrder(ctx context.Context, restaurant *tenant.Restaurant, req PlaceOrderRequest, discount decimal.Decimal) (*ordering.Order, error) {
	// the order number is assigned at persistence time; a placeholder keeps
	// the aggregate valid while lines are attached
	order, err := ordering.NewOrder(restaurant.ID, ordering.FormatOrderNumber(time.Now(), 0), req.TableID, restaurant.Currency)
	if err != nil {
		return nil, err
	}
	order.SetCustomerInfo(req.CustomerName, req.CustomerPhone)

	for _, line := range req.Lines {
		item, err := s.resolveLine(ctx, restaurant.ID, line)
		if err != nil {
			return nil, err
		}

		orderItem, err := ordering.NewOrderItem(order.ID, item.ID, item.Name, item.BasePrice, line.Quantity)
		if err != nil {
			return nil, err
		}

		if line.VariantID != nil {
			variant := item.FindVariant(*line.VariantID)
			if variant == nil || !variant.IsAvailable {
				return nil, shared.ErrItemUnavailable
			}
			orderItem.SetVariant(variant.ID, variant.VariantGroup, variant.OptionName, variant.PriceAdjustment)
		}

		for _, addonID := range line.AddonIDs {
			addon, ok := findAvailableAddon(item, addonID)
			if !ok {
				return nil, shared.ErrItemUnavailable
			}
			if err := orderItem.AddAddon(addon.ID, addon.Name, addon.Price); err != nil {
				return nil, err
			}
		}

		if line.SpecialInstructions != "" {
			orderItem.SetSpecialInstructions(line.SpecialInstructions)
		}

		if err := order.AddItem(orderItem); err != nil {
			return nil, err
		}
	}

	if err := order.FinalizeTotals(restaurant.TaxPercentage, discount); err != nil {
		return nil, err
	}
	if err := order.CheckTotals(); err != nil {
		return nil, err
	}

	return order, nil
}

// resolveLine re-fetches the catalog record for a cart line and applies
// the availability and tenant-isolation checks. A cross-tenant item id is
// rejected as unavailable, never substituted.
func (s *OrderService) resolveLine(ctx context.Context, restaurantID uuid.UUID, line CartLineInput) (*menu.MenuItem, error) {
	item, err := s.itemRepo.FindByIDForRestaurant(ctx, restaurantID, line.MenuItemID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrItemUnavailable
		}
		return nil, err
	}
	if !item.IsAvailable {
		return nil, shared.ErrItemUnavailable
	}

	category, err := s.categoryRepo.FindByIDForRestaurant(ctx, restaurantID, item.CategoryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrItemUnavailable
		}
		return nil, err
	}
	if !category.IsActive {
		return nil, shared.ErrItemUnavailable
	}

	return item, nil
}

// findAvailableAddon locates an addon in the item's linked groups and
// requires both the addon and its group to be selectable
func findAvailableAddon(item *menu.MenuItem, addonID uuid.UUID) (*menu.Addon, bool) {
	for g := range item.AddonGroups {
		group := &item.AddonGroups[g]
		for a := range group.Addons {
			if group.Addons[a].ID == addonID {
				if !group.IsActive || !group.Addons[a].IsAvailable {
					return nil, false
				}
				return &group.Addons[a], true
			}
		}
	}
	return nil, false
}

// persistWithFreshNumber assigns a daily sequence number and saves the
// aggregate, retrying a bounded number of times when the unique index on
// order_number reports a collision
func (s *OrderService) persistWithFreshNumber(ctx context.Context, restaurantID uuid.UUID, order *ordering.Order) error {
	var lastErr error
	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		number, err := s.numbers.NextOrderNumber(ctx, restaurantID, time.Now())
		if err != nil {
			return err
		}
		order.OrderNumber = number

		err = s.orderRepo.Save(ctx, order)
		if err == nil {
			return nil
		}
		if !errors.Is(err, shared.ErrAlreadyExists) {
			return err
		}
		lastErr = err
		s.logger.Warn("order number collision, retrying",
			zap.String("order_number", number),
			zap.Int("attempt", attempt+1))
	}

	s.logger.Error("order number retries exhausted", zap.Error(lastErr))
	return shared.ErrPersistenceFailure
}

// Transition advances an order to the target lifecycle status. The current
// status is re-read inside this call, never trusted from the client; a
// concurrent writer surfaces as a conflict.
func (s *OrderService) Transition(ctx context.Context, restaurantID, orderID uuid.UUID, target ordering.OrderStatus, actor Actor) (*OrderResponse, error) {
	if actor.Role != ActorRoleStaff {
		return nil, shared.ErrForbidden
	}

	order, err := s.orderRepo.FindByIDForRestaurant(ctx, restaurantID, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.TransitionTo(target); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// Cancel terminates an order. Staff may cancel from any non-terminal
// state; a customer may only cancel an order still pending.
func (s *OrderService) Cancel(ctx context.Context, restaurantID, orderID uuid.UUID, reason string, actor Actor) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForRestaurant(ctx, restaurantID, orderID)
	if err != nil {
		return nil, err
	}

	if actor.Role != ActorRoleStaff && order.Status != ordering.OrderStatusPending {
		return nil, shared.ErrForbidden
	}

	if err := order.Cancel(reason); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// SetPaymentStatus mutates the orthogonal payment sub-state
func (s *OrderService) SetPaymentStatus(ctx context.Context, restaurantID, orderID uuid.UUID, status ordering.PaymentStatus) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForRestaurant(ctx, restaurantID, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.SetPaymentStatus(status); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// publishEvents pushes the aggregate's recorded events to the fan-out.
// Persistence has already committed; delivery is best-effort and a failed
// publish never rolls anything back.
func (s *OrderService) publishEvents(ctx context.Context, order *ordering.Order) {
	events := order.GetDomainEvents()
	order.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("event publish failed",
			zap.String("order_id", order.ID.String()),
			zap.Error(err))
	}
}
