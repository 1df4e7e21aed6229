package ordering

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tableside/backend/internal/domain/ordering"
	"github.com/tableside/backend/internal/domain/shared"
	"github.com/tableside/backend/internal/domain/tenant"
)

// OrderQueryService serves staff dashboards and customer status polling.
// It is a pure read path over committed order state.
type OrderQueryService struct {
	orderRepo      ordering.OrderRepository
	restaurantRepo tenant.RestaurantRepository
}

// NewOrderQueryService creates a new OrderQueryService
func NewOrderQueryService(orderRepo ordering.OrderRepository, restaurantRepo tenant.RestaurantRepository) *OrderQueryService {
	return &OrderQueryService{
		orderRepo:      orderRepo,
		restaurantRepo: restaurantRepo,
	}
}

// List pages a restaurant's orders newest-first, ties broken by id
func (s *OrderQueryService) List(ctx context.Context, restaurantID uuid.UUID, filter OrderListFilter) (shared.Paginated[OrderResponse], error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	domainFilter.Normalize()

	orderFilter := ordering.OrderFilter{
		Status:  filter.Status,
		TableID: filter.TableID,
		From:    filter.From,
		To:      filter.To,
	}

	page, err := s.orderRepo.ListForRestaurant(ctx, restaurantID, orderFilter, domainFilter)
	if err != nil {
		return shared.Paginated[OrderResponse]{}, err
	}

	items := make([]OrderResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToOrderResponse(&page.Items[i]))
	}

	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize), nil
}

// Get loads a single order with its lines, enforcing tenant isolation
func (s *OrderQueryService) Get(ctx context.Context, restaurantID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForRestaurant(ctx, restaurantID, orderID)
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByNumber resolves an order by its human-readable number. Customers
// track their order with this after losing the original response.
func (s *OrderQueryService) GetByNumber(ctx context.Context, restaurantID uuid.UUID, orderNumber string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, restaurantID, orderNumber)
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// DailyStats aggregates order counts and revenue for one day
func (s *OrderQueryService) DailyStats(ctx context.Context, restaurantID uuid.UUID, day time.Time) (*DailyStatsResponse, error) {
	stats, err := s.orderRepo.GetDailyStats(ctx, restaurantID, day)
	if err != nil {
		return nil, err
	}

	response := ToDailyStatsResponse(stats)
	return &response, nil
}
