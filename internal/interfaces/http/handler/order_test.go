package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appordering "github.com/tableside/backend/internal/application/ordering"
	"github.com/tableside/backend/internal/domain/ordering"
	"github.com/tableside/backend/internal/domain/shared"
	"github.com/tableside/backend/internal/domain/shared/valueobject"
	"github.com/tableside/backend/internal/domain/tenant"
	"github.com/tableside/backend/internal/interfaces/http/dto"
	"github.com/tableside/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type orderHarness struct {
	router     *gin.Engine
	orders     *MockOrderRepository
	restos     *MockRestaurantRepository
	restaurant *tenant.Restaurant
	staffID    uuid.UUID
}

func newOrderHarness(t *testing.T) *orderHarness {
	t.Helper()

	restaurant, err := tenant.NewRestaurant("Spice Garden", "spice-garden", valueobject.USD, decimal.NewFromInt(5))
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	restos := new(MockRestaurantRepository)
	orderService := appordering.NewOrderService(
		orders, restos,
		new(MockTableRepository), new(MockMenuItemRepository),
		new(MockCategoryRepository), new(MockNumberGenerator),
		zap.NewNop(),
	)
	queryService := appordering.NewOrderQueryService(orders, restos)
	h := NewOrderHandler(orderService, queryService, zap.NewNop())

	harness := &orderHarness{
		orders:     orders,
		restos:     restos,
		restaurant: restaurant,
		staffID:    uuid.New(),
	}

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.JWTRestaurantIDKey, restaurant.ID.String())
		c.Set(middleware.JWTUserIDKey, harness.staffID.String())
		c.Next()
	})
	router.GET("/orders", h.List)
	router.GET("/orders/stats/daily", h.DailyStats)
	router.GET("/orders/:id", h.Get)
	router.PUT("/orders/:id/status", h.Transition)
	router.POST("/orders/:id/cancel", h.Cancel)
	router.PUT("/orders/:id/payment", h.SetPaymentStatus)

	harness.router = router
	return harness
}

func newPendingOrder(t *testing.T, restaurantID uuid.UUID) *ordering.Order {
	t.Helper()

	order, err := ordering.NewOrder(restaurantID, "ORD-20260830-042", nil, valueobject.USD)
	require.NoError(t, err)

	item, err := ordering.NewOrderItem(order.ID, uuid.New(), "Margherita Pizza", decimal.NewFromFloat(14.99), 2)
	require.NoError(t, err)
	require.NoError(t, order.AddItem(item))
	require.NoError(t, order.FinalizeTotals(decimal.NewFromInt(5), decimal.Zero))
	order.ClearDomainEvents()
	return order
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestOrderHandlerList(t *testing.T) {
	h := newOrderHarness(t)
	order := newPendingOrder(t, h.restaurant.ID)

	page := shared.NewPaginated([]ordering.Order{*order}, 1, 1, 20)
	h.orders.On("ListForRestaurant", mock.Anything, h.restaurant.ID, mock.Anything, mock.Anything).
		Return(page, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders?status=pending", nil)
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
}

func TestOrderHandlerList_InvalidPageSize(t *testing.T) {
	h := newOrderHarness(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders?page_size=500", nil)
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	h.orders.AssertNotCalled(t, "ListForRestaurant")
}

func TestOrderHandlerGet(t *testing.T) {
	h := newOrderHarness(t)
	order := newPendingOrder(t, h.restaurant.ID)

	h.orders.On("FindByIDForRestaurant", mock.Anything, h.restaurant.ID, order.ID).
		Return(order, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/"+order.ID.String(), nil)
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.True(t, resp.Success)
}

func TestOrderHandlerGet_NotFound(t *testing.T) {
	h := newOrderHarness(t)
	orderID := uuid.New()

	h.orders.On("FindByIDForRestaurant", mock.Anything, h.restaurant.ID, orderID).
		Return(nil, shared.ErrNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/"+orderID.String(), nil)
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeBody(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestOrderHandlerGet_InvalidID(t *testing.T) {
	h := newOrderHarness(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/not-a-uuid", nil)
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandlerTransition(t *testing.T) {
	h := newOrderHarness(t)
	order := newPendingOrder(t, h.restaurant.ID)

	h.orders.On("FindByIDForRestaurant", mock.Anything, h.restaurant.ID, order.ID).
		Return(order, nil)
	h.orders.On("SaveWithLock", mock.Anything, order).Return(nil)

	body, _ := json.Marshal(gin.H{"status": "preparing"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/orders/"+order.ID.String()+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Data appordering.OrderResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, ordering.OrderStatusPreparing, payload.Data.Status)
}

func TestOrderHandlerTransition_SkippingStates(t *testing.T) {
	h := newOrderHarness(t)
	order := newPendingOrder(t, h.restaurant.ID)

	h.orders.On("FindByIDForRestaurant", mock.Anything, h.restaurant.ID, order.ID).
		Return(order, nil)

	body, _ := json.Marshal(gin.H{"status": "served"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/orders/"+order.ID.String()+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeBody(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_TRANSITION", resp.Error.Code)
	h.orders.AssertNotCalled(t, "SaveWithLock")
}

func TestOrderHandlerTransition_ConcurrencyConflict(t *testing.T) {
	h := newOrderHarness(t)
	order := newPendingOrder(t, h.restaurant.ID)

	h.orders.On("FindByIDForRestaurant", mock.Anything, h.restaurant.ID, order.ID).
		Return(order, nil)
	h.orders.On("SaveWithLock", mock.Anything, order).Return(shared.ErrConcurrencyConflict)

	body, _ := json.Marshal(gin.H{"status": "preparing"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/orders/"+order.ID.String()+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeBody(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "CONCURRENCY_CONFLICT", resp.Error.Code)
}

func TestOrderHandlerCancel(t *testing.T) {
	h := newOrderHarness(t)
	order := newPendingOrder(t, h.restaurant.ID)

	h.orders.On("FindByIDForRestaurant", mock.Anything, h.restaurant.ID, order.ID).
		Return(order, nil)
	h.orders.On("SaveWithLock", mock.Anything, order).Return(nil)

	body, _ := json.Marshal(gin.H{"reason": "customer changed their mind"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders/"+order.ID.String()+"/cancel", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Data appordering.OrderResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, ordering.OrderStatusCancelled, payload.Data.Status)
	assert.Equal(t, "customer changed their mind", payload.Data.CancellationReason)
}

func TestOrderHandlerCancel_MissingReason(t *testing.T) {
	h := newOrderHarness(t)

	body, _ := json.Marshal(gin.H{})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders/"+uuid.NewString()+"/cancel", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
}

func TestOrderHandlerSetPaymentStatus(t *testing.T) {
	h := newOrderHarness(t)
	order := newPendingOrder(t, h.restaurant.ID)

	h.orders.On("FindByIDForRestaurant", mock.Anything, h.restaurant.ID, order.ID).
		Return(order, nil)
	h.orders.On("SaveWithLock", mock.Anything, order).Return(nil)

	body, _ := json.Marshal(gin.H{"payment_status": "paid"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/orders/"+order.ID.String()+"/payment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Data appordering.OrderResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, ordering.PaymentStatusPaid, payload.Data.PaymentStatus)
}

func TestOrderHandlerDailyStats(t *testing.T) {
	h := newOrderHarness(t)

	stats := &ordering.DailyStats{
		TotalOrders:  3,
		TotalRevenue: decimal.NewFromFloat(94.44),
		ByStatus:     map[ordering.OrderStatus]int64{ordering.OrderStatusCompleted: 3},
		ByPayment:    map[ordering.PaymentStatus]int64{ordering.PaymentStatusPaid: 3},
	}
	h.orders.On("GetDailyStats", mock.Anything, h.restaurant.ID, mock.Anything).
		Return(stats, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/stats/daily?day=2026-08-30", nil)
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Data appordering.DailyStatsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, int64(3), payload.Data.TotalOrders)
}

func TestOrderHandlerDailyStats_BadDay(t *testing.T) {
	h := newOrderHarness(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/stats/daily?day=30-08-2026", nil)
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	h.orders.AssertNotCalled(t, "GetDailyStats")
}
