package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appordering "github.com/tableside/backend/internal/application/ordering"
	"github.com/tableside/backend/internal/interfaces/http/middleware"
)

// OrderHandler serves staff-side order management
type OrderHandler struct {
	BaseHandler
	orderService *appordering.OrderService
	queryService *appordering.OrderQueryService
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *appordering.OrderService, queryService *appordering.OrderQueryService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		queryService: queryService,
		logger:       logger,
	}
}

// staffActor builds the acting staff identity from JWT claims
func staffActor(c *gin.Context) appordering.Actor {
	actor := appordering.Actor{Role: appordering.ActorRoleStaff}
	if id, err := uuid.Parse(middleware.GetJWTUserID(c)); err == nil {
		actor.UserID = &id
	}
	return actor
}

// List handles GET /api/v1/orders
func (h *OrderHandler) List(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	var filter appordering.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindError(c, err)
		return
	}

	page, err := h.queryService.List(c.Request.Context(), restaurantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get handles GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	orderID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	resp, err := h.queryService.Get(c.Request.Context(), restaurantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Transition handles PUT /api/v1/orders/:id/status
func (h *OrderHandler) Transition(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	orderID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req appordering.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	resp, err := h.orderService.Transition(c.Request.Context(), restaurantID, orderID, req.Status, staffActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.logger.Info("order status changed",
		zap.String("restaurant_id", restaurantID.String()),
		zap.String("order_number", resp.OrderNumber),
		zap.String("status", string(resp.Status)))
	h.Success(c, resp)
}

// Cancel handles POST /api/v1/orders/:id/cancel. Staff can cancel any
// non-terminal order; the reason is kept on the order record.
func (h *OrderHandler) Cancel(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	orderID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req appordering.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	resp, err := h.orderService.Cancel(c.Request.Context(), restaurantID, orderID, req.Reason, staffActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// SetPaymentStatus handles PUT /api/v1/orders/:id/payment
func (h *OrderHandler) SetPaymentStatus(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	orderID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req appordering.PaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	resp, err := h.orderService.SetPaymentStatus(c.Request.Context(), restaurantID, orderID, req.PaymentStatus)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// DailyStats handles GET /api/v1/orders/stats/daily?day=2006-01-02.
// Omitting the day returns stats for today.
func (h *OrderHandler) DailyStats(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	day := time.Now()
	if raw := c.Query("day"); raw != "" {
		day, err = time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid day, expected YYYY-MM-DD")
			return
		}
	}

	resp, err := h.queryService.DailyStats(c.Request.Context(), restaurantID, day)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
