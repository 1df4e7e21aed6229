package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appmenu "github.com/tableside/backend/internal/application/menu"
	appordering "github.com/tableside/backend/internal/application/ordering"
)

// StorefrontHandler serves the public customer surface reached through
// table QR codes. No authentication: the slug scopes every request to
// one restaurant, and order lookup requires knowing the order number.
type StorefrontHandler struct {
	BaseHandler
	menuService  *appmenu.MenuQueryService
	orderService *appordering.OrderService
	queryService *appordering.OrderQueryService
	logger       *zap.Logger
}

// NewStorefrontHandler creates a new StorefrontHandler
func NewStorefrontHandler(
	menuService *appmenu.MenuQueryService,
	orderService *appordering.OrderService,
	queryService *appordering.OrderQueryService,
	logger *zap.Logger,
) *StorefrontHandler {
	return &StorefrontHandler{
		menuService:  menuService,
		orderService: orderService,
		queryService: queryService,
		logger:       logger,
	}
}

// customerActor is the anonymous customer identity for order actions
func customerActor() appordering.Actor {
	return appordering.Actor{Role: appordering.ActorRoleCustomer}
}

// GetMenu handles GET /m/:slug/menu?t=<qr-token>. The token is optional;
// with it the response carries the resolved table so the cart can bind
// orders to it.
func (h *StorefrontHandler) GetMenu(c *gin.Context) {
	slug := c.Param("slug")
	qrToken := c.Query("t")

	view, err := h.menuService.GetMenuBySlug(c.Request.Context(), slug, qrToken)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

// PlaceOrder handles POST /m/:slug/orders
func (h *StorefrontHandler) PlaceOrder(c *gin.Context) {
	restaurantID, err := h.menuService.ResolveRestaurantID(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req appordering.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	resp, err := h.orderService.PlaceOrder(c.Request.Context(), restaurantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.logger.Info("order placed",
		zap.String("restaurant_id", restaurantID.String()),
		zap.String("order_number", resp.OrderNumber))
	h.Created(c, resp)
}

// TrackOrder handles GET /m/:slug/orders/:number
func (h *StorefrontHandler) TrackOrder(c *gin.Context) {
	restaurantID, err := h.menuService.ResolveRestaurantID(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp, err := h.queryService.GetByNumber(c.Request.Context(), restaurantID, c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// CancelOrder handles POST /m/:slug/orders/:number/cancel. Customers can
// only cancel orders the kitchen has not picked up yet.
func (h *StorefrontHandler) CancelOrder(c *gin.Context) {
	restaurantID, err := h.menuService.ResolveRestaurantID(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req appordering.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	order, err := h.queryService.GetByNumber(c.Request.Context(), restaurantID, c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp, err := h.orderService.Cancel(c.Request.Context(), restaurantID, order.ID, req.Reason, customerActor())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
