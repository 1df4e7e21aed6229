package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apptenant "github.com/tableside/backend/internal/application/tenant"
)

// RestaurantHandler serves tenant registration and profile management
type RestaurantHandler struct {
	BaseHandler
	restaurantService *apptenant.RestaurantService
	logger            *zap.Logger
}

// NewRestaurantHandler creates a new RestaurantHandler
func NewRestaurantHandler(restaurantService *apptenant.RestaurantService, logger *zap.Logger) *RestaurantHandler {
	return &RestaurantHandler{
		restaurantService: restaurantService,
		logger:            logger,
	}
}

// Register handles POST /api/v1/restaurants. Registration is the only
// public tenant operation; everything else runs under staff auth.
func (h *RestaurantHandler) Register(c *gin.Context) {
	var req apptenant.RegisterRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	resp, err := h.restaurantService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.logger.Info("restaurant registered",
		zap.String("restaurant_id", resp.ID.String()),
		zap.String("slug", resp.Slug))
	h.Created(c, resp)
}

// Get handles GET /api/v1/restaurant
func (h *RestaurantHandler) Get(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	resp, err := h.restaurantService.Get(c.Request.Context(), restaurantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateProfile handles PUT /api/v1/restaurant
func (h *RestaurantHandler) UpdateProfile(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	var req apptenant.UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	resp, err := h.restaurantService.UpdateProfile(c.Request.Context(), restaurantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// SetTax handles PUT /api/v1/restaurant/tax
func (h *RestaurantHandler) SetTax(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	var req apptenant.SetTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	resp, err := h.restaurantService.SetTax(c.Request.Context(), restaurantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Deactivate handles POST /api/v1/restaurant/deactivate. A deactivated
// restaurant disappears from the storefront and rejects new orders.
func (h *RestaurantHandler) Deactivate(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	if err := h.restaurantService.Deactivate(c.Request.Context(), restaurantID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.logger.Info("restaurant deactivated",
		zap.String("restaurant_id", restaurantID.String()))
	h.NoContent(c)
}

// Activate handles POST /api/v1/restaurant/activate
func (h *RestaurantHandler) Activate(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	if err := h.restaurantService.Activate(c.Request.Context(), restaurantID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
