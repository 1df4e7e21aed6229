package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appmenu "github.com/tableside/backend/internal/application/menu"
)

// CatalogHandler serves staff-side menu management: categories, items,
// variants and addon groups
type CatalogHandler struct {
	BaseHandler
	catalogService *appmenu.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *appmenu.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// CreateCategory handles POST /api/v1/menu/categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	var req appmenu.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	resp, err := h.catalogService.CreateCategory(c.Request.Context(), restaurantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// UpdateCategory handles PUT /api/v1/menu/categories/:id
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	categoryID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var req appmenu.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	resp, err := h.catalogService.UpdateCategory(c.Request.Context(), restaurantID, categoryID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// SetCategoryActive handles PUT /api/v1/menu/categories/:id/active
func (h *CatalogHandler) SetCategoryActive(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	categoryID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var req appmenu.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	if err := h.catalogService.SetCategoryActive(c.Request.Context(), restaurantID, categoryID, *req.IsActive); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListCategories handles GET /api/v1/menu/categories. Returns the full
// tree including inactive entries; the storefront menu filters them.
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	resp, err := h.catalogService.ListCategories(c.Request.Context(), restaurantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// DeleteCategory handles DELETE /api/v1/menu/categories/:id
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	categoryID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.catalogService.DeleteCategory(c.Request.Context(), restaurantID, categoryID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.logger.Info("menu category deleted",
		zap.String("restaurant_id", restaurantID.String()),
		zap.String("category_id", categoryID.String()))
	h.NoContent(c)
}

// CreateItem handles POST /api/v1/menu/items
func (h *CatalogHandler) CreateItem(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	var req appmenu.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	resp, err := h.catalogService.CreateItem(c.Request.Context(), restaurantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.logger.Info("menu item created",
		zap.String("restaurant_id", restaurantID.String()),
		zap.String("item_id", resp.ID.String()))
	h.Created(c, resp)
}

// UpdateItem handles PUT /api/v1/menu/items/:id
func (h *CatalogHandler) UpdateItem(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	itemID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req appmenu.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	resp, err := h.catalogService.UpdateItem(c.Request.Context(), restaurantID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// DeleteItem handles DELETE /api/v1/menu/items/:id
func (h *CatalogHandler) DeleteItem(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	itemID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.catalogService.DeleteItem(c.Request.Context(), restaurantID, itemID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.logger.Info("menu item deleted",
		zap.String("restaurant_id", restaurantID.String()),
		zap.String("item_id", itemID.String()))
	h.NoContent(c)
}

// SetItemPrice handles PUT /api/v1/menu/items/:id/price. Price changes
// never touch placed orders; those keep their snapshot prices.
func (h *CatalogHandler) SetItemPrice(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	itemID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req appmenu.SetPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	resp, err := h.catalogService.SetItemPrice(c.Request.Context(), restaurantID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// SetItemAvailability handles PUT /api/v1/menu/items/:id/availability
func (h *CatalogHandler) SetItemAvailability(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	itemID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req appmenu.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	resp, err := h.catalogService.SetItemAvailability(c.Request.Context(), restaurantID, itemID, *req.IsAvailable)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// AddVariant handles POST /api/v1/menu/items/:id/variants
func (h *CatalogHandler) AddVariant(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	itemID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req appmenu.AddVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	resp, err := h.catalogService.AddVariant(c.Request.Context(), restaurantID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// CreateAddonGroup handles POST /api/v1/menu/addon-groups
func (h *CatalogHandler) CreateAddonGroup(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	var req appmenu.CreateAddonGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	resp, err := h.catalogService.CreateAddonGroup(c.Request.Context(), restaurantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// AddAddon handles POST /api/v1/menu/addon-groups/:id/addons
func (h *CatalogHandler) AddAddon(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	groupID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid addon group ID")
		return
	}

	var req appmenu.AddAddonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	resp, err := h.catalogService.AddAddon(c.Request.Context(), restaurantID, groupID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// LinkAddonGroup handles PUT /api/v1/menu/items/:id/addon-groups/:groupId
func (h *CatalogHandler) LinkAddonGroup(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	itemID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	groupID, err := pathUUID(c, "groupId")
	if err != nil {
		h.BadRequest(c, "Invalid addon group ID")
		return
	}

	if err := h.catalogService.LinkAddonGroup(c.Request.Context(), restaurantID, itemID, groupID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// UnlinkAddonGroup handles DELETE /api/v1/menu/items/:id/addon-groups/:groupId
func (h *CatalogHandler) UnlinkAddonGroup(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	itemID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	groupID, err := pathUUID(c, "groupId")
	if err != nil {
		h.BadRequest(c, "Invalid addon group ID")
		return
	}

	if err := h.catalogService.UnlinkAddonGroup(c.Request.Context(), restaurantID, itemID, groupID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
