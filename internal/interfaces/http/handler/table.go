package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apptenant "github.com/tableside/backend/internal/application/tenant"
	"github.com/tableside/backend/internal/domain/shared"
	"github.com/tableside/backend/internal/infrastructure/config"
	"github.com/tableside/backend/internal/interfaces/http/dto"
)

// TableHandler serves dining table management for staff
type TableHandler struct {
	BaseHandler
	tableService *apptenant.TableService
	qrCodeSize   int
	logger       *zap.Logger
}

// NewTableHandler creates a new TableHandler
func NewTableHandler(tableService *apptenant.TableService, storefrontCfg config.StorefrontConfig, logger *zap.Logger) *TableHandler {
	return &TableHandler{
		tableService: tableService,
		qrCodeSize:   storefrontCfg.QRCodeSize,
		logger:       logger,
	}
}

// Create handles POST /api/v1/tables
func (h *TableHandler) Create(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	var req apptenant.CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	resp, err := h.tableService.Create(c.Request.Context(), restaurantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.logger.Info("table created",
		zap.String("restaurant_id", restaurantID.String()),
		zap.String("table_number", resp.TableNumber))
	h.Created(c, resp)
}

// Get handles GET /api/v1/tables/:id
func (h *TableHandler) Get(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	tableID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid table ID")
		return
	}

	resp, err := h.tableService.Get(c.Request.Context(), restaurantID, tableID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List handles GET /api/v1/tables
func (h *TableHandler) List(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.HandleBindError(c, err)
		return
	}

	filter := shared.Filter{Page: listReq.Page, PageSize: listReq.PageSize}
	tables, err := h.tableService.List(c.Request.Context(), restaurantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tables)
}

// SetStatus handles PUT /api/v1/tables/:id/status
func (h *TableHandler) SetStatus(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	tableID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid table ID")
		return
	}

	var req apptenant.SetTableStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	resp, err := h.tableService.SetStatus(c.Request.Context(), restaurantID, tableID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RotateToken handles POST /api/v1/tables/:id/rotate-token. The old QR
// token stops resolving immediately; reprint the QR code after calling.
func (h *TableHandler) RotateToken(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	tableID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid table ID")
		return
	}

	resp, err := h.tableService.RotateToken(c.Request.Context(), restaurantID, tableID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.logger.Info("table token rotated",
		zap.String("restaurant_id", restaurantID.String()),
		zap.String("table_id", tableID.String()))
	h.Success(c, resp)
}

// Deactivate handles DELETE /api/v1/tables/:id
func (h *TableHandler) Deactivate(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	tableID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid table ID")
		return
	}

	if err := h.tableService.Deactivate(c.Request.Context(), restaurantID, tableID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// QRCode handles GET /api/v1/tables/:id/qrcode.png
func (h *TableHandler) QRCode(c *gin.Context) {
	restaurantID, err := restaurantScope(c)
	if err != nil {
		h.Unauthorized(c, "Missing restaurant scope")
		return
	}

	tableID, err := pathUUID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid table ID")
		return
	}

	png, err := h.tableService.QRCodePNG(c.Request.Context(), restaurantID, tableID, h.qrCodeSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
