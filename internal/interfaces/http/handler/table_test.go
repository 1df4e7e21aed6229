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

	apptenant "github.com/tableside/backend/internal/application/tenant"
	"github.com/tableside/backend/internal/domain/shared"
	"github.com/tableside/backend/internal/domain/shared/valueobject"
	"github.com/tableside/backend/internal/domain/tenant"
	"github.com/tableside/backend/internal/infrastructure/config"
	"github.com/tableside/backend/internal/infrastructure/qrcode"
	"github.com/tableside/backend/internal/interfaces/http/middleware"
)

type tableHarness struct {
	router     *gin.Engine
	tables     *MockTableRepository
	restos     *MockRestaurantRepository
	restaurant *tenant.Restaurant
}

func newTableHarness(t *testing.T) *tableHarness {
	t.Helper()

	restaurant, err := tenant.NewRestaurant("Spice Garden", "spice-garden", valueobject.USD, decimal.NewFromInt(5))
	require.NoError(t, err)

	tables := new(MockTableRepository)
	restos := new(MockRestaurantRepository)
	service := apptenant.NewTableService(tables, restos, qrcode.NewGenerator(), "https://menu.example.com", zap.NewNop())
	h := NewTableHandler(service, config.StorefrontConfig{QRCodeSize: 256}, zap.NewNop())

	harness := &tableHarness{
		tables:     tables,
		restos:     restos,
		restaurant: restaurant,
	}

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.JWTRestaurantIDKey, restaurant.ID.String())
		c.Next()
	})
	router.POST("/tables", h.Create)
	router.GET("/tables", h.List)
	router.GET("/tables/:id", h.Get)
	router.PUT("/tables/:id/status", h.SetStatus)
	router.POST("/tables/:id/rotate-token", h.RotateToken)
	router.DELETE("/tables/:id", h.Deactivate)
	router.GET("/tables/:id/qrcode.png", h.QRCode)

	harness.router = router
	return harness
}

func TestTableHandlerCreate(t *testing.T) {
	h := newTableHarness(t)

	h.restos.On("FindByID", mock.Anything, h.restaurant.ID).Return(h.restaurant, nil)
	h.tables.On("FindByNumber", mock.Anything, h.restaurant.ID, "T1").Return(nil, shared.ErrNotFound)
	h.tables.On("Save", mock.Anything, mock.Anything).Return(nil)

	body, _ := json.Marshal(gin.H{"table_number": "T1", "capacity": 4})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tables", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var payload struct {
		Data apptenant.TableResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "T1", payload.Data.TableNumber)
	assert.NotEmpty(t, payload.Data.QRToken)
}

func TestTableHandlerCreate_DuplicateNumber(t *testing.T) {
	h := newTableHarness(t)

	existing, err := tenant.NewDiningTable(h.restaurant.ID, "T1", 2)
	require.NoError(t, err)

	h.restos.On("FindByID", mock.Anything, h.restaurant.ID).Return(h.restaurant, nil)
	h.tables.On("FindByNumber", mock.Anything, h.restaurant.ID, "T1").Return(existing, nil)

	body, _ := json.Marshal(gin.H{"table_number": "T1", "capacity": 4})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tables", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	h.tables.AssertNotCalled(t, "Save")
}

func TestTableHandlerCreate_MissingCapacity(t *testing.T) {
	h := newTableHarness(t)

	body, _ := json.Marshal(gin.H{"table_number": "T1"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tables", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTableHandlerRotateToken(t *testing.T) {
	h := newTableHarness(t)

	table, err := tenant.NewDiningTable(h.restaurant.ID, "T1", 4)
	require.NoError(t, err)
	oldToken := table.QRToken

	h.tables.On("FindByIDForRestaurant", mock.Anything, h.restaurant.ID, table.ID).Return(table, nil)
	h.tables.On("Save", mock.Anything, table).Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tables/"+table.ID.String()+"/rotate-token", nil)
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Data apptenant.TableResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.NotEqual(t, oldToken, payload.Data.QRToken)
	assert.NotEmpty(t, payload.Data.QRToken)
}

func TestTableHandlerQRCode(t *testing.T) {
	h := newTableHarness(t)

	table, err := tenant.NewDiningTable(h.restaurant.ID, "T1", 4)
	require.NoError(t, err)

	h.restos.On("FindByID", mock.Anything, h.restaurant.ID).Return(h.restaurant, nil)
	h.tables.On("FindByIDForRestaurant", mock.Anything, h.restaurant.ID, table.ID).Return(table, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tables/"+table.ID.String()+"/qrcode.png", nil)
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestTableHandlerQRCode_ForeignTable(t *testing.T) {
	h := newTableHarness(t)
	foreignID := uuid.New()

	h.restos.On("FindByID", mock.Anything, h.restaurant.ID).Return(h.restaurant, nil)
	h.tables.On("FindByIDForRestaurant", mock.Anything, h.restaurant.ID, foreignID).
		Return(nil, shared.ErrNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tables/"+foreignID.String()+"/qrcode.png", nil)
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
