package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apptenant "github.com/tableside/backend/internal/application/tenant"
	"github.com/tableside/backend/internal/domain/shared/valueobject"
	"github.com/tableside/backend/internal/domain/tenant"
	"github.com/tableside/backend/internal/interfaces/http/middleware"
)

type restaurantHarness struct {
	router     *gin.Engine
	restos     *MockRestaurantRepository
	restaurant *tenant.Restaurant
}

func newRestaurantHarness(t *testing.T) *restaurantHarness {
	t.Helper()

	restaurant, err := tenant.NewRestaurant("Spice Garden", "spice-garden", valueobject.USD, decimal.NewFromInt(5))
	require.NoError(t, err)

	restos := new(MockRestaurantRepository)
	service := apptenant.NewRestaurantService(restos, zap.NewNop())
	h := NewRestaurantHandler(service, zap.NewNop())

	harness := &restaurantHarness{
		restos:     restos,
		restaurant: restaurant,
	}

	router := gin.New()
	router.POST("/restaurants", h.Register)

	scoped := router.Group("", func(c *gin.Context) {
		c.Set(middleware.JWTRestaurantIDKey, restaurant.ID.String())
		c.Next()
	})
	scoped.GET("/restaurant", h.Get)
	scoped.PUT("/restaurant", h.UpdateProfile)
	scoped.PUT("/restaurant/tax", h.SetTax)
	scoped.POST("/restaurant/deactivate", h.Deactivate)

	harness.router = router
	return harness
}

func TestRestaurantHandlerRegister(t *testing.T) {
	h := newRestaurantHarness(t)

	h.restos.On("ExistsBySlug", mock.Anything, "new-bistro").Return(false, nil)
	h.restos.On("Save", mock.Anything, mock.Anything).Return(nil)

	body, _ := json.Marshal(gin.H{
		"name":           "New Bistro",
		"slug":           "new-bistro",
		"currency":       "EUR",
		"tax_percentage": "7.5",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/restaurants", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var payload struct {
		Data apptenant.RestaurantResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "new-bistro", payload.Data.Slug)
	assert.True(t, payload.Data.IsActive)
}

func TestRestaurantHandlerRegister_SlugTaken(t *testing.T) {
	h := newRestaurantHarness(t)

	h.restos.On("ExistsBySlug", mock.Anything, "spice-garden").Return(true, nil)

	body, _ := json.Marshal(gin.H{"name": "Imposter", "slug": "spice-garden"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/restaurants", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeBody(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ALREADY_EXISTS", resp.Error.Code)
	h.restos.AssertNotCalled(t, "Save")
}

func TestRestaurantHandlerRegister_MissingName(t *testing.T) {
	h := newRestaurantHarness(t)

	body, _ := json.Marshal(gin.H{"slug": "nameless"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/restaurants", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRestaurantHandlerGet(t *testing.T) {
	h := newRestaurantHarness(t)

	h.restos.On("FindByID", mock.Anything, h.restaurant.ID).Return(h.restaurant, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/restaurant", nil)
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Data apptenant.RestaurantResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, h.restaurant.ID, payload.Data.ID)
}

func TestRestaurantHandlerSetTax(t *testing.T) {
	h := newRestaurantHarness(t)

	h.restos.On("FindByID", mock.Anything, h.restaurant.ID).Return(h.restaurant, nil)
	h.restos.On("Save", mock.Anything, h.restaurant).Return(nil)

	body, _ := json.Marshal(gin.H{"tax_percentage": "8.25"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/restaurant/tax", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Data apptenant.RestaurantResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "8.25", payload.Data.TaxPercentage.String())
}

func TestRestaurantHandlerDeactivate(t *testing.T) {
	h := newRestaurantHarness(t)

	h.restos.On("FindByID", mock.Anything, h.restaurant.ID).Return(h.restaurant, nil)
	h.restos.On("Save", mock.Anything, h.restaurant).Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/restaurant/deactivate", nil)
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, h.restaurant.IsActive)
}

func TestRestaurantHandlerGet_NoScope(t *testing.T) {
	restos := new(MockRestaurantRepository)
	service := apptenant.NewRestaurantService(restos, zap.NewNop())
	h := NewRestaurantHandler(service, zap.NewNop())

	router := gin.New()
	router.GET("/restaurant", h.Get)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/restaurant", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	restos.AssertNotCalled(t, "FindByID")
}
