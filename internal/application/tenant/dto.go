package tenant

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tableside/backend/internal/domain/tenant"
)

// RegisterRestaurantRequest registers a new tenant
type RegisterRestaurantRequest struct {
	Name          string          `json:"name" binding:"required,min=1,max=200"`
	Slug          string          `json:"slug" binding:"required,min=1,max=100"`
	Currency      string          `json:"currency" binding:"omitempty,len=3"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
	Description   string          `json:"description" binding:"max=2000"`
	Address       string          `json:"address" binding:"max=1000"`
	Phone         string          `json:"phone" binding:"max=30"`
}

// UpdateRestaurantRequest updates tenant profile fields
type UpdateRestaurantRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
	Address     string `json:"address" binding:"max=1000"`
	Phone       string `json:"phone" binding:"max=30"`
}

// SetTaxRequest changes the tax rate applied to new orders
type SetTaxRequest struct {
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
}

// CreateTableRequest adds a dining table
type CreateTableRequest struct {
	TableNumber string `json:"table_number" binding:"required,min=1,max=20"`
	Capacity    int    `json:"capacity" binding:"required,min=1"`
}

// SetTableStatusRequest records occupancy reported by staff
type SetTableStatusRequest struct {
	Status tenant.TableStatus `json:"status" binding:"required"`
}

// RestaurantResponse is a tenant in API responses
type RestaurantResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	Description   string          `json:"description,omitempty"`
	Address       string          `json:"address,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	Currency      string          `json:"currency"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TableResponse is a dining table in API responses. The QR token is only
// exposed to staff; customers see it embedded in the QR image.
type TableResponse struct {
	ID          uuid.UUID          `json:"id"`
	TableNumber string             `json:"table_number"`
	Capacity    int                `json:"capacity"`
	QRToken     string             `json:"qr_token"`
	Status      tenant.TableStatus `json:"status"`
	IsActive    bool               `json:"is_active"`
	CreatedAt   time.Time          `json:"created_at"`
}

// ToRestaurantResponse maps a restaurant aggregate
func ToRestaurantResponse(restaurant *tenant.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID:            restaurant.ID,
		Name:          restaurant.Name,
		Slug:          restaurant.Slug,
		Description:   restaurant.Description,
		Address:       restaurant.Address,
		Phone:         restaurant.Phone,
		Currency:      string(restaurant.Currency),
		TaxPercentage: restaurant.TaxPercentage,
		IsActive:      restaurant.IsActive,
		CreatedAt:     restaurant.CreatedAt,
	}
}

// ToTableResponse maps a dining table aggregate
func ToTableResponse(table *tenant.DiningTable) TableResponse {
	return TableResponse{
		ID:          table.ID,
		TableNumber: table.TableNumber,
		Capacity:    table.Capacity,
		QRToken:     table.QRToken,
		Status:      table.Status,
		IsActive:    table.IsActive,
		CreatedAt:   table.CreatedAt,
	}
}
