package tenant

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tableside/backend/internal/domain/shared"
	"github.com/tableside/backend/internal/domain/shared/valueobject"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Restaurant is the tenant root. Every other aggregate carries its id.
// Restaurants are never hard-deleted while orders reference them; the
// active flag is the soft-delete mechanism.
type Restaurant struct {
	shared.BaseAggregateRoot
	Name          string               `gorm:"type:varchar(200);not null"`
	Slug          string               `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description   string               `gorm:"type:text"`
	Address       string               `gorm:"type:text"`
	Phone         string               `gorm:"type:varchar(30)"`
	Currency      valueobject.Currency `gorm:"type:varchar(3);not null;default:'INR'"`
	TaxPercentage decimal.Decimal      `gorm:"type:decimal(5,2);not null;default:0"`
	IsActive      bool                 `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Restaurant) TableName() string {
	return "restaurants"
}

// NewRestaurant creates a new restaurant tenant
func NewRestaurant(name, slug string, currency valueobject.Currency, taxPercentage decimal.Decimal) (*Restaurant, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Restaurant name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Restaurant name cannot exceed 200 characters")
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}
	if err := validateTaxPercentage(taxPercentage); err != nil {
		return nil, err
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}

	restaurant := &Restaurant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug,
		Currency:          currency,
		TaxPercentage:     taxPercentage,
		IsActive:          true,
	}

	restaurant.AddDomainEvent(NewRestaurantCreatedEvent(restaurant))

	return restaurant, nil
}

// UpdateProfile updates display information. The slug is immutable once
// published, it is the public routing key printed on QR codes.
func (r *Restaurant) UpdateProfile(name, description, address, phone string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Restaurant name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Restaurant name cannot exceed 200 characters")
	}

	r.Name = name
	r.Description = description
	r.Address = address
	r.Phone = phone
	r.Touch()
	r.IncrementVersion()

	return nil
}

// SetTaxPercentage updates the tax rate applied to new orders.
// Existing orders keep the tax amount computed at creation time.
func (r *Restaurant) SetTaxPercentage(taxPercentage decimal.Decimal) error {
	if err := validateTaxPercentage(taxPercentage); err != nil {
		return err
	}

	r.TaxPercentage = taxPercentage
	r.Touch()
	r.IncrementVersion()

	return nil
}

// Activate reopens the restaurant for ordering
func (r *Restaurant) Activate() error {
	if r.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Restaurant is already active")
	}

	r.IsActive = true
	r.Touch()
	r.IncrementVersion()

	return nil
}

// Deactivate soft-deletes the restaurant. Orders referencing it remain.
func (r *Restaurant) Deactivate() error {
	if !r.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Restaurant is already inactive")
	}

	r.IsActive = false
	r.Touch()
	r.IncrementVersion()

	return nil
}

func validateSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot be empty")
	}
	if len(slug) > 100 {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot exceed 100 characters")
	}
	if !slugPattern.MatchString(slug) {
		return shared.NewDomainError("INVALID_SLUG", "Slug must contain only lowercase letters, digits and hyphens")
	}
	return nil
}

func validateTaxPercentage(taxPercentage decimal.Decimal) error {
	if taxPercentage.IsNegative() {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax percentage cannot be negative")
	}
	if taxPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax percentage cannot exceed 100")
	}
	return nil
}
