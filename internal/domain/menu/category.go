package menu

import (
	"strings"

	"github.com/google/uuid"

	"github.com/tableside/backend/internal/domain/shared"
)

// MenuCategory groups menu items for display. Categories and everything
// below them carry the restaurant id directly so reads never join up the
// ownership tree to establish tenancy.
type MenuCategory struct {
	shared.RestaurantAggregateRoot
	Name         string     `gorm:"type:varchar(100);not null"`
	Description  string     `gorm:"type:text"`
	DisplayOrder int        `gorm:"not null;default:0"`
	IsActive     bool       `gorm:"not null;default:true"`
	Items        []MenuItem `gorm:"foreignKey:CategoryID"`
}

// TableName returns the table name for GORM
func (MenuCategory) TableName() string {
	return "menu_categories"
}

// NewMenuCategory creates a new category
func NewMenuCategory(restaurantID uuid.UUID, name string, displayOrder int) (*MenuCategory, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}

	category := &MenuCategory{
		RestaurantAggregateRoot: shared.NewRestaurantAggregateRoot(restaurantID),
		Name:                    name,
		DisplayOrder:            displayOrder,
		IsActive:                true,
	}

	return category, nil
}

// Update changes display attributes
func (c *MenuCategory) Update(name, description string, displayOrder int) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}

	c.Name = name
	c.Description = description
	c.DisplayOrder = displayOrder
	c.Touch()
	c.IncrementVersion()

	return nil
}

// Deactivate hides the category and everything under it from customers
func (c *MenuCategory) Deactivate() error {
	if !c.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Category is already inactive")
	}

	c.IsActive = false
	c.Touch()
	c.IncrementVersion()

	return nil
}

// Activate makes the category visible again
func (c *MenuCategory) Activate() error {
	if c.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Category is already active")
	}

	c.IsActive = true
	c.Touch()
	c.IncrementVersion()

	return nil
}
