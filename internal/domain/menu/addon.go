package menu

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tableside/backend/internal/domain/shared"
)

// AddonGroup bundles addons a customer may attach to an item
// (e.g. "Extra Toppings"). Items link to groups many-to-many.
type AddonGroup struct {
	shared.RestaurantAggregateRoot
	Name      string  `gorm:"type:varchar(100);not null"`
	MinSelect int     `gorm:"not null;default:0"`
	MaxSelect int     `gorm:"not null;default:0"` // 0 means unlimited
	IsActive  bool    `gorm:"not null;default:true"`
	Addons    []Addon `gorm:"foreignKey:AddonGroupID"`
}

// TableName returns the table name for GORM
func (AddonGroup) TableName() string {
	return "addon_groups"
}

// Addon is a priced extra within a group
type Addon struct {
	shared.BaseEntity
	AddonGroupID uuid.UUID       `gorm:"type:uuid;not null;index"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(100);not null"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	IsAvailable  bool            `gorm:"not null;default:true"`
	DisplayOrder int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Addon) TableName() string {
	return "addons"
}

// NewAddonGroup creates a new addon group
func NewAddonGroup(restaurantID uuid.UUID, name string, minSelect, maxSelect int) (*AddonGroup, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Addon group name cannot be empty")
	}
	if minSelect < 0 || maxSelect < 0 {
		return nil, shared.NewDomainError("INVALID_SELECTION_BOUNDS", "Selection bounds cannot be negative")
	}
	if maxSelect > 0 && minSelect > maxSelect {
		return nil, shared.NewDomainError("INVALID_SELECTION_BOUNDS", "Minimum selection cannot exceed maximum")
	}

	group := &AddonGroup{
		RestaurantAggregateRoot: shared.NewRestaurantAggregateRoot(restaurantID),
		Name:                    name,
		MinSelect:               minSelect,
		MaxSelect:               maxSelect,
		IsActive:                true,
	}

	return group, nil
}

// AddAddon attaches a new addon to the group
func (g *AddonGroup) AddAddon(name string, price decimal.Decimal, displayOrder int) (*Addon, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Addon name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Addon price cannot be negative")
	}
	for _, a := range g.Addons {
		if a.Name == name {
			return nil, shared.NewDomainError("DUPLICATE_ADDON", "Addon already exists in group")
		}
	}

	addon := Addon{
		BaseEntity:   shared.NewBaseEntity(),
		AddonGroupID: g.ID,
		RestaurantID: g.RestaurantID,
		Name:         name,
		Price:        price,
		IsAvailable:  true,
		DisplayOrder: displayOrder,
	}

	g.Addons = append(g.Addons, addon)
	g.Touch()
	g.IncrementVersion()

	return &g.Addons[len(g.Addons)-1], nil
}

// SetAddonAvailability toggles a single addon inside the group
func (g *AddonGroup) SetAddonAvailability(addonID uuid.UUID, available bool) error {
	for i := range g.Addons {
		if g.Addons[i].ID == addonID {
			g.Addons[i].IsAvailable = available
			g.Addons[i].Touch()
			g.Touch()
			g.IncrementVersion()
			return nil
		}
	}
	return shared.ErrNotFound
}

// Deactivate hides the group from all linked items
func (g *AddonGroup) Deactivate() error {
	if !g.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Addon group is already inactive")
	}

	g.IsActive = false
	g.Touch()
	g.IncrementVersion()

	return nil
}

// Activate makes the group selectable again
func (g *AddonGroup) Activate() error {
	if g.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Addon group is already active")
	}

	g.IsActive = true
	g.Touch()
	g.IncrementVersion()

	return nil
}
