package menu

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tableside/backend/internal/domain/shared"
)

// MenuItem is a sellable dish. Pricing on orders is snapshotted from the
// item at order time; editing an item never rewrites history.
type MenuItem struct {
	shared.RestaurantAggregateRoot
	CategoryID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(150);not null"`
	Description  string          `gorm:"type:text"`
	BasePrice    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ImageURL     string          `gorm:"type:varchar(500)"`
	IsVegetarian bool            `gorm:"not null;default:false"`
	IsAvailable  bool            `gorm:"not null;default:true"`
	DisplayOrder int             `gorm:"not null;default:0"`
	Variants     []ItemVariant   `gorm:"foreignKey:MenuItemID"`
	AddonGroups  []AddonGroup    `gorm:"many2many:item_addon_groups"`
}

// TableName returns the table name for GORM
func (MenuItem) TableName() string {
	return "menu_items"
}

// ItemVariant is one selectable option of an item (e.g. Size / Large).
// The price adjustment is added to the item's base price when selected.
type ItemVariant struct {
	shared.BaseEntity
	MenuItemID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	RestaurantID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	VariantGroup    string          `gorm:"type:varchar(50);not null"`
	OptionName      string          `gorm:"type:varchar(100);not null"`
	PriceAdjustment decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	IsAvailable     bool            `gorm:"not null;default:true"`
	DisplayOrder    int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ItemVariant) TableName() string {
	return "item_variants"
}

// NewMenuItem creates a new menu item
func NewMenuItem(restaurantID, categoryID uuid.UUID, name string, basePrice decimal.Decimal) (*MenuItem, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if len(name) > 150 {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot exceed 150 characters")
	}
	if basePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Item price cannot be negative")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Item must belong to a category")
	}

	item := &MenuItem{
		RestaurantAggregateRoot: shared.NewRestaurantAggregateRoot(restaurantID),
		CategoryID:              categoryID,
		Name:                    name,
		BasePrice:               basePrice,
		IsAvailable:             true,
	}

	item.AddDomainEvent(NewMenuItemCreatedEvent(item))

	return item, nil
}

// Update changes display attributes
func (i *MenuItem) Update(name, description, imageURL string, isVegetarian bool, displayOrder int) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}

	i.Name = name
	i.Description = description
	i.ImageURL = imageURL
	i.IsVegetarian = isVegetarian
	i.DisplayOrder = displayOrder
	i.Touch()
	i.IncrementVersion()

	return nil
}

// SetBasePrice changes the price applied to future orders
func (i *MenuItem) SetBasePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Item price cannot be negative")
	}

	i.BasePrice = price
	i.Touch()
	i.IncrementVersion()

	i.AddDomainEvent(NewMenuItemPriceChangedEvent(i))

	return nil
}

// SetAvailability toggles whether customers can order the item
func (i *MenuItem) SetAvailability(available bool) {
	if i.IsAvailable == available {
		return
	}

	i.IsAvailable = available
	i.Touch()
	i.IncrementVersion()

	i.AddDomainEvent(NewMenuItemAvailabilityChangedEvent(i))
}

// AddVariant attaches a new variant option
func (i *MenuItem) AddVariant(variantGroup, optionName string, priceAdjustment decimal.Decimal, displayOrder int) (*ItemVariant, error) {
	if strings.TrimSpace(variantGroup) == "" {
		return nil, shared.NewDomainError("INVALID_VARIANT", "Variant group cannot be empty")
	}
	if strings.TrimSpace(optionName) == "" {
		return nil, shared.NewDomainError("INVALID_VARIANT", "Variant option name cannot be empty")
	}
	for _, v := range i.Variants {
		if v.VariantGroup == variantGroup && v.OptionName == optionName {
			return nil, shared.NewDomainError("DUPLICATE_VARIANT", "Variant option already exists")
		}
	}

	variant := ItemVariant{
		BaseEntity:      shared.NewBaseEntity(),
		MenuItemID:      i.ID,
		RestaurantID:    i.RestaurantID,
		VariantGroup:    variantGroup,
		OptionName:      optionName,
		PriceAdjustment: priceAdjustment,
		IsAvailable:     true,
		DisplayOrder:    displayOrder,
	}

	i.Variants = append(i.Variants, variant)
	i.Touch()
	i.IncrementVersion()

	return &i.Variants[len(i.Variants)-1], nil
}

// FindVariant returns the variant with the given id, or nil
func (i *MenuItem) FindVariant(variantID uuid.UUID) *ItemVariant {
	for idx := range i.Variants {
		if i.Variants[idx].ID == variantID {
			return &i.Variants[idx]
		}
	}
	return nil
}

// FindAddon returns the addon with the given id from the item's linked
// addon groups, or nil when no linked group contains it.
func (i *MenuItem) FindAddon(addonID uuid.UUID) *Addon {
	for g := range i.AddonGroups {
		for a := range i.AddonGroups[g].Addons {
			if i.AddonGroups[g].Addons[a].ID == addonID {
				return &i.AddonGroups[g].Addons[a]
			}
		}
	}
	return nil
}
