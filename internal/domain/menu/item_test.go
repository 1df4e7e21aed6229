package menu

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(t *testing.T) *MenuItem {
	t.Helper()
	item, err := NewMenuItem(uuid.New(), uuid.New(), "Margherita Pizza", decimal.NewFromFloat(14.99))
	require.NoError(t, err)
	return item
}

func TestNewMenuItem(t *testing.T) {
	t.Run("creates available item", func(t *testing.T) {
		item := newTestItem(t)
		assert.Equal(t, "Margherita Pizza", item.Name)
		assert.True(t, item.BasePrice.Equal(decimal.NewFromFloat(14.99)))
		assert.True(t, item.IsAvailable)
		assert.Len(t, item.GetDomainEvents(), 1)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewMenuItem(uuid.New(), uuid.New(), "Pizza", decimal.NewFromFloat(-1))
		assert.Error(t, err)
	})

	t.Run("rejects missing category", func(t *testing.T) {
		_, err := NewMenuItem(uuid.New(), uuid.Nil, "Pizza", decimal.NewFromFloat(10))
		assert.Error(t, err)
	})
}

func TestMenuItemVariants(t *testing.T) {
	item := newTestItem(t)

	small, err := item.AddVariant("Size", "Small", decimal.NewFromFloat(-2), 0)
	require.NoError(t, err)
	large, err := item.AddVariant("Size", "Large", decimal.NewFromFloat(4), 1)
	require.NoError(t, err)

	assert.Equal(t, item.RestaurantID, small.RestaurantID)
	assert.Equal(t, item.ID, large.MenuItemID)

	t.Run("rejects duplicate option", func(t *testing.T) {
		_, err := item.AddVariant("Size", "Large", decimal.NewFromFloat(4), 2)
		assert.Error(t, err)
	})

	t.Run("finds variant by id", func(t *testing.T) {
		found := item.FindVariant(large.ID)
		require.NotNil(t, found)
		assert.Equal(t, "Large", found.OptionName)
		assert.Nil(t, item.FindVariant(uuid.New()))
	})
}

func TestMenuItemFindAddon(t *testing.T) {
	item := newTestItem(t)
	group, err := NewAddonGroup(item.RestaurantID, "Extra Toppings", 0, 3)
	require.NoError(t, err)
	olives, err := group.AddAddon("Olives", decimal.NewFromFloat(1.50), 0)
	require.NoError(t, err)
	item.AddonGroups = append(item.AddonGroups, *group)

	found := item.FindAddon(olives.ID)
	require.NotNil(t, found)
	assert.Equal(t, "Olives", found.Name)
	assert.Nil(t, item.FindAddon(uuid.New()))
}

func TestMenuItemSetAvailability(t *testing.T) {
	item := newTestItem(t)
	item.ClearDomainEvents()

	item.SetAvailability(false)
	assert.False(t, item.IsAvailable)
	assert.Len(t, item.GetDomainEvents(), 1)

	// no-op when unchanged
	item.SetAvailability(false)
	assert.Len(t, item.GetDomainEvents(), 1)
}

func TestMenuItemSetBasePrice(t *testing.T) {
	item := newTestItem(t)

	require.NoError(t, item.SetBasePrice(decimal.NewFromFloat(16.50)))
	assert.True(t, item.BasePrice.Equal(decimal.NewFromFloat(16.50)))
	assert.Error(t, item.SetBasePrice(decimal.NewFromFloat(-0.01)))
}

func TestNewAddonGroup(t *testing.T) {
	t.Run("valid bounds", func(t *testing.T) {
		g, err := NewAddonGroup(uuid.New(), "Sauces", 1, 2)
		require.NoError(t, err)
		assert.True(t, g.IsActive)
	})

	t.Run("min above max rejected", func(t *testing.T) {
		_, err := NewAddonGroup(uuid.New(), "Sauces", 3, 2)
		assert.Error(t, err)
	})

	t.Run("zero max means unlimited", func(t *testing.T) {
		_, err := NewAddonGroup(uuid.New(), "Sauces", 2, 0)
		assert.NoError(t, err)
	})
}

func TestAddonGroupAddAddon(t *testing.T) {
	g, err := NewAddonGroup(uuid.New(), "Extra Toppings", 0, 0)
	require.NoError(t, err)

	cheese, err := g.AddAddon("Extra Cheese", decimal.NewFromFloat(2.00), 0)
	require.NoError(t, err)
	assert.Equal(t, g.RestaurantID, cheese.RestaurantID)

	_, err = g.AddAddon("Extra Cheese", decimal.NewFromFloat(2.00), 1)
	assert.Error(t, err, "duplicate name")

	_, err = g.AddAddon("Bad", decimal.NewFromFloat(-1), 2)
	assert.Error(t, err, "negative price")
}

func TestAddonGroupSetAddonAvailability(t *testing.T) {
	g, err := NewAddonGroup(uuid.New(), "Extra Toppings", 0, 0)
	require.NoError(t, err)
	olives, err := g.AddAddon("Olives", decimal.NewFromFloat(1.50), 0)
	require.NoError(t, err)

	require.NoError(t, g.SetAddonAvailability(olives.ID, false))
	assert.False(t, g.Addons[0].IsAvailable)

	assert.Error(t, g.SetAddonAvailability(uuid.New(), true))
}
