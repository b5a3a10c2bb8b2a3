package stores

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/models"
)

func syrup() models.Product {
	return models.Product{ID: 7, Name: "Demerara Syrup", Price: 12.50, Category: "ingredients", Stock: 45}
}

func shaker() models.Product {
	return models.Product{ID: 1, Name: "Boston Cocktail Shaker", Price: 24.99, Category: "tools", Stock: 25}
}

func TestAddItemMergesQuantity(t *testing.T) {
	cart := NewCart()

	cart.AddItem(syrup(), 2)
	cart.AddItem(syrup(), 1)
	cart.AddItem(shaker(), 1)

	items := cart.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 4, cart.Count())
}

func TestCartTotal(t *testing.T) {
	cart := NewCart()
	cart.AddItem(syrup(), 2)
	cart.AddItem(shaker(), 1)

	assert.InDelta(t, 2*12.50+24.99, cart.Total(), 0.001)
}

func TestUpdateQuantity(t *testing.T) {
	cart := NewCart()
	cart.AddItem(syrup(), 2)

	cart.UpdateQuantity(7, 5)
	assert.Equal(t, 5, cart.Count())

	cart.UpdateQuantity(7, 0)
	assert.Empty(t, cart.Items())
}

func TestRemoveItem(t *testing.T) {
	cart := NewCart()
	cart.AddItem(syrup(), 1)
	cart.AddItem(shaker(), 1)

	cart.RemoveItem(7)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].ID)
}

func TestItemsReturnsSnapshot(t *testing.T) {
	cart := NewCart()
	cart.AddItem(syrup(), 1)

	items := cart.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, cart.Count())
}

func TestClear(t *testing.T) {
	cart := NewCart()
	cart.AddItem(syrup(), 2)

	cart.Clear()

	assert.Empty(t, cart.Items())
	assert.Zero(t, cart.Total())
}
