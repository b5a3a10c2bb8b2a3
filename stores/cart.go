// Package stores holds the shared in-memory cart and checkout state
// the storefront controllers read and mutate.
package stores

import (
	"sync"

	"storefront-service/models"
)

type Cart struct {
	mu    sync.Mutex
	items []models.CartItem
}

func NewCart() *Cart {
	return &Cart{}
}

// AddItem merges the product into the cart, accumulating quantity when
// the product is already present.
func (c *Cart) AddItem(product models.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == product.ID {
			c.items[i].Quantity += quantity
			return
		}
	}
	c.items = append(c.items, models.CartItem{Product: product, Quantity: quantity})
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
func (c *Cart) UpdateQuantity(productID, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == productID {
			if quantity <= 0 {
				c.items = append(c.items[:i], c.items[i+1:]...)
			} else {
				c.items[i].Quantity = quantity
			}
			return
		}
	}
}

func (c *Cart) RemoveItem(productID int) {
	c.UpdateQuantity(productID, 0)
}

// Items returns a snapshot copy of the cart lines.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Total is the sum of line subtotals.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return total
}

// Count is the total number of units across all lines.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var count int
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}
