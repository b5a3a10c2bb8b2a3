package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront-service/middlewares"
)

// GetProduct renders a product detail page and announces view_item.
// Unknown products render nothing and emit nothing.
func GetProduct(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordAction("view_product", status)
	}()

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, ok := source.Find(productID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error":    "Product not found",
			"location": "/api/products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product":  product,
		"sku":      fmt.Sprintf("PROD-%d", product.ID),
		"in_stock": product.Stock > 0,
	})

	emitter.ViewItem(product)
}

type addToCartRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity"`
}

// AddToCart mutates the cart and then announces add_to_cart. The
// per-product latch keeps a double activation down to one mutation and
// one event.
func AddToCart(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordAction("add_to_cart", status)
	}()

	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, ok := source.Find(req.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	quantity := clampQuantity(req.Quantity, product.Stock)
	if quantity == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Product is out of stock"})
		return
	}

	if !addToCartLatch.tryAcquire(fmt.Sprintf("add:%d", product.ID)) {
		c.JSON(http.StatusTooManyRequests, gin.H{"message": "Add to cart already in progress"})
		return
	}

	cart.AddItem(product, quantity)
	emitter.AddToCart(product, quantity)

	c.JSON(http.StatusCreated, gin.H{
		"cart_count": cart.Count(),
		"cart_total": cart.Total(),
	})
}

// BeginCheckout adds the product to the cart, announces begin_checkout
// and hands back the checkout location. The push happens before the
// response, preserving the emit-before-navigate ordering.
func BeginCheckout(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordAction("begin_checkout", status)
	}()

	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, ok := source.Find(req.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	quantity := clampQuantity(req.Quantity, product.Stock)
	if quantity == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Product is out of stock"})
		return
	}

	if !beginCheckoutLatch.tryAcquire(fmt.Sprintf("checkout:%d", product.ID)) {
		c.JSON(http.StatusTooManyRequests, gin.H{"message": "Checkout already in progress"})
		return
	}

	cart.AddItem(product, quantity)
	emitter.BeginCheckout(product, quantity)

	c.JSON(http.StatusOK, gin.H{"location": "/api/checkout"})
}

// GetCart renders the current cart.
func GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"items": cart.Items(),
		"count": cart.Count(),
		"total": cart.Total(),
	})
}

func clampQuantity(quantity, stock int) int {
	if stock <= 0 {
		return 0
	}
	if quantity < 1 {
		quantity = 1
	}
	if quantity > stock {
		quantity = stock
	}
	return quantity
}
