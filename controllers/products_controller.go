package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront-service/middlewares"
	"storefront-service/models"
)

// ListProducts renders the filtered product list and announces it on
// the data layer. The announcement is deduplicated on list identity.
func ListProducts(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordAction("list_products", status)
	}()

	category := c.DefaultQuery("category", "all")
	search := strings.ToLower(c.Query("search"))

	filtered := filterProducts(source.Products(), category, search)

	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"count":    len(filtered),
		"products": filtered,
	})

	emitter.ViewItemList(filtered, category)
}

// SelectProduct announces a product activated from the list and hands
// back the detail location. The push happens before the response so
// the event precedes the navigation.
func SelectProduct(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordAction("select_product", status)
	}()

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, ok := source.Find(productID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	category := c.DefaultQuery("category", "all")
	search := strings.ToLower(c.Query("search"))
	filtered := filterProducts(source.Products(), category, search)

	index := -1
	for i, p := range filtered {
		if p.ID == product.ID {
			index = i
			break
		}
	}

	emitter.SelectItem(product, index, category)

	c.JSON(http.StatusOK, gin.H{
		"location": fmt.Sprintf("/api/products/%d", product.ID),
	})
}

func filterProducts(products []models.Product, category, search string) []models.Product {
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		matchesCategory := category == "all" || p.Category == category
		matchesSearch := search == "" ||
			strings.Contains(strings.ToLower(p.Name), search) ||
			strings.Contains(strings.ToLower(p.Description), search)
		if matchesCategory && matchesSearch {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
