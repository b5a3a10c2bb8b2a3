package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-service/middlewares"
	"storefront-service/models"
)

// GetConfirmation renders the placed order and announces
// purchase_completed. Missing or unknown orders render a not-found
// response and emit nothing.
func GetConfirmation(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordAction("view_confirmation", status)
	}()

	var order *models.Order
	if number := c.Query("order"); number != "" {
		order = checkout.FindOrder(number)
	} else {
		order = checkout.OrderDetails()
	}

	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":          order,
		"payment_method": formatPaymentMethod(order.PaymentInfo),
	})

	emitter.PurchaseCompleted(order)
}

// GetDataLayer exposes a snapshot of the in-process data layer queue
// for the tag-management tooling to drain.
func GetDataLayer(c *gin.Context) {
	if queue == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Data layer queue not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"length":  queue.Len(),
		"records": queue.Records(),
	})
}

func formatPaymentMethod(info models.PaymentInfo) string {
	switch info.Method {
	case "credit-card":
		if len(info.CardNumber) >= 4 {
			return "Card ending in " + info.CardNumber[len(info.CardNumber)-4:]
		}
		return "Credit card"
	case "paypal":
		return "PayPal"
	case "":
		return "unknown"
	}
	return info.Method
}
