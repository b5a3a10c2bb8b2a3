package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-service/middlewares"
	"storefront-service/models"
)

// GetCheckout renders the order summary and the saved shipping data
// for form prefill, then announces add_shipping_info.
func GetCheckout(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordAction("view_checkout", status)
	}()

	subtotal := cart.Total()
	shipping := checkout.ShippingCost()
	tax := checkout.TaxAmount()

	c.JSON(http.StatusOK, gin.H{
		"items":           cart.Items(),
		"subtotal":        subtotal,
		"shipping":        shipping,
		"tax":             tax,
		"total":           subtotal + shipping + tax,
		"shipping_info":   checkout.ShippingInfo(),
		"shipping_method": checkout.ShippingMethod(),
	})

	emitter.AddShippingInfo()
}

type shippingRequest struct {
	models.ShippingInfo
	Shipping string `json:"shipping" binding:"omitempty,oneof=standard express"`
}

// SubmitShipping saves the shipping form, announces add_payment_info
// and hands back the payment location. The push happens before the
// response so the event precedes the navigation to payment.
func SubmitShipping(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordAction("submit_shipping", status)
	}()

	var req shippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checkout.SaveShippingInfo(req.ShippingInfo)
	checkout.SetShippingMethod(req.Shipping)

	emitter.AddPaymentInfo(req.ShippingInfo, req.Shipping)

	c.JSON(http.StatusOK, gin.H{"location": "/api/payment"})
}
