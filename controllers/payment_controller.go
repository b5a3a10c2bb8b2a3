package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-service/middlewares"
	"storefront-service/models"
)

type paymentRequest struct {
	Payment    string `json:"payment" binding:"required,oneof=credit-card paypal"`
	CardNumber string `json:"card_number"`
	CardHolder string `json:"card_holder"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

// GetPayment renders the order summary for the payment page.
func GetPayment(c *gin.Context) {
	subtotal := cart.Total()
	shipping := checkout.ShippingCost()
	tax := checkout.TaxAmount()

	c.JSON(http.StatusOK, gin.H{
		"items":    cart.Items(),
		"subtotal": subtotal,
		"shipping": shipping,
		"tax":      tax,
		"total":    subtotal + shipping + tax,
	})
}

// SubmitPayment saves the payment form, announces purchase before
// processing starts, then awaits the processor's completion before
// handing back the confirmation location.
func SubmitPayment(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordAction("submit_payment", status)
	}()

	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Payment == "credit-card" && req.CardNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Card number is required"})
		return
	}

	if !paymentLatch.tryAcquire("payment") {
		c.JSON(http.StatusTooManyRequests, gin.H{"message": "Payment already in progress"})
		return
	}

	if cart.Count() == 0 {
		paymentLatch.release("payment")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	paymentInfo := models.PaymentInfo{Method: req.Payment}
	if req.Payment == "credit-card" {
		paymentInfo.CardNumber = req.CardNumber
		paymentInfo.CardHolder = req.CardHolder
		paymentInfo.Expiry = req.Expiry
		paymentInfo.CVV = req.CVV
	}
	checkout.SavePaymentInfo(paymentInfo)

	transactionID := emitter.Purchase(req.Payment)

	result := <-processPayment(c.Request.Context())
	if result.err != nil {
		paymentLatch.release("payment")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment processing failed: " + result.err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"location":       "/api/confirmation?order=" + result.order.OrderNumber,
		"order_number":   result.order.OrderNumber,
		"transaction_id": transactionID,
	})
}

type paymentResult struct {
	order *models.Order
	err   error
}

// processPayment simulates the payment gateway. Completion is signaled
// on the returned channel; the handler awaits it instead of sleeping a
// fixed delay, so the order exists before the response is written.
func processPayment(ctx context.Context) <-chan paymentResult {
	done := make(chan paymentResult, 1)

	go func() {
		timer := time.NewTimer(cfg.PaymentProcessing)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			done <- paymentResult{err: ctx.Err()}
		case <-timer.C:
			order, err := checkout.PlaceOrder()
			done <- paymentResult{order: order, err: err}
		}
	}()

	return done
}
