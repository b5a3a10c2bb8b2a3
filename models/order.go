package models

import (
	"time"
)

type ShippingInfo struct {
	FullName string `json:"fullname" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address" binding:"required"`
	City     string `json:"city" binding:"required"`
	Postal   string `json:"postal" binding:"required"`
	Country  string `json:"country" binding:"required"`
}

type PaymentInfo struct {
	Method     string `json:"method"`
	CardNumber string `json:"card_number,omitempty"`
	CardHolder string `json:"card_holder,omitempty"`
	Expiry     string `json:"expiry,omitempty"`
	CVV        string `json:"-"`
}

type Order struct {
	OrderNumber    string       `json:"order_number"`
	Items          []CartItem   `json:"items"`
	Subtotal       float64      `json:"subtotal"`
	Shipping       float64      `json:"shipping"`
	Tax            float64      `json:"tax"`
	Total          float64      `json:"total"`
	ShippingInfo   ShippingInfo `json:"shipping_info"`
	ShippingMethod string       `json:"shipping_method"`
	PaymentInfo    PaymentInfo  `json:"payment_info"`
	PlacedAt       time.Time    `json:"placed_at"`
}

// Complete reports whether the order carries enough information for
// downstream reporting. Orders missing items or a total are skipped.
func (o *Order) Complete() bool {
	return o != nil && len(o.Items) > 0 && o.Total > 0
}
