package controllers

import (
	"storefront-service/analytics"
	"storefront-service/catalog"
	"storefront-service/config"
	"storefront-service/datalayer"
	"storefront-service/stores"
)

var (
	cfg      *config.Config
	source   catalog.Source
	cart     *stores.Cart
	checkout *stores.Checkout
	emitter  *analytics.Emitter
	queue    *datalayer.Queue

	addToCartLatch     *latch
	beginCheckoutLatch *latch
	paymentLatch       *latch
)

// Setup wires the shared collaborators into the controller package.
func Setup(c *config.Config, src catalog.Source, cartStore *stores.Cart, checkoutStore *stores.Checkout, em *analytics.Emitter) {
	cfg = c
	source = src
	cart = cartStore
	checkout = checkoutStore
	emitter = em

	addToCartLatch = newLatch(c.AddToCartCooldown)
	beginCheckoutLatch = newLatch(c.BeginCheckoutCooldown)
	paymentLatch = newLatch(c.PaymentCooldown)
}

// SetQueue exposes the in-process data layer queue for draining.
func SetQueue(q *datalayer.Queue) {
	queue = q
}
