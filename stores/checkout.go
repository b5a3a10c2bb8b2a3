package stores

import (
	"errors"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront-service/config"
	"storefront-service/models"
)

var ErrEmptyCart = errors.New("cannot place an order with an empty cart")

type Checkout struct {
	mu             sync.Mutex
	cart           *Cart
	cfg            *config.Config
	shippingInfo   models.ShippingInfo
	shippingMethod string
	paymentInfo    models.PaymentInfo
	lastOrder      *models.Order
}

func NewCheckout(cart *Cart, cfg *config.Config) *Checkout {
	return &Checkout{cart: cart, cfg: cfg}
}

func (s *Checkout) SaveShippingInfo(info models.ShippingInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shippingInfo = info
}

func (s *Checkout) SetShippingMethod(method string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shippingMethod = method
}

func (s *Checkout) SavePaymentInfo(info models.PaymentInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paymentInfo = info
}

func (s *Checkout) ShippingInfo() models.ShippingInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shippingInfo
}

func (s *Checkout) ShippingMethod() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shippingMethod
}

func (s *Checkout) PaymentInfo() models.PaymentInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paymentInfo
}

// ShippingCost depends on the selected method; an unset method costs
// the standard tier.
func (s *Checkout) ShippingCost() float64 {
	if s.ShippingMethod() == "express" {
		return s.cfg.ShippingExpress
	}
	return s.cfg.ShippingStandard
}

// TaxAmount applies the configured rate to the cart subtotal.
func (s *Checkout) TaxAmount() float64 {
	return round2(s.cart.Total() * s.cfg.TaxRate)
}

// PlaceOrder freezes the current cart and checkout state into an order
// record and clears the cart.
func (s *Checkout) PlaceOrder() (*models.Order, error) {
	items := s.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal := round2(s.cart.Total())
	shipping := round2(s.ShippingCost())
	tax := s.TaxAmount()

	s.mu.Lock()
	order := &models.Order{
		OrderNumber:    newOrderNumber(),
		Items:          items,
		Subtotal:       subtotal,
		Shipping:       shipping,
		Tax:            tax,
		Total:          round2(subtotal + shipping + tax),
		ShippingInfo:   s.shippingInfo,
		ShippingMethod: s.shippingMethod,
		PaymentInfo:    s.paymentInfo,
		PlacedAt:       time.Now().UTC(),
	}
	s.lastOrder = order
	s.mu.Unlock()

	s.cart.Clear()
	return order, nil
}

// OrderDetails returns the most recently placed order, or nil.
func (s *Checkout) OrderDetails() *models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastOrder
}

// FindOrder returns the placed order matching the given number, or nil.
func (s *Checkout) FindOrder(orderNumber string) *models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastOrder != nil && s.lastOrder.OrderNumber == orderNumber {
		return s.lastOrder
	}
	return nil
}

func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
