// Package analytics translates storefront moments into data layer
// records. Emission is side-effect only and must never interrupt the
// user flow that triggered it.
package analytics

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"storefront-service/config"
	"storefront-service/datalayer"
	"storefront-service/middlewares"
	"storefront-service/models"
)

// CartReader is the slice of the cart store the emitter needs.
type CartReader interface {
	Items() []models.CartItem
	Total() float64
}

// CheckoutReader is the slice of the checkout store the emitter needs.
type CheckoutReader interface {
	ShippingCost() float64
	TaxAmount() float64
	ShippingMethod() string
	ShippingInfo() models.ShippingInfo
}

// Emitter pushes funnel events onto the data layer sink. Its only
// persistent state is the identity of the last announced product list.
type Emitter struct {
	sink     datalayer.Sink
	cart     CartReader
	checkout CheckoutReader
	brand    string
	currency string

	mu         sync.Mutex
	lastListID string
}

func NewEmitter(sink datalayer.Sink, cart CartReader, checkout CheckoutReader, cfg *config.Config) *Emitter {
	return &Emitter{
		sink:     sink,
		cart:     cart,
		checkout: checkout,
		brand:    cfg.StoreName,
		currency: cfg.Currency,
	}
}

// send runs one emission, containing panics so a broken push can never
// break the storefront action around it.
func (e *Emitter) send(event string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Failed to send %s event: %v", event, r)
			middlewares.RecordEmission(event, false)
		}
	}()
	fn()
	middlewares.RecordEmission(event, true)
}

// pushEcommerce pushes the clearing record and then the event record.
// Every ecommerce-taxonomy push is preceded by {"ecommerce": null} so
// downstream consumers never merge stale nested fields.
func (e *Emitter) pushEcommerce(event string, payload interface{}) {
	e.sink.Push(datalayer.Record{"ecommerce": nil})
	e.sink.Push(datalayer.Record{"event": event, "ecommerce": payload})
}

// ViewItemList announces the currently rendered product list. The push
// fires only when the (category, result count) identity differs from
// the last announced list; unrelated re-renders stay silent.
func (e *Emitter) ViewItemList(products []models.Product, category string) {
	e.send(EventViewItemList, func() {
		if len(products) == 0 {
			return
		}

		listID := category + "-" + strconv.Itoa(len(products))
		e.mu.Lock()
		if e.lastListID == listID {
			e.mu.Unlock()
			return
		}
		e.lastListID = listID
		e.mu.Unlock()

		items := make([]Item, 0, len(products))
		for i, p := range products {
			item := e.item(p, 1)
			item.Index = indexOf(i)
			items = append(items, item)
		}

		e.pushEcommerce(EventViewItemList, &ListEcommerce{
			Items:        items,
			ItemListName: e.listName(category),
			ItemListID:   category,
		})

		log.Printf("Sent view_item_list: list=%s items=%d", listID, len(items))
	})
}

// SelectItem announces a product activated from a list, before the
// navigation to its detail page.
func (e *Emitter) SelectItem(product models.Product, index int, category string) {
	e.send(EventSelectItem, func() {
		item := e.item(product, 1)
		if index >= 0 {
			item.Index = indexOf(index)
		}
		item.ItemListName = e.listName(category)
		item.ItemListID = category

		e.pushEcommerce(EventSelectItem, &Ecommerce{
			Currency: e.currency,
			Value:    round2(product.Price),
			Items:    []Item{item},
		})

		log.Printf("Sent select_item: product=%q id=%d list=%s", product.Name, product.ID, category)
	})
}

// ViewItem announces a detail page load.
func (e *Emitter) ViewItem(product models.Product) {
	e.send(EventViewItem, func() {
		e.pushEcommerce(EventViewItem, &Ecommerce{
			Currency: e.currency,
			Value:    round2(product.Price),
			Items:    []Item{e.item(product, 1)},
		})

		log.Printf("Sent view_item: product=%q id=%d", product.Name, product.ID)
	})
}

// AddToCart announces a completed cart mutation. Callers mutate the
// cart first so the event reflects the post-mutation state.
func (e *Emitter) AddToCart(product models.Product, quantity int) {
	e.send(EventAddToCart, func() {
		value := round2(product.Price * float64(quantity))
		e.pushEcommerce(EventAddToCart, &Ecommerce{
			Currency: e.currency,
			Value:    value,
			Items:    []Item{e.item(product, quantity)},
		})

		log.Printf("Sent add_to_cart: product=%q qty=%d value=%.2f", product.Name, quantity, value)
	})
}

// BeginCheckout announces checkout initiation from the detail page.
func (e *Emitter) BeginCheckout(product models.Product, quantity int) {
	e.send(EventBeginCheckout, func() {
		value := round2(product.Price * float64(quantity))
		e.pushEcommerce(EventBeginCheckout, &Ecommerce{
			Currency: e.currency,
			Value:    value,
			Items:    []Item{e.item(product, quantity)},
		})

		log.Printf("Sent begin_checkout: product=%q qty=%d value=%.2f", product.Name, quantity, value)
	})
}

// AddShippingInfo announces a checkout page load with the full cart.
func (e *Emitter) AddShippingInfo() {
	e.send(EventAddShippingInfo, func() {
		items, total := e.cartScope()
		if len(items) == 0 {
			log.Printf("Skipping add_shipping_info: cart is empty")
			return
		}
		e.pushEcommerce(EventAddShippingInfo, &Ecommerce{
			Currency:     e.currency,
			Value:        total,
			ShippingTier: e.shippingTier(),
			Items:        items,
		})

		log.Printf("Sent add_shipping_info: value=%.2f items=%d", total, len(items))
	})
}

// AddPaymentInfo announces a submitted shipping form, before the
// navigation to the payment page.
func (e *Emitter) AddPaymentInfo(info models.ShippingInfo, shippingMethod string) {
	e.send(EventAddPaymentInfo, func() {
		if shippingMethod == "" {
			shippingMethod = "standard"
		}

		items, total := e.cartScope()
		if len(items) == 0 {
			log.Printf("Skipping add_payment_info: cart is empty")
			return
		}
		e.pushEcommerce(EventAddPaymentInfo, &Ecommerce{
			Currency:     e.currency,
			Value:        total,
			PaymentType:  "credit_card",
			Items:        items,
			ShippingTier: shippingMethod,
			CustomerInfo: &CustomerInfo{
				Email:              info.Email,
				Phone:              info.Phone,
				ShippingCountry:    info.Country,
				ShippingPostalCode: info.Postal,
			},
		})

		log.Printf("Sent add_payment_info: value=%.2f tier=%s items=%d", total, shippingMethod, len(items))
	})
}

// Purchase announces a submitted payment form, before payment
// processing starts. The generated transaction id is returned for the
// caller's diagnostics.
func (e *Emitter) Purchase(paymentMethod string) string {
	transactionID := NewTransactionID()

	e.send(EventPurchase, func() {
		items, total := e.cartScope()
		if len(items) == 0 {
			log.Printf("Skipping purchase: cart is empty")
			return
		}
		tax := round2(e.checkout.TaxAmount())
		shipping := round2(e.checkout.ShippingCost())
		coupon := ""
		info := e.checkout.ShippingInfo()

		e.pushEcommerce(EventPurchase, &Ecommerce{
			TransactionID: transactionID,
			Currency:      e.currency,
			Value:         total,
			Tax:           &tax,
			Shipping:      &shipping,
			Coupon:        &coupon,
			Items:         items,
			PaymentType:   paymentMethod,
			ShippingTier:  e.shippingTier(),
			Customer: &Customer{
				Email: info.Email,
				Phone: info.Phone,
				ShippingAddress: ShippingAddress{
					Address:    info.Address,
					City:       info.City,
					Country:    info.Country,
					PostalCode: info.Postal,
				},
			},
		})

		log.Printf("Sent purchase: transaction=%s value=%.2f payment=%s items=%d",
			transactionID, total, paymentMethod, len(items))
	})

	return transactionID
}

// PurchaseCompleted announces a confirmation page load. It pushes a
// single orderDetails record without a clearing push, and skips
// silently when the order is incomplete.
func (e *Emitter) PurchaseCompleted(order *models.Order) {
	e.send(EventPurchaseCompleted, func() {
		if !order.Complete() {
			log.Printf("Skipping purchase_completed: incomplete order info")
			return
		}

		items := make([]Item, 0, len(order.Items))
		for i, line := range order.Items {
			item := e.item(line.Product, line.Quantity)
			item.Index = indexOf(i)
			items = append(items, item)
		}

		e.sink.Push(datalayer.Record{
			"event": EventPurchaseCompleted,
			"orderDetails": &OrderDetails{
				OrderID:        order.OrderNumber,
				OrderTotal:     round2(order.Total),
				OrderSubtotal:  round2(order.Subtotal),
				OrderShipping:  round2(order.Shipping),
				OrderTax:       round2(order.Tax),
				ShippingMethod: order.ShippingMethod,
				PaymentMethod:  paymentMethodOf(order),
				CustomerName:   order.ShippingInfo.FullName,
				CustomerEmail:  order.ShippingInfo.Email,
				Items:          items,
				ItemsCount:     len(items),
				Date:           time.Now().UTC().Format(time.RFC3339),
			},
		})

		log.Printf("Sent purchase_completed: order=%s total=%.2f items=%d",
			order.OrderNumber, order.Total, len(items))
	})
}

// cartScope derives the full-cart item list and the order value
// (subtotal + shipping + tax) from the current store state.
func (e *Emitter) cartScope() ([]Item, float64) {
	lines := e.cart.Items()
	items := make([]Item, 0, len(lines))
	for i, line := range lines {
		item := e.item(line.Product, line.Quantity)
		item.Index = indexOf(i)
		items = append(items, item)
	}

	total := e.cart.Total() + e.checkout.ShippingCost() + e.checkout.TaxAmount()
	return items, round2(total)
}

func (e *Emitter) item(p models.Product, quantity int) Item {
	brand := p.Brand
	if brand == "" {
		brand = e.brand
	}
	return Item{
		ItemID:       strconv.Itoa(p.ID),
		ItemName:     p.Name,
		ItemBrand:    brand,
		ItemCategory: p.Category,
		Price:        p.Price,
		Quantity:     quantity,
	}
}

func (e *Emitter) shippingTier() string {
	if tier := e.checkout.ShippingMethod(); tier != "" {
		return tier
	}
	return "standard"
}

func (e *Emitter) listName(category string) string {
	if category == "all" {
		return "All Products"
	}
	return category
}

func paymentMethodOf(order *models.Order) string {
	if order.PaymentInfo.Method == "" {
		return "unknown"
	}
	return order.PaymentInfo.Method
}

// NewTransactionID builds a best-effort unique id from the fixed
// prefix, the current unix milliseconds and a random suffix.
func NewTransactionID() string {
	return fmt.Sprintf("%s%d-%d", TransactionPrefix, time.Now().UnixMilli(), rand.Intn(1000))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func indexOf(i int) *int {
	return &i
}
