package analytics

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/config"
	"storefront-service/datalayer"
	"storefront-service/models"
)

type captureSink struct {
	records []datalayer.Record
}

func (s *captureSink) Push(record datalayer.Record) {
	s.records = append(s.records, record)
}

type panicSink struct{}

func (panicSink) Push(datalayer.Record) {
	panic("sink unavailable")
}

type stubCart struct {
	items []models.CartItem
}

func (s *stubCart) Items() []models.CartItem { return s.items }

func (s *stubCart) Total() float64 {
	var total float64
	for _, item := range s.items {
		total += item.Subtotal()
	}
	return total
}

type stubCheckout struct {
	shipping float64
	tax      float64
	method   string
	info     models.ShippingInfo
}

func (s *stubCheckout) ShippingCost() float64             { return s.shipping }
func (s *stubCheckout) TaxAmount() float64                { return s.tax }
func (s *stubCheckout) ShippingMethod() string            { return s.method }
func (s *stubCheckout) ShippingInfo() models.ShippingInfo { return s.info }

func testConfig() *config.Config {
	return &config.Config{
		StoreName: "The Cocktail Store",
		Currency:  "USD",
	}
}

func newTestEmitter(cart *stubCart, checkout *stubCheckout) (*Emitter, *captureSink) {
	sink := &captureSink{}
	return NewEmitter(sink, cart, checkout, testConfig()), sink
}

// wire marshals a record and decodes it back, so assertions run
// against the exact field names downstream consumers see.
func wire(t *testing.T, record datalayer.Record) map[string]interface{} {
	t.Helper()
	data, err := json.Marshal(record)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func ecommerceOf(t *testing.T, record datalayer.Record) map[string]interface{} {
	t.Helper()
	payload, ok := wire(t, record)["ecommerce"].(map[string]interface{})
	require.True(t, ok, "record has no ecommerce payload")
	return payload
}

func itemsOf(t *testing.T, payload map[string]interface{}) []map[string]interface{} {
	t.Helper()
	raw, ok := payload["items"].([]interface{})
	require.True(t, ok, "payload has no items")
	items := make([]map[string]interface{}, len(raw))
	for i, r := range raw {
		items[i] = r.(map[string]interface{})
	}
	return items
}

func sampleProduct() models.Product {
	return models.Product{
		ID:          7,
		Name:        "Demerara Syrup",
		Price:       12.50,
		Description: "Rich 2:1 demerara syrup.",
		Category:    "ingredients",
		Image:       "/images/demerara-syrup.jpg",
		Stock:       45,
	}
}

func sampleCart() *stubCart {
	return &stubCart{items: []models.CartItem{
		{Product: sampleProduct(), Quantity: 2},
	}}
}

func TestEveryEcommercePushPrecededByClearing(t *testing.T) {
	cart := sampleCart()
	checkout := &stubCheckout{shipping: 5.00, tax: 2.10}
	emitter, sink := newTestEmitter(cart, checkout)

	product := sampleProduct()
	emitter.ViewItemList([]models.Product{product}, "all")
	emitter.SelectItem(product, 0, "all")
	emitter.ViewItem(product)
	emitter.AddToCart(product, 2)
	emitter.BeginCheckout(product, 2)
	emitter.AddShippingInfo()
	emitter.AddPaymentInfo(models.ShippingInfo{Email: "a@b.co"}, "standard")
	emitter.Purchase("credit-card")

	require.NotEmpty(t, sink.records)
	for i, record := range sink.records {
		decoded := wire(t, record)
		value, hasEcommerce := decoded["ecommerce"]
		if !hasEcommerce {
			continue
		}
		if value == nil {
			// Clearing record: the ecommerce key alone, set to null.
			assert.Len(t, decoded, 1, "clearing record %d carries extra fields", i)
			continue
		}
		require.Greater(t, i, 0, "ecommerce push %d has no predecessor", i)
		prev := wire(t, sink.records[i-1])
		prevValue, ok := prev["ecommerce"]
		assert.True(t, ok && prevValue == nil,
			"ecommerce push %d not preceded by a clearing push", i)
	}
}

func TestViewItemListDeduplication(t *testing.T) {
	emitter, sink := newTestEmitter(&stubCart{}, &stubCheckout{})

	products := []models.Product{sampleProduct(), {ID: 8, Name: "Lewis Bag", Price: 19.75, Category: "tools"}}

	emitter.ViewItemList(products, "all")
	require.Len(t, sink.records, 2) // clearing push + event push

	// Unrelated re-render with the same category and count: silent.
	emitter.ViewItemList(products, "all")
	assert.Len(t, sink.records, 2)

	// A narrowed result set re-emits.
	emitter.ViewItemList(products[:1], "all")
	assert.Len(t, sink.records, 4)

	// A category change re-emits.
	emitter.ViewItemList(products[:1], "tools")
	assert.Len(t, sink.records, 6)
}

func TestViewItemListShape(t *testing.T) {
	emitter, sink := newTestEmitter(&stubCart{}, &stubCheckout{})

	products := []models.Product{
		sampleProduct(),
		{ID: 6, Name: "Angostura Aromatic Bitters", Price: 11.25, Category: "ingredients", Brand: "Angostura"},
	}
	emitter.ViewItemList(products, "all")

	require.Len(t, sink.records, 2)
	payload := ecommerceOf(t, sink.records[1])

	// view_item_list carries neither currency nor value.
	_, hasCurrency := payload["currency"]
	_, hasValue := payload["value"]
	assert.False(t, hasCurrency)
	assert.False(t, hasValue)

	assert.Equal(t, "All Products", payload["item_list_name"])
	assert.Equal(t, "all", payload["item_list_id"])

	items := itemsOf(t, payload)
	require.Len(t, items, 2)
	assert.Equal(t, "7", items[0]["item_id"])
	assert.Equal(t, "The Cocktail Store", items[0]["item_brand"])
	assert.EqualValues(t, 0, items[0]["index"])
	assert.Equal(t, "Angostura", items[1]["item_brand"])
	assert.EqualValues(t, 1, items[1]["index"])
}

func TestViewItemListSkipsEmptyList(t *testing.T) {
	emitter, sink := newTestEmitter(&stubCart{}, &stubCheckout{})
	emitter.ViewItemList(nil, "all")
	assert.Empty(t, sink.records)
}

func TestSelectItemCarriesListContext(t *testing.T) {
	emitter, sink := newTestEmitter(&stubCart{}, &stubCheckout{})

	emitter.SelectItem(sampleProduct(), 3, "ingredients")

	require.Len(t, sink.records, 2)
	decoded := wire(t, sink.records[1])
	assert.Equal(t, "select_item", decoded["event"])

	payload := ecommerceOf(t, sink.records[1])
	assert.Equal(t, "USD", payload["currency"])
	assert.EqualValues(t, 12.5, payload["value"])

	items := itemsOf(t, payload)
	require.Len(t, items, 1)
	assert.EqualValues(t, 3, items[0]["index"])
	assert.Equal(t, "ingredients", items[0]["item_list_name"])
	assert.Equal(t, "ingredients", items[0]["item_list_id"])
	assert.EqualValues(t, 1, items[0]["quantity"])
}

func TestViewItemShape(t *testing.T) {
	emitter, sink := newTestEmitter(&stubCart{}, &stubCheckout{})

	emitter.ViewItem(sampleProduct())

	require.Len(t, sink.records, 2)
	payload := ecommerceOf(t, sink.records[1])
	assert.EqualValues(t, 12.5, payload["value"])

	items := itemsOf(t, payload)
	require.Len(t, items, 1)
	assert.EqualValues(t, 1, items[0]["quantity"])
	_, hasIndex := items[0]["index"]
	assert.False(t, hasIndex)
}

func TestAddToCartValue(t *testing.T) {
	emitter, sink := newTestEmitter(&stubCart{}, &stubCheckout{})

	emitter.AddToCart(sampleProduct(), 2)

	require.Len(t, sink.records, 2)
	decoded := wire(t, sink.records[1])
	assert.Equal(t, "add_to_cart", decoded["event"])

	payload := ecommerceOf(t, sink.records[1])
	assert.EqualValues(t, 25.00, payload["value"])

	items := itemsOf(t, payload)
	require.Len(t, items, 1)
	assert.Equal(t, "7", items[0]["item_id"])
	assert.EqualValues(t, 2, items[0]["quantity"])
	assert.EqualValues(t, 12.5, items[0]["price"])
}

func TestAddShippingInfoValue(t *testing.T) {
	cart := sampleCart()
	checkout := &stubCheckout{shipping: 5.00, tax: 2.10}
	emitter, sink := newTestEmitter(cart, checkout)

	emitter.AddShippingInfo()

	require.Len(t, sink.records, 2)
	payload := ecommerceOf(t, sink.records[1])
	assert.EqualValues(t, 32.10, payload["value"])
	assert.Equal(t, "standard", payload["shipping_tier"])

	items := itemsOf(t, payload)
	require.Len(t, items, 1)
	assert.EqualValues(t, 0, items[0]["index"])
}

func TestAddPaymentInfoCustomerInfo(t *testing.T) {
	cart := sampleCart()
	checkout := &stubCheckout{shipping: 5.00, tax: 2.10}
	emitter, sink := newTestEmitter(cart, checkout)

	info := models.ShippingInfo{
		Email:   "ada@example.com",
		Phone:   "+1 555 0100",
		Country: "US",
		Postal:  "10001",
	}
	emitter.AddPaymentInfo(info, "express")

	require.Len(t, sink.records, 2)
	payload := ecommerceOf(t, sink.records[1])
	assert.Equal(t, "express", payload["shipping_tier"])
	assert.Equal(t, "credit_card", payload["payment_type"])

	customer, ok := payload["customer_info"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", customer["email"])
	assert.Equal(t, "+1 555 0100", customer["phone"])
	assert.Equal(t, "US", customer["shipping_country"])
	assert.Equal(t, "10001", customer["shipping_postal_code"])
}

func TestAddPaymentInfoDefaultsShippingTier(t *testing.T) {
	emitter, sink := newTestEmitter(sampleCart(), &stubCheckout{})

	emitter.AddPaymentInfo(models.ShippingInfo{}, "")

	require.Len(t, sink.records, 2)
	payload := ecommerceOf(t, sink.records[1])
	assert.Equal(t, "standard", payload["shipping_tier"])
}

var transactionIDPattern = regexp.MustCompile(`^TCS-\d+-\d{1,3}$`)

func TestPurchase(t *testing.T) {
	cart := sampleCart()
	checkout := &stubCheckout{
		shipping: 5.00,
		tax:      5.25,
		method:   "standard",
		info: models.ShippingInfo{
			Email:   "ada@example.com",
			Phone:   "+1 555 0100",
			Address: "1 Main St",
			City:    "Springfield",
			Country: "US",
			Postal:  "10001",
		},
	}
	emitter, sink := newTestEmitter(cart, checkout)

	transactionID := emitter.Purchase("credit-card")
	assert.Regexp(t, transactionIDPattern, transactionID)

	require.Len(t, sink.records, 2)
	payload := ecommerceOf(t, sink.records[1])

	assert.EqualValues(t, 35.25, payload["value"])
	assert.Equal(t, "credit-card", payload["payment_type"])
	assert.Equal(t, transactionID, payload["transaction_id"])
	assert.EqualValues(t, 5.25, payload["tax"])
	assert.EqualValues(t, 5.00, payload["shipping"])
	assert.Equal(t, "", payload["coupon"])
	assert.Equal(t, "standard", payload["shipping_tier"])

	customer, ok := payload["customer"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", customer["email"])
	address, ok := customer["shipping_address"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "1 Main St", address["address"])
	assert.Equal(t, "Springfield", address["city"])
	assert.Equal(t, "US", address["country"])
	assert.Equal(t, "10001", address["postal_code"])
}

func TestTransactionIDsDiffer(t *testing.T) {
	a := NewTransactionID()
	b := NewTransactionID()
	assert.Regexp(t, transactionIDPattern, a)
	assert.Regexp(t, transactionIDPattern, b)
	assert.NotEqual(t, a, b)
}

func TestCartScopedEventsSkipEmptyCart(t *testing.T) {
	emitter, sink := newTestEmitter(&stubCart{}, &stubCheckout{shipping: 5.00})

	emitter.AddShippingInfo()
	emitter.AddPaymentInfo(models.ShippingInfo{}, "standard")
	emitter.Purchase("paypal")

	assert.Empty(t, sink.records)
}

func TestPurchaseCompleted(t *testing.T) {
	emitter, sink := newTestEmitter(&stubCart{}, &stubCheckout{})

	order := &models.Order{
		OrderNumber:    "ORD-AB12CD34",
		Items:          []models.CartItem{{Product: sampleProduct(), Quantity: 2}},
		Subtotal:       25.00,
		Shipping:       5.00,
		Tax:            5.25,
		Total:          35.25,
		ShippingMethod: "standard",
		ShippingInfo:   models.ShippingInfo{FullName: "Ada L", Email: "ada@example.com"},
		PaymentInfo:    models.PaymentInfo{Method: "credit-card", CardNumber: "4111111111111111"},
	}
	emitter.PurchaseCompleted(order)

	// One record, no clearing push.
	require.Len(t, sink.records, 1)
	decoded := wire(t, sink.records[0])
	assert.Equal(t, "purchase_completed", decoded["event"])
	_, hasEcommerce := decoded["ecommerce"]
	assert.False(t, hasEcommerce)

	details, ok := decoded["orderDetails"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ORD-AB12CD34", details["order_id"])
	assert.EqualValues(t, 35.25, details["order_total"])
	assert.EqualValues(t, 25.00, details["order_subtotal"])
	assert.EqualValues(t, 5.00, details["order_shipping"])
	assert.EqualValues(t, 5.25, details["order_tax"])
	assert.Equal(t, "standard", details["shipping_method"])
	assert.Equal(t, "credit-card", details["payment_method"])
	assert.Equal(t, "Ada L", details["customer_name"])
	assert.Equal(t, "ada@example.com", details["customer_email"])
	assert.EqualValues(t, 1, details["items_count"])
	assert.NotEmpty(t, details["date"])
}

func TestPurchaseCompletedSkipsIncompleteOrders(t *testing.T) {
	emitter, sink := newTestEmitter(&stubCart{}, &stubCheckout{})

	emitter.PurchaseCompleted(nil)
	emitter.PurchaseCompleted(&models.Order{OrderNumber: "ORD-1", Total: 35.25})
	emitter.PurchaseCompleted(&models.Order{
		OrderNumber: "ORD-2",
		Items:       []models.CartItem{{Product: sampleProduct(), Quantity: 1}},
	})

	assert.Empty(t, sink.records)
}

func TestEmissionFailureDoesNotPropagate(t *testing.T) {
	emitter := NewEmitter(panicSink{}, &stubCart{}, &stubCheckout{}, testConfig())

	assert.NotPanics(t, func() {
		emitter.ViewItem(sampleProduct())
		emitter.AddToCart(sampleProduct(), 1)
	})
}
