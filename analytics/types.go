package analytics

// Event names of the ecommerce funnel taxonomy. The names and the json
// field names below are consumed by the tag-management side and must
// not be renamed.
const (
	EventViewItemList      = "view_item_list"
	EventSelectItem        = "select_item"
	EventViewItem          = "view_item"
	EventAddToCart         = "add_to_cart"
	EventBeginCheckout     = "begin_checkout"
	EventAddShippingInfo   = "add_shipping_info"
	EventAddPaymentInfo    = "add_payment_info"
	EventPurchase          = "purchase"
	EventPurchaseCompleted = "purchase_completed"
)

// DefaultBrand is substituted when a product carries no brand.
const DefaultBrand = "The Cocktail Store"

// TransactionPrefix starts every generated transaction id.
const TransactionPrefix = "TCS-"

type Item struct {
	ItemID       string  `json:"item_id"`
	ItemName     string  `json:"item_name"`
	ItemBrand    string  `json:"item_brand"`
	ItemCategory string  `json:"item_category"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	Index        *int    `json:"index,omitempty"`
	ItemListName string  `json:"item_list_name,omitempty"`
	ItemListID   string  `json:"item_list_id,omitempty"`
}

// Ecommerce is the payload of every value-carrying funnel event.
type Ecommerce struct {
	TransactionID string        `json:"transaction_id,omitempty"`
	Currency      string        `json:"currency"`
	Value         float64       `json:"value"`
	Tax           *float64      `json:"tax,omitempty"`
	Shipping      *float64      `json:"shipping,omitempty"`
	Coupon        *string       `json:"coupon,omitempty"`
	Items         []Item        `json:"items"`
	PaymentType   string        `json:"payment_type,omitempty"`
	ShippingTier  string        `json:"shipping_tier,omitempty"`
	CustomerInfo  *CustomerInfo `json:"customer_info,omitempty"`
	Customer      *Customer     `json:"customer,omitempty"`
}

// ListEcommerce is the payload of view_item_list, which carries neither
// currency nor value.
type ListEcommerce struct {
	Items        []Item `json:"items"`
	ItemListName string `json:"item_list_name"`
	ItemListID   string `json:"item_list_id"`
}

// CustomerInfo rides on add_payment_info.
type CustomerInfo struct {
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	ShippingCountry    string `json:"shipping_country"`
	ShippingPostalCode string `json:"shipping_postal_code"`
}

// Customer rides on purchase.
type Customer struct {
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
}

type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

// OrderDetails is the payload of purchase_completed. It is not part of
// the ecommerce taxonomy and is pushed under the "orderDetails" key
// without a preceding clearing record.
type OrderDetails struct {
	OrderID        string  `json:"order_id"`
	OrderTotal     float64 `json:"order_total"`
	OrderSubtotal  float64 `json:"order_subtotal"`
	OrderShipping  float64 `json:"order_shipping"`
	OrderTax       float64 `json:"order_tax"`
	ShippingMethod string  `json:"shipping_method"`
	PaymentMethod  string  `json:"payment_method"`
	CustomerName   string  `json:"customer_name"`
	CustomerEmail  string  `json:"customer_email"`
	Items          []Item  `json:"items"`
	ItemsCount     int     `json:"items_count"`
	Date           string  `json:"date"`
}
