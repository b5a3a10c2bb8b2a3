package models

type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Stock       int     `json:"stock"`
	Brand       string  `json:"brand,omitempty"`
}

type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}
