// Package catalog provides the product source for the storefront.
package catalog

import (
	"storefront-service/models"
)

type Source interface {
	Products() []models.Product
	Find(id int) (models.Product, bool)
}

type listSource struct {
	products []models.Product
}

func (s *listSource) Products() []models.Product {
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *listSource) Find(id int) (models.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// Static returns the built-in product list, used when no catalog
// database is configured or reachable.
func Static() Source {
	return &listSource{products: defaultProducts}
}

var defaultProducts = []models.Product{
	{
		ID:          1,
		Name:        "Boston Cocktail Shaker",
		Price:       24.99,
		Description: "Two-piece stainless steel shaker with a weighted tin.",
		Category:    "tools",
		Image:       "/images/boston-shaker.jpg",
		Stock:       25,
	},
	{
		ID:          2,
		Name:        "Japanese Jigger",
		Price:       12.50,
		Description: "Precision 1oz/2oz jigger with interior measure lines.",
		Category:    "tools",
		Image:       "/images/japanese-jigger.jpg",
		Stock:       40,
	},
	{
		ID:          3,
		Name:        "Hawthorne Strainer",
		Price:       9.99,
		Description: "Tight-coil strainer for a clean double strain.",
		Category:    "tools",
		Image:       "/images/hawthorne-strainer.jpg",
		Stock:       35,
	},
	{
		ID:          4,
		Name:        "Coupe Glass Set",
		Price:       32.00,
		Description: "Set of four 6oz coupes for stirred and shaken drinks.",
		Category:    "glassware",
		Image:       "/images/coupe-set.jpg",
		Stock:       18,
	},
	{
		ID:          5,
		Name:        "Double Rocks Glass Set",
		Price:       28.00,
		Description: "Set of four heavy-bottom old fashioned glasses.",
		Category:    "glassware",
		Image:       "/images/rocks-set.jpg",
		Stock:       22,
	},
	{
		ID:          6,
		Name:        "Angostura Aromatic Bitters",
		Price:       11.25,
		Description: "The classic aromatic bitters, 200ml.",
		Category:    "ingredients",
		Image:       "/images/angostura.jpg",
		Stock:       60,
		Brand:       "Angostura",
	},
	{
		ID:          7,
		Name:        "Demerara Syrup",
		Price:       12.50,
		Description: "Rich 2:1 demerara syrup for old fashioneds and sours.",
		Category:    "ingredients",
		Image:       "/images/demerara-syrup.jpg",
		Stock:       45,
	},
	{
		ID:          8,
		Name:        "Lewis Bag and Mallet",
		Price:       19.75,
		Description: "Canvas bag and hardwood mallet for crushed ice.",
		Category:    "tools",
		Image:       "/images/lewis-bag.jpg",
		Stock:       15,
	},
	{
		ID:          9,
		Name:        "Nick and Nora Glass Set",
		Price:       36.50,
		Description: "Set of four 5oz Nick and Nora glasses.",
		Category:    "glassware",
		Image:       "/images/nick-nora-set.jpg",
		Stock:       12,
	},
	{
		ID:          10,
		Name:        "Bar Spoon",
		Price:       8.50,
		Description: "Teardrop bar spoon, 30cm twisted stem.",
		Category:    "tools",
		Image:       "/images/bar-spoon.jpg",
		Stock:       50,
	},
}
