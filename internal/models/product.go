package models

// Product represents an entry in the product/service catalog.
// Products are templates for invoice line items: picking a product
// pre-fills an item's description and unit price, but the item keeps
// its own copy afterwards.
type Product struct {
	// ID is the unique identifier for the product (UUID format).
	ID string `json:"id"`

	// Name is the product or service name.
	Name string `json:"name"`

	// Description is a longer free-text description.
	Description string `json:"description"`

	// BasePrice is the default unit price. Must be >= 0.
	BasePrice float64 `json:"basePrice"`

	// TaxRate is the tax rate recorded for the product.
	// Informational only: invoice totals always apply the fixed
	// TPS/TVQ regime, not per-product rates.
	TaxRate float64 `json:"taxRate"`
}
