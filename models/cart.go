package models

import "github.com/shopspring/decimal"

// LineItem is one product in a visitor's cart. ID matches the catalog product id and
// is unique within a cart.
type LineItem struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"` // unit price
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
	SKU       string          `json:"sku,omitempty"`
	ProductID int             `json:"productId,omitempty"` // upstream order submission
	VariantID int             `json:"variantId,omitempty"`
}

// LineTotal is unit price times quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}
