package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a read-only catalog record owned by the commerce platform.
type Product struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Images        []string        `json:"images"` // ordered, first is the primary image
	SKU           string          `json:"sku,omitempty"`
	BaseVariantID int             `json:"base_variant_id,omitempty"`
	Rating        float64         `json:"rating"`
	CreatedAt     time.Time       `json:"created_at"`
}

// PrimaryImage returns the first image URL, or "" when the product has none.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
