package checkout

import (
	"github.com/DillanMilo/angus-biltong-sub000/cart"
	"github.com/DillanMilo/angus-biltong-sub000/models"
	"github.com/shopspring/decimal"
)

// Policy is the shipping rule: free at or above the threshold, flat rate below it.
type Policy struct {
	FreeShippingThreshold decimal.Decimal
	FlatRate              decimal.Decimal
}

func DefaultPolicy() Policy {
	return Policy{
		FreeShippingThreshold: decimal.NewFromInt(79),
		FlatRate:              decimal.RequireFromString("9.99"),
	}
}

type Quote struct {
	Subtotal              decimal.Decimal `json:"subtotal"`
	Shipping              decimal.Decimal `json:"shipping"`
	Total                 decimal.Decimal `json:"total"`
	ItemCount             int             `json:"item_count"`
	FreeShippingThreshold decimal.Decimal `json:"free_shipping_threshold"`
	// AmountToFreeShipping is zero once shipping is free.
	AmountToFreeShipping decimal.Decimal `json:"amount_to_free_shipping"`
}

// Shipping returns the shipping charge for a subtotal.
func (p Policy) Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(p.FreeShippingThreshold) {
		return decimal.Zero
	}
	return p.FlatRate
}

// Quote prices a cart. An empty cart ships for nothing.
func (p Policy) Quote(items []models.LineItem) Quote {
	subtotal := cart.Subtotal(items)
	count := 0
	for _, it := range items {
		count += it.Quantity
	}

	shipping := p.Shipping(subtotal)
	if count == 0 {
		shipping = decimal.Zero
	}

	remaining := p.FreeShippingThreshold.Sub(subtotal)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return Quote{
		Subtotal:              subtotal.Round(2),
		Shipping:              shipping.Round(2),
		Total:                 subtotal.Add(shipping).Round(2),
		ItemCount:             count,
		FreeShippingThreshold: p.FreeShippingThreshold,
		AmountToFreeShipping:  remaining.Round(2),
	}
}
