package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/DillanMilo/angus-biltong-sub000/commerce"
	"github.com/DillanMilo/angus-biltong-sub000/models"
)

var ErrEmptyCart = errors.New("cart is empty")

// Upstream creates carts on the commerce platform.
type Upstream interface {
	CreateCart(ctx context.Context, lines []commerce.CartLine) (string, error)
	CartRedirectURLs(ctx context.Context, cartID string) (commerce.CheckoutURLs, error)
}

type Session struct {
	CartID      string `json:"cart_id"`
	CheckoutURL string `json:"checkout_url"`
	Quote       Quote  `json:"quote"`
}

// HandOff passes a cart snapshot to the platform's hosted checkout.
type HandOff struct {
	upstream Upstream
	policy   Policy
}

func NewHandOff(u Upstream, p Policy) *HandOff {
	return &HandOff{upstream: u, policy: p}
}

// Begin creates an upstream cart from items and returns where to send the shopper.
// The local cart is left as it is.
func (h *HandOff) Begin(ctx context.Context, items []models.LineItem) (Session, error) {
	if len(items) == 0 {
		return Session{}, ErrEmptyCart
	}

	lines := make([]commerce.CartLine, 0, len(items))
	for _, it := range items {
		productID := it.ProductID
		if productID == 0 {
			productID = it.ID
		}
		lines = append(lines, commerce.CartLine{
			Quantity:  it.Quantity,
			ProductID: productID,
			VariantID: it.VariantID,
		})
	}

	cartID, err := h.upstream.CreateCart(ctx, lines)
	if err != nil {
		return Session{}, fmt.Errorf("checkout: create cart: %w", err)
	}
	urls, err := h.upstream.CartRedirectURLs(ctx, cartID)
	if err != nil {
		return Session{}, fmt.Errorf("checkout: redirect urls: %w", err)
	}

	return Session{
		CartID:      cartID,
		CheckoutURL: urls.CheckoutURL,
		Quote:       h.policy.Quote(items),
	}, nil
}

func (h *HandOff) Policy() Policy {
	return h.policy
}
