package commerce

import (
	"context"
	"fmt"
	"net/http"
)

// CartLine is one line of an upstream cart.
type CartLine struct {
	Quantity  int `json:"quantity"`
	ProductID int `json:"product_id"`
	VariantID int `json:"variant_id,omitempty"`
}

// CheckoutURLs are the hosted cart and checkout pages for an upstream cart.
type CheckoutURLs struct {
	CartURL             string `json:"cart_url"`
	CheckoutURL         string `json:"checkout_url"`
	EmbeddedCheckoutURL string `json:"embedded_checkout_url"`
}

// CreateCart creates an upstream cart on the storefront channel and returns its id.
func (c *Client) CreateCart(ctx context.Context, lines []CartLine) (string, error) {
	in := struct {
		ChannelID int        `json:"channel_id"`
		LineItems []CartLine `json:"line_items"`
	}{c.channelID, lines}

	var resp envelope[struct {
		ID string `json:"id"`
	}]
	if err := c.do(ctx, "create cart", http.MethodPost, "/v3/carts", nil, in, &resp); err != nil {
		return "", err
	}
	if resp.Data.ID == "" {
		return "", fmt.Errorf("create cart: %w: no cart id returned", ErrMalformedResponse)
	}
	return resp.Data.ID, nil
}

// CartRedirectURLs asks the platform for the hosted checkout URL of a cart.
func (c *Client) CartRedirectURLs(ctx context.Context, cartID string) (CheckoutURLs, error) {
	var resp envelope[CheckoutURLs]
	path := "/v3/carts/" + cartID + "/redirect_urls"
	if err := c.do(ctx, "cart redirect urls", http.MethodPost, path, nil, nil, &resp); err != nil {
		return CheckoutURLs{}, err
	}
	if resp.Data.CheckoutURL == "" {
		return CheckoutURLs{}, fmt.Errorf("cart redirect urls: %w: no checkout url", ErrMalformedResponse)
	}
	return resp.Data, nil
}
