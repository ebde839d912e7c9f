package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/DillanMilo/angus-biltong-sub000/commerce"
	"github.com/DillanMilo/angus-biltong-sub000/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestShippingThreshold(t *testing.T) {
	p := DefaultPolicy()

	cases := []struct {
		subtotal string
		want     string
	}{
		{"79.00", "0"},
		{"78.99", "9.99"},
		{"120", "0"},
		{"0.01", "9.99"},
	}
	for _, tc := range cases {
		got := p.Shipping(d(tc.subtotal))
		assert.True(t, got.Equal(d(tc.want)), "subtotal %s: got %s", tc.subtotal, got)
	}
}

func TestQuote(t *testing.T) {
	p := DefaultPolicy()

	q := p.Quote([]models.LineItem{
		{ID: 1, Price: d("10.00"), Quantity: 2},
		{ID: 2, Price: d("24.50"), Quantity: 1},
	})
	assert.True(t, q.Subtotal.Equal(d("44.50")))
	assert.True(t, q.Shipping.Equal(d("9.99")))
	assert.True(t, q.Total.Equal(d("54.49")))
	assert.Equal(t, 3, q.ItemCount)
	assert.True(t, q.AmountToFreeShipping.Equal(d("34.50")))

	q = p.Quote([]models.LineItem{{ID: 1, Price: d("79"), Quantity: 1}})
	assert.True(t, q.Shipping.IsZero())
	assert.True(t, q.AmountToFreeShipping.IsZero())

	q = p.Quote(nil)
	assert.True(t, q.Total.IsZero())
}

type fakeUpstream struct {
	lines []commerce.CartLine
	err   error
}

func (f *fakeUpstream) CreateCart(_ context.Context, lines []commerce.CartLine) (string, error) {
	f.lines = lines
	if f.err != nil {
		return "", f.err
	}
	return "cart-9", nil
}

func (f *fakeUpstream) CartRedirectURLs(_ context.Context, id string) (commerce.CheckoutURLs, error) {
	return commerce.CheckoutURLs{CheckoutURL: "https://shop/checkout/" + id}, nil
}

func TestHandOff(t *testing.T) {
	up := &fakeUpstream{}
	h := NewHandOff(up, DefaultPolicy())

	_, err := h.Begin(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyCart)

	sess, err := h.Begin(context.Background(), []models.LineItem{
		{ID: 743, Price: d("12.50"), Quantity: 2, ProductID: 743, VariantID: 900},
		{ID: 12, Price: d("24"), Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, "cart-9", sess.CartID)
	assert.Equal(t, "https://shop/checkout/cart-9", sess.CheckoutURL)
	assert.True(t, sess.Quote.Subtotal.Equal(d("49")))
	assert.Equal(t, []commerce.CartLine{
		{Quantity: 2, ProductID: 743, VariantID: 900},
		{Quantity: 1, ProductID: 12},
	}, up.lines)
}

func TestHandOffUpstreamFailure(t *testing.T) {
	h := NewHandOff(&fakeUpstream{err: commerce.ErrFetchFailed}, DefaultPolicy())

	_, err := h.Begin(context.Background(), []models.LineItem{{ID: 1, Price: d("1"), Quantity: 1}})
	assert.True(t, errors.Is(err, commerce.ErrFetchFailed))
}
