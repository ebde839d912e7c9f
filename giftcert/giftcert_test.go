package giftcert

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DillanMilo/angus-biltong-sub000/commerce"
	"github.com/DillanMilo/angus-biltong-sub000/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUpstream struct {
	got   []commerce.GiftCertificateRequest
	certs map[string]models.GiftCertificate
	err   error
}

func (f *fakeUpstream) CreateGiftCertificate(_ context.Context, req commerce.GiftCertificateRequest) (models.GiftCertificate, error) {
	if f.err != nil {
		return models.GiftCertificate{}, f.err
	}
	f.got = append(f.got, req)
	return models.GiftCertificate{ID: 1, Code: "GC-1", Amount: req.Amount, Balance: req.Amount, Status: models.GiftCertificateActive}, nil
}

func (f *fakeUpstream) GetGiftCertificateByCode(_ context.Context, code string) (models.GiftCertificate, error) {
	if f.err != nil {
		return models.GiftCertificate{}, f.err
	}
	gc, ok := f.certs[code]
	if !ok {
		return models.GiftCertificate{}, fmt.Errorf("gift certificate %q: %w", code, commerce.ErrNotFound)
	}
	return gc, nil
}

func valid() Input {
	return Input{
		ToName:    "Sipho",
		ToEmail:   "sipho@example.com",
		FromName:  "Lerato",
		FromEmail: "lerato@example.com",
		Amount:    decimal.RequireFromString("50.005"),
	}
}

func TestCreate(t *testing.T) {
	up := &fakeUpstream{}
	s := NewService(up)

	gc, err := s.Create(context.Background(), valid())
	require.NoError(t, err)
	assert.Equal(t, "GC-1", gc.Code)
	require.Len(t, up.got, 1)
	assert.Equal(t, "50.01", up.got[0].Amount.StringFixed(2))
}

func TestCreateValidation(t *testing.T) {
	cases := map[string]struct {
		edit  func(*Input)
		field string
	}{
		"zero amount":     {func(in *Input) { in.Amount = decimal.Zero }, "amount"},
		"negative amount": {func(in *Input) { in.Amount = decimal.NewFromInt(-5) }, "amount"},
		"above maximum":   {func(in *Input) { in.Amount = decimal.RequireFromString("1000.01") }, "amount"},
		"missing to name": {func(in *Input) { in.ToName = "" }, "to_name"},
		"bad to email":    {func(in *Input) { in.ToEmail = "sipho" }, "to_email"},
		"missing from":    {func(in *Input) { in.FromEmail = "" }, "from_email"},
		"missing sender":  {func(in *Input) { in.FromName = "" }, "from_name"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			up := &fakeUpstream{}
			in := valid()
			tc.edit(&in)

			_, err := NewService(up).Create(context.Background(), in)
			var inv *InvalidInputError
			require.True(t, errors.As(err, &inv), "got %v", err)
			assert.Contains(t, inv.Fields, tc.field)
			assert.Empty(t, up.got)
		})
	}

	in := valid()
	in.Amount = MaxAmount
	_, err := NewService(&fakeUpstream{}).Create(context.Background(), in)
	assert.NoError(t, err)
}

func TestLookup(t *testing.T) {
	up := &fakeUpstream{certs: map[string]models.GiftCertificate{"ABC": {Code: "ABC"}}}
	s := NewService(up)

	gc, err := s.Lookup(context.Background(), " ABC ")
	require.NoError(t, err)
	assert.Equal(t, "ABC", gc.Code)

	_, err = s.Lookup(context.Background(), "ZZZ")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Lookup(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)

	up.err = commerce.ErrFetchFailed
	_, err = s.Lookup(context.Background(), "ABC")
	assert.ErrorIs(t, err, commerce.ErrFetchFailed)
	assert.NotErrorIs(t, err, ErrNotFound)
}
