package commerce

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/DillanMilo/angus-biltong-sub000/models"
	"github.com/shopspring/decimal"
)

// GiftCertificateRequest is the create payload (v2 API field names).
type GiftCertificateRequest struct {
	ToName    string          `json:"to_name"`
	ToEmail   string          `json:"to_email"`
	FromName  string          `json:"from_name"`
	FromEmail string          `json:"from_email"`
	Amount    decimal.Decimal `json:"amount"`
	Message   string          `json:"message,omitempty"`
	SendEmail bool            `json:"send_email"`
}

type giftCertificateRecord struct {
	ID           int             `json:"id"`
	Code         string          `json:"code"`
	Amount       decimal.Decimal `json:"amount"`
	Balance      decimal.Decimal `json:"balance"`
	ToName       string          `json:"to_name"`
	ToEmail      string          `json:"to_email"`
	FromName     string          `json:"from_name"`
	FromEmail    string          `json:"from_email"`
	Message      string          `json:"message"`
	Status       string          `json:"status"`
	PurchaseDate string          `json:"purchase_date"`
}

func (r giftCertificateRecord) toModel() models.GiftCertificate {
	return models.GiftCertificate{
		ID:        r.ID,
		Code:      r.Code,
		Amount:    r.Amount,
		Balance:   r.Balance,
		ToName:    r.ToName,
		ToEmail:   r.ToEmail,
		FromName:  r.FromName,
		FromEmail: r.FromEmail,
		Message:   r.Message,
		Status:    models.GiftCertificateStatus(r.Status),
		CreatedAt: parseTime(r.PurchaseDate),
	}
}

func (c *Client) CreateGiftCertificate(ctx context.Context, req GiftCertificateRequest) (models.GiftCertificate, error) {
	var rec giftCertificateRecord
	if err := c.do(ctx, "create gift certificate", http.MethodPost, "/v2/gift_certificates", nil, req, &rec); err != nil {
		return models.GiftCertificate{}, err
	}
	if rec.Code == "" {
		return models.GiftCertificate{}, fmt.Errorf("create gift certificate: %w: no code returned", ErrMalformedResponse)
	}
	return rec.toModel(), nil
}

// GetGiftCertificateByCode looks a certificate up by its redemption code.
// The v2 API answers an unknown code with 204, reported here as ErrNotFound.
func (c *Client) GetGiftCertificateByCode(ctx context.Context, code string) (models.GiftCertificate, error) {
	q := url.Values{}
	q.Set("code", code)

	var recs []giftCertificateRecord
	err := c.do(ctx, "get gift certificate", http.MethodGet, "/v2/gift_certificates", q, nil, &recs)
	if errors.Is(err, ErrNoContent) || (err == nil && len(recs) == 0) {
		return models.GiftCertificate{}, fmt.Errorf("gift certificate %q: %w", code, ErrNotFound)
	}
	if err != nil {
		return models.GiftCertificate{}, err
	}
	return recs[0].toModel(), nil
}
