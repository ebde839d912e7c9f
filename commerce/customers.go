package commerce

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/DillanMilo/angus-biltong-sub000/models"
)

type customerRecord struct {
	ID          int              `json:"id"`
	Email       string           `json:"email"`
	FirstName   string           `json:"first_name"`
	LastName    string           `json:"last_name"`
	Phone       string           `json:"phone"`
	Company     string           `json:"company"`
	DateCreated string           `json:"date_created"`
	Addresses   []models.Address `json:"addresses"`
}

func (r customerRecord) toModel() models.Customer {
	return models.Customer{
		ID:        r.ID,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Company:   r.Company,
		Addresses: r.Addresses,
		CreatedAt: parseTime(r.DateCreated),
	}
}

type newCustomerRecord struct {
	models.NewCustomer
	Authentication struct {
		ForcePasswordReset bool   `json:"force_password_reset"`
		NewPassword        string `json:"new_password"`
	} `json:"authentication"`
}

// ListCustomersByEmail returns the customers registered under email (zero or one in practice).
func (c *Client) ListCustomersByEmail(ctx context.Context, email string) ([]models.Customer, error) {
	q := url.Values{}
	q.Set("email:in", email)
	q.Set("include", "addresses")

	var resp envelope[[]customerRecord]
	if err := c.do(ctx, "list customers", http.MethodGet, "/v3/customers", q, nil, &resp); err != nil {
		return nil, err
	}
	out := make([]models.Customer, 0, len(resp.Data))
	for _, rec := range resp.Data {
		out = append(out, rec.toModel())
	}
	return out, nil
}

// CreateCustomer registers a customer with a password.
func (c *Client) CreateCustomer(ctx context.Context, nc models.NewCustomer) (models.Customer, error) {
	rec := newCustomerRecord{NewCustomer: nc}
	rec.Authentication.NewPassword = nc.Password

	var resp envelope[[]customerRecord]
	if err := c.do(ctx, "create customer", http.MethodPost, "/v3/customers", nil, []newCustomerRecord{rec}, &resp); err != nil {
		return models.Customer{}, err
	}
	if len(resp.Data) == 0 {
		return models.Customer{}, fmt.Errorf("create customer: %w: no customer returned", ErrMalformedResponse)
	}
	return resp.Data[0].toModel(), nil
}

// ValidateCredentials checks an email/password pair against the storefront channel.
// It returns the customer id when the pair is valid.
func (c *Client) ValidateCredentials(ctx context.Context, email, password string) (int, bool, error) {
	in := struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		ChannelID int    `json:"channel_id"`
	}{email, password, c.channelID}

	var out struct {
		CustomerID int  `json:"customer_id"`
		IsValid    bool `json:"is_valid"`
	}
	if err := c.do(ctx, "validate credentials", http.MethodPost, "/v3/customers/validate-credentials", nil, in, &out); err != nil {
		return 0, false, err
	}
	return out.CustomerID, out.IsValid, nil
}
