package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DillanMilo/angus-biltong-sub000/models"
)

var (
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrCustomerNotFound   = errors.New("customer not found")
)

// CustomerAPI is the part of the commerce platform accounts need.
type CustomerAPI interface {
	ListCustomersByEmail(ctx context.Context, email string) ([]models.Customer, error)
	CreateCustomer(ctx context.Context, nc models.NewCustomer) (models.Customer, error)
	ValidateCredentials(ctx context.Context, email, password string) (int, bool, error)
}

type Session struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Customer  models.Customer `json:"customer"`
}

// Accounts handles registration and sign-in against the commerce platform.
type Accounts struct {
	api    CustomerAPI
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAccounts(api CustomerAPI, secret string) *Accounts {
	return &Accounts{api: api, secret: []byte(secret), ttl: 24 * time.Hour, now: time.Now}
}

// Secret is the token signing key, shared with the token middleware.
func (a *Accounts) Secret() []byte {
	return a.secret
}

func (a *Accounts) Register(ctx context.Context, in RegistrationInput) (models.Customer, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if err := ValidateRegistration(in); err != nil {
		return models.Customer{}, err
	}

	existing, err := a.api.ListCustomersByEmail(ctx, in.Email)
	if err != nil {
		return models.Customer{}, fmt.Errorf("check existing customer: %w", err)
	}
	if len(existing) > 0 {
		return models.Customer{}, ErrEmailTaken
	}

	nc := models.NewCustomer{
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     strings.TrimSpace(in.Phone),
		Password:  in.Password,
	}
	if in.Address != nil {
		addr := *in.Address
		if addr.FirstName == "" {
			addr.FirstName = in.FirstName
		}
		if addr.LastName == "" {
			addr.LastName = in.LastName
		}
		addr.CountryCode = strings.ToUpper(addr.CountryCode)
		nc.Addresses = []models.Address{addr}
	}

	c, err := a.api.CreateCustomer(ctx, nc)
	if err != nil {
		return models.Customer{}, fmt.Errorf("create customer: %w", err)
	}
	return c, nil
}

func (a *Accounts) Login(ctx context.Context, in LoginInput) (Session, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := ValidateLogin(in); err != nil {
		return Session{}, err
	}

	id, ok, err := a.api.ValidateCredentials(ctx, in.Email, in.Password)
	if err != nil {
		return Session{}, fmt.Errorf("validate credentials: %w", err)
	}
	if !ok {
		return Session{}, ErrInvalidCredentials
	}

	c, err := a.Profile(ctx, in.Email)
	if err != nil {
		return Session{}, err
	}
	if c.ID != id {
		return Session{}, ErrInvalidCredentials
	}

	token, expires, err := IssueToken(a.secret, c, a.now(), a.ttl)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: expires, Customer: c}, nil
}

func (a *Accounts) Profile(ctx context.Context, email string) (models.Customer, error) {
	found, err := a.api.ListCustomersByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return models.Customer{}, fmt.Errorf("load customer: %w", err)
	}
	if len(found) == 0 {
		return models.Customer{}, ErrCustomerNotFound
	}
	return found[0], nil
}
