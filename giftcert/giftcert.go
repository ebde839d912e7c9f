// Package giftcert sells and looks up store gift certificates.
package giftcert

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"sort"
	"strings"

	"github.com/DillanMilo/angus-biltong-sub000/commerce"
	"github.com/DillanMilo/angus-biltong-sub000/models"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("gift certificate not found")
	MaxAmount   = decimal.NewFromInt(1000)
)

// InvalidInputError lists the offending fields.
type InvalidInputError struct {
	Fields map[string]string
}

func (e *InvalidInputError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return "invalid gift certificate: " + strings.Join(names, ", ")
}

type Input struct {
	ToName    string          `json:"to_name" validate:"required,max=255"`
	ToEmail   string          `json:"to_email" validate:"required,email"`
	FromName  string          `json:"from_name" validate:"required,max=255"`
	FromEmail string          `json:"from_email" validate:"required,email"`
	Amount    decimal.Decimal `json:"amount"`
	Message   string          `json:"message" validate:"max=1000"`
	SendEmail bool            `json:"send_email"`
}

type Upstream interface {
	CreateGiftCertificate(ctx context.Context, req commerce.GiftCertificateRequest) (models.GiftCertificate, error)
	GetGiftCertificateByCode(ctx context.Context, code string) (models.GiftCertificate, error)
}

type Service struct {
	up       Upstream
	validate *validator.Validate
}

func NewService(up Upstream) *Service {
	return &Service{up: up, validate: validator.New()}
}

func (s *Service) Create(ctx context.Context, in Input) (models.GiftCertificate, error) {
	in.ToEmail = strings.TrimSpace(in.ToEmail)
	in.FromEmail = strings.TrimSpace(in.FromEmail)
	if err := s.check(in); err != nil {
		return models.GiftCertificate{}, err
	}

	gc, err := s.up.CreateGiftCertificate(ctx, commerce.GiftCertificateRequest{
		ToName:    strings.TrimSpace(in.ToName),
		ToEmail:   in.ToEmail,
		FromName:  strings.TrimSpace(in.FromName),
		FromEmail: in.FromEmail,
		Amount:    in.Amount.Round(2),
		Message:   in.Message,
		SendEmail: in.SendEmail,
	})
	if err != nil {
		return models.GiftCertificate{}, fmt.Errorf("create gift certificate: %w", err)
	}
	return gc, nil
}

func (s *Service) Lookup(ctx context.Context, code string) (models.GiftCertificate, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return models.GiftCertificate{}, ErrNotFound
	}
	gc, err := s.up.GetGiftCertificateByCode(ctx, code)
	if errors.Is(err, commerce.ErrNotFound) {
		return models.GiftCertificate{}, ErrNotFound
	}
	if err != nil {
		return models.GiftCertificate{}, fmt.Errorf("lookup gift certificate: %w", err)
	}
	return gc, nil
}

func (s *Service) check(in Input) error {
	fields := map[string]string{}

	var verrs validator.ValidationErrors
	if errors.As(s.validate.Struct(in), &verrs) {
		for _, fe := range verrs {
			fields[jsonName(fe.StructField())] = message(fe.Tag())
		}
	}
	// validator's email tag accepts some addresses the platform rejects
	for name, addr := range map[string]string{"to_email": in.ToEmail, "from_email": in.FromEmail} {
		if _, ok := fields[name]; ok || addr == "" {
			continue
		}
		if _, err := mail.ParseAddress(addr); err != nil {
			fields[name] = message("email")
		}
	}
	if !in.Amount.IsPositive() {
		fields["amount"] = "must be greater than 0"
	} else if in.Amount.GreaterThan(MaxAmount) {
		fields["amount"] = "must be at most " + MaxAmount.String()
	}

	if len(fields) > 0 {
		return &InvalidInputError{Fields: fields}
	}
	return nil
}

func message(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return "is too long"
	}
	return "is invalid"
}

func jsonName(field string) string {
	switch field {
	case "ToName":
		return "to_name"
	case "ToEmail":
		return "to_email"
	case "FromName":
		return "from_name"
	case "FromEmail":
		return "from_email"
	}
	return strings.ToLower(field)
}
