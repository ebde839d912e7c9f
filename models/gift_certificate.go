package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type GiftCertificateStatus string

const (
	GiftCertificateActive   GiftCertificateStatus = "active"
	GiftCertificatePending  GiftCertificateStatus = "pending"
	GiftCertificateDisabled GiftCertificateStatus = "disabled"
	GiftCertificateExpired  GiftCertificateStatus = "expired"
)

type GiftCertificate struct {
	ID        int                   `json:"id"`
	Code      string                `json:"code"`
	Amount    decimal.Decimal       `json:"amount"`
	Balance   decimal.Decimal       `json:"balance"`
	ToName    string                `json:"to_name"`
	ToEmail   string                `json:"to_email"`
	FromName  string                `json:"from_name"`
	FromEmail string                `json:"from_email"`
	Message   string                `json:"message,omitempty"`
	Status    GiftCertificateStatus `json:"status"`
	CreatedAt time.Time             `json:"purchase_date"`
}
