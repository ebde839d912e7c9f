package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/DillanMilo/angus-biltong-sub000/models"
	"github.com/golang-jwt/jwt/v5"
)

const RoleCustomer = "customer"

// Claims identify a signed-in customer.
type Claims struct {
	CustomerID int    `json:"customer_id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 session token for c.
func IssueToken(secret []byte, c models.Customer, now time.Time, ttl time.Duration) (string, time.Time, error) {
	expires := now.Add(ttl)
	claims := Claims{
		CustomerID: c.ID,
		Email:      c.Email,
		Name:       c.FirstName,
		Role:       RoleCustomer,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(c.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expires, nil
}

// ParseToken verifies signature, algorithm and expiry.
func ParseToken(secret []byte, token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
