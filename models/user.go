package models

import "time"

// Customer is the commerce platform's customer record as the storefront sees it.
type Customer struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Addresses []Address `json:"addresses,omitempty"`
	CreatedAt time.Time `json:"date_created"`
}

// Address uses the platform's field names so it can be sent upstream unchanged.
type Address struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2,omitempty"`
	City        string `json:"city"`
	State       string `json:"state_or_province"`
	PostalCode  string `json:"postal_code"`
	CountryCode string `json:"country_code"`
	Phone       string `json:"phone,omitempty"`
}

// NewCustomer is the payload for account registration.
type NewCustomer struct {
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone,omitempty"`
	Password  string    `json:"-"`
	Addresses []Address `json:"addresses,omitempty"`
}
