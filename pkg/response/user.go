package response

import (
	"github.com/shopspring/decimal"
)

type Login struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

type Role struct {
	Name string `json:"name"`
	ID   int64  `json:"id"`
}

type UserPhoto struct {
	Url       string `json:"url"`
	ID        int64  `json:"id"`
	IsPrimary bool   `json:"isPrimary"`
}

type Address struct {
	FullName      string `json:"fullName"`
	PhoneNumber   string `json:"phoneNumber"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postalCode"`
	Country       string `json:"country"`
	ID            int64  `json:"id"`
	IsDefault     bool   `json:"isDefault"`
}

type UserProfile struct {
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Email     string          `json:"email"`
	Roles     []Role          `json:"roles"`
	Addresses []Address       `json:"addresses"`
	Photos    []UserPhoto     `json:"photos"`
	Balance   decimal.Decimal `json:"balance"`
	ID        int64           `json:"id"`
}

// DefaultAddress returns the default address, falling back to the first
// saved one.
func (u UserProfile) DefaultAddress() (Address, bool) {
	if len(u.Addresses) == 0 {
		return Address{}, false
	}
	for _, a := range u.Addresses {
		if a.IsDefault {
			return a, true
		}
	}
	return u.Addresses[0], true
}
