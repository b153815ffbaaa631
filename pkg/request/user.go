package request

import (
	"github.com/rs/zerolog"
)

type Login struct {
	Email    string `validate:"required,email" json:"email"`
	Password string `validate:"required"       json:"password"`
}

func (l Login) MarshalZerologObject(e *zerolog.Event) {
	e.Str("email", l.Email).Str("password", "***")
}

type Register struct {
	FirstName string `validate:"required"       json:"firstName"`
	LastName  string `validate:"required"       json:"lastName"`
	Email     string `validate:"required,email" json:"email"`
	Password  string `validate:"required,min=8" json:"password"`
}

func (r Register) MarshalZerologObject(e *zerolog.Event) {
	e.Str("email", r.Email).
		Str("firstName", r.FirstName).
		Str("lastName", r.LastName).
		Str("password", "***")
}

type Address struct {
	FullName      string `validate:"required" json:"fullName"`
	PhoneNumber   string `validate:"required" json:"phoneNumber"`
	StreetAddress string `validate:"required" json:"streetAddress"`
	City          string `validate:"required" json:"city"`
	State         string `                    json:"state"`
	PostalCode    string `                    json:"postalCode"`
	Country       string `                    json:"country"`
	IsDefault     bool   `                    json:"isDefault"`
}
