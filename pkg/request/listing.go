package request

import (
	"github.com/shopspring/decimal"
)

type NewListing struct {
	Name        string           `validate:"required"           json:"name"`
	Description string           `                              json:"description"`
	Brand       string           `                              json:"brand"`
	Condition   string           `validate:"required"           json:"condition"`
	Variants    []ListingVariant `validate:"required,gt=0,dive" json:"variants"`
	BasePrice   decimal.Decimal  `validate:"required"           json:"basePrice"`
	CategoryID  int64            `validate:"required,gt=0"      json:"categoryId"`
}

type UpdateListing struct {
	Name        string           `                    json:"name,omitempty"`
	Description string           `                    json:"description,omitempty"`
	Brand       string           `                    json:"brand,omitempty"`
	Condition   string           `                    json:"condition,omitempty"`
	Status      string           `                    json:"status,omitempty"`
	Variants    []ListingVariant `validate:"dive"     json:"variants,omitempty"`
	BasePrice   decimal.Decimal  `                    json:"basePrice,omitempty"`
	CategoryID  int64            `validate:"omitempty,gt=0" json:"categoryId,omitempty"`
}

type ListingVariant struct {
	Size          string `validate:"required" json:"size"`
	Color         string `                    json:"color"`
	StockQuantity int    `validate:"gte=0"    json:"stockQuantity"`
}
