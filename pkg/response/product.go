package response

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Brand          string           `json:"brand"`
	Condition      string           `json:"condition"`
	CategoryName   string           `json:"categoryName"`
	SellerShopName string           `json:"sellerShopName"`
	Status         string           `json:"status"`
	Variants       []ProductVariant `json:"variants"`
	Images         []ProductImage   `json:"images"`
	BasePrice      decimal.Decimal  `json:"basePrice"`
	ID             int64            `json:"id"`
}

type ProductVariant struct {
	Size          string `json:"size"`
	Color         string `json:"color"`
	ID            int64  `json:"id"`
	StockQuantity int    `json:"stockQuantity"`
}

type ProductImage struct {
	Url    string `json:"url"`
	GcsUri string `json:"gcsUri"`
	ID     int64  `json:"id"`
}

// ProductPage is the backend's page envelope for the product listing.
type ProductPage struct {
	Content       []Product `json:"content"`
	TotalElements int64     `json:"totalElements"`
	TotalPages    int       `json:"totalPages"`
	Number        int       `json:"number"`
	Last          bool      `json:"last"`
}

// PrimaryImageUrl returns the first image url or empty when the listing
// carries no images.
func (p Product) PrimaryImageUrl() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].Url
}

// Variant finds the sellable variant matching size and color.
func (p Product) Variant(size, color string) (ProductVariant, bool) {
	for _, v := range p.Variants {
		if v.Size == size && v.Color == color {
			return v, true
		}
	}
	return ProductVariant{}, false
}
