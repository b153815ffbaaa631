package request

const (
	PaymentMethodWallet = "WALLET"
	PaymentMethodCod    = "COD"
	PaymentMethodVnpay  = "VNPAY"
)

type PlaceOrder struct {
	PaymentMethod string      `validate:"required,oneof=WALLET COD VNPAY" json:"paymentMethod"`
	Items         []OrderItem `validate:"required,gt=0,dive"              json:"items"`

	// Either a saved address id or a complete one-time address.
	AddressID *int64 `validate:"omitempty,gt=0" json:"addressId,omitempty"`

	ReceiverName  string `json:"receiverName,omitempty"`
	ReceiverPhone string `json:"receiverPhone,omitempty"`
	StreetAddress string `json:"streetAddress,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	PostalCode    string `json:"postalCode,omitempty"`
}

type OrderItem struct {
	ProductVariantID int64 `validate:"required,gt=0"  json:"productVariantId"`
	Quantity         int   `validate:"required,gte=1" json:"quantity"`
}

// HasAddress reports whether the payload names a delivery destination,
// either by saved id or by complete manual entry.
func (p PlaceOrder) HasAddress() bool {
	if p.AddressID != nil {
		return true
	}
	return p.ReceiverName != "" && p.ReceiverPhone != "" && p.StreetAddress != ""
}
