package response

import (
	"github.com/shopspring/decimal"
)

type Order struct {
	Status          string          `json:"status"`
	ShippingAddress string          `json:"shippingAddress"`
	ReceiverName    string          `json:"receiverName"`
	PaymentMethod   string          `json:"paymentMethod"`
	OrderDate       string          `json:"orderDate"`
	// PaymentUrl is set only for gateway payment methods; the caller must
	// send the user there to complete the transaction.
	PaymentUrl  string          `json:"paymentUrl,omitempty"`
	Items       []OrderItem     `json:"items,omitempty"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	OrderID     int64           `json:"orderId"`
}

// Payment is the backend's record of a settled (or failed) payment
// attempt for one order.
type Payment struct {
	PaymentMethod string          `json:"paymentMethod"`
	Status        string          `json:"status"`
	PaymentDate   string          `json:"paymentDate"`
	Amount        decimal.Decimal `json:"amount"`
	ID            int64           `json:"id"`
}

type OrderItem struct {
	ProductName      string          `json:"productName"`
	ImageUrl         string          `json:"imageUrl"`
	Size             string          `json:"size"`
	Color            string          `json:"color"`
	Price            decimal.Decimal `json:"price"`
	ProductVariantID int64           `json:"productVariantId"`
	Quantity         int             `json:"quantity"`
}
