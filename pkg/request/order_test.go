package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrderHasAddress(t *testing.T) {
	addressId := int64(12)
	tests := []struct {
		name     string
		param    PlaceOrder
		expected bool
	}{
		{name: "no destination", param: PlaceOrder{}, expected: false},
		{name: "saved address id", param: PlaceOrder{AddressID: &addressId}, expected: true},
		{
			name: "complete manual address",
			param: PlaceOrder{
				ReceiverName:  "An Nguyen",
				ReceiverPhone: "0901234567",
				StreetAddress: "12 Hang Gai",
			},
			expected: true,
		},
		{
			name:     "incomplete manual address",
			param:    PlaceOrder{ReceiverName: "An Nguyen"},
			expected: false,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.param.HasAddress())
		})
	}
}

func TestPlaceOrderJsonOmitsEmptyAddressFields(t *testing.T) {
	encoded, err := json.Marshal(PlaceOrder{
		PaymentMethod: PaymentMethodCod,
		Items:         []OrderItem{{ProductVariantID: 71, Quantity: 2}},
	})

	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "addressId")
	assert.NotContains(t, string(encoded), "receiverName")
	assert.Contains(t, string(encoded), `"productVariantId":71`)
}
