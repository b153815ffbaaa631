package checkout

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relove-market/storefront/internal/cart"
	"github.com/relove-market/storefront/internal/errors"
	"github.com/relove-market/storefront/pkg/request"
	"github.com/relove-market/storefront/pkg/response"
)

type fakePlacer struct {
	order    response.Order
	err      error
	payloads []request.PlaceOrder
}

func (f *fakePlacer) PlaceOrder(
	_ context.Context,
	param request.PlaceOrder,
) (response.Order, error) {
	f.payloads = append(f.payloads, param)
	return f.order, f.err
}

func filledCart(t *testing.T) *cart.Store {
	t.Helper()
	store := cart.NewStore()
	item := cart.Item{
		Name:       "Vintage Denim Jacket",
		Size:       "M",
		Color:      "blue",
		UnitPrice:  decimal.NewFromInt(45),
		ProductID:  7,
		VariantID:  71,
		StockLimit: 3,
	}
	require.NoError(t, store.AddLine(item))
	require.NoError(t, store.AddLine(item))
	return store
}

func savedAddress() PlaceParams {
	addressId := int64(12)
	return PlaceParams{
		AddressID:     &addressId,
		PaymentMethod: request.PaymentMethodCod,
	}
}

func TestPlaceRejectsEmptyCart(t *testing.T) {
	placer := &fakePlacer{}
	service := NewService(cart.NewStore(), placer)

	_, err := service.Place(context.Background(), savedAddress())

	assert.ErrorIs(t, err, errors.ErrEmptyCart)
	assert.Empty(t, placer.payloads)
}

func TestPlaceRejectsMissingAddress(t *testing.T) {
	tests := []struct {
		name   string
		manual *ManualAddress
	}{
		{name: "no destination at all", manual: nil},
		{name: "incomplete manual address", manual: &ManualAddress{ReceiverName: "An Nguyen"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			placer := &fakePlacer{}
			service := NewService(filledCart(t), placer)

			_, err := service.Place(context.Background(), PlaceParams{
				Manual:        test.manual,
				PaymentMethod: request.PaymentMethodCod,
			})

			assert.ErrorIs(t, err, errors.ErrMissingAddress)
			assert.Empty(t, placer.payloads)
		})
	}
}

func TestPlaceRejectsInsufficientWalletBalance(t *testing.T) {
	placer := &fakePlacer{}
	store := filledCart(t)
	service := NewService(store, placer)
	param := savedAddress()
	param.PaymentMethod = request.PaymentMethodWallet
	param.WalletBalance = decimal.NewFromInt(89)

	_, err := service.Place(context.Background(), param)

	assert.ErrorIs(t, err, errors.ErrInsufficientBalance)
	assert.Empty(t, placer.payloads)
	assert.Equal(t, 2, store.Count())
}

func TestPlaceWalletBalanceExactlySubtotal(t *testing.T) {
	placer := &fakePlacer{order: response.Order{OrderID: 31, Status: "PAID"}}
	store := filledCart(t)
	service := NewService(store, placer)
	param := savedAddress()
	param.PaymentMethod = request.PaymentMethodWallet
	param.WalletBalance = decimal.NewFromInt(90)

	order, err := service.Place(context.Background(), param)

	require.NoError(t, err)
	assert.Equal(t, int64(31), order.OrderID)
	assert.Equal(t, 0, store.Count())
}

func TestPlaceClearsCartOnPlainSuccess(t *testing.T) {
	placer := &fakePlacer{order: response.Order{OrderID: 31, Status: "PENDING"}}
	store := filledCart(t)
	service := NewService(store, placer)

	order, err := service.Place(context.Background(), savedAddress())

	require.NoError(t, err)
	assert.Equal(t, int64(31), order.OrderID)
	assert.Equal(t, 0, store.Count())
	require.Len(t, placer.payloads, 1)
	payload := placer.payloads[0]
	assert.Equal(t, request.PaymentMethodCod, payload.PaymentMethod)
	require.NotNil(t, payload.AddressID)
	assert.Equal(t, int64(12), *payload.AddressID)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, int64(71), payload.Items[0].ProductVariantID)
	assert.Equal(t, 2, payload.Items[0].Quantity)
}

func TestPlaceKeepsCartWhenGatewayRedirects(t *testing.T) {
	placer := &fakePlacer{order: response.Order{
		OrderID:    31,
		Status:     "AWAITING_PAYMENT",
		PaymentUrl: "https://gateway.example.com/pay/31",
	}}
	store := filledCart(t)
	service := NewService(store, placer)
	param := savedAddress()
	param.PaymentMethod = request.PaymentMethodVnpay

	order, err := service.Place(context.Background(), param)

	require.NoError(t, err)
	assert.Equal(t, "https://gateway.example.com/pay/31", order.PaymentUrl)
	assert.Equal(t, 2, store.Count())
}

func TestPlaceKeepsCartOnSubmissionFailure(t *testing.T) {
	placer := &fakePlacer{err: fmt.Errorf("order service unavailable")}
	store := filledCart(t)
	service := NewService(store, placer)

	_, err := service.Place(context.Background(), savedAddress())

	assert.Error(t, err)
	assert.Equal(t, 2, store.Count())
}

func TestPlaceManualAddressFillsPayload(t *testing.T) {
	placer := &fakePlacer{order: response.Order{OrderID: 31}}
	service := NewService(filledCart(t), placer)

	_, err := service.Place(context.Background(), PlaceParams{
		Manual: &ManualAddress{
			ReceiverName:  "An Nguyen",
			ReceiverPhone: "0901234567",
			StreetAddress: "12 Hang Gai",
			City:          "Hanoi",
			PostalCode:    "100000",
		},
		PaymentMethod: request.PaymentMethodCod,
	})

	require.NoError(t, err)
	require.Len(t, placer.payloads, 1)
	payload := placer.payloads[0]
	assert.Nil(t, payload.AddressID)
	assert.Equal(t, "An Nguyen", payload.ReceiverName)
	assert.Equal(t, "0901234567", payload.ReceiverPhone)
	assert.Equal(t, "12 Hang Gai", payload.StreetAddress)
	assert.Equal(t, "Hanoi", payload.City)
}
