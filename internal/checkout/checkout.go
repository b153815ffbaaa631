// Package checkout turns the cart into an order submission, enforcing
// the client-side preconditions before anything leaves the process: a
// delivery destination, and a sufficient wallet balance for wallet
// payments.
package checkout

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/relove-market/storefront/internal/cart"
	"github.com/relove-market/storefront/internal/errors"
	"github.com/relove-market/storefront/internal/log"
	"github.com/relove-market/storefront/internal/otel"
	"github.com/relove-market/storefront/pkg/request"
	"github.com/relove-market/storefront/pkg/response"
)

// OrderPlacer is the order submission collaborator.
type OrderPlacer interface {
	PlaceOrder(c context.Context, param request.PlaceOrder) (response.Order, error)
}

type Service struct {
	cart   *cart.Store
	placer OrderPlacer
}

func NewService(cartStore *cart.Store, placer OrderPlacer) Service {
	return Service{cart: cartStore, placer: placer}
}

type ManualAddress struct {
	ReceiverName  string
	ReceiverPhone string
	StreetAddress string
	City          string
	State         string
	PostalCode    string
}

func (m ManualAddress) complete() bool {
	return m.ReceiverName != "" && m.ReceiverPhone != "" && m.StreetAddress != ""
}

type PlaceParams struct {
	Manual        *ManualAddress
	AddressID     *int64
	WalletBalance decimal.Decimal
	PaymentMethod string
}

// Place validates the checkout and submits the order. On plain success
// the cart is cleared; when the backend answers with a gateway redirect
// the cart is left intact until the payment return confirms it.
func (svc Service) Place(c context.Context, param PlaceParams) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "Service Place")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KEY_TAG, "Service Place").
		Str(log.KEY_PAYMENT_METHOD, param.PaymentMethod).
		Logger()

	logger = logger.With().Str(log.KEY_PROCESS, "validating checkout").Logger()
	logger.Trace().Msg("validating checkout")
	items := svc.cart.CheckoutItems()
	if len(items) == 0 {
		err := errors.ErrEmptyCart
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	if param.AddressID == nil && (param.Manual == nil || !param.Manual.complete()) {
		err := errors.ErrMissingAddress
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	subtotal := svc.cart.Subtotal()
	if param.PaymentMethod == request.PaymentMethodWallet &&
		param.WalletBalance.LessThan(subtotal) {
		err := errors.ErrInsufficientBalance
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger = logger.With().Str(log.KEY_CART_SUBTOTAL, subtotal.String()).Logger()
	logger.Info().Msg("validated checkout")

	payload := request.PlaceOrder{
		PaymentMethod: param.PaymentMethod,
		Items:         items,
		AddressID:     param.AddressID,
	}
	if param.AddressID == nil && param.Manual != nil {
		payload.ReceiverName = param.Manual.ReceiverName
		payload.ReceiverPhone = param.Manual.ReceiverPhone
		payload.StreetAddress = param.Manual.StreetAddress
		payload.City = param.Manual.City
		payload.State = param.Manual.State
		payload.PostalCode = param.Manual.PostalCode
	}

	logger = logger.With().Str(log.KEY_PROCESS, "placing order").Logger()
	logger.Info().Msg("placing order")
	c = logger.WithContext(c)
	order, err := svc.placer.PlaceOrder(c, payload)
	if err != nil {
		err = fmt.Errorf("failed placing order with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger = logger.With().Int64(log.KEY_ORDER_ID, order.OrderID).Logger()
	logger.Info().Msg("placed order")

	if order.PaymentUrl != "" {
		logger.Info().Msg("order awaits gateway payment, keeping cart")
		span.AddEvent("order awaits gateway payment")
		return order, nil
	}

	logger = logger.With().Str(log.KEY_PROCESS, "clearing cart").Logger()
	logger.Trace().Msg("clearing cart")
	svc.cart.Clear()
	logger.Info().Msg("cleared cart")

	return order, nil
}
