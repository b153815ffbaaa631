package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/relove-market/storefront/pkg/request"
	"github.com/relove-market/storefront/pkg/response"
)

// PlaceOrder submits the checkout payload. For gateway payment methods
// the returned order carries a PaymentUrl the user must be sent to.
func (cl *Client) PlaceOrder(
	c context.Context,
	param request.PlaceOrder,
) (response.Order, error) {
	err := cl.validate.Struct(param)
	if err != nil {
		return response.Order{}, fmt.Errorf("failed validating order with error=%w", err)
	}
	order := response.Order{}
	err = cl.do(c, http.MethodPost, "/api/orders", nil, param, &order)
	if err != nil {
		return response.Order{}, err
	}
	return order, nil
}

// OrderHistory lists the authenticated buyer's past orders.
func (cl *Client) OrderHistory(c context.Context) ([]response.Order, error) {
	orders := []response.Order{}
	err := cl.do(c, http.MethodGet, "/api/orders/my-history", nil, nil, &orders)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// MySales lists orders containing the authenticated seller's items.
func (cl *Client) MySales(c context.Context) ([]response.Order, error) {
	orders := []response.Order{}
	err := cl.do(c, http.MethodGet, "/api/orders/my-sales", nil, nil, &orders)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (cl *Client) GetOrder(c context.Context, orderId int64) (response.Order, error) {
	order := response.Order{}
	path := fmt.Sprintf("/api/orders/%d", orderId)
	err := cl.do(c, http.MethodGet, path, nil, nil, &order)
	if err != nil {
		return response.Order{}, err
	}
	return order, nil
}

// PayOrder settles an already-placed order with the given payment
// method.
func (cl *Client) PayOrder(
	c context.Context,
	orderId int64,
	method string,
) (response.Payment, error) {
	query := url.Values{}
	query.Set("method", method)
	payment := response.Payment{}
	path := fmt.Sprintf("/api/payments/%d", orderId)
	err := cl.do(c, http.MethodPost, path, query, nil, &payment)
	if err != nil {
		return response.Payment{}, err
	}
	return payment, nil
}

// RequestPayout asks for the seller's earnings on a completed order to
// be paid out to their wallet.
func (cl *Client) RequestPayout(c context.Context, orderId int64) error {
	path := fmt.Sprintf("/api/payouts/%d", orderId)
	return cl.do(c, http.MethodPost, path, nil, nil, nil)
}
