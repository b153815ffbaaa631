package errors

import (
	"errors"
	"fmt"
)

var (
	// Cart store rejections. Never fatal, never partially applied.
	ErrStockExceeded   = errors.New("stock limit reached")
	ErrInvalidQuantity = errors.New("invalid quantity")

	// Catalog controller.
	ErrStaleResponse = errors.New("stale catalog response")
	ErrNoMorePages   = errors.New("no more pages")
	ErrFetchInFlight = errors.New("fetch already in flight")

	// Checkout.
	ErrEmptyCart           = errors.New("cart is empty")
	ErrMissingAddress      = errors.New("missing shipping address")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")

	// Session.
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrTokenInvalid     = errors.New("invalid token")
)

// ApiError carries the backend's message field for a non-2xx response.
type ApiError struct {
	Message    string
	StatusCode int
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("api error statusCode=%d message=%s", e.StatusCode, e.Message)
}

func NewApiError(statusCode int, message string) *ApiError {
	if message == "" {
		message = "something went wrong"
	}
	return &ApiError{StatusCode: statusCode, Message: message}
}
