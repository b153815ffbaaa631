package constants

const (
	APP_STOREFRONT       = "storefront"
	APP_PAYMENT_LISTENER = "payment-return-listener"
)
