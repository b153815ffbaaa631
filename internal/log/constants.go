package log

const (
	KEY_APP_NAME       = "app"
	KEY_TAG            = "tag"
	KEY_PROCESS        = "process"
	KEY_CONFIG         = "config"
	KEY_REQUEST_ID     = "requestId"
	KEY_REQUEST_METHOD = "requestMethod"
	KEY_REQUEST_URL    = "requestURL"
	KEY_STATUS_CODE    = "statusCode"
	KEY_PAGE_INDEX     = "pageIndex"
	KEY_PAGE_SIZE      = "pageSize"
	KEY_GENERATION     = "generation"
	KEY_SEARCH_TEXT    = "searchText"
	KEY_CATEGORY_ID    = "categoryId"
	KEY_PRODUCT_ID     = "productId"
	KEY_VARIANT_ID     = "variantId"
	KEY_ORDER_ID       = "orderId"
	KEY_CART_LINE      = "cartLine"
	KEY_CART_COUNT     = "cartCount"
	KEY_CART_SUBTOTAL  = "cartSubtotal"
	KEY_PAYMENT_METHOD = "paymentMethod"
	KEY_EMAIL          = "email"
	KEY_TOKEN          = "token"
)
