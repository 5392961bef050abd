package httpapi

import (
	"net/http"
)

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/products", app.listProductsHandler)
	mux.HandleFunc("GET /api/products/featured", app.listFeaturedHandler)
	mux.HandleFunc("GET /api/products/{id}", app.getProductHandler)

	mux.HandleFunc("GET /api/cart/{sessionId}", app.getCartHandler)
	mux.HandleFunc("POST /api/cart", app.addToCartHandler)
	mux.HandleFunc("PUT /api/cart/{id}", app.updateCartItemHandler)
	mux.HandleFunc("DELETE /api/cart/{id}", app.removeCartItemHandler)
	mux.HandleFunc("DELETE /api/cart/session/{sessionId}", app.clearCartHandler)

	mux.HandleFunc("POST /api/create-payment-link", app.createPaymentLinkHandler)
	mux.HandleFunc("POST /api/orders", app.createOrderHandler)
	mux.HandleFunc("GET /api/orders/{id}", app.getOrderHandler)

	mux.HandleFunc("GET /healthz", app.healthHandler)

	return WithRequestID(WithLogging(mux))
}
