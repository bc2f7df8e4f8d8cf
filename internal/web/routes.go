package web

import "net/http"

// NewHandler builds the HTTP handler for the storefront server.
func NewHandler(h *Handlers) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.handleHome)
	mux.HandleFunc("POST /catalog/refresh", h.handleCatalogRefresh)
	mux.HandleFunc("POST /catalog/search", h.handleCatalogSearch)
	mux.HandleFunc("POST /catalog/page", h.handleCatalogPage)
	mux.HandleFunc("POST /catalog/view-mode", h.handleCatalogViewMode)
	mux.HandleFunc("GET /products/{id}", h.handleProductDetail)

	mux.HandleFunc("GET /cart", h.handleCart)
	mux.HandleFunc("POST /cart/items", h.handleAddToCart)
	mux.HandleFunc("POST /cart/items/{id}/quantity", h.handleCartQuantity)
	mux.HandleFunc("POST /cart/items/{id}/delete", h.handleCartRemove)
	mux.HandleFunc("GET /checkout", h.handleCheckout)

	mux.HandleFunc("GET /auth/login", h.handleLoginForm)
	mux.HandleFunc("POST /auth/login", h.handleLogin)
	mux.HandleFunc("POST /auth/logout", h.handleLogout)
	mux.HandleFunc("GET /profile", h.handleProfile)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		shop := h.shop(w, r)
		h.renderNotFound(w, r, shop)
	})

	return mux
}
