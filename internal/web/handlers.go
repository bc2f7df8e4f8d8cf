// Package web hosts the storefront HTTP server. Handlers translate
// browser intents into façade operations and render the resulting
// snapshots; they never touch engine state directly.
package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/nexshop/storefront/internal/auth"
	"github.com/nexshop/storefront/internal/catalog"
	"github.com/nexshop/storefront/internal/catalog/view"
	"github.com/nexshop/storefront/internal/commerce"
	"github.com/nexshop/storefront/internal/web/htmx"
	"github.com/nexshop/storefront/internal/web/templates"
)

// cartCookieName identifies the shopper's cart across visits.
const cartCookieName = "nexshop_cart"

// cartCookieMaxAge keeps the cart id for thirty days.
const cartCookieMaxAge = 30 * 24 * 60 * 60

// Handlers serves the storefront routes.
type Handlers struct {
	registry *commerce.Registry
	sessions *auth.Manager
}

// NewHandlers wires the route handlers to their collaborators.
func NewHandlers(registry *commerce.Registry, sessions *auth.Manager) *Handlers {
	return &Handlers{registry: registry, sessions: sessions}
}

// shop resolves the request's shop, assigning a cart id cookie on first
// contact.
func (h *Handlers) shop(w http.ResponseWriter, r *http.Request) *commerce.Shop {
	cartID := ""
	if cookie, err := r.Cookie(cartCookieName); err == nil {
		cartID = strings.TrimSpace(cookie.Value)
	}
	if cartID == "" {
		cartID = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     cartCookieName,
			Value:    cartID,
			Path:     "/",
			MaxAge:   cartCookieMaxAge,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return h.registry.Shop(r.Context(), cartID)
}

func (h *Handlers) navContext(r *http.Request, shop *commerce.Shop) templates.NavContext {
	nav := templates.NavContext{CartCount: shop.CartView().TotalItems}
	if session, err := h.sessions.FromRequest(r); err == nil {
		nav.SignedIn = true
		nav.UserName = session.Name
	}
	return nav
}

func (h *Handlers) renderCatalog(w http.ResponseWriter, r *http.Request, shop *commerce.Shop) {
	snap := shop.CatalogView()
	fragment := templates.CatalogFragment(snap)
	full := templates.Layout("Products", h.navContext(r, shop), shop.Notices(), fragment)
	htmx.RenderPage(w, r, fragment, full)
}

func (h *Handlers) renderCart(w http.ResponseWriter, r *http.Request, shop *commerce.Shop) {
	snap := shop.CartView()
	fragment := templates.CartFragment(snap, commerce.Summarize(snap))
	full := templates.Layout("Shopping Cart", h.navContext(r, shop), shop.Notices(), fragment)
	htmx.RenderPage(w, r, fragment, full)
}

func (h *Handlers) handleHome(w http.ResponseWriter, r *http.Request) {
	shop := h.shop(w, r)
	if shop.CatalogView().Phase == view.PhaseIdle {
		shop.LoadCatalog(r.Context())
	}
	h.renderCatalog(w, r, shop)
}

func (h *Handlers) handleCatalogRefresh(w http.ResponseWriter, r *http.Request) {
	shop := h.shop(w, r)
	shop.LoadCatalog(r.Context())
	if !htmx.IsHTMXRequest(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderCatalog(w, r, shop)
}

func (h *Handlers) handleCatalogSearch(w http.ResponseWriter, r *http.Request) {
	shop := h.shop(w, r)
	shop.SearchCatalog(r.Context(), r.FormValue("query"))
	if !htmx.IsHTMXRequest(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderCatalog(w, r, shop)
}

func (h *Handlers) handleCatalogPage(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(strings.TrimSpace(r.FormValue("page")))
	if err != nil {
		http.Error(w, "invalid page", http.StatusBadRequest)
		return
	}
	shop := h.shop(w, r)
	shop.SetCatalogPage(page)
	if !htmx.IsHTMXRequest(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderCatalog(w, r, shop)
}

func (h *Handlers) handleCatalogViewMode(w http.ResponseWriter, r *http.Request) {
	shop := h.shop(w, r)
	shop.SetCatalogMode(view.Mode(r.FormValue("mode")))
	if !htmx.IsHTMXRequest(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderCatalog(w, r, shop)
}

func (h *Handlers) handleProductDetail(w http.ResponseWriter, r *http.Request) {
	shop := h.shop(w, r)
	productID := r.PathValue("id")
	product, err := shop.Product(r.Context(), productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			h.renderNotFound(w, r, shop)
			return
		}
		http.Error(w, "catalog unavailable", http.StatusBadGateway)
		return
	}

	inCart := false
	for _, entry := range shop.CartView().Entries {
		if entry.ProductID == product.ID {
			inCart = true
			break
		}
	}
	content := templates.ProductDetailPage(product, inCart)
	full := templates.Layout(product.Title, h.navContext(r, shop), shop.Notices(), content)
	htmx.RenderPage(w, r, nil, full)
}

func (h *Handlers) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	shop := h.shop(w, r)
	if err := shop.AddToCart(r.Context(), r.FormValue("product_id")); err != nil {
		http.Error(w, "catalog unavailable", http.StatusBadGateway)
		return
	}
	if !htmx.IsHTMXRequest(r) {
		redirectBack(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = templates.Toasts(shop.Notices()).Render(r.Context(), w)
}

func (h *Handlers) handleCartQuantity(w http.ResponseWriter, r *http.Request) {
	quantity, err := strconv.Atoi(strings.TrimSpace(r.FormValue("quantity")))
	if err != nil {
		// Non-integer input is a caller error, rejected before it can
		// reach the ledger.
		http.Error(w, "invalid quantity", http.StatusBadRequest)
		return
	}
	shop := h.shop(w, r)
	shop.SetCartQuantity(r.Context(), r.PathValue("id"), quantity)
	if !htmx.IsHTMXRequest(r) {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	h.renderCart(w, r, shop)
}

func (h *Handlers) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	shop := h.shop(w, r)
	shop.RemoveFromCart(r.Context(), r.PathValue("id"))
	if !htmx.IsHTMXRequest(r) {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	h.renderCart(w, r, shop)
}

func (h *Handlers) handleCart(w http.ResponseWriter, r *http.Request) {
	shop := h.shop(w, r)
	h.renderCart(w, r, shop)
}

func (h *Handlers) handleCheckout(w http.ResponseWriter, r *http.Request) {
	if _, err := h.sessions.FromRequest(r); err != nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	shop := h.shop(w, r)
	content := templates.CheckoutPage(shop.OrderSummary())
	full := templates.Layout("Checkout", h.navContext(r, shop), shop.Notices(), content)
	htmx.RenderPage(w, r, nil, full)
}

func (h *Handlers) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	shop := h.shop(w, r)
	full := templates.Layout("Sign in", h.navContext(r, shop), nil, templates.LoginPage(""))
	htmx.RenderPage(w, r, nil, full)
}

func (h *Handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	token, err := h.sessions.Issue(name, email)
	if err != nil {
		shop := h.shop(w, r)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnprocessableEntity)
		full := templates.Layout("Sign in", h.navContext(r, shop), nil, templates.LoginPage("Name is required"))
		_ = full.Render(r.Context(), w)
		return
	}
	h.sessions.SetCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) handleProfile(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.FromRequest(r)
	if err != nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	shop := h.shop(w, r)
	full := templates.Layout("Profile", h.navContext(r, shop), shop.Notices(), templates.ProfilePage(session))
	htmx.RenderPage(w, r, nil, full)
}

func (h *Handlers) renderNotFound(w http.ResponseWriter, r *http.Request, shop *commerce.Shop) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	full := templates.Layout("Page not found", h.navContext(r, shop), nil, templates.NotFoundPage())
	_ = full.Render(r.Context(), w)
}

func redirectBack(w http.ResponseWriter, r *http.Request) {
	target := r.Referer()
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
