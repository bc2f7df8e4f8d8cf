// Package commerce composes the cart ledger and the catalog view pipeline
// behind a single façade the web layer talks to. Intents flow one way:
// handler → façade → engine mutation → derived state → render. User-visible
// feedback is queued here after a transition completes, never inside an
// engine.
package commerce

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/nexshop/storefront/internal/cart"
	cartstorage "github.com/nexshop/storefront/internal/cart/storage"
	"github.com/nexshop/storefront/internal/catalog"
	"github.com/nexshop/storefront/internal/catalog/view"
)

// Shop is one shopper's commerce state: a cart ledger, a catalog view
// pipeline, and the pending notices their transitions produced.
type Shop struct {
	cartID  string
	ledger  *cart.Ledger
	catalog *view.Pipeline
	source  catalog.Source
	store   cartstorage.CartStore
	notices noticeQueue
}

func newShop(cartID string, source catalog.Source, store cartstorage.CartStore) *Shop {
	s := &Shop{
		cartID: cartID,
		ledger: cart.New(),
		source: source,
		store:  store,
	}
	s.catalog = view.New(source, shopEvents{s})
	return s
}

// shopEvents routes catalog pipeline outcomes into the shop's notices.
type shopEvents struct {
	shop *Shop
}

func (e shopEvents) SearchCompleted(_ string, count int) {
	if count == 0 {
		e.shop.notices.push(NoticeError, "No products found matching your search")
		return
	}
	plural := ""
	if count > 1 {
		plural = "s"
	}
	e.shop.notices.push(NoticeSuccess, fmt.Sprintf("Found %d product%s", count, plural))
}

func (e shopEvents) SearchFailed(string) {
	e.shop.notices.push(NoticeError, "Search failed")
}

func (e shopEvents) LoadFailed(string) {
	e.shop.notices.push(NoticeError, "Failed to load products")
}

// AddToCart resolves the product and adds it to the cart. An unknown
// product id is reported as a notice, not an error page.
func (s *Shop) AddToCart(ctx context.Context, productID string) error {
	product, err := s.source.FetchOne(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			s.notices.push(NoticeError, "Product not found")
			return nil
		}
		return fmt.Errorf("resolve product %s: %w", productID, err)
	}
	s.ledger.Add(product)
	s.notices.push(NoticeSuccess, "Added to cart!")
	s.persistCart(ctx)
	return nil
}

// RemoveFromCart removes the product line. Absent products are a no-op.
func (s *Shop) RemoveFromCart(ctx context.Context, productID string) {
	s.ledger.Remove(productID)
	s.persistCart(ctx)
}

// SetCartQuantity sets a line's quantity; zero or less removes the line.
// Non-integer input never reaches here: the web layer rejects it before
// dispatching the intent.
func (s *Shop) SetCartQuantity(ctx context.Context, productID string, quantity int) {
	s.ledger.SetQuantity(productID, quantity)
	s.persistCart(ctx)
}

// CartView returns a read-only copy of the cart.
func (s *Shop) CartView() cart.Snapshot {
	return s.ledger.Snapshot()
}

// OrderSummary derives the checkout totals from the current cart.
func (s *Shop) OrderSummary() Summary {
	return Summarize(s.ledger.Snapshot())
}

// LoadCatalog fetches the full product set into the view pipeline.
func (s *Shop) LoadCatalog(ctx context.Context) {
	s.catalog.Load(ctx)
}

// SearchCatalog filters the catalog by keyword.
func (s *Shop) SearchCatalog(ctx context.Context, query string) {
	s.catalog.Search(ctx, query)
}

// SetCatalogPage moves the catalog window; out-of-range pages clamp.
func (s *Shop) SetCatalogPage(n int) {
	s.catalog.SetPage(n)
}

// SetCatalogMode toggles the grid/list layout.
func (s *Shop) SetCatalogMode(mode view.Mode) {
	s.catalog.SetMode(mode)
}

// CatalogView returns a read-only snapshot of the catalog state.
func (s *Shop) CatalogView() view.Snapshot {
	return s.catalog.Snapshot()
}

// Product resolves a single product for the detail page.
func (s *Shop) Product(ctx context.Context, productID string) (catalog.Product, error) {
	return s.source.FetchOne(ctx, productID)
}

// Notices drains the pending transient messages for rendering.
func (s *Shop) Notices() []Notice {
	return s.notices.drain()
}

// restoreCart loads the persisted cart, tolerating an absent record.
func (s *Shop) restoreCart(ctx context.Context) {
	if s.store == nil {
		return
	}
	snap, err := s.store.Load(ctx, s.cartID)
	if err != nil {
		if !errors.Is(err, cartstorage.ErrNotFound) {
			log.Printf("restore cart %s: %v", s.cartID, err)
		}
		return
	}
	s.ledger.Restore(snap)
}

// persistCart saves the cart after a mutation. Persistence failures are
// logged, never surfaced: the in-memory cart stays authoritative.
func (s *Shop) persistCart(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, s.cartID, s.ledger.Snapshot()); err != nil {
		log.Printf("persist cart %s: %v", s.cartID, err)
	}
}
