package commerce

import (
	"context"
	"sync"

	cartstorage "github.com/nexshop/storefront/internal/cart/storage"
	"github.com/nexshop/storefront/internal/catalog"
)

// Registry is the composition root for shopper state. It owns one Shop per
// cart id and injects the engines' collaborators; nothing else in the
// process holds mutable commerce state.
type Registry struct {
	source catalog.Source
	store  cartstorage.CartStore

	mu    sync.Mutex
	shops map[string]*Shop
}

// NewRegistry creates a registry over the catalog source and cart store.
// The store may be nil, in which case carts live only in memory.
func NewRegistry(source catalog.Source, store cartstorage.CartStore) *Registry {
	return &Registry{
		source: source,
		store:  store,
		shops:  make(map[string]*Shop),
	}
}

// Shop returns the shop for cartID, creating it on first use. A newly
// created shop restores its cart from the store before it becomes visible
// to other callers, so a concurrent mutation cannot be wiped by a restore
// that resolves later. An absent persisted cart means starting empty.
func (r *Registry) Shop(ctx context.Context, cartID string) *Shop {
	r.mu.Lock()
	defer r.mu.Unlock()
	if shop, ok := r.shops[cartID]; ok {
		return shop
	}
	shop := newShop(cartID, r.source, r.store)
	shop.restoreCart(ctx)
	r.shops[cartID] = shop
	return shop
}

// Drop forgets the shop for cartID and deletes its persisted cart.
func (r *Registry) Drop(ctx context.Context, cartID string) error {
	r.mu.Lock()
	delete(r.shops, cartID)
	r.mu.Unlock()
	if r.store == nil {
		return nil
	}
	return r.store.Delete(ctx, cartID)
}
