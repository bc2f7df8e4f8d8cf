// Package storage defines the persistence contract for shopper carts.
package storage

import (
	"context"
	"errors"

	"github.com/nexshop/storefront/internal/cart"
)

// ErrNotFound indicates no cart is persisted for the requested id.
var ErrNotFound = errors.New("cart not found")

// CartStore persists cart snapshots across sessions. The cart contents
// are opaque to the store; it serializes and restores them verbatim.
type CartStore interface {
	// Save upserts the cart snapshot for cartID.
	Save(ctx context.Context, cartID string, snap cart.Snapshot) error
	// Load returns the persisted snapshot or ErrNotFound.
	Load(ctx context.Context, cartID string) (cart.Snapshot, error)
	// Delete removes the persisted cart. Deleting an absent cart is a
	// no-op.
	Delete(ctx context.Context, cartID string) error
}
