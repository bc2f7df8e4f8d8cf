// Package cart implements the shopping cart ledger: the set of items a
// shopper intends to purchase and their derived totals.
package cart

import (
	"sync"

	"github.com/nexshop/storefront/internal/catalog"
	"github.com/shopspring/decimal"
)

// Entry is one product line in the cart. Product fields are denormalized
// snapshots captured at first add; in particular the price never changes
// once the product is in the cart.
type Entry struct {
	ProductID string          `json:"product_id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is the line total, price times quantity.
func (e Entry) Subtotal() decimal.Decimal {
	return e.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// Snapshot is a read-only copy of the cart for rendering and persistence.
// TotalItems and Total are derived from Entries and are always consistent
// with them.
type Snapshot struct {
	Entries    []Entry         `json:"entries"`
	TotalItems int             `json:"total_items"`
	Total      decimal.Decimal `json:"total"`
}

// Ledger owns cart state. Every mutation recomputes the derived totals
// before it returns, so no reader can observe them stale relative to the
// entry list. Entries keep insertion order, one per product.
type Ledger struct {
	mu         sync.Mutex
	entries    []Entry
	totalItems int
	total      decimal.Decimal

	listeners []func(Snapshot)
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{total: decimal.Zero}
}

// OnChange registers a listener invoked with a snapshot after each
// committed mutation.
func (l *Ledger) OnChange(fn func(Snapshot)) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.listeners = append(l.listeners, fn)
	l.mu.Unlock()
}

// Add puts a product in the cart. A product already present gains one
// quantity and keeps its first-seen price; a new product is appended with
// quantity 1. Add always succeeds.
func (l *Ledger) Add(product catalog.Product) {
	l.mu.Lock()
	found := false
	for i := range l.entries {
		if l.entries[i].ProductID == product.ID {
			l.entries[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		l.entries = append(l.entries, Entry{
			ProductID: product.ID,
			Title:     product.Title,
			Price:     product.Price,
			Image:     product.Image,
			Category:  product.Category,
			Quantity:  1,
		})
	}
	l.recomputeLocked()
	snap := l.snapshotLocked()
	l.mu.Unlock()
	l.emit(snap)
}

// Remove deletes the product's entry. Removing an absent product is a
// no-op, not an error.
func (l *Ledger) Remove(productID string) {
	l.mu.Lock()
	changed := l.removeLocked(productID)
	snap := l.snapshotLocked()
	l.mu.Unlock()
	if changed {
		l.emit(snap)
	}
}

// SetQuantity sets the product's quantity. A quantity of zero or less
// behaves exactly like Remove; an absent product is a no-op.
func (l *Ledger) SetQuantity(productID string, quantity int) {
	l.mu.Lock()
	changed := false
	if quantity <= 0 {
		changed = l.removeLocked(productID)
	} else {
		for i := range l.entries {
			if l.entries[i].ProductID == productID {
				if l.entries[i].Quantity != quantity {
					l.entries[i].Quantity = quantity
					changed = true
				}
				break
			}
		}
		if changed {
			l.recomputeLocked()
		}
	}
	snap := l.snapshotLocked()
	l.mu.Unlock()
	if changed {
		l.emit(snap)
	}
}

// Totals returns the derived item count and exact money total. Rounding
// to two places happens only at presentation time.
func (l *Ledger) Totals() (totalItems int, total decimal.Decimal) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalItems, l.total
}

// Snapshot returns a read-only copy of the cart.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// Restore replaces the cart contents from a persisted snapshot. Derived
// totals are recomputed from the restored entries rather than trusted.
func (l *Ledger) Restore(snap Snapshot) {
	l.mu.Lock()
	l.entries = nil
	for _, e := range snap.Entries {
		if e.ProductID == "" || e.Quantity < 1 {
			continue
		}
		l.entries = append(l.entries, e)
	}
	l.recomputeLocked()
	out := l.snapshotLocked()
	l.mu.Unlock()
	l.emit(out)
}

func (l *Ledger) removeLocked(productID string) bool {
	for i := range l.entries {
		if l.entries[i].ProductID == productID {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			l.recomputeLocked()
			return true
		}
	}
	return false
}

func (l *Ledger) recomputeLocked() {
	items := 0
	total := decimal.Zero
	for _, e := range l.entries {
		items += e.Quantity
		total = total.Add(e.Subtotal())
	}
	l.totalItems = items
	l.total = total
}

func (l *Ledger) snapshotLocked() Snapshot {
	entries := make([]Entry, len(l.entries))
	copy(entries, l.entries)
	return Snapshot{
		Entries:    entries,
		TotalItems: l.totalItems,
		Total:      l.total,
	}
}

func (l *Ledger) emit(snap Snapshot) {
	l.mu.Lock()
	listeners := make([]func(Snapshot), len(l.listeners))
	copy(listeners, l.listeners)
	l.mu.Unlock()
	for _, fn := range listeners {
		fn(snap)
	}
}
