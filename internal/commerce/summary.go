package commerce

import (
	"github.com/nexshop/storefront/internal/cart"
	"github.com/shopspring/decimal"
)

// taxRate is the flat checkout tax applied to the subtotal.
var taxRate = decimal.NewFromFloat(0.10)

// freeShippingThreshold is the order subtotal above which shipping is free
// without the promotional nudge.
var freeShippingThreshold = decimal.NewFromInt(50)

// Summary is the order summary shown on the cart and checkout pages.
// Amounts stay exact; rounding to two places happens in the templates.
type Summary struct {
	TotalItems int
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	GrandTotal decimal.Decimal
	// AwayFromFreeShipping is how much more the shopper must spend to
	// pass the free-shipping threshold; zero once past it.
	AwayFromFreeShipping decimal.Decimal
}

// Summarize derives the order summary from a cart snapshot.
func Summarize(snap cart.Snapshot) Summary {
	tax := snap.Total.Mul(taxRate)
	away := freeShippingThreshold.Sub(snap.Total)
	if away.IsNegative() {
		away = decimal.Zero
	}
	return Summary{
		TotalItems:           snap.TotalItems,
		Subtotal:             snap.Total,
		Tax:                  tax,
		GrandTotal:           snap.Total.Add(tax),
		AwayFromFreeShipping: away,
	}
}
