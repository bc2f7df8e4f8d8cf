package templates

import (
	"context"

	"github.com/a-h/templ"
	"github.com/nexshop/storefront/internal/cart"
	"github.com/nexshop/storefront/internal/commerce"
)

// CartFragment renders the cart page body: line items with quantity
// controls and the order summary. It is the HTMX swap target for cart
// mutations.
func CartFragment(snap cart.Snapshot, summary commerce.Summary) templ.Component {
	return component(func(ctx context.Context, pw *pageWriter) {
		pw.write("<section id=\"cart\" class=\"cart\">")
		if len(snap.Entries) == 0 {
			pw.write("<div class=\"empty-cart\"><h2>Your cart is empty</h2>")
			pw.write("<p>Add some products to get started!</p>")
			pw.write("<a href=\"/\">Continue Shopping</a></div></section>")
			return
		}

		pw.write("<header><h1>Shopping Cart</h1>")
		pw.writef("<p>%s</p></header>", esc(ItemCountLabel(snap.TotalItems)))

		pw.write("<div class=\"cart-lines\">")
		for _, entry := range snap.Entries {
			pw.render(ctx, cartLine(entry))
		}
		pw.write("</div>")

		pw.render(ctx, orderSummary(summary))
		pw.write("</section>")
	})
}

func cartLine(entry cart.Entry) templ.Component {
	return component(func(_ context.Context, pw *pageWriter) {
		pw.write("<div class=\"cart-line\">")
		pw.writef("<img src=\"%s\" alt=\"%s\">", esc(entry.Image), esc(entry.Title))
		pw.writef("<a href=\"/products/%s\">%s</a>", esc(entry.ProductID), esc(entry.Title))
		pw.writef("<span class=\"price\">%s</span>", esc(Money(entry.Price)))

		pw.writef("<form class=\"quantity\" hx-post=\"/cart/items/%s/quantity\" hx-target=\"#cart\" hx-swap=\"outerHTML\">", esc(entry.ProductID))
		pw.writef("<input type=\"number\" name=\"quantity\" value=\"%d\" min=\"0\" step=\"1\">", entry.Quantity)
		pw.write("<button type=\"submit\">Update</button></form>")

		pw.writef("<span class=\"subtotal\">%s</span>", esc(Money(entry.Subtotal())))
		pw.writef("<button class=\"remove\" hx-post=\"/cart/items/%s/delete\" hx-target=\"#cart\" hx-swap=\"outerHTML\">Remove</button>", esc(entry.ProductID))
		pw.write("</div>")
	})
}

func orderSummary(summary commerce.Summary) templ.Component {
	return component(func(_ context.Context, pw *pageWriter) {
		pw.write("<aside class=\"order-summary\"><h2>Order Summary</h2>")
		pw.writef("<p>Subtotal (%d items) <span>%s</span></p>", summary.TotalItems, esc(Money(summary.Subtotal)))
		pw.write("<p>Shipping <span class=\"free\">Free</span></p>")
		pw.writef("<p>Tax <span>%s</span></p>", esc(Money(summary.Tax)))
		pw.writef("<p class=\"grand-total\">Total <span>%s</span></p>", esc(Money(summary.GrandTotal)))
		pw.write("<p class=\"vat-note\">Incl. VAT</p>")
		pw.write("<a class=\"checkout\" href=\"/checkout\">Proceed to Checkout</a>")
		pw.write("<a href=\"/\">Continue Shopping</a>")
		if summary.AwayFromFreeShipping.IsPositive() {
			pw.writef("<p class=\"shipping-nudge\">Enjoy free shipping on orders over $50. %s away from free shipping</p>",
				esc(Money(summary.AwayFromFreeShipping)))
		}
		pw.write("</aside>")
	})
}

// CheckoutPage renders the checkout stub for signed-in shoppers.
func CheckoutPage(summary commerce.Summary) templ.Component {
	return component(func(ctx context.Context, pw *pageWriter) {
		pw.write("<section class=\"checkout\"><h1>Checkout</h1>")
		pw.render(ctx, orderSummary(summary))
		pw.write("<p>Payment is not implemented in this demo storefront.</p>")
		pw.write("<a href=\"/cart\">Back to cart</a></section>")
	})
}
