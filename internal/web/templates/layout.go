package templates

import (
	"context"

	"github.com/a-h/templ"
	"github.com/nexshop/storefront/internal/commerce"
)

// NavContext carries the layout state shared by every page.
type NavContext struct {
	// SignedIn gates the profile and checkout navigation.
	SignedIn bool
	// UserName is the display name of the signed-in shopper.
	UserName string
	// CartCount is the cart badge value.
	CartCount int
}

// Layout wraps content in the full HTML shell with navigation and toasts.
func Layout(title string, nav NavContext, notices []commerce.Notice, content templ.Component) templ.Component {
	return component(func(ctx context.Context, pw *pageWriter) {
		pw.write("<!doctype html><html lang=\"en\"><head><meta charset=\"utf-8\">")
		pw.write("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
		pw.writef("<title>%s · NexShop</title>", esc(title))
		pw.write("<script src=\"https://unpkg.com/htmx.org@1.9.12\"></script>")
		pw.write("</head><body>")
		pw.render(ctx, navbar(nav))
		pw.render(ctx, Toasts(notices))
		pw.write("<main id=\"main\">")
		pw.render(ctx, content)
		pw.write("</main></body></html>")
	})
}

func navbar(nav NavContext) templ.Component {
	return component(func(_ context.Context, pw *pageWriter) {
		pw.write("<nav class=\"navbar\"><a class=\"brand\" href=\"/\">NexShop</a>")
		pw.write("<div class=\"nav-links\"><a href=\"/\">Products</a>")
		pw.writef("<a href=\"/cart\">Cart <span class=\"cart-badge\">%d</span></a>", nav.CartCount)
		if nav.SignedIn {
			pw.writef("<a href=\"/profile\">%s</a>", esc(nav.UserName))
			pw.write("<form method=\"post\" action=\"/auth/logout\" class=\"inline\">")
			pw.write("<button type=\"submit\">Sign out</button></form>")
		} else {
			pw.write("<a href=\"/auth/login\">Sign in</a>")
		}
		pw.write("</div></nav>")
	})
}

// Toasts renders the transient notices queued by the façade.
func Toasts(notices []commerce.Notice) templ.Component {
	return component(func(_ context.Context, pw *pageWriter) {
		if len(notices) == 0 {
			return
		}
		pw.write("<div class=\"toasts\">")
		for _, n := range notices {
			pw.writef("<div class=\"toast toast-%s\">%s</div>", esc(string(n.Kind)), esc(n.Message))
		}
		pw.write("</div>")
	})
}

// NotFoundPage renders the 404 page.
func NotFoundPage() templ.Component {
	return component(func(_ context.Context, pw *pageWriter) {
		pw.write("<section class=\"not-found\"><h1>Page not found</h1>")
		pw.write("<p>The page you are looking for does not exist.</p>")
		pw.write("<a href=\"/\">Back to products</a></section>")
	})
}
