package templates

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
	"github.com/nexshop/storefront/internal/catalog"
	"github.com/nexshop/storefront/internal/catalog/view"
)

// CatalogFragment renders the product browser body: headline, search box,
// view toggle, product grid, and pagination. It is the HTMX swap target
// for search, paging, view-mode, and refresh intents.
func CatalogFragment(snap view.Snapshot) templ.Component {
	return component(func(ctx context.Context, pw *pageWriter) {
		pw.write("<section id=\"catalog\" class=\"catalog\">")

		if snap.Phase == view.PhaseError && snap.TotalCount == 0 {
			pw.write("<div class=\"error-card\"><h2>Oops! Something went wrong</h2>")
			pw.writef("<p>%s</p>", esc(snap.ErrMessage))
			pw.write("<button hx-post=\"/catalog/refresh\" hx-target=\"#catalog\" hx-swap=\"outerHTML\">Try Again</button>")
			pw.write("</div></section>")
			return
		}

		pw.write("<header class=\"catalog-header\"><div><h1>Our Products</h1>")
		pw.writef("<p>%s</p></div>", esc(ProductCountLabel(snap.TotalCount)))
		pw.render(ctx, viewToggle(snap.Mode))
		pw.write("</header>")

		pw.write("<form class=\"search\" hx-post=\"/catalog/search\" hx-target=\"#catalog\" hx-swap=\"outerHTML\">")
		pw.writef("<input type=\"search\" name=\"query\" value=\"%s\" placeholder=\"Search products...\">", esc(snap.Query))
		pw.write("<button type=\"submit\">Search</button></form>")
		pw.write("<button class=\"refresh\" hx-post=\"/catalog/refresh\" hx-target=\"#catalog\" hx-swap=\"outerHTML\" title=\"Refresh products\">Refresh</button>")

		if snap.Query != "" {
			pw.writef("<p class=\"search-note\">Showing results for: <strong>&quot;%s&quot;</strong></p>", esc(snap.Query))
		}

		switch {
		case snap.Phase == view.PhaseLoading:
			pw.render(ctx, skeletonGrid(snap.Mode))
		case snap.TotalCount == 0:
			pw.render(ctx, emptyState(snap.Query))
		default:
			pw.writef("<div class=\"products %s\">", esc(string(snap.Mode)))
			for _, p := range snap.Visible {
				pw.render(ctx, ProductCard(p, snap.Mode))
			}
			pw.write("</div>")
			if snap.TotalPages > 1 {
				pw.render(ctx, Pagination(snap.Page, snap.TotalPages))
			}
		}
		pw.write("</section>")
	})
}

// ProductCard renders one product tile linking to its detail page.
func ProductCard(p catalog.Product, mode view.Mode) templ.Component {
	return component(func(_ context.Context, pw *pageWriter) {
		pw.writef("<article class=\"product-card %s\">", esc(string(mode)))
		pw.writef("<a href=\"/products/%s\">", esc(p.ID))
		pw.writef("<img src=\"%s\" alt=\"%s\" loading=\"lazy\">", esc(p.Image), esc(p.Title))
		pw.writef("<h3>%s</h3></a>", esc(p.Title))
		pw.writef("<p class=\"category\">%s</p>", esc(p.Category))
		pw.writef("<p class=\"rating\">%s</p>", esc(RatingLabel(p.Rating.Rate, p.Rating.Count)))
		pw.writef("<p class=\"price\">%s</p>", esc(Money(p.Price)))
		pw.writef("<button hx-post=\"/cart/items\" hx-vals='{\"product_id\": %q}' hx-target=\"#main\" hx-swap=\"none\">Add to Cart</button>", p.ID)
		pw.write("</article>")
	})
}

// Pagination renders the page selector. Requests for pages the catalog no
// longer has are clamped server-side, so stale links stay safe.
func Pagination(page, totalPages int) templ.Component {
	return component(func(_ context.Context, pw *pageWriter) {
		pw.write("<nav class=\"pagination\">")
		for n := 1; n <= totalPages; n++ {
			current := ""
			if n == page {
				current = " current"
			}
			pw.writef("<button class=\"page%s\" hx-post=\"/catalog/page\" hx-vals='{\"page\": \"%s\"}' hx-target=\"#catalog\" hx-swap=\"outerHTML\">%d</button>",
				current, strconv.Itoa(n), n)
		}
		pw.write("</nav>")
	})
}

func viewToggle(mode view.Mode) templ.Component {
	return component(func(_ context.Context, pw *pageWriter) {
		pw.write("<div class=\"view-toggle\">")
		for _, m := range []view.Mode{view.ModeGrid, view.ModeList} {
			active := ""
			if m == mode {
				active = " active"
			}
			pw.writef("<button class=\"mode%s\" hx-post=\"/catalog/view-mode\" hx-vals='{\"mode\": %q}' hx-target=\"#catalog\" hx-swap=\"outerHTML\" title=\"%s view\">%s</button>",
				active, string(m), esc(string(m)), esc(string(m)))
		}
		pw.write("</div>")
	})
}

func skeletonGrid(mode view.Mode) templ.Component {
	return component(func(_ context.Context, pw *pageWriter) {
		pw.writef("<div class=\"products %s\">", esc(string(mode)))
		for i := 0; i < view.PageSize; i++ {
			pw.write("<div class=\"product-skeleton\"></div>")
		}
		pw.write("</div>")
	})
}

func emptyState(query string) templ.Component {
	return component(func(_ context.Context, pw *pageWriter) {
		pw.write("<div class=\"empty-state\">")
		if query != "" {
			pw.write("<h3>No products found</h3>")
			pw.write("<p>Try adjusting your search terms or browse our categories.</p>")
			pw.write("<form hx-post=\"/catalog/search\" hx-target=\"#catalog\" hx-swap=\"outerHTML\">")
			pw.write("<input type=\"hidden\" name=\"query\" value=\"\">")
			pw.write("<button type=\"submit\">Clear Search</button></form>")
		} else {
			pw.write("<h3>No products available</h3>")
			pw.write("<p>Check back later for new arrivals.</p>")
		}
		pw.write("</div>")
	})
}

// ProductDetailPage renders the product detail with add-to-cart.
func ProductDetailPage(p catalog.Product, inCart bool) templ.Component {
	return component(func(_ context.Context, pw *pageWriter) {
		pw.write("<section class=\"product-detail\"><a href=\"/\">&larr; Back to products</a>")
		pw.writef("<img src=\"%s\" alt=\"%s\">", esc(p.Image), esc(p.Title))
		pw.writef("<h1>%s</h1>", esc(p.Title))
		pw.writef("<p class=\"category\">%s</p>", esc(p.Category))
		pw.writef("<p class=\"rating\">%s</p>", esc(RatingLabel(p.Rating.Rate, p.Rating.Count)))
		pw.writef("<p class=\"price\">%s</p>", esc(Money(p.Price)))
		pw.writef("<p class=\"description\">%s</p>", esc(p.Description))
		pw.write("<form method=\"post\" action=\"/cart/items\">")
		pw.writef("<input type=\"hidden\" name=\"product_id\" value=\"%s\">", esc(p.ID))
		if inCart {
			pw.write("<button type=\"submit\">Add Another</button>")
		} else {
			pw.write("<button type=\"submit\">Add to Cart</button>")
		}
		pw.write("</form></section>")
	})
}
