// Package templates renders the storefront pages as templ components. The
// components hold no state of their own; every page is a pure function of
// the snapshots the façade exposes.
package templates

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Money formats an exact amount for display, rounded to two places only
// here at the presentation boundary.
func Money(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// ProductCountLabel formats the "N products found" headline.
func ProductCountLabel(count int) string {
	if count == 1 {
		return printer.Sprintf("%d product found", count)
	}
	return printer.Sprintf("%d products found", count)
}

// ItemCountLabel formats the cart headline item count.
func ItemCountLabel(count int) string {
	if count == 1 {
		return printer.Sprintf("%d item in your cart", count)
	}
	return printer.Sprintf("%d items in your cart", count)
}

// RatingLabel formats a product rating line.
func RatingLabel(rate float64, count int) string {
	return printer.Sprintf("%.1f (%d reviews)", rate, count)
}

// esc escapes dynamic text for HTML interpolation.
func esc(s string) string {
	return html.EscapeString(s)
}

// pageWriter accumulates HTML output, remembering the first write error so
// component bodies stay linear.
type pageWriter struct {
	w   io.Writer
	err error
}

func (pw *pageWriter) write(s string) {
	if pw.err != nil {
		return
	}
	_, pw.err = io.WriteString(pw.w, s)
}

func (pw *pageWriter) writef(format string, args ...any) {
	if pw.err != nil {
		return
	}
	_, pw.err = fmt.Fprintf(pw.w, format, args...)
}

func (pw *pageWriter) render(ctx context.Context, c templ.Component) {
	if pw.err != nil || c == nil {
		return
	}
	pw.err = c.Render(ctx, pw.w)
}

// component adapts a pageWriter body into a templ component.
func component(body func(ctx context.Context, pw *pageWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		pw := &pageWriter{w: w}
		body(ctx, pw)
		return pw.err
	})
}
