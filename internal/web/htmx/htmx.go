// Package htmx detects HTMX-initiated requests and renders either a page
// fragment or a full page accordingly.
package htmx

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// RequestHeaderKey is the HTMX request header used to detect partial updates.
const RequestHeaderKey = "HX-Request"

// IsHTMXRequest reports whether the request was initiated by HTMX.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(RequestHeaderKey), "true")
}

// RenderPage writes fragment for HTMX requests and full otherwise. When
// fragment is nil the full page serves both paths.
func RenderPage(w http.ResponseWriter, r *http.Request, fragment, full templ.Component) {
	target := full
	if IsHTMXRequest(r) && fragment != nil {
		target = fragment
	}
	if target == nil {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := target.Render(r.Context(), w); err != nil {
		http.Error(w, "render page", http.StatusInternalServerError)
	}
}
