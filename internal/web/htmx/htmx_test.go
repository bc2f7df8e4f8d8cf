package htmx

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func textComponent(text string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, text)
		return err
	})
}

func TestIsHTMXRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   bool
	}{
		{name: "absent header", header: "", want: false},
		{name: "true header", header: "true", want: true},
		{name: "mixed case", header: "True", want: true},
		{name: "other value", header: "1", want: false},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				r.Header.Set(RequestHeaderKey, tc.header)
			}
			if got := IsHTMXRequest(r); got != tc.want {
				t.Fatalf("IsHTMXRequest() = %t, want %t", got, tc.want)
			}
		})
	}
}

func TestRenderPageSelectsFragmentForHTMX(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestHeaderKey, "true")
	rec := httptest.NewRecorder()

	RenderPage(rec, r, textComponent("fragment"), textComponent("full"))

	if body := rec.Body.String(); body != "fragment" {
		t.Fatalf("body = %q, want %q", body, "fragment")
	}
}

func TestRenderPageSelectsFullOtherwise(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	RenderPage(rec, r, textComponent("fragment"), textComponent("full"))

	if body := rec.Body.String(); body != "full" {
		t.Fatalf("body = %q, want %q", body, "full")
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Fatalf("Content-Type = %q, want text/html", ct)
	}
}

func TestRenderPageFallsBackToFragment(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	RenderPage(rec, r, nil, textComponent("full"))

	if body := rec.Body.String(); body != "full" {
		t.Fatalf("body = %q, want %q", body, "full")
	}
}
