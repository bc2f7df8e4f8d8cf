package templates

import (
	"context"

	"github.com/a-h/templ"
	"github.com/nexshop/storefront/internal/auth"
)

// LoginPage renders the demo sign-in form.
func LoginPage(errorMessage string) templ.Component {
	return component(func(_ context.Context, pw *pageWriter) {
		pw.write("<section class=\"login\"><h1>Sign in to NexShop</h1>")
		if errorMessage != "" {
			pw.writef("<p class=\"form-error\">%s</p>", esc(errorMessage))
		}
		pw.write("<form method=\"post\" action=\"/auth/login\">")
		pw.write("<label>Name<input type=\"text\" name=\"name\" required></label>")
		pw.write("<label>Email<input type=\"email\" name=\"email\"></label>")
		pw.write("<button type=\"submit\">Sign in</button></form>")
		pw.write("<p class=\"demo-note\"><strong>Demo:</strong> This is a demonstration login. Your data is secure.</p>")
		pw.write("</section>")
	})
}

// ProfilePage renders the signed-in shopper's profile.
func ProfilePage(session auth.Session) templ.Component {
	return component(func(_ context.Context, pw *pageWriter) {
		pw.write("<section class=\"profile\"><h1>Profile</h1>")
		pw.writef("<h2>%s</h2>", esc(session.Name))
		if session.Email != "" {
			pw.writef("<p>%s</p>", esc(session.Email))
		}
		pw.write("<form method=\"post\" action=\"/auth/logout\">")
		pw.write("<button type=\"submit\">Sign out</button></form></section>")
	})
}
