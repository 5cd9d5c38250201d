package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/sbilibin2017/gw-login-portal/internal/models"
)

// HomePage is shown after a successful login.
func HomePage(userID string, dark bool) templ.Component {
	return Layout("Home", dark, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)

		h.raw("<div class=\"card mx-auto\" style=\"max-width: 420px\"><div class=\"card-body p-4 text-center\"><h2 class=\"card-title\">Home</h2><p class=\"mb-0\">You are signed in.</p>")
		if userID != "" {
			h.raw("<p class=\"text-body-secondary small\" data-user-id>")
			h.text(userID)
			h.raw("</p>")
		}
		h.raw("</div></div>")

		return h.err
	}))
}

// VerifyEmailPage asks the user to confirm email. email may be empty when
// the session storage no longer holds it.
func VerifyEmailPage(email string, dark bool) templ.Component {
	return Layout("Verify email", dark, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)

		h.raw("<div class=\"card mx-auto\" style=\"max-width: 420px\"><div class=\"card-body p-4 text-center\"><h2 class=\"card-title\">Verify your email</h2>")
		if email != "" {
			h.raw("<p>We sent a verification link to <strong data-verify-email>")
			h.text(email)
			h.raw("</strong>.</p>")
		} else {
			h.raw("<p>Check your inbox for a verification link.</p>")
		}
		h.raw("<a")
		h.attr("href", models.RouteLogin.String())
		h.raw(">Back to login</a></div></div>")

		return h.err
	}))
}
