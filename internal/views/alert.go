package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/sbilibin2017/gw-login-portal/internal/models"
)

// DismissPath clears the login notification.
const DismissPath = "/login/notification/dismiss"

// Alert renders n with a Close control. An empty notification renders nothing.
func Alert(n models.Notification) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if n.Empty() {
			return nil
		}
		h := newHTMLWriter(ctx, w)

		h.raw("<div")
		h.attr("class", "alert alert-"+n.Kind.Variant()+" alert-dismissible d-flex justify-content-between align-items-start")
		h.attr("role", "alert")
		h.attr("data-notification-kind", string(n.Kind))
		h.raw("><span data-notification-message>")
		h.text(n.Message)
		h.raw("</span><form method=\"post\"")
		h.attr("action", DismissPath)
		h.attr("hx-post", DismissPath)
		h.attr("hx-target", "#"+LoginStatusID)
		h.attr("hx-swap", "outerHTML")
		h.raw("><button type=\"submit\" class=\"btn-close\" aria-label=\"Close\"></button></form></div>")

		return h.err
	})
}
