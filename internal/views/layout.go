package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Theme routes.
const (
	ThemeTogglePath = "/theme/toggle"
	ThemeControlID  = "theme-toggle"
)

const (
	bootstrapCSS = "https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css"
	htmxJS       = "https://unpkg.com/htmx.org@2.0.3"

	// htmx swaps 409 and 422 answers too; they carry the updated login status.
	htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"409","swap":true},{"code":"422","swap":true},{"code":"[23]..","swap":true},{"code":"[45]..","swap":false,"error":true}]}`
)

// Layout wraps body in the HTML document shared by every page.
func Layout(title string, dark bool, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)

		h.raw("<!DOCTYPE html><html lang=\"en\"")
		h.attr("data-bs-theme", themeName(dark))
		h.raw("><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>")
		h.text(title)
		h.raw("</title><meta name=\"htmx-config\"")
		h.attr("content", htmxConfig)
		h.raw("><link rel=\"stylesheet\"")
		h.attr("href", bootstrapCSS)
		h.raw("><script defer")
		h.attr("src", htmxJS)
		h.raw("></script></head><body class=\"bg-body-tertiary\">")
		h.render(ThemeToggle(dark))
		h.raw("<main class=\"container py-5\">")
		h.render(body)
		h.raw("</main></body></html>")

		return h.err
	})
}

// ThemeToggle renders the dark mode switch.
func ThemeToggle(dark bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)

		label := "Dark mode"
		if dark {
			label = "Light mode"
		}

		h.raw("<form class=\"position-absolute top-0 end-0 p-3\" method=\"post\"")
		h.attr("action", ThemeTogglePath)
		h.raw("><button type=\"submit\" class=\"btn btn-outline-secondary btn-sm\"")
		h.attr("id", ThemeControlID)
		h.attr("aria-pressed", boolString(dark))
		h.raw(">")
		h.text(label)
		h.raw("</button></form>")

		return h.err
	})
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
