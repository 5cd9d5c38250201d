package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/sbilibin2017/gw-login-portal/internal/models"
)

// Login page element ids and routes.
const (
	LoginCardID     = "login-card"
	LoginFormID     = "login-form"
	LoginStatusID   = "login-status"
	LoginSubmitID   = "login-submit"
	NavigationPath  = "/login/navigation"
	navigationEvery = "every 500ms"
)

// LoginPageData is what the login card shows for one session.
type LoginPageData struct {
	Form         models.FormState
	Notification models.Notification
	Busy         bool
	SubmitLabel  string
	// InvalidField names the required field the last submit found empty.
	InvalidField string
	// PollNavigation makes the page follow a navigation that is still scheduled.
	PollNavigation bool
	DarkMode       bool
}

// LoginPage renders the full login document.
func LoginPage(data LoginPageData) templ.Component {
	return Layout("Login", data.DarkMode, LoginCard(data))
}

// LoginCard renders the whole login card.
func LoginCard(data LoginPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)

		h.raw("<div class=\"card mx-auto shadow-sm\" style=\"max-width: 420px\"")
		h.attr("id", LoginCardID)
		h.raw("><div class=\"card-body p-4\"><h2 class=\"card-title text-center mb-4\">Login</h2>")

		h.render(loginStatus(data))
		h.render(loginForm(data))

		h.raw("<div class=\"text-center mt-3\"><a")
		h.attr("href", models.RouteForgetPassword.String())
		h.raw(">Forgot Password?</a></div><p class=\"text-center mt-2 mb-0\">Don&#39;t have an account? <a")
		h.attr("href", models.RouteSignup.String())
		h.raw(">Sign Up</a></p></div></div>")

		return h.err
	})
}

// LoginUpdate is the htmx answer to a submit or a dismiss. It replaces the
// status region and swaps the submit control and field feedback out of band.
// The inputs are not part of it, so what the user typed stays in place.
func LoginUpdate(data LoginPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)

		h.render(loginStatus(data))
		h.render(submitButton(data, true))
		h.render(fieldFeedback(models.FieldEmail, data.InvalidField == models.FieldEmail, true))
		h.render(fieldFeedback(models.FieldPassword, data.InvalidField == models.FieldPassword, true))

		return h.err
	})
}

// loginStatus holds the notification and the navigation poller.
func loginStatus(data LoginPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)

		h.raw("<div aria-live=\"polite\"")
		h.attr("id", LoginStatusID)
		h.raw(">")
		if data.PollNavigation {
			h.render(navigationPoller())
		}
		h.render(Alert(data.Notification))
		h.raw("</div>")

		return h.err
	})
}

func loginForm(data LoginPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)

		h.raw("<form method=\"post\"")
		h.attr("id", LoginFormID)
		h.attr("action", models.RouteLogin.String())
		h.attr("hx-post", models.RouteLogin.String())
		h.attr("hx-target", "#"+LoginStatusID)
		h.attr("hx-swap", "outerHTML")
		h.attr("hx-disabled-elt", "find button[type='submit']")
		h.attr("hx-on::before-request", "this.querySelector(\"button[type='submit']\").textContent = this.dataset.busyLabel")
		h.attr("data-busy-label", "Logging in...")
		h.raw(">")

		h.render(input(inputProps{
			Type:        "email",
			Name:        models.FieldEmail,
			Placeholder: "Enter email",
			Value:       data.Form.Email,
			Invalid:     data.InvalidField == models.FieldEmail,
			Disabled:    data.Busy,
		}))
		h.render(input(inputProps{
			Type:        "password",
			Name:        models.FieldPassword,
			Placeholder: "Enter password",
			Invalid:     data.InvalidField == models.FieldPassword,
			Disabled:    data.Busy,
		}))
		h.render(submitButton(data, false))
		h.raw("</form>")

		return h.err
	})
}

func submitButton(data LoginPageData, oob bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)

		label := data.SubmitLabel
		if label == "" {
			label = "Login"
		}

		h.raw("<button type=\"submit\" class=\"btn btn-primary w-100\"")
		h.attr("id", LoginSubmitID)
		h.flag("hx-swap-oob=\"true\"", oob)
		h.flag("disabled", data.Busy)
		h.flag("aria-busy=\"true\"", data.Busy)
		h.raw(">")
		if data.Busy {
			h.raw("<span class=\"spinner-border spinner-border-sm me-2\" aria-hidden=\"true\"></span>")
		}
		h.text(label)
		h.raw("</button>")

		return h.err
	})
}

func feedbackID(field string) string {
	return field + "-feedback"
}

// fieldFeedback is always rendered so a later update can clear it.
func fieldFeedback(field string, invalid, oob bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)

		class := "invalid-feedback"
		if invalid {
			class += " d-block"
		}

		h.raw("<div")
		h.attr("id", feedbackID(field))
		h.attr("class", class)
		h.flag("hx-swap-oob=\"true\"", oob)
		h.raw(">")
		if invalid {
			h.raw("Please fill out this field.")
		}
		h.raw("</div>")

		return h.err
	})
}

type inputProps struct {
	Type        string
	Name        string
	Placeholder string
	Value       string
	Invalid     bool
	Disabled    bool
}

func input(p inputProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)

		class := "form-control"
		if p.Invalid {
			class += " is-invalid"
		}

		h.raw("<div class=\"mb-3\"><input required")
		h.attr("type", p.Type)
		h.attr("id", p.Name)
		h.attr("name", p.Name)
		h.attr("class", class)
		h.attr("placeholder", p.Placeholder)
		h.attr("autocomplete", autocomplete(p.Name))
		if p.Value != "" {
			h.attr("value", p.Value)
		}
		h.attr("aria-describedby", feedbackID(p.Name))
		h.flag("aria-invalid=\"true\"", p.Invalid)
		h.flag("disabled", p.Disabled)
		h.raw(">")
		h.render(fieldFeedback(p.Name, p.Invalid, false))
		h.raw("</div>")

		return h.err
	})
}

func autocomplete(field string) string {
	if field == models.FieldPassword {
		return "current-password"
	}
	return "username"
}

// navigationPoller follows a scheduled redirect: htmx polls while scripts
// run, the meta refresh covers browsers without them.
func navigationPoller() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)

		h.raw("<div data-navigation-poll")
		h.attr("hx-get", NavigationPath)
		h.attr("hx-trigger", navigationEvery)
		h.attr("hx-swap", "none")
		h.raw("></div><noscript><meta http-equiv=\"refresh\"")
		h.attr("content", "1;url="+NavigationPath)
		h.raw("></noscript>")

		return h.err
	})
}
