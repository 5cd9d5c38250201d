package handlers

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/sbilibin2017/gw-login-portal/internal/logger"
	"github.com/sbilibin2017/gw-login-portal/internal/middlewares"
	"github.com/sbilibin2017/gw-login-portal/internal/sessions"
	"github.com/sbilibin2017/gw-login-portal/internal/views"
)

// render writes c with status.
func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	templ.Handler(c,
		templ.WithStatus(status),
		templ.WithErrorHandler(func(r *http.Request, err error) http.Handler {
			logger.Log.Errorw("render failed", "uri", r.RequestURI, "err", err)
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			})
		}),
	).ServeHTTP(w, r)
}

// renderLogin answers with the login card for htmx and the whole page otherwise.
func renderLogin(w http.ResponseWriter, r *http.Request, status int, sess *sessions.Session) {
	data := loginPageData(sess, "")
	if middlewares.IsHTMXRequest(r.Context()) {
		render(w, r, status, views.LoginCard(data))
		return
	}
	render(w, r, status, views.LoginPage(data))
}

// renderLoginUpdate answers a submit or dismiss. htmx gets the status update
// only, leaving the typed inputs in place.
func renderLoginUpdate(w http.ResponseWriter, r *http.Request, status int, sess *sessions.Session, invalidField string) {
	data := loginPageData(sess, invalidField)
	if middlewares.IsHTMXRequest(r.Context()) {
		render(w, r, status, views.LoginUpdate(data))
		return
	}
	render(w, r, status, views.LoginPage(data))
}

func loginPageData(sess *sessions.Session, invalidField string) views.LoginPageData {
	ctrl := sess.Controller
	return views.LoginPageData{
		Form:           ctrl.Form(),
		Notification:   ctrl.Notification(),
		Busy:           ctrl.Busy(),
		SubmitLabel:    ctrl.SubmitLabel(),
		InvalidField:   invalidField,
		PollNavigation: ctrl.PendingNavigation() || sess.Navigator.Pending() > 0,
		DarkMode:       sess.Theme.State().IsDarkMode,
	}
}

// sessionOr500 returns the request session or answers 500.
func sessionOr500(w http.ResponseWriter, r *http.Request) (*sessions.Session, bool) {
	sess, ok := middlewares.SessionFromContext(r.Context())
	if !ok {
		logger.Log.Errorw("request without session", "uri", r.RequestURI)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return nil, false
	}
	return sess, true
}

// followNavigation redirects to the next queued route, if any.
func followNavigation(w http.ResponseWriter, r *http.Request, sess *sessions.Session) bool {
	route, ok := sess.Navigator.Take()
	if !ok {
		return false
	}
	middlewares.Redirect(w, r, route.String())
	return true
}
