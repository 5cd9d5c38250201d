package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/sbilibin2017/gw-login-portal/internal/logger"
	"github.com/sbilibin2017/gw-login-portal/internal/middlewares"
	"github.com/sbilibin2017/gw-login-portal/internal/models"
	"github.com/sbilibin2017/gw-login-portal/internal/repositories"
	"github.com/sbilibin2017/gw-login-portal/internal/state"
	"github.com/sbilibin2017/gw-login-portal/internal/views"
)

// NewThemeToggleHandler flips dark mode for the session.
func NewThemeToggleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionOr500(w, r)
		if !ok {
			return
		}

		next := sess.Theme.Dispatch(state.ThemeAction{Type: state.ThemeToggle})
		logger.Log.Infow("theme changed", "session", sess.ID, "dark", next.IsDarkMode)

		if middlewares.IsHTMXRequest(r.Context()) {
			w.Header().Set("HX-Refresh", "true")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.Redirect(w, r, backTo(r), http.StatusSeeOther)
	}
}

// backTo returns the same-host page the request came from, or the login page.
func backTo(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || ref.Path[0] != '/' || (ref.Host != "" && ref.Host != r.Host) {
		return models.RouteLogin.String()
	}
	return ref.Path
}

// NewHomeHandler renders the page shown after login. It expects AuthMiddleware.
func NewHomeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionOr500(w, r)
		if !ok {
			return
		}

		var userID string
		if id, ok := middlewares.UserIDFromContext(r.Context()); ok {
			userID = id.String()
		}
		render(w, r, http.StatusOK, views.HomePage(userID, sess.Theme.State().IsDarkMode))
	}
}

// NewVerifyEmailHandler renders the verification page for the email the
// login page stored.
func NewVerifyEmailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionOr500(w, r)
		if !ok {
			return
		}

		email, err := sess.Storage.Get(r.Context(), models.StorageKeyEmail)
		if err != nil {
			if !errors.Is(err, repositories.ErrKeyNotFound) {
				logger.Log.Errorw("failed to read stored email", "session", sess.ID, "err", err)
			}
			email = ""
		}
		render(w, r, http.StatusOK, views.VerifyEmailPage(email, sess.Theme.State().IsDarkMode))
	}
}
