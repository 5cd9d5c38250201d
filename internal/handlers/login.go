package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/sbilibin2017/gw-login-portal/internal/jwt"
	"github.com/sbilibin2017/gw-login-portal/internal/logger"
	"github.com/sbilibin2017/gw-login-portal/internal/middlewares"
	"github.com/sbilibin2017/gw-login-portal/internal/models"
	"github.com/sbilibin2017/gw-login-portal/internal/services"
)

// TokenCookie configures the cookie carrying the issued access token.
type TokenCookie struct {
	TTL    time.Duration
	Secure bool
}

// NewLoginPageHandler renders the login page. A navigation that became due
// while the page was away is followed instead.
func NewLoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionOr500(w, r)
		if !ok {
			return
		}
		if followNavigation(w, r, sess) {
			return
		}
		renderLogin(w, r, http.StatusOK, sess)
	}
}

// NewLoginSubmitHandler takes the posted credentials and submits them.
func NewLoginSubmitHandler(cookie TokenCookie) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionOr500(w, r)
		if !ok {
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form body", http.StatusBadRequest)
			return
		}

		ctrl := sess.Controller
		for _, field := range []string{models.FieldEmail, models.FieldPassword} {
			if _, posted := r.PostForm[field]; !posted {
				continue
			}
			if err := ctrl.SetField(field, r.PostForm.Get(field)); err != nil {
				logger.Log.Errorw("form field rejected", "field", field, "err", err)
			}
		}

		outcome, err := ctrl.Submit(r.Context())
		if err != nil {
			var fieldErr *services.FieldError
			switch {
			case errors.As(err, &fieldErr):
				renderLoginUpdate(w, r, http.StatusUnprocessableEntity, sess, fieldErr.Field)
			case errors.Is(err, services.ErrSubmissionInFlight):
				renderLoginUpdate(w, r, http.StatusConflict, sess, "")
			case errors.Is(err, services.ErrControllerClosed):
				http.Error(w, "session expired", http.StatusServiceUnavailable)
			default:
				logger.Log.Errorw("login submit failed", "err", err)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
			return
		}

		logger.Log.Infow("login submitted",
			"session", sess.ID,
			"request_id", middlewares.RequestIDFromContext(r.Context()),
			"outcome", outcome.String(),
		)

		if outcome == services.OutcomeSucceeded {
			setTokenCookie(w, ctrl.Token(), cookie)
		}
		if followNavigation(w, r, sess) {
			return
		}
		renderLoginUpdate(w, r, http.StatusOK, sess, "")
	}
}

func setTokenCookie(w http.ResponseWriter, token string, cfg TokenCookie) {
	if token == "" {
		return
	}
	c := &http.Cookie{
		Name:     jwt.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if cfg.TTL > 0 {
		c.MaxAge = int(cfg.TTL.Seconds())
	}
	http.SetCookie(w, c)
}

// NewDismissHandler clears the notification banner.
func NewDismissHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionOr500(w, r)
		if !ok {
			return
		}

		sess.Controller.Dismiss()

		if middlewares.IsHTMXRequest(r.Context()) {
			renderLoginUpdate(w, r, http.StatusOK, sess, "")
			return
		}
		http.Redirect(w, r, models.RouteLogin.String(), http.StatusSeeOther)
	}
}

// NewNavigationHandler follows a queued navigation. With nothing queued htmx
// gets 204 and other clients go back to the login page.
func NewNavigationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionOr500(w, r)
		if !ok {
			return
		}
		if followNavigation(w, r, sess) {
			return
		}
		if middlewares.IsHTMXRequest(r.Context()) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.Redirect(w, r, models.RouteLogin.String(), http.StatusSeeOther)
	}
}
